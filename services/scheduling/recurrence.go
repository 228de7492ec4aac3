package scheduling

import (
	"time"

	"coachly/models"
)

// IsDateInRecurrence reports whether the candidate date falls within the
// availability interval's recurrence pattern. Pure function; comparisons
// happen in the interval's stored naive-UTC instant space.
func IsDateInRecurrence(candidate time.Time, iv models.Interval) bool {
	startDay := dayOf(iv.Start)
	candidateDay := dayOf(candidate)

	pattern := iv.RecurrencePattern()
	if pattern == models.RecurrenceNone {
		// One-off interval: only its own start date counts.
		return candidateDay.Equal(startDay)
	}

	if iv.Recurrence != nil && iv.Recurrence.EndDate != nil && !candidate.Before(*iv.Recurrence.EndDate) {
		return false
	}

	switch pattern {
	case models.RecurrenceDaily:
		return !candidateDay.Before(startDay)
	case models.RecurrenceWeekly:
		return candidateDay.Weekday() == startDay.Weekday()
	case models.RecurrenceBiweekly:
		if candidateDay.Weekday() != startDay.Weekday() {
			return false
		}
		return wholeWeeksBetween(startDay, candidateDay)%2 == 0
	case models.RecurrenceMonthly:
		return candidateDay.Day() == startDay.Day()
	default:
		return false
	}
}

func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func wholeWeeksBetween(a, b time.Time) int {
	days := int(b.Sub(a).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days / 7
}
