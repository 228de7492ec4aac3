package workflow

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"coachly/models"
	"coachly/services/scheduling"

	"go.mongodb.org/mongo-driver/mongo"
)

// memStore is an in-memory IntervalRepository with snapshot rollback, so
// workflow transactions behave atomically in tests.
type memStore struct {
	mu        sync.Mutex
	intervals map[string]models.Interval
	nextID    int

	// txnConflicts fails the next N commits with a retryable conflict.
	txnConflicts int

	// bookings, when set, is rolled back together with the intervals so a
	// failed transaction leaves neither collection mutated.
	bookings *memBookings
}

func newMemStore() *memStore {
	return &memStore{intervals: make(map[string]models.Interval)}
}

func (m *memStore) seed(iv models.Interval) models.Interval {
	m.mu.Lock()
	defer m.mu.Unlock()
	if iv.ID == "" {
		m.nextID++
		iv.ID = fmt.Sprintf("iv-%d", m.nextID)
	}
	m.intervals[iv.ID] = iv
	return iv
}

func (m *memStore) all(ownerID string) []models.Interval {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Interval
	for _, iv := range m.intervals {
		if iv.OwnerID == ownerID {
			out = append(out, iv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

func (m *memStore) availability(ownerID string) []models.Interval {
	var out []models.Interval
	for _, iv := range m.all(ownerID) {
		if iv.Kind == models.KindAvailability {
			out = append(out, iv)
		}
	}
	return out
}

func (m *memStore) InsertMany(_ context.Context, intervals []models.Interval) ([]models.Interval, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range intervals {
		if intervals[i].ID == "" {
			m.nextID++
			intervals[i].ID = fmt.Sprintf("iv-%d", m.nextID)
		}
		m.intervals[intervals[i].ID] = intervals[i]
	}
	return intervals, nil
}

func (m *memStore) GetByID(_ context.Context, ownerID, intervalID string) (*models.Interval, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	iv, ok := m.intervals[intervalID]
	if !ok || iv.OwnerID != ownerID {
		return nil, nil
	}
	out := iv
	return &out, nil
}

func (m *memStore) FindOverlapping(_ context.Context, ownerID, kind string, statuses []string, start, end time.Time, excludeID string) ([]models.Interval, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	statusSet := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		statusSet[s] = true
	}
	var out []models.Interval
	for _, iv := range m.intervals {
		if iv.OwnerID != ownerID || iv.Kind != kind || !statusSet[iv.Status] {
			continue
		}
		if excludeID != "" && iv.ID == excludeID {
			continue
		}
		if iv.Start.Before(end) && iv.End.After(start) {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (m *memStore) FindEncompassing(_ context.Context, ownerID string, start, end time.Time) (*models.Interval, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, iv := range m.intervals {
		if iv.OwnerID != ownerID || iv.Kind != models.KindAvailability || iv.Status != models.StatusConfirmed {
			continue
		}
		if !iv.Start.After(start) && !iv.End.Before(end) {
			out := iv
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memStore) FindEndingAt(_ context.Context, ownerID string, at time.Time) (*models.Interval, error) {
	return m.findBoundary(ownerID, func(iv models.Interval) bool { return iv.End.Equal(at) })
}

func (m *memStore) FindStartingAt(_ context.Context, ownerID string, at time.Time) (*models.Interval, error) {
	return m.findBoundary(ownerID, func(iv models.Interval) bool { return iv.Start.Equal(at) })
}

func (m *memStore) findBoundary(ownerID string, match func(models.Interval) bool) (*models.Interval, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, iv := range m.intervals {
		if iv.OwnerID != ownerID || iv.Kind != models.KindAvailability || iv.Status != models.StatusConfirmed {
			continue
		}
		if match(iv) {
			out := iv
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memStore) FindAvailabilityByOwner(_ context.Context, ownerID string) ([]models.Interval, error) {
	var out []models.Interval
	for _, iv := range m.availability(ownerID) {
		if iv.Status == models.StatusConfirmed {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (m *memStore) DeleteByID(_ context.Context, ownerID, intervalID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	iv, ok := m.intervals[intervalID]
	if !ok || iv.OwnerID != ownerID {
		return mongo.ErrNoDocuments
	}
	delete(m.intervals, intervalID)
	return nil
}

func (m *memStore) DeleteMany(_ context.Context, ownerID string, intervalIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range intervalIDs {
		if iv, ok := m.intervals[id]; ok && iv.OwnerID == ownerID {
			delete(m.intervals, id)
		}
	}
	return nil
}

func (m *memStore) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	snapshot := make(map[string]models.Interval, len(m.intervals))
	for k, v := range m.intervals {
		snapshot[k] = v
	}
	m.mu.Unlock()

	var bookingSnapshot map[string]models.Booking
	if m.bookings != nil {
		bookingSnapshot = m.bookings.snapshot()
	}

	rollback := func() {
		m.mu.Lock()
		m.intervals = snapshot
		m.mu.Unlock()
		if m.bookings != nil {
			m.bookings.restore(bookingSnapshot)
		}
	}

	if err := fn(ctx); err != nil {
		rollback()
		return err
	}

	m.mu.Lock()
	conflicted := m.txnConflicts > 0
	if conflicted {
		m.txnConflicts--
	}
	m.mu.Unlock()
	if conflicted {
		rollback()
		return &scheduling.ConflictRetryableError{Err: fmt.Errorf("simulated write conflict")}
	}
	return nil
}

// memBookings is an in-memory BookingRepository.
type memBookings struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
}

func newMemBookings() *memBookings {
	return &memBookings{bookings: make(map[string]models.Booking)}
}

func (m *memBookings) snapshot() map[string]models.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]models.Booking, len(m.bookings))
	for k, v := range m.bookings {
		out[k] = v
	}
	return out
}

func (m *memBookings) restore(snap map[string]models.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings = snap
}

func (m *memBookings) seed(b models.Booking) models.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[b.ID] = b
	return b
}

func (m *memBookings) Insert(_ context.Context, b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID == "" {
		b.ID = fmt.Sprintf("bk-%d", len(m.bookings)+1)
	}
	m.bookings[b.ID] = *b
	return nil
}

func (m *memBookings) GetByID(_ context.Context, bookingID string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[bookingID]
	if !ok {
		return nil, nil
	}
	out := b
	return &out, nil
}

func (m *memBookings) UpdateStatus(_ context.Context, bookingID, status string) error {
	return m.update(bookingID, func(b *models.Booking) { b.Status = status })
}

func (m *memBookings) Reschedule(_ context.Context, bookingID string, start, end time.Time, status string) error {
	return m.update(bookingID, func(b *models.Booking) {
		b.Start, b.End, b.Status, b.RestoredAt = start, end, status, nil
	})
}

func (m *memBookings) SetSlotSnapshot(_ context.Context, bookingID string, snap models.SlotSnapshot) error {
	return m.update(bookingID, func(b *models.Booking) { b.SlotSnapshot = &snap })
}

func (m *memBookings) MarkRestored(_ context.Context, bookingID string, at time.Time) error {
	return m.update(bookingID, func(b *models.Booking) { b.RestoredAt = &at })
}

func (m *memBookings) CompleteIfEnded(_ context.Context, bookingID string, now time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[bookingID]
	if !ok || !models.IsActiveStatus(b.Status) || b.End.After(now) {
		return false, nil
	}
	b.Status = models.StatusCompleted
	m.bookings[bookingID] = b
	return true, nil
}

func (m *memBookings) update(bookingID string, mutate func(*models.Booking)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[bookingID]
	if !ok {
		return fmt.Errorf("booking %s not found", bookingID)
	}
	mutate(&b)
	m.bookings[bookingID] = b
	return nil
}

// memScheduler records completion enqueues.
type memScheduler struct {
	mu       sync.Mutex
	enqueued []string
}

func (m *memScheduler) EnqueueCompletion(_ context.Context, bookingID string, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enqueued = append(m.enqueued, bookingID)
	return nil
}
