package scheduling

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"coachly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// fakeIntervalStore is an in-memory IntervalRepository with transaction
// rollback, used to exercise the engine without Mongo.
type fakeIntervalStore struct {
	mu        sync.Mutex
	intervals map[string]models.Interval
	nextID    int

	// txnConflicts makes the next N transactions fail at commit with a
	// retryable conflict after rolling back.
	txnConflicts int
}

func newFakeIntervalStore() *fakeIntervalStore {
	return &fakeIntervalStore{intervals: make(map[string]models.Interval)}
}

func (f *fakeIntervalStore) seed(iv models.Interval) models.Interval {
	f.mu.Lock()
	defer f.mu.Unlock()
	if iv.ID == "" {
		f.nextID++
		iv.ID = fmt.Sprintf("iv-%d", f.nextID)
	}
	f.intervals[iv.ID] = iv
	return iv
}

func (f *fakeIntervalStore) all(ownerID string) []models.Interval {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Interval
	for _, iv := range f.intervals {
		if iv.OwnerID == ownerID {
			out = append(out, iv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

func (f *fakeIntervalStore) InsertMany(_ context.Context, intervals []models.Interval) ([]models.Interval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range intervals {
		if intervals[i].ID == "" {
			f.nextID++
			intervals[i].ID = fmt.Sprintf("iv-%d", f.nextID)
		}
		if intervals[i].CreatedAt.IsZero() {
			intervals[i].CreatedAt = time.Now().UTC()
		}
		f.intervals[intervals[i].ID] = intervals[i]
	}
	return intervals, nil
}

func (f *fakeIntervalStore) GetByID(_ context.Context, ownerID, intervalID string) (*models.Interval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	iv, ok := f.intervals[intervalID]
	if !ok || iv.OwnerID != ownerID {
		return nil, nil
	}
	out := iv
	return &out, nil
}

func (f *fakeIntervalStore) FindOverlapping(_ context.Context, ownerID, kind string, statuses []string, start, end time.Time, excludeID string) ([]models.Interval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	statusSet := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		statusSet[s] = true
	}
	var out []models.Interval
	for _, iv := range f.intervals {
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

func (f *fakeIntervalStore) FindEncompassing(_ context.Context, ownerID string, start, end time.Time) (*models.Interval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, iv := range f.intervals {
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

func (f *fakeIntervalStore) FindEndingAt(_ context.Context, ownerID string, at time.Time) (*models.Interval, error) {
	return f.findBoundary(ownerID, func(iv models.Interval) bool { return iv.End.Equal(at) })
}

func (f *fakeIntervalStore) FindStartingAt(_ context.Context, ownerID string, at time.Time) (*models.Interval, error) {
	return f.findBoundary(ownerID, func(iv models.Interval) bool { return iv.Start.Equal(at) })
}

func (f *fakeIntervalStore) findBoundary(ownerID string, match func(models.Interval) bool) (*models.Interval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, iv := range f.intervals {
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

func (f *fakeIntervalStore) FindAvailabilityByOwner(_ context.Context, ownerID string) ([]models.Interval, error) {
	var out []models.Interval
	for _, iv := range f.all(ownerID) {
		if iv.Kind == models.KindAvailability && iv.Status == models.StatusConfirmed {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (f *fakeIntervalStore) DeleteByID(_ context.Context, ownerID, intervalID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	iv, ok := f.intervals[intervalID]
	if !ok || iv.OwnerID != ownerID {
		return mongo.ErrNoDocuments
	}
	delete(f.intervals, intervalID)
	return nil
}

func (f *fakeIntervalStore) DeleteMany(_ context.Context, ownerID string, intervalIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range intervalIDs {
		if iv, ok := f.intervals[id]; ok && iv.OwnerID == ownerID {
			delete(f.intervals, id)
		}
	}
	return nil
}

func (f *fakeIntervalStore) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	snapshot := make(map[string]models.Interval, len(f.intervals))
	for k, v := range f.intervals {
		snapshot[k] = v
	}
	f.mu.Unlock()

	rollback := func() {
		f.mu.Lock()
		f.intervals = snapshot
		f.mu.Unlock()
	}

	if err := fn(ctx); err != nil {
		rollback()
		return err
	}

	f.mu.Lock()
	conflicted := f.txnConflicts > 0
	if conflicted {
		f.txnConflicts--
	}
	f.mu.Unlock()
	if conflicted {
		rollback()
		return &ConflictRetryableError{Err: fmt.Errorf("simulated write conflict")}
	}
	return nil
}

// fakeBookingStore is an in-memory BookingRepository.
type fakeBookingStore struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: make(map[string]models.Booking)}
}

func (f *fakeBookingStore) seed(b models.Booking) models.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings[b.ID] = b
	return b
}

func (f *fakeBookingStore) Insert(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b.ID == "" {
		b.ID = fmt.Sprintf("bk-%d", len(f.bookings)+1)
	}
	f.bookings[b.ID] = *b
	return nil
}

func (f *fakeBookingStore) GetByID(_ context.Context, bookingID string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[bookingID]
	if !ok {
		return nil, nil
	}
	out := b
	return &out, nil
}

func (f *fakeBookingStore) UpdateStatus(_ context.Context, bookingID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[bookingID]
	if !ok {
		return fmt.Errorf("booking %s not found", bookingID)
	}
	b.Status = status
	f.bookings[bookingID] = b
	return nil
}

func (f *fakeBookingStore) Reschedule(_ context.Context, bookingID string, start, end time.Time, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[bookingID]
	if !ok {
		return fmt.Errorf("booking %s not found", bookingID)
	}
	b.Start, b.End, b.Status, b.RestoredAt = start, end, status, nil
	f.bookings[bookingID] = b
	return nil
}

func (f *fakeBookingStore) SetSlotSnapshot(_ context.Context, bookingID string, snap models.SlotSnapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[bookingID]
	if !ok {
		return fmt.Errorf("booking %s not found", bookingID)
	}
	b.SlotSnapshot = &snap
	f.bookings[bookingID] = b
	return nil
}

func (f *fakeBookingStore) MarkRestored(_ context.Context, bookingID string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[bookingID]
	if !ok {
		return fmt.Errorf("booking %s not found", bookingID)
	}
	b.RestoredAt = &at
	f.bookings[bookingID] = b
	return nil
}

func (f *fakeBookingStore) CompleteIfEnded(_ context.Context, bookingID string, now time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[bookingID]
	if !ok {
		return false, nil
	}
	if !models.IsActiveStatus(b.Status) || b.End.After(now) {
		return false, nil
	}
	b.Status = models.StatusCompleted
	f.bookings[bookingID] = b
	return true, nil
}
