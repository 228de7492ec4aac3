// File: database/repository/booking/crud.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"coachly/models"
)

func (r *mongoBookingRepo) Insert(ctx context.Context, b *models.Booking) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

func (r *mongoBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	var b models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": bookingID}).Decode(&b)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	return &b, nil
}

func (r *mongoBookingRepo) UpdateStatus(ctx context.Context, bookingID, status string) error {
	update := bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now().UTC(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": bookingID}, update)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Reschedule moves the booking to a new range and clears the restore
// marker so a later cancellation restores the new range, not the old one.
func (r *mongoBookingRepo) Reschedule(ctx context.Context, bookingID string, start, end time.Time, status string) error {
	update := bson.M{
		"$set": bson.M{
			"start":     start,
			"end":       end,
			"status":    status,
			"updatedAt": time.Now().UTC(),
		},
		"$unset": bson.M{"restoredAt": ""},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": bookingID}, update)
	if err != nil {
		return fmt.Errorf("failed to reschedule booking: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoBookingRepo) SetSlotSnapshot(ctx context.Context, bookingID string, snap models.SlotSnapshot) error {
	update := bson.M{"$set": bson.M{
		"slotSnapshot": snap,
		"updatedAt":    time.Now().UTC(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": bookingID}, update)
	if err != nil {
		return fmt.Errorf("failed to record slot snapshot: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoBookingRepo) MarkRestored(ctx context.Context, bookingID string, at time.Time) error {
	update := bson.M{"$set": bson.M{
		"restoredAt": at,
		"updatedAt":  time.Now().UTC(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": bookingID}, update)
	if err != nil {
		return fmt.Errorf("failed to mark booking restored: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// CompleteIfEnded marks the booking completed when it is still active and
// its end time has passed. Returns whether a transition happened.
func (r *mongoBookingRepo) CompleteIfEnded(ctx context.Context, bookingID string, now time.Time) (bool, error) {
	filter := bson.M{
		"id":     bookingID,
		"status": bson.M{"$in": models.ActiveBookingStatuses},
		"end":    bson.M{"$lte": now},
	}
	update := bson.M{"$set": bson.M{
		"status":    models.StatusCompleted,
		"updatedAt": now,
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to complete booking: %w", err)
	}
	return res.ModifiedCount > 0, nil
}
