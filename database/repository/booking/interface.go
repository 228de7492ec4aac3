// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"time"

	"coachly/config"
	"coachly/database"
	"coachly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository persists booking records, including the slot-lineage
// snapshot written when a booking consumes availability and the restore
// marker written when its time is given back.
type BookingRepository interface {
	Insert(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID, status string) error
	Reschedule(ctx context.Context, bookingID string, start, end time.Time, status string) error
	SetSlotSnapshot(ctx context.Context, bookingID string, snap models.SlotSnapshot) error
	MarkRestored(ctx context.Context, bookingID string, at time.Time) error
	CompleteIfEnded(ctx context.Context, bookingID string, now time.Time) (bool, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoBookingRepo{
		coll: db.Collection("bookings"),
	}
}
