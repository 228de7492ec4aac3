// File: database/repository/interval/interface.go
package intervalRepo

import (
	"context"
	"time"

	"coachly/config"
	"coachly/database"
	"coachly/models"
	"coachly/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// IntervalRepository is the persistence contract for availability and
// booking intervals. All mutating calls made inside RunInTransaction are
// applied atomically.
type IntervalRepository interface {
	InsertMany(ctx context.Context, intervals []models.Interval) ([]models.Interval, error)
	GetByID(ctx context.Context, ownerID, intervalID string) (*models.Interval, error)
	FindOverlapping(ctx context.Context, ownerID, kind string, statuses []string, start, end time.Time, excludeID string) ([]models.Interval, error)
	FindEncompassing(ctx context.Context, ownerID string, start, end time.Time) (*models.Interval, error)
	FindEndingAt(ctx context.Context, ownerID string, at time.Time) (*models.Interval, error)
	FindStartingAt(ctx context.Context, ownerID string, at time.Time) (*models.Interval, error)
	FindAvailabilityByOwner(ctx context.Context, ownerID string) ([]models.Interval, error)
	DeleteByID(ctx context.Context, ownerID, intervalID string) error
	DeleteMany(ctx context.Context, ownerID string, intervalIDs []string) error
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type mongoIntervalRepo struct {
	coll *mongo.Collection
}

// NewMongoIntervalRepo constructs a new MongoDB IntervalRepository.
func NewMongoIntervalRepo() IntervalRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &mongoIntervalRepo{
		coll: db.Collection("intervals"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to ensure interval indexes", zap.Error(err))
	}
	return repo
}
