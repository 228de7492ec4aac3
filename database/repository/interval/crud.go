// File: database/repository/interval/crud.go
package intervalRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"coachly/models"
)

func (r *mongoIntervalRepo) InsertMany(ctx context.Context, intervals []models.Interval) ([]models.Interval, error) {
	if len(intervals) == 0 {
		return nil, nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, len(intervals))
	for i := range intervals {
		if intervals[i].ID == "" {
			intervals[i].ID = uuid.New().String()
		}
		if intervals[i].CreatedAt.IsZero() {
			intervals[i].CreatedAt = now
		}
		docs[i] = intervals[i]
	}

	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return nil, err
	}
	return intervals, nil
}

func (r *mongoIntervalRepo) GetByID(ctx context.Context, ownerID, intervalID string) (*models.Interval, error) {
	filter := bson.M{"id": intervalID, "ownerId": ownerID}
	var iv models.Interval
	err := r.coll.FindOne(ctx, filter).Decode(&iv)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &iv, nil
}

func (r *mongoIntervalRepo) DeleteByID(ctx context.Context, ownerID, intervalID string) error {
	filter := bson.M{"id": intervalID, "ownerId": ownerID}
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoIntervalRepo) DeleteMany(ctx context.Context, ownerID string, intervalIDs []string) error {
	if len(intervalIDs) == 0 {
		return nil
	}
	filter := bson.M{"ownerId": ownerID, "id": bson.M{"$in": intervalIDs}}
	_, err := r.coll.DeleteMany(ctx, filter)
	return err
}
