// File: database/repository/interval/queries.go
package intervalRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"coachly/models"
)

// FindOverlapping returns intervals of the given kind and statuses whose
// range overlaps [start, end) under half-open semantics
// (existing.start < end AND existing.end > start).
func (r *mongoIntervalRepo) FindOverlapping(ctx context.Context, ownerID, kind string, statuses []string, start, end time.Time, excludeID string) ([]models.Interval, error) {
	filter := bson.M{
		"ownerId": ownerID,
		"kind":    kind,
		"status":  bson.M{"$in": statuses},
		"start":   bson.M{"$lt": end},
		"end":     bson.M{"$gt": start},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch overlapping intervals: %w", err)
	}
	defer cursor.Close(ctx)

	var intervals []models.Interval
	if err := cursor.All(ctx, &intervals); err != nil {
		return nil, fmt.Errorf("error decoding intervals: %w", err)
	}
	return intervals, nil
}

// FindEncompassing returns a confirmed availability interval that fully
// contains [start, end), or nil when none exists.
func (r *mongoIntervalRepo) FindEncompassing(ctx context.Context, ownerID string, start, end time.Time) (*models.Interval, error) {
	filter := bson.M{
		"ownerId": ownerID,
		"kind":    models.KindAvailability,
		"status":  models.StatusConfirmed,
		"start":   bson.M{"$lte": start},
		"end":     bson.M{"$gte": end},
	}

	var iv models.Interval
	err := r.coll.FindOne(ctx, filter).Decode(&iv)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch encompassing interval: %w", err)
	}
	return &iv, nil
}

// FindEndingAt returns the confirmed availability interval whose end equals
// the given instant exactly, or nil. Boundary comparison is exact, not fuzzy.
func (r *mongoIntervalRepo) FindEndingAt(ctx context.Context, ownerID string, at time.Time) (*models.Interval, error) {
	return r.findBoundary(ctx, ownerID, bson.M{"end": at})
}

// FindStartingAt returns the confirmed availability interval whose start
// equals the given instant exactly, or nil.
func (r *mongoIntervalRepo) FindStartingAt(ctx context.Context, ownerID string, at time.Time) (*models.Interval, error) {
	return r.findBoundary(ctx, ownerID, bson.M{"start": at})
}

func (r *mongoIntervalRepo) findBoundary(ctx context.Context, ownerID string, boundary bson.M) (*models.Interval, error) {
	filter := bson.M{
		"ownerId": ownerID,
		"kind":    models.KindAvailability,
		"status":  models.StatusConfirmed,
	}
	for k, v := range boundary {
		filter[k] = v
	}

	var iv models.Interval
	err := r.coll.FindOne(ctx, filter).Decode(&iv)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch adjacent interval: %w", err)
	}
	return &iv, nil
}

// FindAvailabilityByOwner returns all confirmed availability intervals for a
// coach, sorted by start.
func (r *mongoIntervalRepo) FindAvailabilityByOwner(ctx context.Context, ownerID string) ([]models.Interval, error) {
	filter := bson.M{
		"ownerId": ownerID,
		"kind":    models.KindAvailability,
		"status":  models.StatusConfirmed,
	}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}
	defer cursor.Close(ctx)

	var intervals []models.Interval
	if err := cursor.All(ctx, &intervals); err != nil {
		return nil, fmt.Errorf("error decoding availability: %w", err)
	}
	return intervals, nil
}
