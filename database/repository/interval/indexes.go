// File: database/repository/interval/indexes.go
package intervalRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the intervals collection.
func (r *mongoIntervalRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Unique index on interval ID
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Compound index for the overlap and encompassing queries
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "kind", Value: 1}, {Key: "start", Value: 1}, {Key: "end", Value: 1}},
			Options: options.Index().SetName("owner_kind_start_end_idx"),
		},
		// Boundary-equality lookups used by the coalescer
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "kind", Value: 1}, {Key: "end", Value: 1}},
			Options: options.Index().SetName("owner_kind_end_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create interval indexes: %w", err)
	}
	return nil
}
