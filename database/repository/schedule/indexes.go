package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the schedule collection indexes. The unique
// contractor+dayOfWeek index enforces at most one weekly rule per weekday.
func (r *mongoScheduleRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ruleIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "contractorId", Value: 1}, {Key: "dayOfWeek", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.rules.Indexes().CreateMany(ctx, ruleIndexes); err != nil {
		return fmt.Errorf("failed to create weekly_rules indexes: %w", err)
	}

	excIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "contractorId", Value: 1}, {Key: "type", Value: 1}, {Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.exceptions.Indexes().CreateMany(ctx, excIndexes); err != nil {
		return fmt.Errorf("failed to create exceptions indexes: %w", err)
	}

	blockIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "contractor_id", Value: 1}, {Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "block_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.blockouts.Indexes().CreateMany(ctx, blockIndexes); err != nil {
		return fmt.Errorf("failed to create blockouts indexes: %w", err)
	}
	return nil
}
