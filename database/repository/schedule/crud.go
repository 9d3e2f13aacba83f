package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"reparaya/models"
)

const opTimeout = 5 * time.Second

func (r *mongoScheduleRepo) CreateWeeklyRule(ctx context.Context, rule models.WeeklyRule) (*models.WeeklyRule, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	rule.CreatedAt = now
	rule.UpdatedAt = now

	if _, err := r.rules.InsertOne(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to create weekly rule: %w", err)
	}
	return &rule, nil
}

func (r *mongoScheduleRepo) UpdateWeeklyRule(ctx context.Context, rule models.WeeklyRule) (*models.WeeklyRule, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rule.UpdatedAt = time.Now().UTC()
	filter := bson.M{"id": rule.ID, "contractorId": rule.ContractorID}
	update := bson.M{"$set": bson.M{"intervals": rule.Intervals, "updatedAt": rule.UpdatedAt}}

	res, err := r.rules.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update weekly rule: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return &rule, nil
}

func (r *mongoScheduleRepo) DeleteWeeklyRule(ctx context.Context, ruleID string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.rules.DeleteOne(ctx, bson.M{"id": ruleID})
	if err != nil {
		return fmt.Errorf("failed to delete weekly rule: %w", err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoScheduleRepo) CreateException(ctx context.Context, exc models.Exception) (*models.Exception, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if exc.ID == "" {
		exc.ID = uuid.New().String()
	}
	exc.CreatedAt = time.Now().UTC()

	if _, err := r.exceptions.InsertOne(ctx, exc); err != nil {
		return nil, fmt.Errorf("failed to create exception: %w", err)
	}
	return &exc, nil
}

func (r *mongoScheduleRepo) DeleteException(ctx context.Context, exceptionID string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.exceptions.DeleteOne(ctx, bson.M{"id": exceptionID})
	if err != nil {
		return fmt.Errorf("failed to delete exception: %w", err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoScheduleRepo) CreateBlockout(ctx context.Context, blockout models.Blockout) (*models.Blockout, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if blockout.ID == "" {
		blockout.ID = uuid.New().String()
	}
	blockout.CreatedAt = time.Now().UTC()

	if _, err := r.blockouts.InsertOne(ctx, blockout); err != nil {
		return nil, fmt.Errorf("failed to create blockout: %w", err)
	}
	return &blockout, nil
}

func (r *mongoScheduleRepo) DeleteBlockout(ctx context.Context, blockoutID string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.blockouts.DeleteOne(ctx, bson.M{"block_id": blockoutID})
	if err != nil {
		return fmt.Errorf("failed to delete blockout: %w", err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
