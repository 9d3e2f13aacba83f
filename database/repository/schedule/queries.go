package scheduleRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"reparaya/models"
)

func (r *mongoScheduleRepo) GetWeeklyRules(ctx context.Context, contractorID string) ([]models.WeeklyRule, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := r.rules.Find(ctx, bson.M{"contractorId": contractorID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weekly rules: %w", err)
	}
	defer cursor.Close(ctx)

	var rules []models.WeeklyRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, fmt.Errorf("error decoding weekly rules: %w", err)
	}
	return rules, nil
}

func (r *mongoScheduleRepo) GetWeeklyRuleByID(ctx context.Context, ruleID string) (*models.WeeklyRule, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var rule models.WeeklyRule
	err := r.rules.FindOne(ctx, bson.M{"id": ruleID}).Decode(&rule)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weekly rule: %w", err)
	}
	return &rule, nil
}

func (r *mongoScheduleRepo) GetWeeklyRuleByDay(ctx context.Context, contractorID string, day models.DayOfWeek) (*models.WeeklyRule, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var rule models.WeeklyRule
	err := r.rules.FindOne(ctx, bson.M{"contractorId": contractorID, "dayOfWeek": day}).Decode(&rule)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weekly rule: %w", err)
	}
	return &rule, nil
}

func (r *mongoScheduleRepo) GetExceptions(ctx context.Context, contractorID, startDate, endDate string) ([]models.Exception, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	// RECURRING exceptions carry no year, so every one of them is a
	// candidate for any window; ONE_OFF ones are filtered by date.
	filter := bson.M{
		"contractorId": contractorID,
		"$or": []bson.M{
			{"type": models.ExceptionRecurring},
			{"type": models.ExceptionOneOff, "date": bson.M{"$gte": startDate, "$lte": endDate}},
		},
	}
	cursor, err := r.exceptions.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch exceptions: %w", err)
	}
	defer cursor.Close(ctx)

	var exceptions []models.Exception
	if err := cursor.All(ctx, &exceptions); err != nil {
		return nil, fmt.Errorf("error decoding exceptions: %w", err)
	}
	return exceptions, nil
}

func (r *mongoScheduleRepo) ListExceptions(ctx context.Context, contractorID string) ([]models.Exception, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.exceptions.Find(ctx, bson.M{"contractorId": contractorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch exceptions: %w", err)
	}
	defer cursor.Close(ctx)

	var exceptions []models.Exception
	if err := cursor.All(ctx, &exceptions); err != nil {
		return nil, fmt.Errorf("error decoding exceptions: %w", err)
	}
	return exceptions, nil
}

func (r *mongoScheduleRepo) GetExceptionByID(ctx context.Context, exceptionID string) (*models.Exception, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var exc models.Exception
	err := r.exceptions.FindOne(ctx, bson.M{"id": exceptionID}).Decode(&exc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch exception: %w", err)
	}
	return &exc, nil
}

func (r *mongoScheduleRepo) GetBlockouts(ctx context.Context, contractorID, startDate, endDate string) ([]models.Blockout, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{
		"contractor_id": contractorID,
		"date":          bson.M{"$gte": startDate, "$lte": endDate},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}})
	cursor, err := r.blockouts.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blockouts: %w", err)
	}
	defer cursor.Close(ctx)

	var blockouts []models.Blockout
	if err := cursor.All(ctx, &blockouts); err != nil {
		return nil, fmt.Errorf("error decoding blockouts: %w", err)
	}
	return blockouts, nil
}

func (r *mongoScheduleRepo) ListBlockouts(ctx context.Context, contractorID string) ([]models.Blockout, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}})
	cursor, err := r.blockouts.Find(ctx, bson.M{"contractor_id": contractorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blockouts: %w", err)
	}
	defer cursor.Close(ctx)

	var blockouts []models.Blockout
	if err := cursor.All(ctx, &blockouts); err != nil {
		return nil, fmt.Errorf("error decoding blockouts: %w", err)
	}
	return blockouts, nil
}

func (r *mongoScheduleRepo) GetBlockoutByID(ctx context.Context, blockoutID string) (*models.Blockout, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var blockout models.Blockout
	err := r.blockouts.FindOne(ctx, bson.M{"block_id": blockoutID}).Decode(&blockout)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blockout: %w", err)
	}
	return &blockout, nil
}
