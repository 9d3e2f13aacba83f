package scheduleRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"reparaya/database"
	"reparaya/models"
)

// ScheduleRepository is the data source for a contractor's schedule
// configuration: weekly rules, exceptions and blockouts. Lookups by ID
// return (nil, nil) when no document matches.
type ScheduleRepository interface {
	GetWeeklyRules(ctx context.Context, contractorID string) ([]models.WeeklyRule, error)
	GetWeeklyRuleByID(ctx context.Context, ruleID string) (*models.WeeklyRule, error)
	GetWeeklyRuleByDay(ctx context.Context, contractorID string, day models.DayOfWeek) (*models.WeeklyRule, error)
	CreateWeeklyRule(ctx context.Context, rule models.WeeklyRule) (*models.WeeklyRule, error)
	UpdateWeeklyRule(ctx context.Context, rule models.WeeklyRule) (*models.WeeklyRule, error)
	DeleteWeeklyRule(ctx context.Context, ruleID string) error

	// GetExceptions returns ONE_OFF exceptions dated inside [startDate,
	// endDate] plus every RECURRING exception, since those can match any
	// year within the window.
	GetExceptions(ctx context.Context, contractorID, startDate, endDate string) ([]models.Exception, error)
	ListExceptions(ctx context.Context, contractorID string) ([]models.Exception, error)
	GetExceptionByID(ctx context.Context, exceptionID string) (*models.Exception, error)
	CreateException(ctx context.Context, exc models.Exception) (*models.Exception, error)
	DeleteException(ctx context.Context, exceptionID string) error

	GetBlockouts(ctx context.Context, contractorID, startDate, endDate string) ([]models.Blockout, error)
	ListBlockouts(ctx context.Context, contractorID string) ([]models.Blockout, error)
	GetBlockoutByID(ctx context.Context, blockoutID string) (*models.Blockout, error)
	CreateBlockout(ctx context.Context, blockout models.Blockout) (*models.Blockout, error)
	DeleteBlockout(ctx context.Context, blockoutID string) error
}

type mongoScheduleRepo struct {
	rules      *mongo.Collection
	exceptions *mongo.Collection
	blockouts  *mongo.Collection
}

// NewMongoScheduleRepo constructs a new MongoDB ScheduleRepository.
func NewMongoScheduleRepo() ScheduleRepository {
	db := database.MongoClient.Database("reparaya")
	repo := &mongoScheduleRepo{
		rules:      db.Collection("weekly_rules"),
		exceptions: db.Collection("exceptions"),
		blockouts:  db.Collection("blockouts"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}
