package contractorRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"reparaya/models"
)

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoContractorRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoContractorRepo) Create(ctx context.Context, contractor *models.Contractor) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if contractor.ID == "" {
		contractor.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	contractor.CreatedAt = now
	contractor.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, contractor); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("contractor with email %s already exists", contractor.Email)
		}
		return fmt.Errorf("failed to create contractor: %w", err)
	}
	return nil
}

func (r *MongoContractorRepo) GetByID(ctx context.Context, id string) (*models.Contractor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var contractor models.Contractor
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&contractor)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contractor: %w", err)
	}
	return &contractor, nil
}

func (r *MongoContractorRepo) GetByEmail(ctx context.Context, email string) (*models.Contractor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var contractor models.Contractor
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&contractor)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contractor: %w", err)
	}
	return &contractor, nil
}

func (r *MongoContractorRepo) Update(ctx context.Context, contractor *models.Contractor) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	contractor.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": contractor.ID}, contractor)
	if err != nil {
		return fmt.Errorf("failed to update contractor: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
