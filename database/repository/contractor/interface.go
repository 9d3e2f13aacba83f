package contractorRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"reparaya/database"
	"reparaya/models"
)

// ContractorRepository stores contractor accounts and their schedule
// configuration (timezone, granularity). Lookups return (nil, nil) when no
// document matches.
type ContractorRepository interface {
	Create(ctx context.Context, contractor *models.Contractor) error
	GetByID(ctx context.Context, id string) (*models.Contractor, error)
	GetByEmail(ctx context.Context, email string) (*models.Contractor, error)
	Update(ctx context.Context, contractor *models.Contractor) error
}

// MongoContractorRepo implements ContractorRepository using MongoDB.
type MongoContractorRepo struct {
	coll *mongo.Collection
}

// NewMongoContractorRepo creates a new instance of ContractorRepository using MongoDB.
func NewMongoContractorRepo() ContractorRepository {
	coll := database.MongoClient.Database("reparaya").Collection("contractors")
	repo := &MongoContractorRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}
