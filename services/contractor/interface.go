package contractor

import (
	"context"
	"fmt"

	contractorRepo "reparaya/database/repository/contractor"
	"reparaya/models"
)

// ContractorService manages contractor accounts and their schedule
// configuration (timezone, slot granularity).
type ContractorService interface {
	Register(ctx context.Context, req models.ContractorRegistrationRequest) (*models.ContractorAuthResponse, error)
	Authenticate(ctx context.Context, req models.ContractorAuthRequest) (*models.ContractorAuthResponse, error)
	GetByID(ctx context.Context, id string) (*models.Contractor, error)
	UpdateProfile(ctx context.Context, contractorID string, req models.UpdateProfileRequest) (*models.Contractor, error)
}

// DefaultContractorService is the production implementation.
type DefaultContractorService struct {
	Repo contractorRepo.ContractorRepository
}

func NewDefaultContractorService(repo contractorRepo.ContractorRepository) (*DefaultContractorService, error) {
	if repo == nil {
		return nil, fmt.Errorf("contractor service initialization error: repository is nil")
	}
	return &DefaultContractorService{Repo: repo}, nil
}
