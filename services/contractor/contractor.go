package contractor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"reparaya/models"
	"reparaya/services/availability"
	"reparaya/utils"
)

const (
	tokenDuration   = 72 * time.Hour
	profileCacheTTL = 5 * time.Minute
	profileCacheKey = "contractor:profile:"
)

// Register creates a contractor account and returns a signed token. The
// schedule configuration (timezone, granularity) starts empty; slot
// generation rejects the contractor until it is set.
func (s *DefaultContractorService) Register(ctx context.Context, req models.ContractorRegistrationRequest) (*models.ContractorAuthResponse, error) {
	existing, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	contractor := &models.Contractor{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
	}
	if err := s.Repo.Create(ctx, contractor); err != nil {
		return nil, err
	}

	return s.issueToken(ctx, contractor)
}

// Authenticate verifies credentials and returns a fresh token.
func (s *DefaultContractorService) Authenticate(ctx context.Context, req models.ContractorAuthRequest) (*models.ContractorAuthResponse, error) {
	contractor, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contractor: %w", err)
	}
	if contractor == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(contractor.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueToken(ctx, contractor)
}

// GetByID fetches a contractor profile, serving repeated reads from the
// cache.
func (s *DefaultContractorService) GetByID(ctx context.Context, id string) (*models.Contractor, error) {
	cache := utils.GetCacheClient()
	if cached, err := cache.Get(ctx, profileCacheKey+id).Result(); err == nil {
		var contractor models.Contractor
		if err := json.Unmarshal([]byte(cached), &contractor); err == nil {
			return &contractor, nil
		}
	}

	contractor, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contractor == nil {
		return nil, ErrNotFound
	}

	if payload, err := json.Marshal(contractor); err == nil {
		if err := cache.Set(ctx, profileCacheKey+id, payload, profileCacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("failed to cache contractor profile", zap.String("id", id), zap.Error(err))
		}
	}
	return contractor, nil
}

// UpdateProfile applies schedule configuration changes. The timezone is
// validated against the IANA database here, at the point it is set, so slot
// generation never sees an unresolvable zone.
func (s *DefaultContractorService) UpdateProfile(ctx context.Context, contractorID string, req models.UpdateProfileRequest) (*models.Contractor, error) {
	contractor, err := s.Repo.GetByID(ctx, contractorID)
	if err != nil {
		return nil, err
	}
	if contractor == nil {
		return nil, ErrNotFound
	}

	if req.Timezone != "" {
		if !availability.IsValidZone(req.Timezone) {
			return nil, ValidationError{Reason: fmt.Sprintf("unresolvable timezone %q", req.Timezone)}
		}
		contractor.Timezone = req.Timezone
	}
	if req.GranularityMinutes != 0 {
		if !availability.ValidGranularities[req.GranularityMinutes] {
			return nil, ValidationError{Reason: fmt.Sprintf("granularity must be 15, 30 or 60 minutes; got %d", req.GranularityMinutes)}
		}
		contractor.GranularityMinutes = req.GranularityMinutes
	}
	if req.Name != "" {
		contractor.Name = req.Name
	}

	if err := s.Repo.Update(ctx, contractor); err != nil {
		return nil, err
	}
	s.invalidateProfileCache(ctx, contractorID)
	return contractor, nil
}

// issueToken signs a JWT for the contractor and stores its hash for
// server-side revocation checks.
func (s *DefaultContractorService) issueToken(ctx context.Context, contractor *models.Contractor) (*models.ContractorAuthResponse, error) {
	token, err := utils.GenerateToken(contractor.ID, contractor.Email, tokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	contractor.TokenHash = utils.HashToken(token)
	if err := s.Repo.Update(ctx, contractor); err != nil {
		return nil, fmt.Errorf("failed to persist token hash: %w", err)
	}
	s.invalidateProfileCache(ctx, contractor.ID)

	return &models.ContractorAuthResponse{Contractor: contractor, Token: token}, nil
}

func (s *DefaultContractorService) invalidateProfileCache(ctx context.Context, contractorID string) {
	if err := utils.GetCacheClient().Del(ctx, profileCacheKey+contractorID).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate contractor profile cache",
			zap.String("id", contractorID), zap.Error(err))
	}
}
