package models

import "time"

// Contractor is a service professional's account and schedule configuration.
// Timezone is an IANA zone name validated when it is set; GranularityMinutes
// is the slot length (15, 30 or 60) used when generating bookable slots.
type Contractor struct {
	ID                 string    `bson:"id" json:"id"`
	Email              string    `bson:"email" json:"email"`
	PasswordHash       string    `bson:"password_hash" json:"-"`
	Name               string    `bson:"name" json:"name"`
	Timezone           string    `bson:"timezone" json:"timezone"`
	GranularityMinutes int       `bson:"granularity_minutes" json:"granularityMinutes"`
	TokenHash          string    `bson:"token_hash" json:"-"`
	CreatedAt          time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time `bson:"updated_at" json:"updatedAt"`
}

// ContractorRegistrationRequest is the payload for creating a contractor account.
type ContractorRegistrationRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

// ContractorAuthRequest is the login payload.
type ContractorAuthRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ContractorAuthResponse carries the signed token back to the caller.
type ContractorAuthResponse struct {
	Contractor *Contractor `json:"contractor"`
	Token      string      `json:"token"`
}

// UpdateProfileRequest updates schedule configuration. Zero values mean "leave unchanged".
type UpdateProfileRequest struct {
	Name               string `json:"name"`
	Timezone           string `json:"timezone"`
	GranularityMinutes int    `json:"granularityMinutes"`
}
