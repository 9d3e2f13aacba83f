package handlers

import (
	contractorRepoPkg "reparaya/database/repository/contractor"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	ContractorRepo contractorRepoPkg.ContractorRepository

	// Contractor account endpoints
	RegisterContractorHandler     gin.HandlerFunc
	AuthenticateContractorHandler gin.HandlerFunc
	GetContractorHandler          gin.HandlerFunc
	UpdateProfileHandler          gin.HandlerFunc

	// Availability read endpoints
	GetSlotsHandler    gin.HandlerFunc
	GetScheduleHandler gin.HandlerFunc

	// Schedule management endpoints
	CreateWeeklyRuleHandler gin.HandlerFunc
	UpdateWeeklyRuleHandler gin.HandlerFunc
	DeleteWeeklyRuleHandler gin.HandlerFunc
	CreateExceptionHandler  gin.HandlerFunc
	DeleteExceptionHandler  gin.HandlerFunc
	CreateBlockoutHandler   gin.HandlerFunc
	DeleteBlockoutHandler   gin.HandlerFunc
}
