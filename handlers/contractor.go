package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"reparaya/models"
	contractorSvc "reparaya/services/contractor"
	"reparaya/utils"
)

// ContractorHandler exposes contractor account endpoints.
type ContractorHandler struct {
	Service contractorSvc.ContractorService
}

func NewContractorHandler(svc contractorSvc.ContractorService) *ContractorHandler {
	return &ContractorHandler{Service: svc}
}

func (h *ContractorHandler) RegisterContractorHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.ContractorRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid contractor registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	resp, err := h.Service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, contractorSvc.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to register contractor", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register contractor"})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ContractorHandler) AuthenticateContractorHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.ContractorAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	resp, err := h.Service.Authenticate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, contractorSvc.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to authenticate contractor", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to authenticate contractor"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetContractorHandler returns a contractor's public profile.
func (h *ContractorHandler) GetContractorHandler(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing contractor ID in path"})
		return
	}

	contractor, err := h.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, contractorSvc.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contractor not found"})
			return
		}
		utils.GetLogger().Error("Failed to fetch contractor", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contractor"})
		return
	}

	c.JSON(http.StatusOK, contractor)
}

// UpdateProfileHandler updates the authenticated contractor's profile,
// including the timezone and slot granularity used by slot generation.
func (h *ContractorHandler) UpdateProfileHandler(c *gin.Context) {
	logger := utils.GetLogger()

	contractorID, ok := contractorIDFromContext(c)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	contractor, err := h.Service.UpdateProfile(c.Request.Context(), contractorID, req)
	if err != nil {
		var validationErr contractorSvc.ValidationError
		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
		case errors.Is(err, contractorSvc.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Contractor not found"})
		default:
			logger.Error("Failed to update contractor profile", zap.String("id", contractorID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update contractor profile"})
		}
		return
	}

	c.JSON(http.StatusOK, contractor)
}
