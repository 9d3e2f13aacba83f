package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"reparaya/services/availability"
	"reparaya/utils"
)

// respondAvailabilityError translates the availability service's typed
// errors to HTTP statuses. Unknown errors are logged and hidden behind a
// generic 500.
func respondAvailabilityError(c *gin.Context, err error) {
	var (
		validationErr availability.ValidationError
		ownershipErr  availability.OwnershipError
		notFoundErr   availability.NotFoundError
		conflictErr   availability.ConflictError
		configErr     availability.ConfigError
	)
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &ownershipErr):
		c.JSON(http.StatusForbidden, gin.H{"error": ownershipErr.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{"error": conflictErr.Error()})
	case errors.As(err, &configErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": configErr.Error()})
	default:
		utils.GetLogger().Error("Unhandled availability service error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// contractorIDFromContext retrieves the authenticated contractor ID placed by
// the auth middleware. Aborts with 401 when missing.
func contractorIDFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get("contractorID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Contractor not authenticated"})
		return "", false
	}
	contractorID, ok := value.(string)
	if !ok || contractorID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid contractor ID in context"})
		return "", false
	}
	return contractorID, true
}
