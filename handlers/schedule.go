package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"reparaya/models"
	"reparaya/utils"
)

func (h *AvailabilityHandler) CreateWeeklyRuleHandler(c *gin.Context) {
	logger := utils.GetLogger()

	contractorID, ok := contractorIDFromContext(c)
	if !ok {
		return
	}

	var req models.CreateWeeklyRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid weekly rule request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	rule, err := h.Service.CreateWeeklyRule(c.Request.Context(), contractorID, req)
	if err != nil {
		respondAvailabilityError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rule)
}

func (h *AvailabilityHandler) UpdateWeeklyRuleHandler(c *gin.Context) {
	contractorID, ok := contractorIDFromContext(c)
	if !ok {
		return
	}

	ruleID := c.Param("ruleID")
	if ruleID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing rule ID in path"})
		return
	}

	var req models.UpdateWeeklyRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	rule, err := h.Service.UpdateWeeklyRule(c.Request.Context(), contractorID, ruleID, req)
	if err != nil {
		respondAvailabilityError(c, err)
		return
	}

	c.JSON(http.StatusOK, rule)
}

func (h *AvailabilityHandler) DeleteWeeklyRuleHandler(c *gin.Context) {
	contractorID, ok := contractorIDFromContext(c)
	if !ok {
		return
	}

	ruleID := c.Param("ruleID")
	if ruleID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing rule ID in path"})
		return
	}

	if err := h.Service.DeleteWeeklyRule(c.Request.Context(), contractorID, ruleID); err != nil {
		respondAvailabilityError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Weekly rule deleted successfully"})
}

func (h *AvailabilityHandler) CreateExceptionHandler(c *gin.Context) {
	logger := utils.GetLogger()

	contractorID, ok := contractorIDFromContext(c)
	if !ok {
		return
	}

	var req models.CreateExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid exception request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	exception, err := h.Service.CreateException(c.Request.Context(), contractorID, req)
	if err != nil {
		respondAvailabilityError(c, err)
		return
	}

	c.JSON(http.StatusCreated, exception)
}

func (h *AvailabilityHandler) DeleteExceptionHandler(c *gin.Context) {
	contractorID, ok := contractorIDFromContext(c)
	if !ok {
		return
	}

	exceptionID := c.Param("exceptionID")
	if exceptionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing exception ID in path"})
		return
	}

	if err := h.Service.DeleteException(c.Request.Context(), contractorID, exceptionID); err != nil {
		respondAvailabilityError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Exception deleted successfully"})
}

func (h *AvailabilityHandler) CreateBlockoutHandler(c *gin.Context) {
	logger := utils.GetLogger()

	contractorID, ok := contractorIDFromContext(c)
	if !ok {
		return
	}

	var req models.CreateBlockoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid blockout request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	blockout, err := h.Service.CreateBlockout(c.Request.Context(), contractorID, req)
	if err != nil {
		respondAvailabilityError(c, err)
		return
	}

	c.JSON(http.StatusCreated, blockout)
}

func (h *AvailabilityHandler) DeleteBlockoutHandler(c *gin.Context) {
	contractorID, ok := contractorIDFromContext(c)
	if !ok {
		return
	}

	blockoutID := c.Param("blockoutID")
	if blockoutID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing blockout ID in path"})
		return
	}

	if err := h.Service.DeleteBlockout(c.Request.Context(), contractorID, blockoutID); err != nil {
		respondAvailabilityError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Blockout deleted successfully"})
}
