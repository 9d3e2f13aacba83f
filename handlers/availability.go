package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	availabilitySvc "reparaya/services/availability"
	"reparaya/utils"
)

// AvailabilityHandler exposes slot generation and schedule management
// endpoints.
type AvailabilityHandler struct {
	Service availabilitySvc.AvailabilityService
}

func NewAvailabilityHandler(svc availabilitySvc.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

// GetSlotsHandler returns the bookable slots for a contractor over a date
// range. Query parameters: start and end (YYYY-MM-DD, inclusive, contractor
// local dates) and an optional serviceDuration in minutes.
func (h *AvailabilityHandler) GetSlotsHandler(c *gin.Context) {
	logger := utils.GetLogger()

	contractorID := c.Param("id")
	if contractorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing contractor ID in path"})
		return
	}

	startDate := c.Query("start")
	endDate := c.Query("end")
	if startDate == "" || endDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing start or end query parameter"})
		return
	}

	serviceDuration := 0
	if raw := c.Query("serviceDuration"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "serviceDuration must be an integer number of minutes"})
			return
		}
		serviceDuration = parsed
	}

	resp, err := h.Service.GenerateSlots(c.Request.Context(), contractorID, startDate, endDate, serviceDuration)
	if err != nil {
		logger.Debug("Slot generation rejected",
			zap.String("contractorID", contractorID),
			zap.String("start", startDate),
			zap.String("end", endDate),
			zap.Error(err))
		respondAvailabilityError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetScheduleHandler returns a contractor's full schedule definition: weekly
// rules, exceptions and upcoming blockouts.
func (h *AvailabilityHandler) GetScheduleHandler(c *gin.Context) {
	contractorID := c.Param("id")
	if contractorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing contractor ID in path"})
		return
	}

	view, err := h.Service.GetSchedule(c.Request.Context(), contractorID)
	if err != nil {
		respondAvailabilityError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}
