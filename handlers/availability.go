package handlers

import (
	"net/http"
	"time"

	"coachly/models"
	"coachly/services/availability"
	"coachly/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler exposes coach availability management.
type AvailabilityHandler struct {
	Service availability.AvailabilityService
}

func NewAvailabilityHandler(svc availability.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

func (h *AvailabilityHandler) PublishSlotHandler(c *gin.Context) {
	coachID := c.GetString("subjectID")
	if coachID == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Coach not authenticated", "")
		return
	}

	var req models.CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	slot, err := h.Service.PublishSlot(c.Request.Context(), coachID, req)
	if err != nil {
		utils.JSONError(c, http.StatusUnprocessableEntity, "Failed to publish slot", err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"slot": slot})
}

func (h *AvailabilityHandler) ListDayHandler(c *gin.Context) {
	coachID := c.Query("coachId")
	if coachID == "" {
		coachID = c.GetString("subjectID")
	}
	if coachID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing coachId", "")
		return
	}

	day, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing or invalid date", "expected YYYY-MM-DD")
		return
	}

	occurrences, err := h.Service.ListDay(c.Request.Context(), coachID, day.UTC())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch availability", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"availability": occurrences})
}

func (h *AvailabilityHandler) RemoveSlotHandler(c *gin.Context) {
	coachID := c.GetString("subjectID")
	if coachID == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Coach not authenticated", "")
		return
	}

	slotID := c.Param("slotID")
	if err := h.Service.RemoveSlot(c.Request.Context(), coachID, slotID); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Failed to remove slot", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Slot removed"})
}
