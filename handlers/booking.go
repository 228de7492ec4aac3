package handlers

import (
	"net/http"

	"coachly/models"
	"coachly/services/workflow"
	"coachly/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the booking lifecycle endpoints.
type BookingHandler struct {
	Workflow workflow.BookingWorkflow
}

func NewBookingHandler(wf workflow.BookingWorkflow) *BookingHandler {
	return &BookingHandler{Workflow: wf}
}

func (h *BookingHandler) RequestBookingHandler(c *gin.Context) {
	clientID := c.GetString("subjectID")
	if clientID == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Client not authenticated", "")
		return
	}

	var payload models.RequestBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	booking, err := h.Workflow.RequestBooking(c.Request.Context(), clientID, payload)
	if err != nil {
		utils.JSONError(c, http.StatusConflict, "Booking failed", err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	bookingID := c.Param("bookingID")

	booking, err := h.Workflow.CancelBooking(c.Request.Context(), bookingID)
	if err != nil {
		utils.JSONError(c, http.StatusConflict, "Cancellation failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

func (h *BookingHandler) RescheduleBookingHandler(c *gin.Context) {
	bookingID := c.Param("bookingID")

	var payload models.ReschedulePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	booking, err := h.Workflow.RescheduleBooking(c.Request.Context(), bookingID, payload.Start, payload.End)
	if err != nil {
		utils.JSONError(c, http.StatusConflict, "Reschedule failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}
