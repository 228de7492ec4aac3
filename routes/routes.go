package routes

import (
	"coachly/handlers"
	"coachly/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAvailabilityRoutes registers coach availability endpoints.
func RegisterAvailabilityRoutes(r *gin.Engine, h *handlers.AvailabilityHandler) {
	api := r.Group("/api/availability")
	{
		api.GET("/day", h.ListDayHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", h.PublishSlotHandler)
		api.DELETE("/:slotID", h.RemoveSlotHandler)
	}
}

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", h.RequestBookingHandler)
		api.POST("/:bookingID/cancel", h.CancelBookingHandler)
		api.POST("/:bookingID/reschedule", h.RescheduleBookingHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}
