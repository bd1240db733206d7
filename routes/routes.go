package routes

import (
	staffRepo "fairway/database/repository/staff"
	"fairway/handlers"
	"fairway/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterBookingValidationRoutes registers the staff validation endpoints.
func RegisterBookingValidationRoutes(r *gin.Engine, h *handlers.BookingValidationHandler, staff staffRepo.StaffRepository) {
	api := r.Group("/api/bookings")
	api.Use(middleware.JWTAuthStaffMiddleware(staff))
	{
		api.POST("/:id/validate", h.ValidateBooking)
	}
}

// RegisterPaymentRoutes registers the payment gateway webhook endpoint.
// Authenticated by webhook signature, not a staff session.
func RegisterPaymentRoutes(r *gin.Engine, h *handlers.PaymentWebhookHandler) {
	r.POST("/api/payments/webhook", h.HandleStripeWebhook)
}

// RegisterHealthRoutes registers the health endpoint.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/healthz", handlers.HealthHandler)
}
