package handlers

import (
	"errors"
	"net/http"

	"fairway/middleware"
	"fairway/models"
	"fairway/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingValidationHandler exposes the staff validation endpoint.
type BookingValidationHandler struct {
	Service booking.ValidationService
	Logger  *zap.Logger
}

func NewBookingValidationHandler(svc booking.ValidationService, logger *zap.Logger) *BookingValidationHandler {
	return &BookingValidationHandler{Service: svc, Logger: logger}
}

// ValidateBooking handles POST /api/bookings/:id/validate.
//
// An expected provider failure is a 200 with success=false: the booking was
// compensated back to checking and staff can act on it. Only storage failures
// surface as 5xx.
func (h *BookingValidationHandler) ValidateBooking(c *gin.Context) {
	bookingID := c.Param("id")

	var input booking.ValidationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid input", "details": err.Error()})
		return
	}

	staffVal, exists := c.Get(middleware.StaffKey)
	staff, ok := staffVal.(*models.StaffIdentity)
	if !exists || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "no staff session"})
		return
	}

	result, err := h.Service.ValidateBooking(c.Request.Context(), bookingID, *staff, input)
	if err != nil {
		var (
			validationErr  *booking.ValidationError
			authErr        *booking.AuthorizationError
			notFoundErr    *booking.NotFoundError
			reservationErr *booking.ReservationFailureError
		)
		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validationErr.Message})
		case errors.As(err, &authErr):
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": authErr.Message})
		case errors.As(err, &notFoundErr):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": notFoundErr.Error()})
		case errors.As(err, &reservationErr):
			c.JSON(http.StatusOK, gin.H{"success": false, "error": reservationErr.Reason})
		default:
			h.Logger.Error("booking validation failed",
				zap.String("booking_id", bookingID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "booking": result})
}
