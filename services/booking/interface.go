package booking

import (
	"context"

	bookingRepo "fairway/database/repository/booking"
	courseRepo "fairway/database/repository/course"
	userRepo "fairway/database/repository/user"
	validationRepo "fairway/database/repository/validation"
	"fairway/models"
	"fairway/services/notification"

	"go.uber.org/zap"
)

// ValidationInput is the staff decision payload.
type ValidationInput struct {
	Action          string `json:"action" binding:"required"`
	Notes           string `json:"notes"`
	AlternativeDate string `json:"alternative_date"`
	AlternativeTime string `json:"alternative_time"`
}

// ValidationService records a staff decision on a booking and, for a confirm,
// orchestrates the external reservation with compensation on failure.
type ValidationService interface {
	ValidateBooking(ctx context.Context, bookingID string, staff models.StaffIdentity, input ValidationInput) (*models.BookingRequest, error)
}

// ReservationClient is the adapter registry seen from the orchestrator.
type ReservationClient interface {
	MakeBooking(ctx context.Context, cfg models.ProviderConfig, req models.ReservationRequest) models.ReservationResponse
}

// DefaultValidationService implements ValidationService.
type DefaultValidationService struct {
	Bookings     bookingRepo.BookingRepository
	Validations  validationRepo.ValidationRepository
	Courses      courseRepo.CourseRepository
	Users        userRepo.UserRepository
	Reservations ReservationClient
	Notifier     notification.NotificationService
	Logger       *zap.Logger
}
