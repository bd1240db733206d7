package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "fairway/database/repository/booking"
	courseRepo "fairway/database/repository/course"
	userRepo "fairway/database/repository/user"
	validationRepo "fairway/database/repository/validation"
	"fairway/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// ValidateBooking records the staff decision for a booking and drives the
// resulting state transition. The validation record is written before the
// booking so a later failure always leaves the decision recoverable. For a
// confirm, the external reservation is attempted after a conditional claim of
// the booking; a provider failure compensates both records back to the
// checking pair and is reported as a ReservationFailureError, not a system
// error.
func (s *DefaultValidationService) ValidateBooking(ctx context.Context, bookingID string, staff models.StaffIdentity, input ValidationInput) (*models.BookingRequest, error) {
	logger := s.Logger.With(
		zap.String("booking_id", bookingID),
		zap.String("staff_id", staff.ID),
		zap.String("action", input.Action),
	)

	if staff.ID == "" || !staff.Active {
		return nil, &AuthorizationError{Message: "caller is not an active staff member"}
	}

	transition, ok := TransitionFor(input.Action)
	if !ok {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown action %q", input.Action)}
	}

	booking, err := s.Bookings.GetByID(bookingID)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, &NotFoundError{Resource: "booking", ID: bookingID}
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load booking", Err: err}
	}

	now := time.Now()

	if input.Action == ActionConfirm {
		// Re-confirming an already-confirmed booking must not re-invoke the
		// provider and must not rewrite the decision record.
		if booking.Status == models.BookingStatusConfirmed && booking.ProviderBookingID != "" {
			logger.Info("booking already confirmed with provider, skipping reservation call",
				zap.String("provider_booking_id", booking.ProviderBookingID))
			return booking, nil
		}
		// A cancelled or payment-confirmed booking can never be claimed, so the
		// decision record must not be written either; the record and the booking
		// mirror each other.
		if !claimableForConfirm(booking) {
			return nil, &ValidationError{Message: fmt.Sprintf("booking is %s and cannot be confirmed", booking.Status)}
		}
	}

	// Durable staff decision ahead of the booking write.
	decision := bson.M{
		"status":       transition.ValidationStatus,
		"staff_id":     staff.ID,
		"notes":        input.Notes,
		"validated_at": now,
	}
	if input.Action == ActionAlternative {
		decision["alternative_date"] = input.AlternativeDate
		decision["alternative_time"] = input.AlternativeTime
	}
	if err := s.Validations.SetDecision(bookingID, decision); err != nil {
		if errors.Is(err, validationRepo.ErrNotFound) {
			return nil, &NotFoundError{Resource: "validation record for booking", ID: bookingID}
		}
		return nil, &PersistenceError{Op: "write validation record", Err: err}
	}

	if input.Action == ActionConfirm {
		return s.confirmWithProvider(ctx, logger, booking, now)
	}

	fields := bson.M{
		"status":            transition.BookingStatus,
		"validation_status": transition.ValidationStatus,
	}
	if input.Action == ActionReject {
		fields["cancelled_at"] = now
		fields["cancellation_reason"] = input.Notes
	}
	// A failure here is fatal and deliberately not compensated: the staff
	// decision above stays durable and the gap is surfaced by the state audit.
	if err := s.Bookings.UpdateFields(bookingID, fields); err != nil {
		logger.Error("booking write failed after validation write", zap.Error(err))
		return nil, &PersistenceError{Op: "write booking status", Err: err}
	}

	updated := *booking
	updated.Status = transition.BookingStatus
	updated.ValidationStatus = transition.ValidationStatus
	updated.UpdatedAt = now
	if input.Action == ActionReject {
		updated.CancelledAt = &now
		updated.CancellationReason = input.Notes
	}

	logger.Info("booking validated")
	s.notifyRequester(ctx, logger, &updated, input)
	return &updated, nil
}

// claimableForConfirm mirrors the ClaimForConfirm filter: a booking is
// claimable while still pending, undecided and without a provider booking id.
func claimableForConfirm(b *models.BookingRequest) bool {
	if b.Status != models.BookingStatusPending || b.ProviderBookingID != "" {
		return false
	}
	switch b.ValidationStatus {
	case models.ValidationStatusPending, models.ValidationStatusChecking, models.ValidationStatusAlternative:
		return true
	}
	return false
}

// confirmWithProvider claims the booking for confirmation, secures the
// external reservation and finalizes or compensates.
func (s *DefaultValidationService) confirmWithProvider(ctx context.Context, logger *zap.Logger, booking *models.BookingRequest, now time.Time) (*models.BookingRequest, error) {
	// Conditional claim: the provider call cannot share a transaction with the
	// local writes, so only the caller that wins this transition gets to make it.
	claimed, err := s.Bookings.ClaimForConfirm(booking.ID, bson.M{
		"status":            models.BookingStatusConfirmed,
		"validation_status": models.ValidationStatusConfirmed,
		"confirmed_at":      now,
	})
	if err != nil {
		return nil, &PersistenceError{Op: "claim booking for confirm", Err: err}
	}
	if !claimed {
		current, err := s.Bookings.GetByID(booking.ID)
		if err != nil {
			return nil, &PersistenceError{Op: "reload booking after failed claim", Err: err}
		}
		if current.Status == models.BookingStatusConfirmed {
			logger.Info("booking confirmed by a concurrent request, skipping reservation call")
			return current, nil
		}
		// Another actor moved the booking elsewhere between the claimability
		// check and the claim. The decision record already reads confirmed, so
		// restore the mirror before reporting the denial.
		if err := s.Validations.SetDecision(booking.ID, bson.M{"status": current.ValidationStatus}); err != nil {
			return nil, &PersistenceError{Op: "restore validation record after denied claim", Err: err}
		}
		return nil, &ValidationError{Message: fmt.Sprintf("booking is %s and cannot be confirmed", current.Status)}
	}

	course, user, err := s.loadReservationInputs(booking)
	if err != nil {
		// The reservation cannot even be attempted; roll back to checking so
		// staff can retry once the data issue is fixed.
		reason := err.Error()
		if compErr := s.compensateReservationFailure(logger, booking.ID, reason); compErr != nil {
			return nil, compErr
		}
		return nil, &ReservationFailureError{Reason: reason}
	}

	resp := s.Reservations.MakeBooking(ctx, course.Provider, models.ReservationRequest{
		GolfCourseID:    booking.CourseID,
		Date:            booking.Date,
		Time:            booking.StartTime,
		Players:         booking.Players,
		Contact:         user.Contact(),
		SpecialRequests: booking.SpecialRequests,
	})

	if !resp.Success {
		if compErr := s.compensateReservationFailure(logger, booking.ID, resp.Error); compErr != nil {
			return nil, compErr
		}
		reverted := *booking
		reverted.Status = models.BookingStatusPending
		reverted.ValidationStatus = models.ValidationStatusChecking
		s.notifyRequester(ctx, logger, &reverted, ValidationInput{Action: ActionChecking})
		return nil, &ReservationFailureError{Reason: resp.Error}
	}

	if err := s.Bookings.UpdateFields(booking.ID, bson.M{"provider_booking_id": resp.ProviderBookingID}); err != nil {
		logger.Error("failed to persist provider booking id after successful reservation",
			zap.String("provider_booking_id", resp.ProviderBookingID), zap.Error(err))
		return nil, &PersistenceError{Op: "persist provider booking id", Err: err}
	}

	updated := *booking
	updated.Status = models.BookingStatusConfirmed
	updated.ValidationStatus = models.ValidationStatusConfirmed
	updated.ProviderBookingID = resp.ProviderBookingID
	updated.ConfirmedAt = &now
	updated.UpdatedAt = now

	logger.Info("booking confirmed", zap.String("provider_booking_id", resp.ProviderBookingID))
	s.notifyRequester(ctx, logger, &updated, ValidationInput{Action: ActionConfirm})
	return &updated, nil
}

// loadReservationInputs fetches the provider config and the requester contact
// needed for the external call.
func (s *DefaultValidationService) loadReservationInputs(booking *models.BookingRequest) (*models.GolfCourse, *models.User, error) {
	course, err := s.Courses.GetByID(booking.CourseID)
	if errors.Is(err, courseRepo.ErrNotFound) {
		return nil, nil, fmt.Errorf("golf course %s not found", booking.CourseID)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("could not load golf course %s: %v", booking.CourseID, err)
	}
	user, err := s.Users.GetByID(booking.UserID)
	if errors.Is(err, userRepo.ErrNotFound) {
		return nil, nil, fmt.Errorf("requester %s not found", booking.UserID)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("could not load requester %s: %v", booking.UserID, err)
	}
	return course, user, nil
}

// compensateReservationFailure rewrites both records back to the checking
// pair after a failed reservation. Current state is re-read first: a booking
// confirmed with a provider id by the other path is sticky and never clobbered.
func (s *DefaultValidationService) compensateReservationFailure(logger *zap.Logger, bookingID, providerErr string) error {
	current, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return &PersistenceError{Op: "reload booking before compensation", Err: err}
	}
	if current.ProviderBookingID != "" {
		logger.Warn("skipping compensation, booking already holds a provider booking id",
			zap.String("provider_booking_id", current.ProviderBookingID))
		return nil
	}

	now := time.Now()
	notes := fmt.Sprintf("Reservation attempt failed: %s", providerErr)
	if err := s.Validations.SetDecision(bookingID, bson.M{
		"status":       compensationTarget.ValidationStatus,
		"notes":        notes,
		"validated_at": now,
	}); err != nil {
		return &PersistenceError{Op: "compensate validation record", Err: err}
	}
	if err := s.Bookings.UpdateFields(bookingID, bson.M{
		"status":            compensationTarget.BookingStatus,
		"validation_status": compensationTarget.ValidationStatus,
		"confirmed_at":      nil,
	}); err != nil {
		return &PersistenceError{Op: "compensate booking", Err: err}
	}

	logger.Warn("reservation failed, booking compensated to checking",
		zap.String("provider_error", providerErr))
	return nil
}

// notifyRequester sends a best-effort push about the decision. Failures are
// logged and never surfaced.
func (s *DefaultValidationService) notifyRequester(ctx context.Context, logger *zap.Logger, booking *models.BookingRequest, input ValidationInput) {
	if s.Notifier == nil {
		return
	}
	var title, body string
	switch input.Action {
	case ActionConfirm:
		title = "Booking confirmed"
		body = fmt.Sprintf("Your lesson on %s at %s is confirmed.", booking.Date, booking.StartTime)
	case ActionReject:
		title = "Booking cancelled"
		body = "Unfortunately your booking request could not be accommodated."
	case ActionAlternative:
		title = "Alternative time proposed"
		body = fmt.Sprintf("We proposed %s at %s for your lesson.", input.AlternativeDate, input.AlternativeTime)
	case ActionChecking:
		title = "Checking availability"
		body = "We are checking availability for your requested time."
	default:
		return
	}
	data := map[string]string{
		"booking_id": booking.ID,
		"status":     booking.Status,
		"type":       "booking_update",
	}
	if err := s.Notifier.SendUserPushNotification(ctx, booking.UserID, title, body, data); err != nil {
		logger.Warn("failed to send booking notification", zap.Error(err))
	}
}
