package models

import "time"

// Booking status values.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Validation status values mirrored onto the booking document.
const (
	ValidationStatusPending      = "pending"
	ValidationStatusChecking     = "checking_availability"
	ValidationStatusAlternative  = "alternative_proposed"
	ValidationStatusRejected     = "rejected"
	ValidationStatusConfirmed    = "confirmed"
	ValidationStatusAutoApproved = "auto_approved"
)

// Payment status values.
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
	PaymentStatusFailed = "failed"
)

// BookingRequest is the canonical booking record for a lesson slot at a golf course.
type BookingRequest struct {
	ID                 string     `bson:"id" json:"id"`
	UserID             string     `bson:"user_id" json:"user_id"`
	CourseID           string     `bson:"course_id" json:"course_id"`
	Date               string     `bson:"date" json:"date"` // "YYYY-MM-DD"
	StartTime          string     `bson:"start_time" json:"start_time"` // "HH:MM"
	Players            int        `bson:"players" json:"players"`
	SpecialRequests    string     `bson:"special_requests,omitempty" json:"special_requests,omitempty"`
	Status             string     `bson:"status" json:"status"`
	ValidationStatus   string     `bson:"validation_status" json:"validation_status"`
	PaymentStatus      string     `bson:"payment_status" json:"payment_status"`
	PaymentRef         string     `bson:"payment_ref,omitempty" json:"payment_ref,omitempty"`
	ProviderBookingID  string     `bson:"provider_booking_id,omitempty" json:"provider_booking_id,omitempty"`
	ConfirmedAt        *time.Time `bson:"confirmed_at,omitempty" json:"confirmed_at,omitempty"`
	CancelledAt        *time.Time `bson:"cancelled_at,omitempty" json:"cancelled_at,omitempty"`
	CancellationReason string     `bson:"cancellation_reason,omitempty" json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `bson:"updated_at" json:"updated_at"`
}

// validStatusPairs enumerates every (validation_status, status) combination a
// booking may legally hold: the four staff-action outcomes, the initial pending
// state, and the auto-approved state written by the payment path.
var validStatusPairs = map[string]string{
	ValidationStatusPending:      BookingStatusPending,
	ValidationStatusChecking:     BookingStatusPending,
	ValidationStatusAlternative:  BookingStatusPending,
	ValidationStatusRejected:     BookingStatusCancelled,
	ValidationStatusConfirmed:    BookingStatusConfirmed,
	ValidationStatusAutoApproved: BookingStatusConfirmed,
}

// ValidStatusPair reports whether a (validation_status, status) combination is legal.
func ValidStatusPair(validationStatus, bookingStatus string) bool {
	want, ok := validStatusPairs[validationStatus]
	return ok && want == bookingStatus
}
