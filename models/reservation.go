package models

// ContactInfo is the requester contact data forwarded to the course's system.
type ContactInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ReservationRequest is the canonical, provider-independent reservation payload.
// Transient; never persisted.
type ReservationRequest struct {
	GolfCourseID    string      `json:"golf_course_id"`
	Date            string      `json:"date"`
	Time            string      `json:"time"`
	Players         int         `json:"players"`
	Contact         ContactInfo `json:"contact"`
	SpecialRequests string      `json:"special_requests,omitempty"`
}

// ReservationResponse is the normalized outcome of a provider call.
// Adapters never let a transport or provider error escape; everything is
// folded into Success=false with a reason.
type ReservationResponse struct {
	Success           bool   `json:"success"`
	ProviderBookingID string `json:"provider_booking_id,omitempty"`
	Error             string `json:"error,omitempty"`
}
