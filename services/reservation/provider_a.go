package reservation

import (
	"context"
	"fmt"

	"fairway/models"
)

// ProviderAAdapter speaks the token-bearer REST protocol of the "providerA"
// tee-sheet system: a single authenticated POST returning a booking id.
type ProviderAAdapter struct{}

func (a *ProviderAAdapter) Kind() string { return models.ProviderKindA }

type providerABookingRequest struct {
	CourseID     string `json:"course_id"`
	Date         string `json:"date"`
	TeeTime      string `json:"tee_time"`
	Players      int    `json:"players"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Notes        string `json:"notes,omitempty"`
}

type providerABookingResponse struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

func (a *ProviderAAdapter) MakeBooking(ctx context.Context, cfg models.ProviderConfig, req models.ReservationRequest) models.ReservationResponse {
	payload := providerABookingRequest{
		CourseID:     req.GolfCourseID,
		Date:         req.Date,
		TeeTime:      req.Time,
		Players:      req.Players,
		ContactName:  req.Contact.Name,
		ContactEmail: req.Contact.Email,
		ContactPhone: req.Contact.Phone,
		Notes:        req.SpecialRequests,
	}
	headers := map[string]string{"Authorization": "Bearer " + cfg.APIToken}

	var out providerABookingResponse
	status, err := postJSON(ctx, cfg.BaseURL+"/api/v1/bookings", headers, payload, &out)
	if err != nil {
		return models.ReservationResponse{Success: false, Error: err.Error()}
	}
	if status < 200 || status >= 300 {
		msg := out.Message
		if msg == "" {
			msg = fmt.Sprintf("provider returned status %d", status)
		}
		return models.ReservationResponse{Success: false, Error: msg}
	}
	if out.BookingID == "" {
		return models.ReservationResponse{Success: false, Error: "provider returned no booking id"}
	}
	return models.ReservationResponse{Success: true, ProviderBookingID: out.BookingID}
}
