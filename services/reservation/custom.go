package reservation

import (
	"context"
	"fmt"

	"fairway/models"
)

// CustomAdapter posts the canonical reservation payload to a course-supplied
// endpoint. Used by courses running their own booking software; extra headers
// (auth schemes vary) come from the provider config.
type CustomAdapter struct{}

func (a *CustomAdapter) Kind() string { return models.ProviderKindCustom }

type customBookingResponse struct {
	Success   bool   `json:"success"`
	BookingID string `json:"booking_id"`
	Error     string `json:"error"`
}

func (a *CustomAdapter) MakeBooking(ctx context.Context, cfg models.ProviderConfig, req models.ReservationRequest) models.ReservationResponse {
	var out customBookingResponse
	status, err := postJSON(ctx, cfg.BaseURL, cfg.Headers, req, &out)
	if err != nil {
		return models.ReservationResponse{Success: false, Error: err.Error()}
	}
	if status < 200 || status >= 300 || !out.Success {
		msg := out.Error
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
