package reservation

import (
	"context"
	"fmt"

	"fairway/models"
)

// ProviderBAdapter speaks the API-key REST protocol of the "providerB"
// reservation system. Authentication is a static key header; the response
// carries an explicit success flag.
type ProviderBAdapter struct{}

func (a *ProviderBAdapter) Kind() string { return models.ProviderKindB }

type providerBCustomer struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type providerBReservationRequest struct {
	FacilityID string            `json:"facility_id"`
	Date       string            `json:"date"`
	TeeTime    string            `json:"tee_time"`
	PartySize  int               `json:"party_size"`
	Customer   providerBCustomer `json:"customer"`
	Remarks    string            `json:"remarks,omitempty"`
}

type providerBReservationResponse struct {
	Success     bool `json:"success"`
	Reservation struct {
		ID string `json:"id"`
	} `json:"reservation"`
	Error string `json:"error"`
}

func (a *ProviderBAdapter) MakeBooking(ctx context.Context, cfg models.ProviderConfig, req models.ReservationRequest) models.ReservationResponse {
	payload := providerBReservationRequest{
		FacilityID: req.GolfCourseID,
		Date:       req.Date,
		TeeTime:    req.Time,
		PartySize:  req.Players,
		Customer: providerBCustomer{
			FullName: req.Contact.Name,
			Email:    req.Contact.Email,
			Phone:    req.Contact.Phone,
		},
		Remarks: req.SpecialRequests,
	}
	headers := map[string]string{"X-API-Key": cfg.APIKey}

	var out providerBReservationResponse
	status, err := postJSON(ctx, cfg.BaseURL+"/v2/reservations", headers, payload, &out)
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
	if out.Reservation.ID == "" {
		return models.ReservationResponse{Success: false, Error: "provider returned no reservation id"}
	}
	return models.ReservationResponse{Success: true, ProviderBookingID: out.Reservation.ID}
}
