package reservation

import (
	"context"
	"fmt"

	"fairway/models"
)

// ProviderCAdapter speaks the two-step protocol of the "providerC" tee-sheet
// system: exchange the key/secret pair for a short-lived access token, then
// reserve with it. Both steps run under the one call deadline.
type ProviderCAdapter struct{}

func (a *ProviderCAdapter) Kind() string { return models.ProviderKindC }

type providerCTokenRequest struct {
	Key    string `json:"key"`
	Secret string `json:"secret"`
}

type providerCTokenResponse struct {
	AccessToken string `json:"access_token"`
	Reason      string `json:"reason"`
}

type providerCReserveRequest struct {
	Course  string `json:"course"`
	Date    string `json:"date"`
	Slot    string `json:"slot"`
	Golfers int    `json:"golfers"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Notes   string `json:"notes,omitempty"`
}

type providerCReserveResponse struct {
	Result             string `json:"result"` // "OK" or "ERROR"
	ConfirmationNumber string `json:"confirmation_number"`
	Reason             string `json:"reason"`
}

func (a *ProviderCAdapter) MakeBooking(ctx context.Context, cfg models.ProviderConfig, req models.ReservationRequest) models.ReservationResponse {
	var tok providerCTokenResponse
	status, err := postJSON(ctx, cfg.BaseURL+"/auth/token", nil, providerCTokenRequest{Key: cfg.APIKey, Secret: cfg.APISecret}, &tok)
	if err != nil {
		return models.ReservationResponse{Success: false, Error: err.Error()}
	}
	if status < 200 || status >= 300 || tok.AccessToken == "" {
		msg := tok.Reason
		if msg == "" {
			msg = fmt.Sprintf("provider auth returned status %d", status)
		}
		return models.ReservationResponse{Success: false, Error: msg}
	}

	payload := providerCReserveRequest{
		Course:  req.GolfCourseID,
		Date:    req.Date,
		Slot:    req.Time,
		Golfers: req.Players,
		Name:    req.Contact.Name,
		Email:   req.Contact.Email,
		Phone:   req.Contact.Phone,
		Notes:   req.SpecialRequests,
	}
	headers := map[string]string{"Authorization": "Bearer " + tok.AccessToken}

	var out providerCReserveResponse
	status, err = postJSON(ctx, cfg.BaseURL+"/teesheet/reserve", headers, payload, &out)
	if err != nil {
		return models.ReservationResponse{Success: false, Error: err.Error()}
	}
	if status < 200 || status >= 300 || out.Result != "OK" {
		msg := out.Reason
		if msg == "" {
			msg = fmt.Sprintf("provider returned status %d", status)
		}
		return models.ReservationResponse{Success: false, Error: msg}
	}
	if out.ConfirmationNumber == "" {
		return models.ReservationResponse{Success: false, Error: "provider returned no confirmation number"}
	}
	return models.ReservationResponse{Success: true, ProviderBookingID: out.ConfirmationNumber}
}
