package reservation

import (
	"context"

	"fairway/models"
)

// ProviderAdapter translates the canonical reservation request into one
// external tee-sheet system's wire format and normalizes the response.
//
// Contract: an adapter never panics and never returns a Go error. Transport
// failures, timeouts and provider-side rejections are all folded into
// ReservationResponse{Success: false, Error: ...}. Adapters do not retry;
// retry and compensation policy belongs to the orchestrator.
type ProviderAdapter interface {
	Kind() string
	MakeBooking(ctx context.Context, cfg models.ProviderConfig, req models.ReservationRequest) models.ReservationResponse
}
