package reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fairway/models"

	"go.uber.org/zap"
)

type panickyAdapter struct{}

func (a *panickyAdapter) Kind() string { return "panicky" }

func (a *panickyAdapter) MakeBooking(ctx context.Context, cfg models.ProviderConfig, req models.ReservationRequest) models.ReservationResponse {
	panic("adapter bug")
}

func sampleRequest() models.ReservationRequest {
	return models.ReservationRequest{
		GolfCourseID: "course-1",
		Date:         "2024-03-01",
		Time:         "09:00",
		Players:      2,
		Contact:      models.ContactInfo{Name: "Alex Kim", Email: "alex@example.com", Phone: "555-0101"},
	}
}

func TestRegistryUnsupportedKind(t *testing.T) {
	r := NewRegistry(zap.NewNop(), 0)
	resp := r.MakeBooking(context.Background(), models.ProviderConfig{Kind: "fax-machine"}, sampleRequest())
	if resp.Success {
		t.Fatalf("unknown kind must fail")
	}
	if resp.Error != "unsupported provider" {
		t.Fatalf("unexpected error %q", resp.Error)
	}
}

func TestRegistrySimulatedProvider(t *testing.T) {
	r := NewRegistry(zap.NewNop(), 0)
	cfg := models.ProviderConfig{Kind: models.ProviderKindA, Simulate: true}
	resp := r.MakeBooking(context.Background(), cfg, sampleRequest())
	if !resp.Success {
		t.Fatalf("simulated call must succeed, got %q", resp.Error)
	}
	if !strings.HasPrefix(resp.ProviderBookingID, "sim-") {
		t.Fatalf("simulated id must be marked, got %q", resp.ProviderBookingID)
	}
}

func TestRegistrySimulateDoesNotMaskUnknownKind(t *testing.T) {
	r := NewRegistry(zap.NewNop(), 0)
	cfg := models.ProviderConfig{Kind: "fax-machine", Simulate: true}
	resp := r.MakeBooking(context.Background(), cfg, sampleRequest())
	if resp.Success {
		t.Fatalf("unknown kind must fail even in simulation")
	}
	if resp.Error != "unsupported provider" {
		t.Fatalf("unexpected error %q", resp.Error)
	}
}

func TestRegistryNormalizesPanic(t *testing.T) {
	r := NewRegistry(zap.NewNop(), 0)
	r.Register(&panickyAdapter{})
	resp := r.MakeBooking(context.Background(), models.ProviderConfig{Kind: "panicky"}, sampleRequest())
	if resp.Success {
		t.Fatalf("panicking adapter must yield a failed response")
	}
	if !strings.Contains(resp.Error, "adapter bug") {
		t.Fatalf("panic reason missing from error: %q", resp.Error)
	}
}

func TestRegistryTimeoutIsOrdinaryFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(`{"booking_id":"late"}`))
	}))
	defer server.Close()

	r := NewRegistry(zap.NewNop(), 20*time.Millisecond)
	cfg := models.ProviderConfig{Kind: models.ProviderKindA, BaseURL: server.URL, APIToken: "tok"}
	resp := r.MakeBooking(context.Background(), cfg, sampleRequest())
	if resp.Success {
		t.Fatalf("a deadline hit must surface as a failed response")
	}
	if resp.Error == "" {
		t.Fatalf("expected a failure reason")
	}
}
