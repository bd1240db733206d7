package reservation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fairway/models"
)

func TestProviderAAdapterSuccess(t *testing.T) {
	var gotAuth string
	var gotBody providerABookingRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/bookings" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(providerABookingResponse{BookingID: "abc123", Status: "confirmed"})
	}))
	defer server.Close()

	adapter := &ProviderAAdapter{}
	cfg := models.ProviderConfig{Kind: models.ProviderKindA, BaseURL: server.URL, APIToken: "tok-1"}
	resp := adapter.MakeBooking(context.Background(), cfg, sampleRequest())

	if !resp.Success || resp.ProviderBookingID != "abc123" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("token not forwarded, got %q", gotAuth)
	}
	if gotBody.TeeTime != "09:00" || gotBody.Players != 2 || gotBody.ContactEmail != "alex@example.com" {
		t.Fatalf("payload not translated: %+v", gotBody)
	}
}

func TestProviderAAdapterProviderRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(providerABookingResponse{Message: "tee sheet full"})
	}))
	defer server.Close()

	adapter := &ProviderAAdapter{}
	cfg := models.ProviderConfig{Kind: models.ProviderKindA, BaseURL: server.URL, APIToken: "tok-1"}
	resp := adapter.MakeBooking(context.Background(), cfg, sampleRequest())

	if resp.Success {
		t.Fatalf("rejection must fail")
	}
	if resp.Error != "tee sheet full" {
		t.Fatalf("provider message not surfaced: %q", resp.Error)
	}
}

func TestProviderAAdapterTransportErrorNormalized(t *testing.T) {
	adapter := &ProviderAAdapter{}
	cfg := models.ProviderConfig{Kind: models.ProviderKindA, BaseURL: "http://127.0.0.1:1", APIToken: "tok-1"}
	resp := adapter.MakeBooking(context.Background(), cfg, sampleRequest())
	if resp.Success {
		t.Fatalf("transport error must fail")
	}
	if resp.Error == "" {
		t.Fatalf("expected a failure reason")
	}
}

func TestProviderBAdapterSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-API-Key"); got != "key-1" {
			t.Errorf("api key not forwarded, got %q", got)
		}
		var out providerBReservationResponse
		out.Success = true
		out.Reservation.ID = "rsv-9"
		json.NewEncoder(w).Encode(out)
	}))
	defer server.Close()

	adapter := &ProviderBAdapter{}
	cfg := models.ProviderConfig{Kind: models.ProviderKindB, BaseURL: server.URL, APIKey: "key-1"}
	resp := adapter.MakeBooking(context.Background(), cfg, sampleRequest())
	if !resp.Success || resp.ProviderBookingID != "rsv-9" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestProviderCAdapterTwoStepFlow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/token":
			json.NewEncoder(w).Encode(providerCTokenResponse{AccessToken: "short-lived"})
		case "/teesheet/reserve":
			if got := r.Header.Get("Authorization"); got != "Bearer short-lived" {
				t.Errorf("access token not forwarded, got %q", got)
			}
			json.NewEncoder(w).Encode(providerCReserveResponse{Result: "OK", ConfirmationNumber: "CN-42"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	adapter := &ProviderCAdapter{}
	cfg := models.ProviderConfig{Kind: models.ProviderKindC, BaseURL: server.URL, APIKey: "k", APISecret: "s"}
	resp := adapter.MakeBooking(context.Background(), cfg, sampleRequest())
	if !resp.Success || resp.ProviderBookingID != "CN-42" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestProviderCAdapterAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(providerCTokenResponse{Reason: "invalid credentials"})
	}))
	defer server.Close()

	adapter := &ProviderCAdapter{}
	cfg := models.ProviderConfig{Kind: models.ProviderKindC, BaseURL: server.URL, APIKey: "k", APISecret: "bad"}
	resp := adapter.MakeBooking(context.Background(), cfg, sampleRequest())
	if resp.Success {
		t.Fatalf("auth failure must fail the booking")
	}
	if !strings.Contains(resp.Error, "invalid credentials") {
		t.Fatalf("auth reason not surfaced: %q", resp.Error)
	}
}

func TestCustomAdapterForwardsHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Custom-Auth"); got != "secret" {
			t.Errorf("custom header not forwarded, got %q", got)
		}
		var req models.ReservationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode canonical payload: %v", err)
		}
		if req.GolfCourseID != "course-1" {
			t.Errorf("canonical payload not forwarded: %+v", req)
		}
		json.NewEncoder(w).Encode(customBookingResponse{Success: true, BookingID: "cst-7"})
	}))
	defer server.Close()

	adapter := &CustomAdapter{}
	cfg := models.ProviderConfig{
		Kind:    models.ProviderKindCustom,
		BaseURL: server.URL,
		Headers: map[string]string{"X-Custom-Auth": "secret"},
	}
	resp := adapter.MakeBooking(context.Background(), cfg, sampleRequest())
	if !resp.Success || resp.ProviderBookingID != "cst-7" {
		t.Fatalf("unexpected response %+v", resp)
	}
}
