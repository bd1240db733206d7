package reservation

import (
	"context"
	"fmt"
	"time"

	"fairway/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultCallTimeout = 15 * time.Second

// Registry dispatches reservation requests to the adapter matching the
// course's provider kind. Dispatch is a pure lookup; unknown kinds are
// reported as a normal failure, never an error.
type Registry struct {
	adapters map[string]ProviderAdapter
	logger   *zap.Logger
	timeout  time.Duration
}

// NewRegistry builds a registry with all live adapters registered.
func NewRegistry(logger *zap.Logger, timeout time.Duration) *Registry {
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	r := &Registry{
		adapters: make(map[string]ProviderAdapter),
		logger:   logger,
		timeout:  timeout,
	}
	r.Register(&ProviderAAdapter{})
	r.Register(&ProviderBAdapter{})
	r.Register(&ProviderCAdapter{})
	r.Register(&CustomAdapter{})
	return r
}

// Register adds an adapter keyed by its kind.
func (r *Registry) Register(a ProviderAdapter) {
	r.adapters[a.Kind()] = a
}

// MakeBooking resolves the adapter for cfg.Kind and performs the call with an
// explicit deadline. A deadline hit surfaces as an ordinary failed response.
func (r *Registry) MakeBooking(ctx context.Context, cfg models.ProviderConfig, req models.ReservationRequest) (resp models.ReservationResponse) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("reservation adapter panic",
				zap.String("provider_kind", cfg.Kind),
				zap.String("course_id", req.GolfCourseID),
				zap.Any("panic", p))
			resp = models.ReservationResponse{Success: false, Error: fmt.Sprintf("provider call panic: %v", p)}
		}
	}()

	adapter, ok := r.adapters[cfg.Kind]
	if !ok {
		return models.ReservationResponse{Success: false, Error: "unsupported provider"}
	}

	// Sandboxed integrations confirm synthetically. The flag lives on the
	// course's provider config so a live integration is never masked, and a
	// misconfigured kind still fails above instead of succeeding synthetically.
	if cfg.Simulate {
		id := "sim-" + uuid.New().String()
		r.logger.Info("simulated reservation confirmed",
			zap.String("provider_kind", cfg.Kind),
			zap.String("course_id", req.GolfCourseID),
			zap.String("provider_booking_id", id))
		return models.ReservationResponse{Success: true, ProviderBookingID: id}
	}

	timeout := r.timeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp = adapter.MakeBooking(callCtx, cfg, req)
	if resp.Success {
		r.logger.Info("reservation confirmed with provider",
			zap.String("provider_kind", cfg.Kind),
			zap.String("course_id", req.GolfCourseID),
			zap.String("provider_booking_id", resp.ProviderBookingID))
	} else {
		r.logger.Warn("reservation failed with provider",
			zap.String("provider_kind", cfg.Kind),
			zap.String("course_id", req.GolfCourseID),
			zap.String("error", resp.Error))
	}
	return resp
}
