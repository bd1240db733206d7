package booking

import (
	"context"
	"errors"
	"time"

	bookingRepo "fairway/database/repository/booking"
	"fairway/models"
	"fairway/services/notification"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// EventDeduper remembers which payment references were already reconciled.
// Deliveries are at-least-once, so the reconciler must stay idempotent even
// when deduplication is unavailable.
type EventDeduper interface {
	// MarkProcessed records the reference and reports whether this call was
	// the first to do so.
	MarkProcessed(ctx context.Context, ref string) (bool, error)
	// Release forgets the reference so a redelivery can retry after a
	// processing failure.
	Release(ctx context.Context, ref string)
}

// RedisEventDeduper implements EventDeduper on Redis with SetNX + TTL.
type RedisEventDeduper struct {
	Client *redis.Client
	TTL    time.Duration
}

func (d *RedisEventDeduper) key(ref string) string { return "payment_event:" + ref }

func (d *RedisEventDeduper) MarkProcessed(ctx context.Context, ref string) (bool, error) {
	ttl := d.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return d.Client.SetNX(ctx, d.key(ref), 1, ttl).Result()
}

func (d *RedisEventDeduper) Release(ctx context.Context, ref string) {
	d.Client.Del(ctx, d.key(ref))
}

// PaymentReconciler transitions bookings on asynchronous payment outcomes.
// It shares the status vocabulary with the validation orchestrator and never
// downgrades a booking the staff path already confirmed with a provider id.
type PaymentReconciler struct {
	Bookings    bookingRepo.BookingRepository
	Validations validationRepoIface
	Deduper     EventDeduper
	Notifier    notification.NotificationService
	Logger      *zap.Logger
}

// validationRepoIface is the slice of the validation repository the
// reconciler needs for its best-effort mirror write.
type validationRepoIface interface {
	SetDecision(bookingID string, fields bson.M) error
}

// HandleOutcome processes one delivered payment event. A returned error means
// the gateway should redeliver; swallowed secondary failures (validation
// mirror, notifications) never count as processing failures.
func (p *PaymentReconciler) HandleOutcome(ctx context.Context, outcome models.PaymentOutcome) error {
	logger := p.Logger.With(
		zap.String("payment_ref", outcome.Reference),
		zap.Bool("succeeded", outcome.Succeeded),
	)

	booking, err := p.lookupBooking(outcome)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		logger.Warn("payment event does not match any booking, ignoring")
		return nil
	}
	if err != nil {
		return &PersistenceError{Op: "load booking for payment event", Err: err}
	}
	logger = logger.With(zap.String("booking_id", booking.ID))

	if !outcome.Succeeded {
		logger.Info("payment failed, booking left untouched for retry",
			zap.String("reason", outcome.Reason))
		p.notify(ctx, logger, booking.UserID, "Payment failed",
			"Your payment did not go through. Please try again.", booking.ID)
		return nil
	}

	if booking.PaymentStatus == models.PaymentStatusPaid && booking.Status == models.BookingStatusConfirmed {
		logger.Info("payment already reconciled, nothing to do")
		return nil
	}

	firstDelivery := true
	if p.Deduper != nil {
		first, err := p.Deduper.MarkProcessed(ctx, outcome.Reference)
		if err != nil {
			// Degrade to the idempotent write below.
			logger.Warn("payment event dedup unavailable", zap.Error(err))
		} else {
			firstDelivery = first
		}
	}
	if !firstDelivery {
		logger.Info("duplicate payment event, nothing to do")
		return nil
	}

	now := time.Now()
	fields := bson.M{
		"payment_status": models.PaymentStatusPaid,
		"status":         models.BookingStatusConfirmed,
		"confirmed_at":   now,
	}
	// A staff confirm that already secured the course reservation is sticky;
	// only the payment path itself auto-approves.
	if booking.ProviderBookingID == "" {
		fields["validation_status"] = models.ValidationStatusAutoApproved
	}
	if err := p.Bookings.UpdateFields(booking.ID, fields); err != nil {
		if p.Deduper != nil {
			p.Deduper.Release(ctx, outcome.Reference)
		}
		logger.Error("failed to confirm booking after payment", zap.Error(err))
		return &PersistenceError{Op: "confirm booking after payment", Err: err}
	}
	logger.Info("booking confirmed by payment")

	// Best-effort mirror of the validation record. The payment confirmation
	// itself stands regardless.
	if booking.ProviderBookingID == "" && p.Validations != nil {
		if err := p.Validations.SetDecision(booking.ID, bson.M{
			"status":       models.ValidationStatusAutoApproved,
			"notes":        "Auto-approved on payment confirmation",
			"validated_at": now,
		}); err != nil {
			logger.Warn("failed to mirror validation record after payment", zap.Error(err))
		}
	}

	p.notify(ctx, logger, booking.UserID, "Booking confirmed",
		"Your payment was received and your booking is confirmed.", booking.ID)
	return nil
}

// lookupBooking correlates the event to a booking via the stored payment
// reference, falling back to the booking id carried in gateway metadata.
func (p *PaymentReconciler) lookupBooking(outcome models.PaymentOutcome) (*models.BookingRequest, error) {
	booking, err := p.Bookings.GetByPaymentRef(outcome.Reference)
	if err == nil {
		return booking, nil
	}
	if errors.Is(err, bookingRepo.ErrNotFound) && outcome.BookingID != "" {
		return p.Bookings.GetByID(outcome.BookingID)
	}
	return nil, err
}

func (p *PaymentReconciler) notify(ctx context.Context, logger *zap.Logger, userID, title, body, bookingID string) {
	if p.Notifier == nil {
		return
	}
	data := map[string]string{"booking_id": bookingID, "type": "payment_update"}
	if err := p.Notifier.SendUserPushNotification(ctx, userID, title, body, data); err != nil {
		logger.Warn("failed to send payment notification", zap.Error(err))
	}
}
