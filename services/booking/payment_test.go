package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fairway/models"

	"go.uber.org/zap"
)

type fakeDeduper struct {
	mu      sync.Mutex
	seen    map[string]bool
	markErr error
}

func newFakeDeduper() *fakeDeduper {
	return &fakeDeduper{seen: make(map[string]bool)}
}

func (f *fakeDeduper) MarkProcessed(ctx context.Context, ref string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markErr != nil {
		return false, f.markErr
	}
	if f.seen[ref] {
		return false, nil
	}
	f.seen[ref] = true
	return true, nil
}

func (f *fakeDeduper) Release(ctx context.Context, ref string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.seen, ref)
}

func paidOutcome() models.PaymentOutcome {
	return models.PaymentOutcome{
		Reference:  "pi_123",
		Succeeded:  true,
		Amount:     4500,
		Currency:   "usd",
		ReceivedAt: time.Now(),
	}
}

func newTestReconciler(bookings *fakeBookingRepo, validations *fakeValidationRepo) (*PaymentReconciler, *fakeNotifier, *fakeDeduper) {
	notifier := &fakeNotifier{}
	deduper := newFakeDeduper()
	rec := &PaymentReconciler{
		Bookings:    bookings,
		Validations: validations,
		Deduper:     deduper,
		Notifier:    notifier,
		Logger:      zap.NewNop(),
	}
	return rec, notifier, deduper
}

func TestPaymentSuccessConfirmsBooking(t *testing.T) {
	b := pendingBooking()
	b.PaymentRef = "pi_123"
	bookings := &fakeBookingRepo{booking: b}
	validations := &fakeValidationRepo{record: models.ValidationRecord{ID: "v1", BookingID: "b1", Status: models.ValidationStatusPending}}
	rec, notifier, _ := newTestReconciler(bookings, validations)

	if err := rec.HandleOutcome(context.Background(), paidOutcome()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := bookings.snapshot()
	if stored.PaymentStatus != models.PaymentStatusPaid {
		t.Fatalf("payment status not set: %q", stored.PaymentStatus)
	}
	if stored.Status != models.BookingStatusConfirmed || stored.ValidationStatus != models.ValidationStatusAutoApproved {
		t.Fatalf("unexpected state pair (%s, %s)", stored.ValidationStatus, stored.Status)
	}
	if stored.ConfirmedAt == nil {
		t.Fatalf("confirmed_at not set")
	}
	if !models.ValidStatusPair(stored.ValidationStatus, stored.Status) {
		t.Fatalf("stored booking holds invalid pair (%s, %s)", stored.ValidationStatus, stored.Status)
	}
	if record := validations.snapshot(); record.Status != models.ValidationStatusAutoApproved {
		t.Fatalf("validation record not mirrored: %q", record.Status)
	}
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.sends) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.sends))
	}
}

func TestDuplicatePaymentEventSingleStateChange(t *testing.T) {
	b := pendingBooking()
	b.PaymentRef = "pi_123"
	bookings := &fakeBookingRepo{booking: b}
	validations := &fakeValidationRepo{record: models.ValidationRecord{ID: "v1", BookingID: "b1"}}
	rec, _, _ := newTestReconciler(bookings, validations)

	if err := rec.HandleOutcome(context.Background(), paidOutcome()); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	firstUpdates := bookings.updates
	if err := rec.HandleOutcome(context.Background(), paidOutcome()); err != nil {
		t.Fatalf("second delivery: %v", err)
	}
	if bookings.updates != firstUpdates {
		t.Fatalf("duplicate delivery changed state again: %d -> %d updates", firstUpdates, bookings.updates)
	}
}

func TestPaymentFailureLeavesBookingUntouched(t *testing.T) {
	b := pendingBooking()
	b.PaymentRef = "pi_123"
	bookings := &fakeBookingRepo{booking: b}
	validations := &fakeValidationRepo{record: models.ValidationRecord{ID: "v1", BookingID: "b1"}}
	rec, notifier, _ := newTestReconciler(bookings, validations)

	outcome := paidOutcome()
	outcome.Succeeded = false
	outcome.Reason = "card declined"
	if err := rec.HandleOutcome(context.Background(), outcome); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := bookings.snapshot()
	if stored.Status != models.BookingStatusPending || stored.PaymentStatus != models.PaymentStatusUnpaid {
		t.Fatalf("failed payment mutated booking: %+v", stored)
	}
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.sends) != 1 {
		t.Fatalf("expected a payment-failed notification, got %d", len(notifier.sends))
	}
}

func TestValidationMirrorFailureTolerated(t *testing.T) {
	b := pendingBooking()
	b.PaymentRef = "pi_123"
	bookings := &fakeBookingRepo{booking: b}
	validations := &fakeValidationRepo{
		record: models.ValidationRecord{ID: "v1", BookingID: "b1"},
		setErr: errors.New("write concern timeout"),
	}
	rec, _, _ := newTestReconciler(bookings, validations)

	// The payment confirmation must stand even when the mirror write fails.
	if err := rec.HandleOutcome(context.Background(), paidOutcome()); err != nil {
		t.Fatalf("mirror failure must not fail the event: %v", err)
	}
	stored := bookings.snapshot()
	if stored.Status != models.BookingStatusConfirmed || stored.PaymentStatus != models.PaymentStatusPaid {
		t.Fatalf("booking not confirmed: %+v", stored)
	}
}

func TestNotificationFailureSwallowed(t *testing.T) {
	b := pendingBooking()
	b.PaymentRef = "pi_123"
	bookings := &fakeBookingRepo{booking: b}
	validations := &fakeValidationRepo{record: models.ValidationRecord{ID: "v1", BookingID: "b1"}}
	rec, notifier, _ := newTestReconciler(bookings, validations)
	notifier.err = errors.New("fcm unreachable")

	if err := rec.HandleOutcome(context.Background(), paidOutcome()); err != nil {
		t.Fatalf("notification failure must not fail the event: %v", err)
	}
}

func TestUnmatchedPaymentEventIgnored(t *testing.T) {
	bookings := &fakeBookingRepo{booking: pendingBooking()}
	validations := &fakeValidationRepo{record: models.ValidationRecord{ID: "v1", BookingID: "b1"}}
	rec, _, _ := newTestReconciler(bookings, validations)

	outcome := paidOutcome()
	outcome.Reference = "pi_unknown"
	if err := rec.HandleOutcome(context.Background(), outcome); err != nil {
		t.Fatalf("unmatched event must be ignored, got %v", err)
	}
	if got := bookings.snapshot(); got.Status != models.BookingStatusPending {
		t.Fatalf("unmatched event mutated booking: %+v", got)
	}
}

func TestBookingIDMetadataFallback(t *testing.T) {
	bookings := &fakeBookingRepo{booking: pendingBooking()} // no payment_ref stored
	validations := &fakeValidationRepo{record: models.ValidationRecord{ID: "v1", BookingID: "b1"}}
	rec, _, _ := newTestReconciler(bookings, validations)

	outcome := paidOutcome()
	outcome.BookingID = "b1"
	if err := rec.HandleOutcome(context.Background(), outcome); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := bookings.snapshot(); got.Status != models.BookingStatusConfirmed {
		t.Fatalf("metadata fallback did not confirm booking: %+v", got)
	}
}

func TestPaymentPersistFailureReleasesDedup(t *testing.T) {
	b := pendingBooking()
	b.PaymentRef = "pi_123"
	bookings := &fakeBookingRepo{booking: b, updateErr: errors.New("connection reset")}
	validations := &fakeValidationRepo{record: models.ValidationRecord{ID: "v1", BookingID: "b1"}}
	rec, _, deduper := newTestReconciler(bookings, validations)

	err := rec.HandleOutcome(context.Background(), paidOutcome())
	var pe *PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	// The reference must be released so a redelivery can retry.
	deduper.mu.Lock()
	seen := deduper.seen["pi_123"]
	deduper.mu.Unlock()
	if seen {
		t.Fatalf("dedup key not released after persistence failure")
	}
}

func TestStaffConfirmedValidationIsSticky(t *testing.T) {
	b := pendingBooking()
	b.PaymentRef = "pi_123"
	b.Status = models.BookingStatusConfirmed
	b.ValidationStatus = models.ValidationStatusConfirmed
	b.ProviderBookingID = "abc123"
	bookings := &fakeBookingRepo{booking: b}
	validations := &fakeValidationRepo{record: models.ValidationRecord{ID: "v1", BookingID: "b1", Status: models.ValidationStatusConfirmed}}
	rec, _, _ := newTestReconciler(bookings, validations)

	if err := rec.HandleOutcome(context.Background(), paidOutcome()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored := bookings.snapshot()
	if stored.PaymentStatus != models.PaymentStatusPaid {
		t.Fatalf("payment status not set: %q", stored.PaymentStatus)
	}
	if stored.ValidationStatus != models.ValidationStatusConfirmed {
		t.Fatalf("staff confirmation downgraded to %q", stored.ValidationStatus)
	}
	if record := validations.snapshot(); record.Status != models.ValidationStatusConfirmed {
		t.Fatalf("validation record downgraded to %q", record.Status)
	}
}
