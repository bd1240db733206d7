package models

import "time"

// PaymentOutcome is the canonical shape of a payment-gateway event after the
// webhook layer has verified and decoded it. Deliveries are at-least-once.
type PaymentOutcome struct {
	Reference  string    `json:"reference"`  // gateway payment reference (e.g. payment intent id)
	BookingID  string    `json:"booking_id"` // from gateway metadata; may be empty when the reference is stored
	Succeeded  bool      `json:"succeeded"`
	Reason     string    `json:"reason,omitempty"`
	Amount     int64     `json:"amount,omitempty"`
	Currency   string    `json:"currency,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
}
