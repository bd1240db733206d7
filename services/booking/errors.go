package booking

import "fmt"

// AuthorizationError means the caller did not resolve to an active staff
// identity. Never retried.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

// ValidationError means the action or payload was malformed. Never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError means a referenced booking, record or config does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ReservationFailureError is the expected provider failure: the external
// reservation could not be secured and the booking has been compensated back
// to checking_availability. It is a normal unsuccessful outcome, not a
// system error.
type ReservationFailureError struct {
	Reason string
}

func (e *ReservationFailureError) Error() string {
	return fmt.Sprintf("reservation failed: %s", e.Reason)
}

// PersistenceError is an unexpected storage failure. Fatal, propagated, and
// deliberately not auto-compensated.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
