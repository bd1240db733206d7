package booking

import "fairway/models"

// Staff actions accepted by the validation endpoint.
const (
	ActionConfirm     = "confirm"
	ActionReject      = "reject"
	ActionAlternative = "alternative"
	ActionChecking    = "checking"
)

// Transition is the target state pair for a staff action.
type Transition struct {
	ValidationStatus string
	BookingStatus    string
}

// transitions is the single source of truth for valid action outcomes.
// The compensation target below belongs to the same table: a failed
// reservation rolls a confirm back to the checking pair.
var transitions = map[string]Transition{
	ActionConfirm:     {models.ValidationStatusConfirmed, models.BookingStatusConfirmed},
	ActionReject:      {models.ValidationStatusRejected, models.BookingStatusCancelled},
	ActionAlternative: {models.ValidationStatusAlternative, models.BookingStatusPending},
	ActionChecking:    {models.ValidationStatusChecking, models.BookingStatusPending},
}

// compensationTarget is the state pair a confirm reverts to when the external
// reservation fails.
var compensationTarget = Transition{
	ValidationStatus: models.ValidationStatusChecking,
	BookingStatus:    models.BookingStatusPending,
}

// TransitionFor returns the target state pair for an action.
func TransitionFor(action string) (Transition, bool) {
	t, ok := transitions[action]
	return t, ok
}
