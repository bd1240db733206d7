package booking

import (
	"testing"

	"fairway/models"
)

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		action           string
		validationStatus string
		bookingStatus    string
	}{
		{ActionConfirm, models.ValidationStatusConfirmed, models.BookingStatusConfirmed},
		{ActionReject, models.ValidationStatusRejected, models.BookingStatusCancelled},
		{ActionAlternative, models.ValidationStatusAlternative, models.BookingStatusPending},
		{ActionChecking, models.ValidationStatusChecking, models.BookingStatusPending},
	}
	for _, tc := range cases {
		tr, ok := TransitionFor(tc.action)
		if !ok {
			t.Fatalf("action %q missing from table", tc.action)
		}
		if tr.ValidationStatus != tc.validationStatus || tr.BookingStatus != tc.bookingStatus {
			t.Fatalf("action %q: got (%s, %s), want (%s, %s)",
				tc.action, tr.ValidationStatus, tr.BookingStatus, tc.validationStatus, tc.bookingStatus)
		}
		if !models.ValidStatusPair(tr.ValidationStatus, tr.BookingStatus) {
			t.Fatalf("action %q maps to an invalid pair", tc.action)
		}
	}
}

func TestTransitionForUnknownAction(t *testing.T) {
	if _, ok := TransitionFor("approve"); ok {
		t.Fatalf("unknown action must not resolve")
	}
}

func TestCompensationTargetIsValidPair(t *testing.T) {
	if !models.ValidStatusPair(compensationTarget.ValidationStatus, compensationTarget.BookingStatus) {
		t.Fatalf("compensation target (%s, %s) is not a valid pair",
			compensationTarget.ValidationStatus, compensationTarget.BookingStatus)
	}
	if compensationTarget.ValidationStatus != models.ValidationStatusChecking {
		t.Fatalf("a failed reservation must revert to checking, got %s", compensationTarget.ValidationStatus)
	}
}
