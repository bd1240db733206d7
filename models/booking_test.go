package models

import "testing"

func TestValidStatusPair(t *testing.T) {
	valid := [][2]string{
		{ValidationStatusPending, BookingStatusPending},
		{ValidationStatusChecking, BookingStatusPending},
		{ValidationStatusAlternative, BookingStatusPending},
		{ValidationStatusRejected, BookingStatusCancelled},
		{ValidationStatusConfirmed, BookingStatusConfirmed},
		{ValidationStatusAutoApproved, BookingStatusConfirmed},
	}
	for _, pair := range valid {
		if !ValidStatusPair(pair[0], pair[1]) {
			t.Fatalf("pair (%s, %s) should be valid", pair[0], pair[1])
		}
	}

	invalid := [][2]string{
		{ValidationStatusConfirmed, BookingStatusPending},
		{ValidationStatusPending, BookingStatusConfirmed},
		{ValidationStatusRejected, BookingStatusPending},
		{ValidationStatusChecking, BookingStatusCancelled},
		{"unknown", BookingStatusPending},
		{ValidationStatusPending, "unknown"},
	}
	for _, pair := range invalid {
		if ValidStatusPair(pair[0], pair[1]) {
			t.Fatalf("pair (%s, %s) should be invalid", pair[0], pair[1])
		}
	}
}
