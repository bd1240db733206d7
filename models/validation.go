package models

import "time"

// ValidationRecord tracks how staff adjudicated a booking request.
// One record per booking, created at submission time and never deleted.
type ValidationRecord struct {
	ID              string     `bson:"id" json:"id"`
	BookingID       string     `bson:"booking_id" json:"booking_id"`
	Status          string     `bson:"status" json:"status"`
	StaffID         string     `bson:"staff_id,omitempty" json:"staff_id,omitempty"`
	Notes           string     `bson:"notes,omitempty" json:"notes,omitempty"`
	AlternativeDate string     `bson:"alternative_date,omitempty" json:"alternative_date,omitempty"`
	AlternativeTime string     `bson:"alternative_time,omitempty" json:"alternative_time,omitempty"`
	ValidatedAt     *time.Time `bson:"validated_at,omitempty" json:"validated_at,omitempty"`
	CreatedAt       time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `bson:"updated_at" json:"updated_at"`
}
