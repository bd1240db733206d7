package models

import "time"

// StaffIdentity is the console-side identity resolved from a staff session token.
// Read-only input to the validation flow.
type StaffIdentity struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Email       string    `bson:"email" json:"email"`
	Role        string    `bson:"role" json:"role"`
	Permissions []string  `bson:"permissions,omitempty" json:"permissions,omitempty"`
	Active      bool      `bson:"active" json:"active"`
	FCMToken    string    `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
