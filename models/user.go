package models

import "time"

// User is the mobile-app player who submitted the booking. The reservation
// core reads contact info and the push token; account management lives upstream.
type User struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	FCMToken  string    `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Contact returns the user's reservation contact details.
func (u *User) Contact() ContactInfo {
	return ContactInfo{Name: u.Name, Email: u.Email, Phone: u.Phone}
}
