// File: database/repository/booking/booking.go
package bookingRepo

import (
	"context"
	"errors"
	"time"

	"fairway/database"
	"fairway/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no booking matches the given identifier.
var ErrNotFound = errors.New("booking not found")

// BookingRepository defines the data access surface the reservation core needs.
type BookingRepository interface {
	GetByID(id string) (*models.BookingRequest, error)
	GetByPaymentRef(ref string) (*models.BookingRequest, error)
	UpdateFields(id string, fields bson.M) error
	// ClaimForConfirm conditionally transitions a booking into the confirmed
	// state. It matches only while the booking is still undecided (status
	// pending, validation not yet final, no provider booking id) and reports
	// whether this caller won the transition.
	ClaimForConfirm(id string, fields bson.M) (bool, error)
	// FindInvalidStatusPairs returns bookings whose (validation_status, status)
	// combination is outside the legal set. Used by the state audit worker.
	FindInvalidStatusPairs(limit int64) ([]models.BookingRequest, error)
}

// MongoBookingRepo implements BookingRepository backed by MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a repo bound to the bookings collection.
func NewMongoBookingRepo() *MongoBookingRepo {
	return &MongoBookingRepo{coll: database.Collection("bookings")}
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}
