// File: database/repository/validation/validation.go
package validationRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fairway/database"
	"fairway/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no validation record matches the booking.
var ErrNotFound = errors.New("validation record not found")

// ValidationRepository defines access to the per-booking staff decision record.
// Records are created upstream at booking submission and never deleted here.
type ValidationRepository interface {
	GetByBookingID(bookingID string) (*models.ValidationRecord, error)
	// SetDecision overwrites the decision fields of the record.
	SetDecision(bookingID string, fields bson.M) error
}

// MongoValidationRepo implements ValidationRepository backed by MongoDB.
type MongoValidationRepo struct {
	coll *mongo.Collection
}

// NewMongoValidationRepo returns a repo bound to the validations collection.
func NewMongoValidationRepo() *MongoValidationRepo {
	return &MongoValidationRepo{coll: database.Collection("validations")}
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

// GetByBookingID fetches the validation record for a booking.
func (r *MongoValidationRepo) GetByBookingID(bookingID string) (*models.ValidationRecord, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var record models.ValidationRecord
	err := r.coll.FindOne(ctx, bson.M{"booking_id": bookingID}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("validation record for booking %s: %w", bookingID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch validation record for booking %s: %w", bookingID, err)
	}
	return &record, nil
}

// SetDecision applies a $set update to the validation record of a booking.
func (r *MongoValidationRepo) SetDecision(bookingID string, fields bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	fields["updated_at"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"booking_id": bookingID}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update validation record for booking %s: %w", bookingID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("validation record for booking %s: %w", bookingID, ErrNotFound)
	}
	return nil
}
