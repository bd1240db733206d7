// File: database/repository/booking/crud.go
package bookingRepo

import (
	"errors"
	"fmt"
	"time"

	"fairway/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByID fetches a booking document by its ID.
func (r *MongoBookingRepo) GetByID(id string) (*models.BookingRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.BookingRequest
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("booking with id %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// GetByPaymentRef fetches the booking correlated to a payment reference.
func (r *MongoBookingRepo) GetByPaymentRef(ref string) (*models.BookingRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.BookingRequest
	err := r.coll.FindOne(ctx, bson.M{"payment_ref": ref}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("booking with payment ref %s: %w", ref, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking with payment ref %s: %w", ref, err)
	}
	return &booking, nil
}

// UpdateFields applies a $set update to a booking document.
func (r *MongoBookingRepo) UpdateFields(id string, fields bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	fields["updated_at"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update booking with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s: %w", id, ErrNotFound)
	}
	return nil
}

// ClaimForConfirm performs the conditional confirm transition. The filter only
// matches while the booking is still undecided, so of two concurrent confirm
// attempts exactly one observes matched==1.
func (r *MongoBookingRepo) ClaimForConfirm(id string, fields bson.M) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"id":     id,
		"status": models.BookingStatusPending,
		"validation_status": bson.M{"$in": []string{
			models.ValidationStatusPending,
			models.ValidationStatusChecking,
			models.ValidationStatusAlternative,
		}},
		"$or": []bson.M{
			{"provider_booking_id": bson.M{"$exists": false}},
			{"provider_booking_id": ""},
		},
	}
	fields["updated_at"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": fields})
	if err != nil {
		return false, fmt.Errorf("failed to claim booking %s for confirm: %w", id, err)
	}
	return result.MatchedCount == 1, nil
}

// FindInvalidStatusPairs lists bookings holding an illegal status combination.
func (r *MongoBookingRepo) FindInvalidStatusPairs(limit int64) ([]models.BookingRequest, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	valid := []bson.M{
		{"validation_status": models.ValidationStatusPending, "status": models.BookingStatusPending},
		{"validation_status": models.ValidationStatusChecking, "status": models.BookingStatusPending},
		{"validation_status": models.ValidationStatusAlternative, "status": models.BookingStatusPending},
		{"validation_status": models.ValidationStatusRejected, "status": models.BookingStatusCancelled},
		{"validation_status": models.ValidationStatusConfirmed, "status": models.BookingStatusConfirmed},
		{"validation_status": models.ValidationStatusAutoApproved, "status": models.BookingStatusConfirmed},
	}

	opts := options.Find().SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{"$nor": valid}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query invalid status pairs: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.BookingRequest
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode invalid status pairs: %w", err)
	}
	return bookings, nil
}
