// File: database/repository/staff/staff.go
package staffRepo

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

// ErrNotFound is returned when no staff identity matches the given ID.
var ErrNotFound = errors.New("staff identity not found")

// StaffRepository exposes read access to console staff identities.
type StaffRepository interface {
	GetByID(id string) (*models.StaffIdentity, error)
}

// MongoStaffRepo implements StaffRepository backed by MongoDB.
type MongoStaffRepo struct {
	coll *mongo.Collection
}

// NewMongoStaffRepo returns a repo bound to the staff collection.
func NewMongoStaffRepo() *MongoStaffRepo {
	return &MongoStaffRepo{coll: database.Collection("staff")}
}

// GetByID fetches a staff identity document by its ID.
func (r *MongoStaffRepo) GetByID(id string) (*models.StaffIdentity, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var staff models.StaffIdentity
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&staff)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("staff with id %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff with id %s: %w", id, err)
	}
	return &staff, nil
}
