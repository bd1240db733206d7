// File: database/repository/user/user.go
package userRepo

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

// ErrNotFound is returned when no user matches the given ID.
var ErrNotFound = errors.New("user not found")

// UserRepository exposes the read access the reservation core needs:
// requester contact details and the push token.
type UserRepository interface {
	GetByID(id string) (*models.User, error)
}

// MongoUserRepo implements UserRepository backed by MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo returns a repo bound to the users collection.
func NewMongoUserRepo() *MongoUserRepo {
	return &MongoUserRepo{coll: database.Collection("users")}
}

// GetByID fetches a user document by its ID.
func (r *MongoUserRepo) GetByID(id string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("user with id %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user with id %s: %w", id, err)
	}
	return &user, nil
}
