// File: database/repository/course/course.go
package courseRepo

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

// ErrNotFound is returned when no golf course matches the given ID.
var ErrNotFound = errors.New("golf course not found")

// CourseRepository exposes read access to golf courses and their
// reservation provider configuration.
type CourseRepository interface {
	GetByID(id string) (*models.GolfCourse, error)
}

// MongoCourseRepo implements CourseRepository backed by MongoDB.
type MongoCourseRepo struct {
	coll *mongo.Collection
}

// NewMongoCourseRepo returns a repo bound to the courses collection.
func NewMongoCourseRepo() *MongoCourseRepo {
	return &MongoCourseRepo{coll: database.Collection("courses")}
}

// GetByID fetches a golf course document by its ID.
func (r *MongoCourseRepo) GetByID(id string) (*models.GolfCourse, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var course models.GolfCourse
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&course)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("golf course with id %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch golf course with id %s: %w", id, err)
	}
	return &course, nil
}
