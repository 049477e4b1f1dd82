// File: database/repository/room/interface.go
package roomRepo

import (
	"context"
	"errors"

	"meetspace/database"
	"meetspace/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrRoomNotFound is returned when no room matches the given ID.
var ErrRoomNotFound = errors.New("room not found")

// RoomRepository defines the interface for room data access.
type RoomRepository interface {
	// List returns all rooms ordered by name.
	List(ctx context.Context) ([]models.Room, error)
	// GetByID retrieves a room by its integer ID.
	GetByID(ctx context.Context, id int64) (*models.Room, error)
	// Create inserts a new room, assigning its ID.
	Create(ctx context.Context, room *models.Room) error
	// Update overwrites the mutable fields of an existing room.
	Update(ctx context.Context, room *models.Room) error
	// Delete removes a room by its ID.
	Delete(ctx context.Context, id int64) error
	// EnsureIndexes creates the collection's indexes.
	EnsureIndexes() error
}

type mongoRoomRepo struct {
	coll *mongo.Collection
}

// NewMongoRoomRepo constructs a new MongoDB RoomRepository.
func NewMongoRoomRepo() RoomRepository {
	return &mongoRoomRepo{coll: database.Collection("rooms")}
}
