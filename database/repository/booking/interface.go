// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"errors"
	"time"

	"meetspace/database"
	"meetspace/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrBookingNotFound is returned when no booking matches the given ID.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrSlotTaken is returned when the unique (room, start) constraint
	// rejects an insert: someone else booked the slot first.
	ErrSlotTaken = errors.New("this slot has just been taken")
)

// BookingRepository defines the interface for booking data access.
type BookingRepository interface {
	// ListByRoom returns a room's bookings with start time inside
	// [from, to), ordered by start time ascending.
	ListByRoom(ctx context.Context, roomID int64, from, to time.Time) ([]models.Booking, error)
	// ListForUser returns the user's bookings ending at or after from,
	// joined with room details, ordered by start time ascending.
	ListForUser(ctx context.Context, userID string, from time.Time) ([]models.BookingWithRoom, error)
	// GetByID retrieves a booking by its integer ID.
	GetByID(ctx context.Context, id int64) (*models.Booking, error)
	// Create inserts a new booking, assigning its ID. Returns
	// ErrSlotTaken when the room/start uniqueness constraint fires.
	Create(ctx context.Context, booking *models.Booking) error
	// Delete removes a booking by its ID. Returns ErrBookingNotFound
	// when the booking does not exist (e.g., already cancelled).
	Delete(ctx context.Context, id int64) error
	// DeleteByRoom removes all bookings for a room (room deletion cascade).
	DeleteByRoom(ctx context.Context, roomID int64) error
	// EnsureIndexes creates the collection's indexes.
	EnsureIndexes() error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	return &mongoBookingRepo{coll: database.Collection("bookings")}
}
