// Package room manages meeting rooms. All mutations go through the
// admin surface; deleting a room cascades to its bookings.
package room

import (
	"context"
	"errors"

	"go.uber.org/zap"

	bookingRepo "meetspace/database/repository/booking"
	roomRepo "meetspace/database/repository/room"
	"meetspace/events"
	"meetspace/models"
	"meetspace/utils"
)

var (
	// ErrNameRequired rejects a room without a name.
	ErrNameRequired = errors.New("room name is required")
	// ErrInvalidCapacity rejects a non-positive capacity.
	ErrInvalidCapacity = errors.New("room capacity must be positive")
)

// RoomService defines room management operations.
type RoomService interface {
	List(ctx context.Context) ([]models.Room, error)
	Get(ctx context.Context, id int64) (*models.Room, error)
	Create(ctx context.Context, input models.RoomInput) (*models.Room, error)
	Update(ctx context.Context, id int64, input models.RoomInput) (*models.Room, error)
	// Delete removes the room and every booking in it.
	Delete(ctx context.Context, id int64) error
}

// DefaultRoomService implements RoomService.
type DefaultRoomService struct {
	Rooms    roomRepo.RoomRepository
	Bookings bookingRepo.BookingRepository
	Bus      *events.Bus
}

func validate(input models.RoomInput) error {
	if input.Name == "" {
		return ErrNameRequired
	}
	if input.Capacity < 0 {
		return ErrInvalidCapacity
	}
	return nil
}

func (s *DefaultRoomService) List(ctx context.Context) ([]models.Room, error) {
	return s.Rooms.List(ctx)
}

func (s *DefaultRoomService) Get(ctx context.Context, id int64) (*models.Room, error) {
	return s.Rooms.GetByID(ctx, id)
}

func (s *DefaultRoomService) Create(ctx context.Context, input models.RoomInput) (*models.Room, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	room := &models.Room{
		Name:     input.Name,
		Location: input.Location,
		Capacity: input.Capacity,
	}
	if err := s.Rooms.Create(ctx, room); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("room created", zap.Int64("room_id", room.ID), zap.String("name", room.Name))
	s.Bus.Publish(events.RoomsChanged)
	return room, nil
}

func (s *DefaultRoomService) Update(ctx context.Context, id int64, input models.RoomInput) (*models.Room, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	room, err := s.Rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	room.Name = input.Name
	room.Location = input.Location
	room.Capacity = input.Capacity
	if err := s.Rooms.Update(ctx, room); err != nil {
		return nil, err
	}

	s.Bus.Publish(events.RoomsChanged)
	return room, nil
}

func (s *DefaultRoomService) Delete(ctx context.Context, id int64) error {
	// Bookings first so a failed cascade never orphans bookings of a
	// deleted room.
	if err := s.Bookings.DeleteByRoom(ctx, id); err != nil {
		return err
	}
	if err := s.Rooms.Delete(ctx, id); err != nil {
		return err
	}

	utils.GetLogger().Info("room deleted", zap.Int64("room_id", id))
	s.Bus.Publish(events.BookingsChanged)
	s.Bus.Publish(events.RoomsChanged)
	return nil
}
