package room

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	bookingRepo "meetspace/database/repository/booking"
	roomRepo "meetspace/database/repository/room"
	"meetspace/events"
	"meetspace/models"
)

type memRoomRepo struct {
	rooms  map[int64]models.Room
	nextID int64
}

func newMemRoomRepo() *memRoomRepo {
	return &memRoomRepo{rooms: make(map[int64]models.Room)}
}

func (m *memRoomRepo) List(ctx context.Context) ([]models.Room, error) {
	out := make([]models.Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		out = append(out, r)
	}
	return out, nil
}

func (m *memRoomRepo) GetByID(ctx context.Context, id int64) (*models.Room, error) {
	r, ok := m.rooms[id]
	if !ok {
		return nil, roomRepo.ErrRoomNotFound
	}
	return &r, nil
}

func (m *memRoomRepo) Create(ctx context.Context, room *models.Room) error {
	m.nextID++
	room.ID = m.nextID
	room.CreatedAt = time.Now()
	m.rooms[room.ID] = *room
	return nil
}

func (m *memRoomRepo) Update(ctx context.Context, room *models.Room) error {
	if _, ok := m.rooms[room.ID]; !ok {
		return roomRepo.ErrRoomNotFound
	}
	m.rooms[room.ID] = *room
	return nil
}

func (m *memRoomRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.rooms[id]; !ok {
		return roomRepo.ErrRoomNotFound
	}
	delete(m.rooms, id)
	return nil
}

func (m *memRoomRepo) EnsureIndexes() error { return nil }

type memBookingRepo struct {
	byRoom map[int64]int
}

func (m *memBookingRepo) ListByRoom(ctx context.Context, roomID int64, from, to time.Time) ([]models.Booking, error) {
	return nil, nil
}

func (m *memBookingRepo) ListForUser(ctx context.Context, userID string, from time.Time) ([]models.BookingWithRoom, error) {
	return nil, nil
}

func (m *memBookingRepo) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	return nil, bookingRepo.ErrBookingNotFound
}

func (m *memBookingRepo) Create(ctx context.Context, booking *models.Booking) error { return nil }
func (m *memBookingRepo) Delete(ctx context.Context, id int64) error                { return nil }

func (m *memBookingRepo) DeleteByRoom(ctx context.Context, roomID int64) error {
	delete(m.byRoom, roomID)
	return nil
}

func (m *memBookingRepo) EnsureIndexes() error { return nil }

func drain(ch <-chan events.Event) []events.Event {
	var out []events.Event
	for {
		select {
		case ev := <-ch:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestCreateValidates(t *testing.T) {
	svc := &DefaultRoomService{Rooms: newMemRoomRepo(), Bookings: &memBookingRepo{}, Bus: events.NewBus(zap.NewNop())}
	ctx := context.Background()

	_, err := svc.Create(ctx, models.RoomInput{Name: ""})
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.Create(ctx, models.RoomInput{Name: "Den", Capacity: -3})
	assert.ErrorIs(t, err, ErrInvalidCapacity)

	room, err := svc.Create(ctx, models.RoomInput{Name: "Den", Location: "2F", Capacity: 6})
	require.NoError(t, err)
	assert.Equal(t, int64(1), room.ID)
	assert.Equal(t, "Den", room.Name)
}

func TestCreatePublishesRoomsChanged(t *testing.T) {
	bus := events.NewBus(zap.NewNop())
	ch, unsub := bus.Subscribe(events.RoomsChanged)
	defer unsub()
	svc := &DefaultRoomService{Rooms: newMemRoomRepo(), Bookings: &memBookingRepo{}, Bus: bus}

	_, err := svc.Create(context.Background(), models.RoomInput{Name: "Den"})
	require.NoError(t, err)
	assert.Len(t, drain(ch), 1)
}

func TestUpdateUnknownRoom(t *testing.T) {
	svc := &DefaultRoomService{Rooms: newMemRoomRepo(), Bookings: &memBookingRepo{}, Bus: events.NewBus(zap.NewNop())}

	_, err := svc.Update(context.Background(), 42, models.RoomInput{Name: "Den"})
	assert.ErrorIs(t, err, roomRepo.ErrRoomNotFound)
}

func TestDeleteCascades(t *testing.T) {
	rooms := newMemRoomRepo()
	bookings := &memBookingRepo{byRoom: map[int64]int{1: 3}}
	bus := events.NewBus(zap.NewNop())
	all, unsub := bus.Subscribe()
	defer unsub()

	svc := &DefaultRoomService{Rooms: rooms, Bookings: bookings, Bus: bus}
	ctx := context.Background()

	room, err := svc.Create(ctx, models.RoomInput{Name: "Den"})
	require.NoError(t, err)
	drain(all)

	require.NoError(t, svc.Delete(ctx, room.ID))

	assert.Empty(t, rooms.rooms)
	assert.Empty(t, bookings.byRoom, "bookings removed with the room")

	evs := drain(all)
	require.Len(t, evs, 2)
	assert.Equal(t, events.BookingsChanged, evs[0].Kind)
	assert.Equal(t, events.RoomsChanged, evs[1].Kind)
}

func TestDeleteUnknownRoom(t *testing.T) {
	svc := &DefaultRoomService{Rooms: newMemRoomRepo(), Bookings: &memBookingRepo{byRoom: map[int64]int{}}, Bus: events.NewBus(zap.NewNop())}
	err := svc.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, roomRepo.ErrRoomNotFound)
}
