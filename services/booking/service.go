// Package booking implements the booking workflow: availability grids,
// slot booking and cancellation. Conflict resolution is delegated to
// the store's uniqueness constraint; the in-process overlap check only
// shortcuts the common case.
package booking

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	bookingRepo "meetspace/database/repository/booking"
	roomRepo "meetspace/database/repository/room"
	"meetspace/events"
	"meetspace/models"
	"meetspace/services/schedule"
	"meetspace/utils"
)

var (
	// ErrNotLoggedIn rejects a booking attempt without a user identity.
	ErrNotLoggedIn = errors.New("you must be logged in to make a booking")
	// ErrTitleRequired rejects a booking attempt with an empty title.
	ErrTitleRequired = errors.New("meeting title is required")
	// ErrNotOwner rejects a cancel of a booking the caller does not own.
	ErrNotOwner = errors.New("you can only cancel your own bookings")
	// ErrSlotOffGrid rejects a label that parses but does not name one
	// of the day's slots. Only aligned starts may be booked, which is
	// what lets the (room, start) uniqueness stand in for per-slot
	// uniqueness.
	ErrSlotOffGrid = errors.New("the selected time is not a bookable slot")
	// ErrInvalidDate rejects an unparseable booking date.
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)

// BookingService defines the booking workflow operations.
type BookingService interface {
	// Availability returns the room's slot grid for the day containing
	// the given time.
	Availability(ctx context.Context, roomID int64, day time.Time) (*models.Availability, error)
	// Book reserves one slot for the user. The slot label must match a
	// grid label exactly; the booking always runs one interval. An
	// optional date ("YYYY-MM-DD") picks the day, defaulting to today.
	Book(ctx context.Context, userID string, input models.BookingInput) (*models.Booking, error)
	// Cancel removes the user's booking. Cancelling an already
	// cancelled booking returns ErrBookingNotFound.
	Cancel(ctx context.Context, userID string, bookingID int64) error
	// ListForUser returns the user's bookings that have not yet ended,
	// joined with room details.
	ListForUser(ctx context.Context, userID string) ([]models.BookingWithRoom, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Rooms    roomRepo.RoomRepository
	Bookings bookingRepo.BookingRepository
	Bus      *events.Bus

	// Grid geometry, normally taken from config.
	StartHour int
	Interval  time.Duration
	SlotCount int

	// Now is the clock; tests override it.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) Availability(ctx context.Context, roomID int64, day time.Time) (*models.Availability, error) {
	room, err := s.Rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	from, to := schedule.DayWindow(day)
	bookings, err := s.Bookings.ListByRoom(ctx, roomID, from, to)
	if err != nil {
		return nil, err
	}

	dayStart := schedule.GridStart(day, s.StartHour)
	return &models.Availability{
		Room:  *room,
		Date:  from.Format("2006-01-02"),
		Slots: schedule.GenerateSlots(dayStart, s.Interval, s.SlotCount, bookings),
	}, nil
}

func (s *DefaultBookingService) Book(ctx context.Context, userID string, input models.BookingInput) (*models.Booking, error) {
	logger := utils.GetLogger()

	if userID == "" {
		return nil, ErrNotLoggedIn
	}
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	day := s.now()
	if input.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", input.Date, day.Location())
		if err != nil {
			return nil, ErrInvalidDate
		}
		day = parsed
	}

	start, err := schedule.ParseSlotLabel(input.Time, day)
	if err != nil {
		return nil, err
	}
	gridStart := schedule.GridStart(day, s.StartHour)
	offset := start.Sub(gridStart)
	if offset < 0 || offset >= time.Duration(s.SlotCount)*s.Interval || offset%s.Interval != 0 {
		return nil, ErrSlotOffGrid
	}
	end := start.Add(s.Interval)

	if _, err := s.Rooms.GetByID(ctx, input.RoomID); err != nil {
		return nil, err
	}

	// Best-effort pre-check against the current grid. The unique index
	// on (room, start) is the authority; a race past this point still
	// surfaces as ErrSlotTaken from Create.
	from, to := schedule.DayWindow(day)
	existing, err := s.Bookings.ListByRoom(ctx, input.RoomID, from, to)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		b := &existing[i]
		if start.Before(b.EndTime) && end.After(b.StartTime) {
			return nil, bookingRepo.ErrSlotTaken
		}
	}

	booking := &models.Booking{
		UserID:    userID,
		RoomID:    input.RoomID,
		Title:     input.Title,
		StartTime: start,
		EndTime:   end,
	}
	if err := s.Bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	logger.Info("booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("room_id", booking.RoomID),
		zap.String("user_id", userID),
		zap.Time("start", start))
	s.Bus.Publish(events.BookingsChanged)
	return booking, nil
}

func (s *DefaultBookingService) Cancel(ctx context.Context, userID string, bookingID int64) error {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.UserID != userID {
		return ErrNotOwner
	}
	if err := s.Bookings.Delete(ctx, bookingID); err != nil {
		return err
	}

	utils.GetLogger().Info("booking cancelled",
		zap.Int64("booking_id", bookingID),
		zap.String("user_id", userID))
	s.Bus.Publish(events.BookingsChanged)
	return nil
}

func (s *DefaultBookingService) ListForUser(ctx context.Context, userID string) ([]models.BookingWithRoom, error) {
	return s.Bookings.ListForUser(ctx, userID, s.now())
}
