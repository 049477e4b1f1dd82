package models

import "time"

// Booking represents a confirmed room reservation.
type Booking struct {
	ID        int64     `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`       // User who made the booking
	RoomID    int64     `bson:"room_id" json:"room_id"`       // Room being reserved
	Title     string    `bson:"title" json:"title"`           // Meeting title, required
	StartTime time.Time `bson:"start_time" json:"start_time"` // Inclusive start
	EndTime   time.Time `bson:"end_time" json:"end_time"`     // Exclusive end
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// BookingWithRoom is a booking joined with the room it reserves,
// as shown on the "my bookings" list.
type BookingWithRoom struct {
	Booking      `bson:",inline"`
	RoomName     string `bson:"room_name" json:"room_name"`
	RoomLocation string `bson:"room_location,omitempty" json:"room_location,omitempty"`
	RoomCapacity int    `bson:"room_capacity,omitempty" json:"room_capacity,omitempty"`
}

// BookingInput is the payload for creating a booking. Time carries the
// slot label exactly as rendered on the grid (e.g., "9:30 AM").
type BookingInput struct {
	RoomID int64  `json:"room_id" binding:"required"`
	Title  string `json:"title" binding:"required"`
	Time   string `json:"time" binding:"required"`
	Date   string `json:"date,omitempty"` // "YYYY-MM-DD", defaults to today
}
