package models

import "time"

// Room represents a bookable meeting room.
type Room struct {
	ID        int64     `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`                             // Display name, required
	Location  string    `bson:"location,omitempty" json:"location,omitempty"` // e.g., "3rd floor, east wing"
	Capacity  int       `bson:"capacity,omitempty" json:"capacity,omitempty"` // Seats, optional
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// RoomInput is the payload for creating or updating a room.
type RoomInput struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
	Capacity int    `json:"capacity"`
}
