package models

// TimeSlot is one cell of a day's availability grid. Slots are derived
// from the room's bookings on every request and never persisted.
type TimeSlot struct {
	Time      string   `json:"time"` // Label in "h:mm AM/PM" form, e.g., "8:00 AM"
	Available bool     `json:"available"`
	Booking   *Booking `json:"booking,omitempty"` // Set when the slot is taken
}

// Availability is the grid returned for a room and day.
type Availability struct {
	Room  Room       `json:"room"`
	Date  string     `json:"date"` // "YYYY-MM-DD"
	Slots []TimeSlot `json:"slots"`
}
