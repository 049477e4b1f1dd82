// Package schedule turns a room's bookings into a day's availability
// grid and maps slot labels back to absolute times. It is pure: no
// I/O, no clock reads, every input is a parameter.
package schedule

import (
	"fmt"
	"time"

	"meetspace/models"
)

// SlotLabelLayout renders slot starts as 12-hour clock labels, e.g.,
// "8:00 AM" or "1:30 PM".
const SlotLabelLayout = "3:04 PM"

// GenerateSlots produces count consecutive slots of the given interval
// starting at dayStart, each flagged available unless a booking
// overlaps it. Overlap uses half-open intervals: a booking ending
// exactly when a slot starts does not occupy that slot.
//
// When several bookings overlap one slot, the first match in input
// order is attached; callers must pass bookings in a deterministic
// order (the repositories sort by start time ascending).
func GenerateSlots(dayStart time.Time, interval time.Duration, count int, bookings []models.Booking) []models.TimeSlot {
	slots := make([]models.TimeSlot, 0, count)

	for i := 0; i < count; i++ {
		slotStart := dayStart.Add(time.Duration(i) * interval)
		slotEnd := slotStart.Add(interval)

		var taken *models.Booking
		for j := range bookings {
			b := &bookings[j]
			if slotStart.Before(b.EndTime) && slotEnd.After(b.StartTime) {
				taken = b
				break
			}
		}

		slots = append(slots, models.TimeSlot{
			Time:      slotStart.Format(SlotLabelLayout),
			Available: taken == nil,
			Booking:   taken,
		})
	}
	return slots
}

// ParseSlotLabel resolves a grid label ("h:mm AM/PM") to an absolute
// time on the given day, in the day's location. 12 AM maps to hour 0
// and 12 PM to hour 12.
func ParseSlotLabel(label string, day time.Time) (time.Time, error) {
	parsed, err := time.Parse(SlotLabelLayout, label)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid slot time %q: %w", label, err)
	}
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0,
		day.Location(),
	), nil
}

// GridStart returns the first slot's start on the day containing now.
func GridStart(now time.Time, startHour int) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), startHour, 0, 0, 0, now.Location())
}

// DayWindow returns the half-open [midnight today, midnight tomorrow)
// window containing now, the range the grid fetches bookings for.
func DayWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}
