package services

import (
	"fmt"
	"time"
)

// Service window and grid for bookings. The closing time is the last
// bookable slot, not the end of the last seating.
const (
	ServiceOpen  = "12:00"
	ServiceClose = "19:00"
	SlotStep     = 30 * time.Minute
)

// GenerateTimeSlots returns every time between open and close inclusive,
// stepped by step. Malformed bounds or a non-positive step yield nil.
func GenerateTimeSlots(open, close string, step time.Duration) []string {
	start, errOpen := minuteOfDay(open)
	end, errClose := minuteOfDay(close)
	stepMinutes := int(step.Minutes())
	if errOpen != nil || errClose != nil || stepMinutes <= 0 {
		return nil
	}

	slots := make([]string, 0, (end-start)/stepMinutes+1)
	for m := start; m <= end; m += stepMinutes {
		slots = append(slots, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return slots
}

// DefaultTimeSlots is the bookable grid for the configured service window.
func DefaultTimeSlots() []string {
	return GenerateTimeSlots(ServiceOpen, ServiceClose, SlotStep)
}
