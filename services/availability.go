package services

import (
	"fmt"
	"time"

	"github.com/gezana/restaurant-backend/models"
	"gorm.io/gorm"
)

const (
	// SlotDuration is how long one booking occupies a table.
	SlotDuration = 90 * time.Minute

	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

func minuteOfDay(value string) (int, error) {
	t, err := time.Parse(TimeLayout, value)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", value, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// windowsOverlap compares two half-open occupancy windows of SlotDuration
// starting at the given minutes of day.
func windowsOverlap(startA, startB int) bool {
	duration := int(SlotDuration.Minutes())
	return startA < startB+duration && startB < startA+duration
}

// FindAvailableTable picks a table for the requested date, start time and
// party size. Candidates are every table seating at least guests, smallest
// capacity first (ties broken by catalog order); the first one whose
// occupancy window is free of conflicts wins. Returns nil when every
// candidate is taken. Pure read, no side effects.
func FindAvailableTable(db *gorm.DB, date, startTime string, guests int) (*models.Table, error) {
	requested, err := minuteOfDay(startTime)
	if err != nil {
		return nil, err
	}

	var candidates []models.Table
	if err := db.Where("capacity >= ?", guests).
		Order("capacity asc").Order("id asc").
		Find(&candidates).Error; err != nil {
		return nil, err
	}

	for i := range candidates {
		table := &candidates[i]

		var bookings []models.Booking
		if err := db.Where("table_id = ? AND date = ?", table.ID, date).
			Find(&bookings).Error; err != nil {
			return nil, err
		}

		conflict := false
		for _, b := range bookings {
			existing, err := minuteOfDay(b.Time)
			if err != nil {
				continue
			}
			if windowsOverlap(requested, existing) {
				conflict = true
				break
			}
		}
		if !conflict {
			return table, nil
		}
	}

	return nil, nil
}
