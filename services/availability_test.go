package services

import (
	"testing"

	"github.com/gezana/restaurant-backend/models"
	"github.com/stretchr/testify/assert"
)

func TestWindowsOverlap(t *testing.T) {
	// 90-minute windows, half-open
	assert.True(t, windowsOverlap(720, 720))  // identical start
	assert.True(t, windowsOverlap(720, 750))  // 12:00 vs 12:30
	assert.True(t, windowsOverlap(780, 720))  // 13:00 vs 12:00
	assert.False(t, windowsOverlap(720, 810)) // 12:00 vs 13:30, adjacent
	assert.False(t, windowsOverlap(810, 720))
	assert.False(t, windowsOverlap(720, 900)) // 12:00 vs 15:00
}

func TestFindAvailableTableSmallestFit(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	table, err := FindAvailableTable(db, "2026-09-05", "18:00", 4)
	assert.NoError(t, err)
	if assert.NotNil(t, table) {
		// Smallest sufficient table, ties broken by catalog order
		assert.Equal(t, "T3", table.TableNumber)
		assert.GreaterOrEqual(t, table.Capacity, 4)
	}
}

func TestFindAvailableTableSkipsBookedTable(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	var t3 models.Table
	assert.NoError(t, db.Where("table_number = ?", "T3").First(&t3).Error)
	db.Create(&models.Booking{
		Name: "Alice", Phone: "5551234567", Guests: 4,
		Date: "2026-09-05", Time: "13:00", TableID: &t3.ID, Reference: "AAAA1111",
	})

	// 12:00 falls inside T3's 13:00-14:30 window -> next candidate
	table, err := FindAvailableTable(db, "2026-09-05", "12:00", 4)
	assert.NoError(t, err)
	if assert.NotNil(t, table) {
		assert.Equal(t, "T4", table.TableNumber)
	}

	// 14:30 starts exactly when T3 frees up (half-open window)
	table, err = FindAvailableTable(db, "2026-09-05", "14:30", 4)
	assert.NoError(t, err)
	if assert.NotNil(t, table) {
		assert.Equal(t, "T3", table.TableNumber)
	}

	// 11:30 ends exactly when T3's booking starts
	table, err = FindAvailableTable(db, "2026-09-05", "11:30", 4)
	assert.NoError(t, err)
	if assert.NotNil(t, table) {
		assert.Equal(t, "T3", table.TableNumber)
	}
}

func TestFindAvailableTableOtherDateUnaffected(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	var t3 models.Table
	assert.NoError(t, db.Where("table_number = ?", "T3").First(&t3).Error)
	db.Create(&models.Booking{
		Name: "Alice", Phone: "5551234567", Guests: 4,
		Date: "2026-09-05", Time: "13:00", TableID: &t3.ID, Reference: "AAAA1111",
	})

	table, err := FindAvailableTable(db, "2026-09-06", "13:00", 4)
	assert.NoError(t, err)
	if assert.NotNil(t, table) {
		assert.Equal(t, "T3", table.TableNumber)
	}
}

func TestFindAvailableTableNoCandidate(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	table, err := FindAvailableTable(db, "2026-09-05", "18:00", 20)
	assert.NoError(t, err)
	assert.Nil(t, table)
}

func TestFindAvailableTableNeverUndersized(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	for guests := 1; guests <= 8; guests++ {
		table, err := FindAvailableTable(db, "2026-09-05", "12:00", guests)
		assert.NoError(t, err)
		if assert.NotNil(t, table, "guests=%d", guests) {
			assert.GreaterOrEqual(t, table.Capacity, guests)
		}
	}
}

func TestFindAvailableTableFullHouse(t *testing.T) {
	db := setupTestDB(t)
	db.Create(&models.Table{TableNumber: "S1", Capacity: 2})

	var s1 models.Table
	assert.NoError(t, db.First(&s1).Error)
	db.Create(&models.Booking{
		Name: "Bob", Phone: "5551234567", Guests: 2,
		Date: "2026-09-05", Time: "18:00", TableID: &s1.ID, Reference: "BBBB2222",
	})

	table, err := FindAvailableTable(db, "2026-09-05", "18:30", 2)
	assert.NoError(t, err)
	assert.Nil(t, table)
}
