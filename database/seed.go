package database

import (
	"github.com/gezana/restaurant-backend/models"
	"github.com/gezana/restaurant-backend/utils"
	"gorm.io/gorm"
)

// Seed fills an empty database with the physical table layout and the
// default menu categories. Existing rows are left untouched, so running
// it at every boot is safe.
func Seed(db *gorm.DB) error {
	var tableCount int64
	if err := db.Model(&models.Table{}).Count(&tableCount).Error; err != nil {
		return err
	}
	if tableCount == 0 {
		tables := []models.Table{
			{TableNumber: "T1", Capacity: 2},
			{TableNumber: "T2", Capacity: 2},
			{TableNumber: "T3", Capacity: 4},
			{TableNumber: "T4", Capacity: 4},
			{TableNumber: "T5", Capacity: 6},
			{TableNumber: "T6", Capacity: 6},
			{TableNumber: "T7", Capacity: 8},
		}
		if err := db.Create(&tables).Error; err != nil {
			return err
		}
		utils.InfoLogger.Printf("Seeded %d tables", len(tables))
	}

	var categoryCount int64
	if err := db.Model(&models.MenuCategory{}).Count(&categoryCount).Error; err != nil {
		return err
	}
	if categoryCount == 0 {
		categories := []models.MenuCategory{
			{Name: "Starter"},
			{Name: "Main Course"},
			{Name: "Side Dish"},
			{Name: "Dessert"},
			{Name: "Drink"},
		}
		if err := db.Create(&categories).Error; err != nil {
			return err
		}
		utils.InfoLogger.Printf("Seeded %d menu categories", len(categories))
	}

	return nil
}
