package models

import "time"

type Menu struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	CategoryID   uint         `gorm:"not null" json:"category_id"`
	Category     MenuCategory `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category"`
	Name         string       `gorm:"type:varchar(255);not null" json:"name"`
	Description  string       `gorm:"type:text" json:"description"`
	Ingredients  string       `gorm:"type:text" json:"ingredients"`
	Price        float64      `gorm:"type:decimal(10,2);not null" json:"price"`
	IsVegetarian bool         `gorm:"default:false" json:"is_vegetarian"`
	IsPopular    bool         `gorm:"default:false" json:"is_popular"`
	IsNew        bool         `gorm:"default:false" json:"is_new"`
	IsChefChoice bool         `gorm:"default:false" json:"is_chef_choice"`
	ImageUrl     *string      `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	CreatedAt    time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null" json:"updated_at"`
}
