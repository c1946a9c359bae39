package models

import "time"

type Table struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TableNumber string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"table_number"`
	Capacity    int       `gorm:"not null" json:"capacity"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
