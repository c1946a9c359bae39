package models

import "time"

// Booking holds one reservation. Date and Time are stored as plain
// "2006-01-02" / "15:04" strings so MySQL and SQLite behave the same.
type Booking struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Email     *string   `gorm:"type:varchar(255)" json:"email,omitempty"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Guests    int       `gorm:"not null" json:"guests"`
	Date      string    `gorm:"type:varchar(10);not null;index" json:"date"`
	Time      string    `gorm:"type:varchar(5);not null" json:"time"`
	TableID   *uint     `gorm:"index" json:"table_id,omitempty"`
	Table     *Table    `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"table,omitempty"`
	Reference string    `gorm:"type:varchar(8);uniqueIndex;not null" json:"reference"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
