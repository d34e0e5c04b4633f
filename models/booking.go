package models

import "time"

// Booking belongs to the user whose username equals Name.
type Booking struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"type:varchar(255);not null;index"`
	NoOfGuests  int       `gorm:"not null"`
	BookingDate time.Time `gorm:"type:date;not null"`
	CreatedAt   time.Time `gorm:"not null"`
}
