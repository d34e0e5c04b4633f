package models

import "time"

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"type:varchar(150);uniqueIndex;not null"`
	Email     string `gorm:"type:varchar(255)"`
	Password  string `gorm:"type:varchar(255);not null"`
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
