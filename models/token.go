package models

import "time"

// Token is an opaque API key. A user holds at most one.
type Token struct {
	Key     string    `gorm:"type:varchar(40);primaryKey"`
	UserID  uint      `gorm:"uniqueIndex;not null"`
	User    User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Created time.Time `gorm:"autoCreateTime;not null"`
}

// All lists every model the service migrates.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Token{},
		&Menu{},
		&Booking{},
	}
}
