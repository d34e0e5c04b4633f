package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Menu struct {
	ID        uint            `gorm:"primaryKey"`
	Title     string          `gorm:"type:varchar(255);not null"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Inventory int             `gorm:"not null"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

func (m Menu) String() string {
	return fmt.Sprintf("%s: $%s", m.Title, m.Price.String())
}
