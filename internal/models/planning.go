package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a per-category spending limit for one user.
type Budget struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"index;not null" json:"ownerId"`
	Category  string          `gorm:"size:100;not null" json:"category"`
	Limit     decimal.Decimal `gorm:"column:limit_amount;type:decimal(15,2);not null" json:"limit"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Saving is a named savings pot with a running balance.
type Saving struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"index;not null" json:"ownerId"`
	Name      string          `gorm:"size:100;not null" json:"name"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Goal is a savings target with optional deadline.
type Goal struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"index;not null" json:"ownerId"`
	Name      string          `gorm:"size:100;not null" json:"name"`
	Target    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"target"`
	Saved     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"saved"`
	Deadline  *time.Time      `gorm:"type:date" json:"deadline,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
