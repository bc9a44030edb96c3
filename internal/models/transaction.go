package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction kinds. Every record is exactly one of the two.
const (
	KindIncome  = "income"
	KindExpense = "expense"
)

// Transaction represents a single income or expense record.
// Amounts are stored as decimal(15,2) to avoid float drift on money.
type Transaction struct {
	ID         uint            `gorm:"primaryKey"`
	UserID     uint            `gorm:"index;not null"`
	Category   string          `gorm:"size:100;not null"`
	Kind       string          `gorm:"column:type;size:16;index;not null"` // income / expense
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Note       string          `gorm:"type:text"`
	OccurredOn time.Time       `gorm:"type:date;index;not null"` // calendar date, no time component
	CreatedAt  time.Time
	UpdatedAt  time.Time

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// ValidKind reports whether s is one of the two transaction kinds.
func ValidKind(s string) bool {
	return s == KindIncome || s == KindExpense
}
