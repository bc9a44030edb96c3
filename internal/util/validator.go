package util

import (
	"fmt"
	"time"

	"finance-manager/internal/models"

	"github.com/shopspring/decimal"
)

// maxAmount caps amounts to what a decimal(15,2) column can hold.
var maxAmount = decimal.RequireFromString("10000000000000")

// ValidateAmount verifies the amount is a non-negative monetary value
// within the storable range. Zero is allowed; the kind alone decides
// whether a record is income or expense.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("amount must not be negative, got %s", amount)
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return fmt.Errorf("amount too large, got %s", amount)
	}
	return nil
}

// ValidateCategory verifies the category is present and of sane length.
func ValidateCategory(category string) error {
	if category == "" {
		return fmt.Errorf("category is empty")
	}
	if len(category) > 100 {
		return fmt.Errorf("category too long, max 100 characters")
	}
	return nil
}

// ValidateKind verifies the kind is income or expense.
func ValidateKind(kind string) error {
	if !models.ValidKind(kind) {
		return fmt.Errorf("kind must be income or expense, got %q", kind)
	}
	return nil
}

// dateLayouts are the accepted occurred-on formats, most specific first.
var dateLayouts = []string{
	time.RFC3339,          // 2025-01-10T00:00:00+07:00
	"2006-01-02T15:04:05", // 2025-01-10T00:00:00
	"2006-01-02",          // 2025-01-10
}

// ParseDate parses a transaction date and truncates it to the calendar day.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOnly(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format: %q", s)
}

// DateOnly strips the time component, keeping only the calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
