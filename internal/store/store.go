// Package store owns durable, validated storage of transaction records,
// partitioned by owner. Alternative engines sit behind TransactionStore;
// one concrete adapter is wired per deployment.
package store

import (
	"errors"
	"fmt"
	"time"

	"finance-manager/internal/models"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when no record matches the given id for
	// the given owner.
	ErrNotFound = errors.New("transaction not found")

	// ErrEmptyBatch is returned when a bulk insert carries no rows.
	ErrEmptyBatch = errors.New("no transaction data")
)

// FieldError reports which input field failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// TransactionInput carries the caller-supplied fields of a new record.
// The owner is never part of the input; it always comes from the
// authenticated identity.
type TransactionInput struct {
	Category   string
	Kind       string
	Amount     decimal.Decimal
	Note       string
	OccurredOn time.Time
}

// TransactionUpdate carries a partial update; nil fields keep the stored
// value. ID and owner are immutable.
type TransactionUpdate struct {
	Category   *string
	Kind       *string
	Amount     *decimal.Decimal
	Note       *string
	OccurredOn *time.Time
}

// TransactionStore is the ledger storage contract.
type TransactionStore interface {
	Create(ownerID uint, in TransactionInput) (*models.Transaction, error)
	BulkCreate(ownerID uint, ins []TransactionInput) ([]models.Transaction, error)
	ListByOwner(ownerID uint) ([]models.Transaction, error)
	Update(id, ownerID uint, upd TransactionUpdate) (*models.Transaction, error)
	Delete(id, ownerID uint) error
}
