package store

import (
	"errors"
	"fmt"

	"finance-manager/internal/models"
	"finance-manager/internal/util"

	"gorm.io/gorm"
)

// GormStore is the relational TransactionStore adapter.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// validateInput applies the field-level rules shared by Create, BulkCreate
// and Update.
func validateInput(in TransactionInput) error {
	if err := util.ValidateCategory(in.Category); err != nil {
		return &FieldError{Field: "category", Reason: err.Error()}
	}
	if err := util.ValidateKind(in.Kind); err != nil {
		return &FieldError{Field: "kind", Reason: err.Error()}
	}
	if err := util.ValidateAmount(in.Amount); err != nil {
		return &FieldError{Field: "amount", Reason: err.Error()}
	}
	if in.OccurredOn.IsZero() {
		return &FieldError{Field: "occurredOn", Reason: "date is required"}
	}
	return nil
}

func fromInput(ownerID uint, in TransactionInput) models.Transaction {
	return models.Transaction{
		UserID:     ownerID,
		Category:   in.Category,
		Kind:       in.Kind,
		Amount:     in.Amount,
		Note:       in.Note,
		OccurredOn: util.DateOnly(in.OccurredOn),
	}
}

func (s *GormStore) Create(ownerID uint, in TransactionInput) (*models.Transaction, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	tx := fromInput(ownerID, in)
	if err := s.db.Create(&tx).Error; err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	return &tx, nil
}

// BulkCreate validates every row, then inserts the batch inside one
// database transaction so a half-imported spreadsheet can never persist.
func (s *GormStore) BulkCreate(ownerID uint, ins []TransactionInput) ([]models.Transaction, error) {
	if len(ins) == 0 {
		return nil, ErrEmptyBatch
	}

	txs := make([]models.Transaction, 0, len(ins))
	for i, in := range ins {
		if err := validateInput(in); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		txs = append(txs, fromInput(ownerID, in))
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&txs).Error
	})
	if err != nil {
		return nil, fmt.Errorf("bulk create transactions: %w", err)
	}
	return txs, nil
}

// ListByOwner returns the owner's full ledger, most recent date first.
// Ties in date break by insertion order.
func (s *GormStore) ListByOwner(ownerID uint) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := s.db.
		Where("user_id = ?", ownerID).
		Order("occurred_on DESC, id DESC").
		Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// Update merges the supplied fields into the stored record. The lookup is
// scoped by owner, so a miss on someone else's id reads as not-found.
func (s *GormStore) Update(id, ownerID uint, upd TransactionUpdate) (*models.Transaction, error) {
	var tx models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", id, ownerID).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find transaction: %w", err)
	}

	if upd.Category != nil {
		tx.Category = *upd.Category
	}
	if upd.Kind != nil {
		tx.Kind = *upd.Kind
	}
	if upd.Amount != nil {
		tx.Amount = *upd.Amount
	}
	if upd.Note != nil {
		tx.Note = *upd.Note
	}
	if upd.OccurredOn != nil {
		tx.OccurredOn = util.DateOnly(*upd.OccurredOn)
	}

	merged := TransactionInput{
		Category:   tx.Category,
		Kind:       tx.Kind,
		Amount:     tx.Amount,
		Note:       tx.Note,
		OccurredOn: tx.OccurredOn,
	}
	if err := validateInput(merged); err != nil {
		return nil, err
	}

	if err := s.db.Save(&tx).Error; err != nil {
		return nil, fmt.Errorf("save transaction: %w", err)
	}
	return &tx, nil
}

func (s *GormStore) Delete(id, ownerID uint) error {
	res := s.db.Where("id = ? AND user_id = ?", id, ownerID).Delete(&models.Transaction{})
	if res.Error != nil {
		return fmt.Errorf("delete transaction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
