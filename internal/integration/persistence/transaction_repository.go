// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/life-planner/backend/internal/application/adapter"
	"github.com/life-planner/backend/internal/domain/entity"
	"github.com/life-planner/backend/internal/integration/persistence/model"
)

// TransactionRepository stores finance transactions and serves the engine's
// read-only accessor.
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{
		db: db,
	}
}

var _ adapter.TransactionReader = (*TransactionRepository)(nil)

// Create records a new transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx *entity.Transaction) error {
	txModel := model.TransactionFromEntity(tx)
	result := r.db.WithContext(ctx).Create(txModel)
	return result.Error
}

// Update saves changes to an existing transaction.
func (r *TransactionRepository) Update(ctx context.Context, tx *entity.Transaction) error {
	txModel := model.TransactionFromEntity(tx)
	result := r.db.WithContext(ctx).Save(txModel)
	return result.Error
}

// Delete soft-deletes a transaction.
func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.TransactionModel{}, "id = ?", id)
	return result.Error
}

// ListTransactionsForBudget retrieves all non-deleted transactions tagged to
// the given budget.
func (r *TransactionRepository) ListTransactionsForBudget(ctx context.Context, budgetID uuid.UUID) ([]*entity.Transaction, error) {
	var txModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("budget_id = ?", budgetID).
		Order("date ASC").
		Find(&txModels)
	if result.Error != nil {
		return nil, result.Error
	}

	txs := make([]*entity.Transaction, len(txModels))
	for i, m := range txModels {
		txs[i] = m.ToEntity()
	}
	return txs, nil
}
