// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/domain/entity"
)

// TransactionReader is the read-only view of the finance store the engine
// consumes. Implementations must be synchronous and cheap; the engine calls
// them on every recompute of a money-tracked goal.
type TransactionReader interface {
	// ListTransactionsForBudget retrieves all non-deleted transactions tagged
	// to the given budget.
	ListTransactionsForBudget(ctx context.Context, budgetID uuid.UUID) ([]*entity.Transaction, error)
}
