// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is a raw finance fact as stored by the finance subsystem.
// Amounts keep the currency they were recorded in; normalization to a goal's
// currency happens at recompute time through the conversion service.
type Transaction struct {
	ID          uuid.UUID
	BudgetID    *uuid.UUID // optional link to the budget the spend counts against
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Currency    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft-delete support
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(budgetID *uuid.UUID, date time.Time, description string, amount decimal.Decimal, currency string) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		BudgetID:    budgetID,
		Date:        date,
		Description: description,
		Amount:      amount,
		Currency:    currency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
