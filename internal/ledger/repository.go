// Package ledger reconciles raw expense shares and recorded settlements
// into net per-counterparty balances and proposes payments that settle
// them. It performs no I/O itself; all records come from the injected
// repositories and are treated as a consistent snapshot for the duration
// of one computation.
package ledger

import (
	"github.com/fairshare/backend/internal/models"
	"github.com/google/uuid"
)

// ExpenseRepository provides the expense records the engine aggregates.
// Shares and their users must be preloaded on the returned records.
type ExpenseRepository interface {
	ExpensesForUser(userID uuid.UUID) ([]models.Expense, error)
	ExpensesBetween(userID, friendID uuid.UUID) ([]models.Expense, error)
	ExpensesForGroup(groupID uuid.UUID) ([]models.Expense, error)
}

// SettlementRepository provides the settlement records the engine layers
// on top of the expense balances.
type SettlementRepository interface {
	SettlementsForUser(userID uuid.UUID) ([]models.Settlement, error)
	SettlementsBetween(userID, friendID uuid.UUID) ([]models.Settlement, error)
	SettlementsForGroup(groupID uuid.UUID) ([]models.Settlement, error)
}

// MembershipRepository is the authorization gate for group scoped
// computations.
type MembershipRepository interface {
	IsMember(groupID, userID uuid.UUID) (bool, error)
}

// Calculator computes balances and settlement suggestions from the
// injected repositories.
type Calculator struct {
	expenses    ExpenseRepository
	settlements SettlementRepository
	memberships MembershipRepository
}

func NewCalculator(expenses ExpenseRepository, settlements SettlementRepository, memberships MembershipRepository) *Calculator {
	return &Calculator{
		expenses:    expenses,
		settlements: settlements,
		memberships: memberships,
	}
}
