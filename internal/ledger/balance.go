package ledger

import (
	"github.com/fairshare/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Balance is the derived net position of one counterparty. Positive means
// the counterparty owes the subject, negative means the subject owes the
// counterparty. This sign convention is load-bearing for every consumer.
type Balance struct {
	UserID  uuid.UUID       `json:"id"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Balance decimal.Decimal `json:"balance"`
}

// balanceSet accumulates balances keyed by user. Iteration order is the
// order users were first seen, tracked separately since map iteration is
// not deterministic.
type balanceSet struct {
	order   []uuid.UUID
	users   map[uuid.UUID]models.User
	amounts map[uuid.UUID]decimal.Decimal
}

func newBalanceSet() *balanceSet {
	return &balanceSet{
		users:   make(map[uuid.UUID]models.User),
		amounts: make(map[uuid.UUID]decimal.Decimal),
	}
}

func (s *balanceSet) add(user models.User, delta decimal.Decimal) {
	if _, ok := s.amounts[user.ID]; !ok {
		s.order = append(s.order, user.ID)
		s.users[user.ID] = user
		s.amounts[user.ID] = decimal.Zero
	}

	s.amounts[user.ID] = s.amounts[user.ID].Add(delta)
}

// clone returns an independent copy so that layering settlements does not
// mutate the expense-only set.
func (s *balanceSet) clone() *balanceSet {
	c := newBalanceSet()
	for _, id := range s.order {
		c.add(s.users[id], s.amounts[id])
	}

	return c
}

// get returns the accumulated amount for one user, zero if unknown.
func (s *balanceSet) get(userID uuid.UUID) decimal.Decimal {
	return s.amounts[userID]
}

// balances returns the set in insertion order, rounded to cents. Rounding
// happens exactly once here; all accumulation is exact.
func (s *balanceSet) balances() []Balance {
	result := make([]Balance, 0, len(s.order))
	for _, id := range s.order {
		user := s.users[id]
		result = append(result, Balance{
			UserID:  user.ID,
			Name:    user.Name,
			Email:   user.Email,
			Balance: s.amounts[id].Round(2),
		})
	}

	return result
}

// computeExpenseBalances aggregates the subject's expenses into one balance
// per counterparty.
//
// For every expense the subject paid, each other participant owes their
// share. For every expense a counterparty paid, the subject owes their own
// share. A participant's share of their own payment never contributes.
func computeExpenseBalances(subject uuid.UUID, expenses []models.Expense) *balanceSet {
	set := newBalanceSet()

	for _, expense := range expenses {
		if expense.PaidByID == subject {
			for _, share := range expense.Shares {
				if share.UserID == subject {
					continue
				}

				set.add(share.User, share.Amount)
			}

			continue
		}

		for _, share := range expense.Shares {
			if share.UserID == subject {
				set.add(expense.Payer, share.Amount.Neg())
			}
		}
	}

	return set
}

// applySettlements layers recorded payments on top of expense balances and
// returns a new set, leaving the input untouched.
//
// A settlement the subject paid moves their position with the receiver in
// the positive direction, a settlement the subject received moves their
// position with the payer in the negative direction. Counterparties known
// only through settlements enter the set with a zero expense contribution.
func applySettlements(set *balanceSet, subject uuid.UUID, settlements []models.Settlement) *balanceSet {
	net := set.clone()

	for _, settlement := range settlements {
		switch subject {
		case settlement.PayerID:
			net.add(settlement.Receiver, settlement.Amount)
		case settlement.ReceiverID:
			net.add(settlement.Payer, settlement.Amount.Neg())
		}
	}

	return net
}

// computeGroupBalances aggregates all of a group's expenses into one
// running balance per member.
//
// This is not pairwise: every expense credits the payer with what the
// others owe them and debits each share. A member's balance is their net
// position against the group as a whole; turning that into concrete
// payments is the suggestion engine's job. Settlements are not netted out
// here.
func computeGroupBalances(expenses []models.Expense) *balanceSet {
	set := newBalanceSet()

	for _, expense := range expenses {
		set.add(expense.Payer, expense.Amount)

		for _, share := range expense.Shares {
			set.add(share.User, share.Amount.Neg())
		}
	}

	return set
}
