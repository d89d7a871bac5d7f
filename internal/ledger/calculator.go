package ledger

import (
	"github.com/fairshare/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FriendDetail is the balance with one counterparty plus the expense
// history it is derived from.
type FriendDetail struct {
	Balance decimal.Decimal `json:"balance"`
	History []HistoryEntry  `json:"expenseHistory"`
}

// NetBalance breaks the position with one counterparty into its expense
// and settlement components. NetBalance = OriginalBalance +
// SettlementBalance; callers display the components distinctly.
type NetBalance struct {
	OriginalBalance   decimal.Decimal     `json:"originalBalance"`
	SettlementBalance decimal.Decimal     `json:"settlementBalance"`
	NetBalance        decimal.Decimal     `json:"netBalance"`
	Settlements       []models.Settlement `json:"settlements"`
}

// FriendBalances returns the subject's net balance with every
// counterparty, settlements included. Counterparties known only through
// settlements appear with a zero expense contribution.
func (c *Calculator) FriendBalances(userID uuid.UUID) ([]Balance, error) {
	expenses, err := c.expenses.ExpensesForUser(userID)
	if err != nil {
		return nil, err
	}

	settlements, err := c.settlements.SettlementsForUser(userID)
	if err != nil {
		return nil, err
	}

	net := applySettlements(computeExpenseBalances(userID, expenses), userID, settlements)
	return net.balances(), nil
}

// BalanceWithFriend returns the net balance with one counterparty,
// settlements included, together with the expense history.
func (c *Calculator) BalanceWithFriend(userID, friendID uuid.UUID) (FriendDetail, error) {
	expenses, err := c.expenses.ExpensesBetween(userID, friendID)
	if err != nil {
		return FriendDetail{}, err
	}

	settlements, err := c.settlements.SettlementsBetween(userID, friendID)
	if err != nil {
		return FriendDetail{}, err
	}

	net := applySettlements(computeExpenseBalances(userID, expenses), userID, settlements)

	return FriendDetail{
		Balance: net.get(friendID).Round(2),
		History: ExpenseHistory(userID, friendID, expenses),
	}, nil
}

// ExpenseOnlyBalanceWithFriend returns the balance with one counterparty
// from expenses alone, ignoring settlements.
func (c *Calculator) ExpenseOnlyBalanceWithFriend(userID, friendID uuid.UUID) (FriendDetail, error) {
	expenses, err := c.expenses.ExpensesBetween(userID, friendID)
	if err != nil {
		return FriendDetail{}, err
	}

	set := computeExpenseBalances(userID, expenses)

	return FriendDetail{
		Balance: set.get(friendID).Round(2),
		History: ExpenseHistory(userID, friendID, expenses),
	}, nil
}

// NetBalanceWithSettlements returns the position with one counterparty
// broken into its expense and settlement components.
func (c *Calculator) NetBalanceWithSettlements(userID, friendID uuid.UUID) (NetBalance, error) {
	expenses, err := c.expenses.ExpensesBetween(userID, friendID)
	if err != nil {
		return NetBalance{}, err
	}

	settlements, err := c.settlements.SettlementsBetween(userID, friendID)
	if err != nil {
		return NetBalance{}, err
	}

	original := computeExpenseBalances(userID, expenses)
	net := applySettlements(original, userID, settlements)

	originalBalance := original.get(friendID).Round(2)
	netBalance := net.get(friendID).Round(2)

	return NetBalance{
		OriginalBalance:   originalBalance,
		SettlementBalance: netBalance.Sub(originalBalance),
		NetBalance:        netBalance,
		Settlements:       settlements,
	}, nil
}

// PaymentSuggestions partitions the subject's net balances into payments
// to make and payments to expect.
func (c *Calculator) PaymentSuggestions(userID uuid.UUID) ([]SuggestionGroup, error) {
	balances, err := c.FriendBalances(userID)
	if err != nil {
		return nil, err
	}

	return groupPayments(balances), nil
}

// GroupBalances returns every group member's net position against the
// group as a whole, from the group's expenses. Settlements are not netted
// out here; they only enter group math through the suggestion engine's
// consumers recording them as new settlements.
func (c *Calculator) GroupBalances(groupID uuid.UUID) ([]Balance, error) {
	expenses, err := c.expenses.ExpensesForGroup(groupID)
	if err != nil {
		return nil, err
	}

	return computeGroupBalances(expenses).balances(), nil
}

// GroupSettlementSuggestions returns the greedy payment sequence that
// settles the group's balances. The requesting user must be a member of
// the group.
func (c *Calculator) GroupSettlementSuggestions(groupID, requestingUserID uuid.UUID) ([]Suggestion, error) {
	member, err := c.memberships.IsMember(groupID, requestingUserID)
	if err != nil {
		return nil, err
	}

	if !member {
		return nil, models.ErrNotGroupMember
	}

	balances, err := c.GroupBalances(groupID)
	if err != nil {
		return nil, err
	}

	return SuggestSettlements(balances), nil
}
