package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// Party identifies one side of a suggested payment.
type Party struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// Suggestion is a proposed payment that reduces outstanding balances
// toward zero.
type Suggestion struct {
	From   Party           `json:"from"`
	To     Party           `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// Balances below one cent count as settled.
var centTolerance = decimal.New(1, -2)

func party(b Balance) Party {
	return Party{
		ID:    b.UserID,
		Name:  b.Name,
		Email: b.Email,
	}
}

// SuggestSettlements greedily matches debtors to creditors so that every
// balance ends below one cent.
//
// Creditors are walked in descending, debtors in ascending (most negative
// first) order; each step transfers the smaller of the two open amounts
// and advances a cursor once its side is settled. This fully resolves at
// least one party per step, but is a heuristic, not a minimum transaction
// count solver. The sorts are stable so that identical input, including
// ties, always yields the identical suggestion list.
func SuggestSettlements(balances []Balance) []Suggestion {
	var creditors, debtors []Balance
	for _, balance := range balances {
		if balance.Balance.IsPositive() {
			creditors = append(creditors, balance)
		} else if balance.Balance.IsNegative() {
			debtors = append(debtors, balance)
		}
	}

	slices.SortStableFunc(creditors, func(a, b Balance) int {
		return b.Balance.Cmp(a.Balance)
	})
	slices.SortStableFunc(debtors, func(a, b Balance) int {
		return a.Balance.Cmp(b.Balance)
	})

	suggestions := []Suggestion{}

	i, j := 0, 0
	for i < len(creditors) && j < len(debtors) {
		payment := decimal.Min(creditors[i].Balance, debtors[j].Balance.Neg()).Round(2)

		if payment.IsPositive() {
			suggestions = append(suggestions, Suggestion{
				From:   party(debtors[j]),
				To:     party(creditors[i]),
				Amount: payment,
			})
		}

		creditors[i].Balance = creditors[i].Balance.Sub(payment)
		debtors[j].Balance = debtors[j].Balance.Add(payment)

		if creditors[i].Balance.Abs().LessThan(centTolerance) {
			i++
		}

		if debtors[j].Balance.Abs().LessThan(centTolerance) {
			j++
		}
	}

	return suggestions
}

// PaymentDirection tags one list of a payment overview.
type PaymentDirection string

const (
	DirectionPay     PaymentDirection = "youShouldPay"
	DirectionReceive PaymentDirection = "youShouldReceive"
)

// Payment is one entry of a payment overview. From is set for payments the
// subject should receive, To for payments the subject should make.
type Payment struct {
	From   *Party          `json:"from,omitempty"`
	To     *Party          `json:"to,omitempty"`
	Amount decimal.Decimal `json:"amount"`
}

// SuggestionGroup is one direction of a payment overview.
type SuggestionGroup struct {
	Type     PaymentDirection `json:"type"`
	Payments []Payment        `json:"payments"`
}

// groupPayments partitions the subject's balances into payments to make
// and payments to expect. No matching happens here since every balance
// already involves the subject directly. Both lists are sorted by
// descending magnitude.
func groupPayments(balances []Balance) []SuggestionGroup {
	pay := []Payment{}
	receive := []Payment{}

	sorted := slices.Clone(balances)
	slices.SortStableFunc(sorted, func(a, b Balance) int {
		return b.Balance.Abs().Cmp(a.Balance.Abs())
	})

	for _, balance := range sorted {
		p := party(balance)

		if balance.Balance.IsNegative() {
			pay = append(pay, Payment{
				To:     &p,
				Amount: balance.Balance.Neg(),
			})
		} else if balance.Balance.IsPositive() {
			receive = append(receive, Payment{
				From:   &p,
				Amount: balance.Balance,
			})
		}
	}

	return []SuggestionGroup{
		{Type: DirectionPay, Payments: pay},
		{Type: DirectionReceive, Payments: receive},
	}
}
