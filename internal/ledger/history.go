package ledger

import (
	"time"

	"github.com/fairshare/backend/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// HistoryDirection tags who paid a history entry.
type HistoryDirection string

const (
	YouPaid    HistoryDirection = "youPaid"
	FriendPaid HistoryDirection = "friendPaid"
)

// HistoryEntry is one expense in the story between two users. Share is the
// counterparty's share when the subject paid and the subject's share when
// the counterparty paid.
type HistoryEntry struct {
	ExpenseID   uuid.UUID        `json:"expenseId"`
	Description string           `json:"description"`
	Date        time.Time        `json:"date"`
	Total       decimal.Decimal  `json:"total"`
	Share       decimal.Decimal  `json:"share"`
	Direction   HistoryDirection `json:"direction"`
	Narrative   string           `json:"narrative"`
}

var narrativePrinter = message.NewPrinter(language.English)

func amountFormat(d decimal.Decimal) number.Formatter {
	f, _ := d.Round(2).Float64()
	return number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2))
}

// ExpenseHistory projects the expenses between two users into a
// date-descending narrative. It does no balance math.
//
// An expense without a share for the implicated counterparty is a
// data-integrity problem; it is skipped with a warning instead of
// failing the whole history.
func ExpenseHistory(subject, friend uuid.UUID, expenses []models.Expense) []HistoryEntry {
	entries := []HistoryEntry{}

	for _, expense := range expenses {
		var direction HistoryDirection
		var shareHolder uuid.UUID

		switch {
		case expense.PaidByID == subject:
			direction = YouPaid
			shareHolder = friend
		case expense.PaidByID == friend:
			direction = FriendPaid
			shareHolder = subject
		default:
			continue
		}

		share, ok := findShare(expense, shareHolder)
		if !ok {
			log.Warn().
				Str("expense", expense.ID.String()).
				Str("user", shareHolder.String()).
				Msg("expense has no share for an implicated user, skipping history entry")
			continue
		}

		var narrative string
		if direction == YouPaid {
			narrative = narrativePrinter.Sprintf("You paid %v, %s owes %v", amountFormat(expense.Amount), expense.Shares[share].User.Name, amountFormat(expense.Shares[share].Amount))
		} else {
			narrative = narrativePrinter.Sprintf("%s paid %v, your share is %v", expense.Payer.Name, amountFormat(expense.Amount), amountFormat(expense.Shares[share].Amount))
		}

		entries = append(entries, HistoryEntry{
			ExpenseID:   expense.ID,
			Description: expense.Description,
			Date:        expense.Date,
			Total:       expense.Amount.Round(2),
			Share:       expense.Shares[share].Amount.Round(2),
			Direction:   direction,
			Narrative:   narrative,
		})
	}

	slices.SortStableFunc(entries, func(a, b HistoryEntry) int {
		return b.Date.Compare(a.Date)
	})

	return entries
}

// findShare returns the index of the user's share in the expense.
func findShare(expense models.Expense, userID uuid.UUID) (int, bool) {
	for i, share := range expense.Shares {
		if share.UserID == userID {
			return i, true
		}
	}

	return 0, false
}
