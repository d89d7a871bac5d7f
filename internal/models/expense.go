package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SplitType determines how an expense is divided between its participants.
type SplitType string

const (
	SplitEqual      SplitType = "equal"
	SplitPercentage SplitType = "percentage"
	SplitExact      SplitType = "exact"
)

// Expense represents money one user paid on behalf of a set of participants.
type Expense struct {
	DefaultModel
	Description string
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Date        time.Time
	CreatedBy   User       `json:"-"`
	CreatedByID uuid.UUID  `json:"createdById"`
	Payer       User       `json:"-" gorm:"foreignKey:PaidByID"`
	PaidByID    uuid.UUID  `json:"paidById"`
	SplitType   SplitType  `gorm:"default:equal"`
	GroupID     *uuid.UUID `json:"groupId"`
	Group       *Group     `json:"-"`
	Shares      []ExpenseShare
}

// ExpenseShare is the portion of one expense attributed to one participant.
// The paying participant's share is marked as paid on creation.
type ExpenseShare struct {
	DefaultModel
	Expense   Expense   `json:"-"`
	ExpenseID uuid.UUID `json:"expenseId"`
	User      User      `json:"-"`
	UserID    uuid.UUID `json:"userId"`
	Amount    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	IsPaid    bool
}

// BeforeSave validates the split type and trims whitespace.
func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.Description = strings.TrimSpace(e.Description)

	if e.SplitType == "" {
		e.SplitType = SplitEqual
	}

	if e.SplitType != SplitEqual && e.SplitType != SplitPercentage && e.SplitType != SplitExact {
		return ErrSplitTypeInvalid
	}

	if e.Date.IsZero() {
		e.Date = time.Now().In(time.UTC)
	} else {
		e.Date = e.Date.In(time.UTC)
	}

	return nil
}

// AfterSave validates the amount.
func (e *Expense) AfterSave(_ *gorm.DB) error {
	if !e.Amount.IsPositive() {
		return ErrExpenseAmountNotPositive
	}

	return nil
}

// BeforeCreate verifies references to other resources.
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	_ = e.DefaultModel.BeforeCreate(tx)

	err := tx.First(&User{}, e.CreatedByID).Error
	if err != nil {
		return err
	}

	err = tx.First(&User{}, e.PaidByID).Error
	if err != nil {
		return err
	}

	if e.GroupID != nil {
		return tx.First(&Group{}, *e.GroupID).Error
	}

	return nil
}

// BeforeDelete removes the shares together with their expense.
func (e *Expense) BeforeDelete(tx *gorm.DB) error {
	return tx.Where(ExpenseShare{ExpenseID: e.ID}).Delete(&ExpenseShare{}).Error
}

// AfterFind updates the date to use UTC as timezone, see DefaultModel.AfterFind.
func (e *Expense) AfterFind(tx *gorm.DB) error {
	err := e.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	e.Date = e.Date.In(time.UTC)
	return nil
}

// SplitEqually computes one share per participant with the expense amount
// divided equally. Shares are rounded to cents; the payer's share absorbs
// the rounding residual so that the shares always sum to the exact amount.
// If the payer does not participate, the last participant absorbs it.
func (e Expense) SplitEqually(participants []uuid.UUID) ([]ExpenseShare, error) {
	if e.SplitType != SplitEqual {
		return nil, ErrSplitTypeUnsupported
	}

	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}

	each := e.Amount.Div(decimal.NewFromInt(int64(len(participants)))).Round(2)

	residualIndex := len(participants) - 1
	for i, id := range participants {
		if id == e.PaidByID {
			residualIndex = i
		}
	}

	others := decimal.NewFromInt(int64(len(participants) - 1))

	shares := make([]ExpenseShare, 0, len(participants))
	for i, id := range participants {
		amount := each
		if i == residualIndex {
			amount = e.Amount.Sub(each.Mul(others))
		}

		shares = append(shares, ExpenseShare{
			ExpenseID: e.ID,
			UserID:    id,
			Amount:    amount,
			IsPaid:    id == e.PaidByID,
		})
	}

	return shares, nil
}

// CreateWithShares writes the expense and its computed shares atomically.
func (e *Expense) CreateWithShares(db *gorm.DB, participants []uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Create(e).Error
		if err != nil {
			return err
		}

		shares, err := e.SplitEqually(participants)
		if err != nil {
			return err
		}

		err = tx.Create(&shares).Error
		if err != nil {
			return err
		}

		e.Shares = shares
		return nil
	})
}

// SaveWithShares updates the expense. The shares are deleted and recreated
// since a changed amount or participant set invalidates all of them.
func (e *Expense) SaveWithShares(db *gorm.DB, participants []uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where(ExpenseShare{ExpenseID: e.ID}).Delete(&ExpenseShare{}).Error
		if err != nil {
			return err
		}

		err = tx.Omit("Shares").Save(e).Error
		if err != nil {
			return err
		}

		shares, err := e.SplitEqually(participants)
		if err != nil {
			return err
		}

		err = tx.Create(&shares).Error
		if err != nil {
			return err
		}

		e.Shares = shares
		return nil
	})
}
