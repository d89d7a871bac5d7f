package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Settlement records money that actually changed hands between two users,
// independent of any specific expense. Except for the notes, it is
// immutable once recorded.
type Settlement struct {
	DefaultModel
	Payer      User      `json:"-"`
	PayerID    uuid.UUID `json:"payerId"`
	Receiver   User      `json:"-"`
	ReceiverID uuid.UUID `json:"receiverId" gorm:"check:payer_receiver_different,payer_id <> receiver_id"`
	Amount     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Date       time.Time
	Notes      string
	GroupID    *uuid.UUID `json:"groupId"`
	Group      *Group     `json:"-"`
}

// BeforeSave trims whitespace and sets the date.
func (s *Settlement) BeforeSave(_ *gorm.DB) error {
	s.Notes = strings.TrimSpace(s.Notes)

	if s.PayerID == s.ReceiverID {
		return ErrSettlementWithSelf
	}

	if s.Date.IsZero() {
		s.Date = time.Now().In(time.UTC)
	} else {
		s.Date = s.Date.In(time.UTC)
	}

	return nil
}

// AfterSave validates the amount.
func (s *Settlement) AfterSave(_ *gorm.DB) error {
	if !s.Amount.IsPositive() {
		return ErrSettlementAmountNotPositive
	}

	return nil
}

// BeforeCreate verifies references to other resources.
func (s *Settlement) BeforeCreate(tx *gorm.DB) error {
	_ = s.DefaultModel.BeforeCreate(tx)

	err := tx.First(&User{}, s.PayerID).Error
	if err != nil {
		return err
	}

	err = tx.First(&User{}, s.ReceiverID).Error
	if err != nil {
		return err
	}

	if s.GroupID != nil {
		return tx.First(&Group{}, *s.GroupID).Error
	}

	return nil
}

// IsParty reports whether the user is the payer or the receiver.
func (s Settlement) IsParty(userID uuid.UUID) bool {
	return s.PayerID == userID || s.ReceiverID == userID
}

// AfterFind updates the date to use UTC as timezone, see DefaultModel.AfterFind.
func (s *Settlement) AfterFind(tx *gorm.DB) error {
	err := s.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	s.Date = s.Date.In(time.UTC)
	return nil
}
