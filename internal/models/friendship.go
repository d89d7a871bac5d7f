package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Friendship connects two users so that they can split expenses with
// each other. It is stored once per pair, with the user who sent the
// invitation as UserID.
type Friendship struct {
	DefaultModel
	User     User      `json:"-"`
	UserID   uuid.UUID `gorm:"uniqueIndex:friendship_user_friend"`
	Friend   User      `json:"-"`
	FriendID uuid.UUID `gorm:"uniqueIndex:friendship_user_friend"`
}

// BeforeCreate verifies the friendship is between two distinct, existing
// users and that the inverse pairing does not exist yet.
func (f *Friendship) BeforeCreate(tx *gorm.DB) error {
	_ = f.DefaultModel.BeforeCreate(tx)

	if f.UserID == f.FriendID {
		return ErrFriendshipWithSelf
	}

	err := tx.Where(&User{DefaultModel: DefaultModel{ID: f.UserID}}).First(&User{}).Error
	if err != nil {
		return err
	}

	err = tx.Where(&User{DefaultModel: DefaultModel{ID: f.FriendID}}).First(&User{}).Error
	if err != nil {
		return err
	}

	// The unique index only catches duplicates in the same order
	var count int64
	err = tx.Model(&Friendship{}).
		Where(Friendship{UserID: f.FriendID, FriendID: f.UserID}).
		Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrFriendshipExists
	}

	return nil
}
