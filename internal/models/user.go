package models

import (
	"strings"

	"gorm.io/gorm"
)

// User represents a person participating in expenses and settlements.
type User struct {
	DefaultModel
	Name  string
	Email string `gorm:"uniqueIndex:user_email"`
	Note  string
}

// BeforeSave trims whitespace from all strings.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)
	u.Note = strings.TrimSpace(u.Note)

	return nil
}
