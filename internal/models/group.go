package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Group is a collection of users sharing expenses, e.g. a flat or a trip.
type Group struct {
	DefaultModel
	Name        string
	Note        string
	CreatedBy   User      `json:"-"`
	CreatedByID uuid.UUID `json:"createdById"`
}

// MemberRole is the role of a user within a group. Only admins can change
// the group itself, all members can read and write group expenses.
type MemberRole string

const (
	RoleAdmin  MemberRole = "ADMIN"
	RoleMember MemberRole = "MEMBER"
)

// GroupMember is the membership of one user in one group. Membership is
// the authorization gate for all group scoped operations.
type GroupMember struct {
	DefaultModel
	Group   Group      `json:"-"`
	GroupID uuid.UUID  `gorm:"uniqueIndex:group_member_group_user"`
	User    User       `json:"-"`
	UserID  uuid.UUID  `gorm:"uniqueIndex:group_member_group_user"`
	Role    MemberRole `gorm:"default:MEMBER"`
}

// BeforeSave trims whitespace from all strings.
func (g *Group) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Note = strings.TrimSpace(g.Note)

	return nil
}

// BeforeCreate verifies that the creating user exists.
func (g *Group) BeforeCreate(tx *gorm.DB) error {
	_ = g.DefaultModel.BeforeCreate(tx)

	return tx.Where(&User{DefaultModel: DefaultModel{ID: g.CreatedByID}}).First(&User{}).Error
}

// BeforeSave verifies the role.
func (m *GroupMember) BeforeSave(_ *gorm.DB) error {
	if m.Role == "" {
		m.Role = RoleMember
	}

	if m.Role != RoleAdmin && m.Role != RoleMember {
		return ErrInvalidMemberRole
	}

	return nil
}

// BeforeCreate verifies that group and user exist.
func (m *GroupMember) BeforeCreate(tx *gorm.DB) error {
	_ = m.DefaultModel.BeforeCreate(tx)

	err := tx.Where(&Group{DefaultModel: DefaultModel{ID: m.GroupID}}).First(&Group{}).Error
	if err != nil {
		return err
	}

	return tx.Where(&User{DefaultModel: DefaultModel{ID: m.UserID}}).First(&User{}).Error
}

// IsMember reports whether the user is a member of the group.
func (g Group) IsMember(db *gorm.DB, userID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&GroupMember{}).
		Where(GroupMember{GroupID: g.ID, UserID: userID}).
		Count(&count).Error

	return count > 0, err
}

// IsAdmin reports whether the user is an admin of the group.
func (g Group) IsAdmin(db *gorm.DB, userID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&GroupMember{}).
		Where(GroupMember{GroupID: g.ID, UserID: userID, Role: RoleAdmin}).
		Count(&count).Error

	return count > 0, err
}

// Members returns all members of the group with their users preloaded.
func (g Group) Members(db *gorm.DB) ([]GroupMember, error) {
	var members []GroupMember
	err := db.Preload("User").
		Where(GroupMember{GroupID: g.ID}).
		Order("datetime(group_members.created_at) ASC").
		Find(&members).Error

	return members, err
}
