package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository bundles the record lookups the balance engine consumes.
// It hands out consistent snapshots of expenses, settlements and
// memberships; all aggregation happens outside the database.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// sharesFor returns a subquery selecting the expense IDs the user holds a
// share in.
func (r *Repository) sharesFor(userID uuid.UUID) *gorm.DB {
	return r.db.Model(&ExpenseShare{}).Select("expense_id").Where("user_id = ?", userID)
}

// ExpensesForUser returns all expenses the user paid or participates in,
// with shares and users preloaded.
func (r *Repository) ExpensesForUser(userID uuid.UUID) ([]Expense, error) {
	var expenses []Expense
	err := r.db.
		Preload("Payer").
		Preload("Shares").
		Preload("Shares.User").
		Where(r.db.Where("paid_by_id = ?", userID).Or("expenses.id IN (?)", r.sharesFor(userID))).
		Order("datetime(expenses.date) DESC, datetime(expenses.created_at) DESC").
		Find(&expenses).Error

	return expenses, err
}

// ExpensesBetween returns the expenses involving both users, i.e. where one
// of them paid and the other holds a share.
func (r *Repository) ExpensesBetween(userID, friendID uuid.UUID) ([]Expense, error) {
	var expenses []Expense
	err := r.db.
		Preload("Payer").
		Preload("Shares").
		Preload("Shares.User").
		Where(r.db.
			Where("paid_by_id = ? AND expenses.id IN (?)", userID, r.sharesFor(friendID)).
			Or("paid_by_id = ? AND expenses.id IN (?)", friendID, r.sharesFor(userID))).
		Order("datetime(expenses.date) DESC, datetime(expenses.created_at) DESC").
		Find(&expenses).Error

	return expenses, err
}

// ExpensesForGroup returns all expenses of one group.
func (r *Repository) ExpensesForGroup(groupID uuid.UUID) ([]Expense, error) {
	var expenses []Expense
	err := r.db.
		Preload("Payer").
		Preload("Shares").
		Preload("Shares.User").
		Where("group_id = ?", groupID).
		Order("datetime(expenses.date) DESC, datetime(expenses.created_at) DESC").
		Find(&expenses).Error

	return expenses, err
}

// SettlementsForUser returns all settlements the user paid or received.
func (r *Repository) SettlementsForUser(userID uuid.UUID) ([]Settlement, error) {
	var settlements []Settlement
	err := r.db.
		Preload("Payer").
		Preload("Receiver").
		Where(r.db.Where(Settlement{PayerID: userID}).Or(Settlement{ReceiverID: userID})).
		Order("datetime(settlements.date) DESC, datetime(settlements.created_at) DESC").
		Find(&settlements).Error

	return settlements, err
}

// SettlementsBetween returns the settlements between the two users, in
// either direction.
func (r *Repository) SettlementsBetween(userID, friendID uuid.UUID) ([]Settlement, error) {
	var settlements []Settlement
	err := r.db.
		Preload("Payer").
		Preload("Receiver").
		Where(r.db.
			Where(Settlement{PayerID: userID, ReceiverID: friendID}).
			Or(Settlement{PayerID: friendID, ReceiverID: userID})).
		Order("datetime(settlements.date) DESC, datetime(settlements.created_at) DESC").
		Find(&settlements).Error

	return settlements, err
}

// SettlementsForGroup returns all settlements recorded for one group.
func (r *Repository) SettlementsForGroup(groupID uuid.UUID) ([]Settlement, error) {
	var settlements []Settlement
	err := r.db.
		Preload("Payer").
		Preload("Receiver").
		Where("group_id = ?", groupID).
		Order("datetime(settlements.date) DESC, datetime(settlements.created_at) DESC").
		Find(&settlements).Error

	return settlements, err
}

// IsMember reports whether the user is a member of the group.
func (r *Repository) IsMember(groupID, userID uuid.UUID) (bool, error) {
	return Group{DefaultModel: DefaultModel{ID: groupID}}.IsMember(r.db, userID)
}
