package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// User errors
var ErrUserEmailNotUnique = errors.New("a user with this email address already exists")

// Friendship errors
var (
	ErrFriendshipExists   = errors.New("these users are already friends")
	ErrFriendshipWithSelf = errors.New("a user cannot be friends with themselves")
)

// Group errors
var (
	ErrGroupMemberExists = errors.New("this user already is a member of the group")
	ErrNotGroupMember    = errors.New("you are not a member of this group")
	ErrNotGroupAdmin     = errors.New("you are not an admin of this group")
	ErrInvalidMemberRole = errors.New("the member role must be ADMIN or MEMBER")
)

// Expense errors
var (
	ErrExpenseAmountNotPositive = errors.New("the expense amount must be positive")
	ErrSplitTypeInvalid         = errors.New("the split type is invalid")
	ErrSplitTypeUnsupported     = errors.New("only equal splits are supported")
	ErrNoParticipants           = errors.New("an expense needs at least one participant")
	ErrNotExpenseOwner          = errors.New("only the creator of the expense can change it")
)

// Settlement errors
var (
	ErrSettlementAmountNotPositive = errors.New("the settlement amount must be positive")
	ErrSettlementWithSelf          = errors.New("payer and receiver of a settlement must be different users")
	ErrNotSettlementParty          = errors.New("only the payer or the receiver of a settlement can do this")
)
