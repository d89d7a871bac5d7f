package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/fairshare/backend/internal/controllers/v1"
	"github.com/fairshare/backend/internal/models"
	ez_uuid "github.com/fairshare/backend/internal/uuid"
	"github.com/fairshare/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestExpensesCreate() {
	alice := createTestUser(suite.T(), v1.UserEditable{Name: "Alice"})
	bob := createTestUser(suite.T(), v1.UserEditable{Name: "Bob"})
	carol := createTestUser(suite.T(), v1.UserEditable{Name: "Carol"})

	expense := splitBetween(suite.T(), "Dinner", 30, uid(alice.Data), uid(bob.Data), uid(carol.Data))

	assert.Equal(suite.T(), "Dinner", expense.Data.Description)
	assert.Len(suite.T(), expense.Data.Shares, 3)

	for _, share := range expense.Data.Shares {
		assert.True(suite.T(), share.Amount.Equal(decimal.NewFromInt(10)), "share is %s", share.Amount)
		assert.Equal(suite.T(), share.UserID == alice.Data.ID, share.IsPaid)
	}
}

func (suite *TestSuiteStandard) TestExpensesCreateNoParticipants() {
	alice := createTestUser(suite.T(), v1.UserEditable{Name: "Alice"})

	response := createTestExpense(suite.T(), v1.ExpenseEditable{
		Description: "Lonely",
		Amount:      decimal.NewFromInt(10),
		CreatedByID: uid(alice.Data),
		PaidByID:    uid(alice.Data),
	}, http.StatusBadRequest)

	assert.Equal(suite.T(), models.ErrNoParticipants.Error(), *response.Error)
}

func (suite *TestSuiteStandard) TestExpensesCreateUnsupportedSplit() {
	alice := createTestUser(suite.T(), v1.UserEditable{Name: "Alice"})
	bob := createTestUser(suite.T(), v1.UserEditable{Name: "Bob"})

	response := createTestExpense(suite.T(), v1.ExpenseEditable{
		Description:  "Unequal",
		Amount:       decimal.NewFromInt(10),
		CreatedByID:  uid(alice.Data),
		PaidByID:     uid(alice.Data),
		SplitType:    models.SplitPercentage,
		Participants: []ez_uuid.UUID{uid(alice.Data), uid(bob.Data)},
	}, http.StatusBadRequest)

	assert.Equal(suite.T(), models.ErrSplitTypeUnsupported.Error(), *response.Error)
}

func (suite *TestSuiteStandard) TestExpensesCreateInGroupRequiresMembership() {
	alice := createTestUser(suite.T(), v1.UserEditable{Name: "Alice"})
	mallory := createTestUser(suite.T(), v1.UserEditable{Name: "Mallory"})

	group := createTestGroup(suite.T(), v1.GroupEditable{
		Name:        "Trip",
		CreatedByID: uid(alice.Data),
	})
	groupID := ez_uuid.UUID{UUID: group.Data.ID}

	createTestExpense(suite.T(), v1.ExpenseEditable{
		Description:  "Hotel",
		Amount:       decimal.NewFromInt(200),
		CreatedByID:  uid(alice.Data),
		PaidByID:     uid(alice.Data),
		GroupID:      &groupID,
		Participants: []ez_uuid.UUID{uid(alice.Data)},
	})

	response := createTestExpense(suite.T(), v1.ExpenseEditable{
		Description:  "Sabotage",
		Amount:       decimal.NewFromInt(10),
		CreatedByID:  uid(mallory.Data),
		PaidByID:     uid(mallory.Data),
		GroupID:      &groupID,
		Participants: []ez_uuid.UUID{uid(mallory.Data)},
	}, http.StatusForbidden)

	assert.Equal(suite.T(), models.ErrNotGroupMember.Error(), *response.Error)
}

func (suite *TestSuiteStandard) TestExpensesListFiltered() {
	alice := createTestUser(suite.T(), v1.UserEditable{Name: "Alice"})
	bob := createTestUser(suite.T(), v1.UserEditable{Name: "Bob"})

	splitBetween(suite.T(), "Dinner and drinks", 30, uid(alice.Data), uid(bob.Data))
	splitBetween(suite.T(), "Dinner at home", 12, uid(bob.Data), uid(alice.Data))
	splitBetween(suite.T(), "Groceries", 54, uid(alice.Data), uid(bob.Data))

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"All expenses", "", 3},
		{"Paid by Alice", fmt.Sprintf("paidBy=%s", alice.Data.ID), 2},
		{"Wildcard description", "description=Dinner*", 2},
		{"Combined", fmt.Sprintf("paidBy=%s&description=Dinner*", alice.Data.ID), 1},
		{"No match", "description=Flights*", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/expenses?%s", tt.query), nil)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.ExpenseListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestExpensesUpdateOwnerGate() {
	alice := createTestUser(suite.T(), v1.UserEditable{Name: "Alice"})
	bob := createTestUser(suite.T(), v1.UserEditable{Name: "Bob"})

	expense := splitBetween(suite.T(), "Dinner", 30, uid(alice.Data), uid(bob.Data))

	update := v1.ExpenseEditable{
		Amount:       decimal.NewFromInt(60),
		Participants: []ez_uuid.UUID{uid(alice.Data), uid(bob.Data)},
	}

	// Only the creator can change the expense
	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/expenses/%s?userId=%s", expense.Data.ID, bob.Data.ID), update)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)

	r = test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/expenses/%s?userId=%s", expense.Data.ID, alice.Data.ID), update)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.True(suite.T(), response.Data.Amount.Equal(decimal.NewFromInt(60)))
	if assert.Len(suite.T(), response.Data.Shares, 2) {
		for _, share := range response.Data.Shares {
			assert.True(suite.T(), share.Amount.Equal(decimal.NewFromInt(30)), "share is %s", share.Amount)
		}
	}
}

func (suite *TestSuiteStandard) TestExpensesDelete() {
	alice := createTestUser(suite.T(), v1.UserEditable{Name: "Alice"})
	bob := createTestUser(suite.T(), v1.UserEditable{Name: "Bob"})

	expense := splitBetween(suite.T(), "Dinner", 30, uid(alice.Data), uid(bob.Data))

	// The userId parameter is required
	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/expenses/%s", expense.Data.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/expenses/%s?userId=%s", expense.Data.ID, alice.Data.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/expenses/%s", expense.Data.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
