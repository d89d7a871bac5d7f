package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/fairshare/backend/internal/controllers/v1"
	"github.com/fairshare/backend/internal/ledger"
	ez_uuid "github.com/fairshare/backend/internal/uuid"
	"github.com/fairshare/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestBalances() {
	alice := createTestUser(suite.T(), v1.UserEditable{Name: "Alice"})
	bob := createTestUser(suite.T(), v1.UserEditable{Name: "Bob"})
	carol := createTestUser(suite.T(), v1.UserEditable{Name: "Carol"})

	// Alice pays 30, split equally between the three
	splitBetween(suite.T(), "Dinner", 30, uid(alice.Data), uid(bob.Data), uid(carol.Data))

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/users/%s/balances", alice.Data.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BalanceListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	if assert.Len(suite.T(), response.Data, 2) {
		for _, balance := range response.Data {
			assert.True(suite.T(), balance.Balance.Equal(decimal.NewFromInt(10)), "%s has %s", balance.Name, balance.Balance)
		}
	}

	// Bob and Carol owe each other nothing
	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/users/%s/balances/%s/expenses", bob.Data.ID, carol.Data.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var detail v1.FriendDetailResponse
	test.DecodeResponse(suite.T(), &r, &detail)
	assert.True(suite.T(), detail.Data.Balance.IsZero())
}

func (suite *TestSuiteStandard) TestBalancesWithSettlement() {
	alice := createTestUser(suite.T(), v1.UserEditable{Name: "Alice"})
	bob := createTestUser(suite.T(), v1.UserEditable{Name: "Bob"})
	carol := createTestUser(suite.T(), v1.UserEditable{Name: "Carol"})

	splitBetween(suite.T(), "Dinner", 30, uid(alice.Data), uid(bob.Data), uid(carol.Data))

	// Bob settles his debt in full
	createTestSettlement(suite.T(), v1.SettlementEditable{
		PayerID:    uid(bob.Data),
		ReceiverID: uid(alice.Data),
		Amount:     decimal.NewFromInt(10),
	})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/users/%s/balances/%s/settlements", alice.Data.ID, bob.Data.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.NetBalanceResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.True(suite.T(), response.Data.OriginalBalance.Equal(decimal.NewFromInt(10)), "original balance is %s", response.Data.OriginalBalance)
	assert.True(suite.T(), response.Data.SettlementBalance.Equal(decimal.NewFromInt(-10)), "settlement balance is %s", response.Data.SettlementBalance)
	assert.True(suite.T(), response.Data.NetBalance.IsZero(), "net balance is %s", response.Data.NetBalance)
	assert.Len(suite.T(), response.Data.Settlements, 1)

	// The expense-only view still shows the debt, with history
	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/users/%s/balances/%s/expenses", alice.Data.ID, bob.Data.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var detail v1.FriendDetailResponse
	test.DecodeResponse(suite.T(), &r, &detail)
	assert.True(suite.T(), detail.Data.Balance.Equal(decimal.NewFromInt(10)))

	if assert.Len(suite.T(), detail.Data.History, 1) {
		assert.Equal(suite.T(), ledger.YouPaid, detail.Data.History[0].Direction)
		assert.True(suite.T(), detail.Data.History[0].Share.Equal(decimal.NewFromInt(10)))
	}
}

func (suite *TestSuiteStandard) TestBalancesSuggestions() {
	alice := createTestUser(suite.T(), v1.UserEditable{Name: "Alice"})
	bob := createTestUser(suite.T(), v1.UserEditable{Name: "Bob"})
	carol := createTestUser(suite.T(), v1.UserEditable{Name: "Carol"})

	// Bob owes Alice 15, Alice owes Carol 20
	splitBetween(suite.T(), "Dinner", 30, uid(alice.Data), uid(bob.Data))
	splitBetween(suite.T(), "Theater", 40, uid(carol.Data), uid(alice.Data))

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/users/%s/suggestions", alice.Data.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SuggestionGroupListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	if assert.Len(suite.T(), response.Data, 2) {
		assert.Equal(suite.T(), ledger.DirectionPay, response.Data[0].Type)
		if assert.Len(suite.T(), response.Data[0].Payments, 1) {
			assert.Equal(suite.T(), carol.Data.ID, response.Data[0].Payments[0].To.ID)
			assert.True(suite.T(), response.Data[0].Payments[0].Amount.Equal(decimal.NewFromInt(20)))
		}

		assert.Equal(suite.T(), ledger.DirectionReceive, response.Data[1].Type)
		if assert.Len(suite.T(), response.Data[1].Payments, 1) {
			assert.Equal(suite.T(), bob.Data.ID, response.Data[1].Payments[0].From.ID)
			assert.True(suite.T(), response.Data[1].Payments[0].Amount.Equal(decimal.NewFromInt(15)))
		}
	}
}

func (suite *TestSuiteStandard) TestBalancesGroup() {
	alice := createTestUser(suite.T(), v1.UserEditable{Name: "Alice"})
	bob := createTestUser(suite.T(), v1.UserEditable{Name: "Bob"})
	carol := createTestUser(suite.T(), v1.UserEditable{Name: "Carol"})

	group := createTestGroup(suite.T(), v1.GroupEditable{
		Name:        "Trip",
		CreatedByID: uid(alice.Data),
	})
	groupID := ez_uuid.UUID{UUID: group.Data.ID}

	for _, member := range []v1.UserResponse{bob, carol} {
		r := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/groups/%s/members?userId=%s", group.Data.ID, alice.Data.ID), v1.MemberEditable{
			UserID: uid(member.Data),
		})
		test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)
	}

	// Alice pays 90 split equally, Bob pays 30 split equally
	createTestExpense(suite.T(), v1.ExpenseEditable{
		Description:  "Hotel",
		Amount:       decimal.NewFromInt(90),
		CreatedByID:  uid(alice.Data),
		PaidByID:     uid(alice.Data),
		GroupID:      &groupID,
		Participants: []ez_uuid.UUID{uid(alice.Data), uid(bob.Data), uid(carol.Data)},
	})
	createTestExpense(suite.T(), v1.ExpenseEditable{
		Description:  "Taxi",
		Amount:       decimal.NewFromInt(30),
		CreatedByID:  uid(bob.Data),
		PaidByID:     uid(bob.Data),
		GroupID:      &groupID,
		Participants: []ez_uuid.UUID{uid(alice.Data), uid(bob.Data), uid(carol.Data)},
	})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/groups/%s/balances?userId=%s", group.Data.ID, alice.Data.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BalanceListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	expected := map[string]decimal.Decimal{
		alice.Data.ID.String(): decimal.NewFromInt(50),
		bob.Data.ID.String():   decimal.NewFromInt(-10),
		carol.Data.ID.String(): decimal.NewFromInt(-40),
	}

	if assert.Len(suite.T(), response.Data, 3) {
		for _, balance := range response.Data {
			assert.True(suite.T(), balance.Balance.Equal(expected[balance.UserID.String()]), "%s has %s", balance.Name, balance.Balance)
		}
	}

	// The suggested payments settle the group
	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/groups/%s/suggestions?userId=%s", group.Data.ID, alice.Data.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var suggestions v1.SuggestionListResponse
	test.DecodeResponse(suite.T(), &r, &suggestions)

	if assert.Len(suite.T(), suggestions.Data, 2) {
		assert.Equal(suite.T(), carol.Data.ID, suggestions.Data[0].From.ID)
		assert.Equal(suite.T(), alice.Data.ID, suggestions.Data[0].To.ID)
		assert.True(suite.T(), suggestions.Data[0].Amount.Equal(decimal.NewFromInt(40)))

		assert.Equal(suite.T(), bob.Data.ID, suggestions.Data[1].From.ID)
		assert.Equal(suite.T(), alice.Data.ID, suggestions.Data[1].To.ID)
		assert.True(suite.T(), suggestions.Data[1].Amount.Equal(decimal.NewFromInt(10)))
	}
}

func (suite *TestSuiteStandard) TestBalancesGroupNonMember() {
	alice := createTestUser(suite.T(), v1.UserEditable{Name: "Alice"})
	mallory := createTestUser(suite.T(), v1.UserEditable{Name: "Mallory"})

	group := createTestGroup(suite.T(), v1.GroupEditable{
		Name:        "Trip",
		CreatedByID: uid(alice.Data),
	})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/groups/%s/balances?userId=%s", group.Data.ID, mallory.Data.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/groups/%s/suggestions?userId=%s", group.Data.ID, mallory.Data.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)

	// The userId parameter is not optional
	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/groups/%s/suggestions", group.Data.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
