package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/fairshare/backend/internal/controllers/v1"
	"github.com/fairshare/backend/internal/models"
	"github.com/fairshare/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestSettlementsCreate() {
	alice := createTestUser(suite.T(), v1.UserEditable{Name: "Alice"})
	bob := createTestUser(suite.T(), v1.UserEditable{Name: "Bob"})

	settlement := createTestSettlement(suite.T(), v1.SettlementEditable{
		PayerID:    uid(bob.Data),
		ReceiverID: uid(alice.Data),
		Amount:     decimal.NewFromFloat(12.50),
		Notes:      "Paid back in cash",
	})

	assert.Equal(suite.T(), bob.Data.ID, settlement.Data.PayerID)
	assert.Equal(suite.T(), alice.Data.ID, settlement.Data.ReceiverID)
	assert.True(suite.T(), settlement.Data.Amount.Equal(decimal.NewFromFloat(12.50)))
	assert.False(suite.T(), settlement.Data.Date.IsZero())
}

func (suite *TestSuiteStandard) TestSettlementsCreateWithSelf() {
	alice := createTestUser(suite.T(), v1.UserEditable{Name: "Alice"})

	response := createTestSettlement(suite.T(), v1.SettlementEditable{
		PayerID:    uid(alice.Data),
		ReceiverID: uid(alice.Data),
		Amount:     decimal.NewFromInt(10),
	}, http.StatusBadRequest)

	assert.Equal(suite.T(), models.ErrSettlementWithSelf.Error(), *response.Error)
}

func (suite *TestSuiteStandard) TestSettlementsCreateNotPositive() {
	alice := createTestUser(suite.T(), v1.UserEditable{Name: "Alice"})
	bob := createTestUser(suite.T(), v1.UserEditable{Name: "Bob"})

	response := createTestSettlement(suite.T(), v1.SettlementEditable{
		PayerID:    uid(bob.Data),
		ReceiverID: uid(alice.Data),
		Amount:     decimal.NewFromInt(-3),
	}, http.StatusBadRequest)

	assert.Equal(suite.T(), models.ErrSettlementAmountNotPositive.Error(), *response.Error)
}

func (suite *TestSuiteStandard) TestSettlementsListFiltered() {
	alice := createTestUser(suite.T(), v1.UserEditable{Name: "Alice"})
	bob := createTestUser(suite.T(), v1.UserEditable{Name: "Bob"})
	carol := createTestUser(suite.T(), v1.UserEditable{Name: "Carol"})

	createTestSettlement(suite.T(), v1.SettlementEditable{PayerID: uid(bob.Data), ReceiverID: uid(alice.Data), Amount: decimal.NewFromInt(10)})
	createTestSettlement(suite.T(), v1.SettlementEditable{PayerID: uid(alice.Data), ReceiverID: uid(carol.Data), Amount: decimal.NewFromInt(5)})
	createTestSettlement(suite.T(), v1.SettlementEditable{PayerID: uid(carol.Data), ReceiverID: uid(bob.Data), Amount: decimal.NewFromInt(3)})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/settlements?userId=%s", alice.Data.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SettlementListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	if assert.Len(suite.T(), response.Data, 2) {
		for _, settlement := range response.Data {
			assert.True(suite.T(), settlement.IsParty(alice.Data.ID))
		}
	}
}

// Only the notes of a settlement can change, and only a party can change
// them.
func (suite *TestSuiteStandard) TestSettlementsUpdateNotes() {
	alice := createTestUser(suite.T(), v1.UserEditable{Name: "Alice"})
	bob := createTestUser(suite.T(), v1.UserEditable{Name: "Bob"})
	mallory := createTestUser(suite.T(), v1.UserEditable{Name: "Mallory"})

	settlement := createTestSettlement(suite.T(), v1.SettlementEditable{
		PayerID:    uid(bob.Data),
		ReceiverID: uid(alice.Data),
		Amount:     decimal.NewFromInt(10),
	})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/settlements/%s?userId=%s", settlement.Data.ID, mallory.Data.ID), v1.SettlementNotes{Notes: "Hacked"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)

	r = test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/settlements/%s?userId=%s", settlement.Data.ID, bob.Data.ID), v1.SettlementNotes{Notes: "Bank transfer"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SettlementResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Bank transfer", response.Data.Notes)

	// The amount is untouched
	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/settlements/%s", settlement.Data.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Amount.Equal(decimal.NewFromInt(10)))
}

func (suite *TestSuiteStandard) TestSettlementsDelete() {
	alice := createTestUser(suite.T(), v1.UserEditable{Name: "Alice"})
	bob := createTestUser(suite.T(), v1.UserEditable{Name: "Bob"})
	mallory := createTestUser(suite.T(), v1.UserEditable{Name: "Mallory"})

	settlement := createTestSettlement(suite.T(), v1.SettlementEditable{
		PayerID:    uid(bob.Data),
		ReceiverID: uid(alice.Data),
		Amount:     decimal.NewFromInt(10),
	})

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/settlements/%s?userId=%s", settlement.Data.ID, mallory.Data.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)

	r = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/settlements/%s?userId=%s", settlement.Data.ID, alice.Data.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/settlements/%s", settlement.Data.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
