package models_test

import (
	"time"

	"github.com/fairshare/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestSettlementCreate() {
	alice := suite.createTestUser("Alice")
	bob := suite.createTestUser("Bob")

	settlement := models.Settlement{
		PayerID:    bob.ID,
		ReceiverID: alice.ID,
		Amount:     decimal.NewFromFloat(12.50),
		Notes:      "  Venmo \t",
	}

	err := models.DB.Create(&settlement).Error
	suite.Assert().Nil(err)

	assert.Equal(suite.T(), "Venmo", settlement.Notes)
	assert.False(suite.T(), settlement.Date.IsZero())
	assert.WithinDuration(suite.T(), time.Now(), settlement.Date, time.Minute)
}

func (suite *TestSuiteStandard) TestSettlementWithSelf() {
	alice := suite.createTestUser("Alice")

	err := models.DB.Create(&models.Settlement{
		PayerID:    alice.ID,
		ReceiverID: alice.ID,
		Amount:     decimal.NewFromInt(10),
	}).Error

	suite.Assert().NotNil(err)
	suite.Assert().ErrorIs(err, models.ErrSettlementWithSelf)
}

func (suite *TestSuiteStandard) TestSettlementAmountNotPositive() {
	alice := suite.createTestUser("Alice")
	bob := suite.createTestUser("Bob")

	err := models.DB.Create(&models.Settlement{
		PayerID:    bob.ID,
		ReceiverID: alice.ID,
		Amount:     decimal.Zero,
	}).Error

	suite.Assert().NotNil(err)
	suite.Assert().ErrorIs(err, models.ErrSettlementAmountNotPositive)
}

func (suite *TestSuiteStandard) TestSettlementNonExistingReceiver() {
	alice := suite.createTestUser("Alice")

	err := models.DB.Create(&models.Settlement{
		PayerID:    alice.ID,
		ReceiverID: uuid.New(),
		Amount:     decimal.NewFromInt(10),
	}).Error

	suite.Assert().NotNil(err)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestSettlementNonExistingGroup() {
	alice := suite.createTestUser("Alice")
	bob := suite.createTestUser("Bob")
	groupID := uuid.New()

	err := models.DB.Create(&models.Settlement{
		PayerID:    bob.ID,
		ReceiverID: alice.ID,
		Amount:     decimal.NewFromInt(10),
		GroupID:    &groupID,
	}).Error

	suite.Assert().NotNil(err)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestSettlementIsParty() {
	alice := suite.createTestUser("Alice")
	bob := suite.createTestUser("Bob")

	settlement := suite.createTestSettlement(bob, alice, 10)

	assert.True(suite.T(), settlement.IsParty(alice.ID))
	assert.True(suite.T(), settlement.IsParty(bob.ID))
	assert.False(suite.T(), settlement.IsParty(uuid.New()))
}
