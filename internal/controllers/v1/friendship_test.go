package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/fairshare/backend/internal/controllers/v1"
	"github.com/fairshare/backend/internal/models"
	ez_uuid "github.com/fairshare/backend/internal/uuid"
	"github.com/fairshare/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestFriendshipsCreate() {
	alice := createTestUser(suite.T(), v1.UserEditable{Name: "Alice"})
	bob := createTestUser(suite.T(), v1.UserEditable{Name: "Bob"})

	friendship := createTestFriendship(suite.T(), v1.FriendshipEditable{
		UserID:   uid(alice.Data),
		FriendID: uid(bob.Data),
	})

	assert.Equal(suite.T(), alice.Data.ID, friendship.Data.UserID)
	assert.Equal(suite.T(), bob.Data.ID, friendship.Data.FriendID)
}

func (suite *TestSuiteStandard) TestFriendshipsCreateWithSelf() {
	alice := createTestUser(suite.T(), v1.UserEditable{Name: "Alice"})

	response := createTestFriendship(suite.T(), v1.FriendshipEditable{
		UserID:   uid(alice.Data),
		FriendID: uid(alice.Data),
	}, http.StatusBadRequest)

	assert.Equal(suite.T(), models.ErrFriendshipWithSelf.Error(), *response.Error)
}

func (suite *TestSuiteStandard) TestFriendshipsCreateInverseDuplicate() {
	alice := createTestUser(suite.T(), v1.UserEditable{Name: "Alice"})
	bob := createTestUser(suite.T(), v1.UserEditable{Name: "Bob"})

	createTestFriendship(suite.T(), v1.FriendshipEditable{
		UserID:   uid(alice.Data),
		FriendID: uid(bob.Data),
	})

	response := createTestFriendship(suite.T(), v1.FriendshipEditable{
		UserID:   uid(bob.Data),
		FriendID: uid(alice.Data),
	}, http.StatusBadRequest)

	assert.Equal(suite.T(), models.ErrFriendshipExists.Error(), *response.Error)
}

func (suite *TestSuiteStandard) TestFriendshipsCreateNonExistingUser() {
	alice := createTestUser(suite.T(), v1.UserEditable{Name: "Alice"})

	response := createTestFriendship(suite.T(), v1.FriendshipEditable{
		UserID:   uid(alice.Data),
		FriendID: ez_uuid.New(),
	}, http.StatusNotFound)

	assert.Contains(suite.T(), *response.Error, models.ErrResourceNotFound.Error())
}

func (suite *TestSuiteStandard) TestFriendshipsListFiltered() {
	alice := createTestUser(suite.T(), v1.UserEditable{Name: "Alice"})
	bob := createTestUser(suite.T(), v1.UserEditable{Name: "Bob"})
	carol := createTestUser(suite.T(), v1.UserEditable{Name: "Carol"})

	createTestFriendship(suite.T(), v1.FriendshipEditable{UserID: uid(alice.Data), FriendID: uid(bob.Data)})
	createTestFriendship(suite.T(), v1.FriendshipEditable{UserID: uid(carol.Data), FriendID: uid(alice.Data)})
	createTestFriendship(suite.T(), v1.FriendshipEditable{UserID: uid(bob.Data), FriendID: uid(carol.Data)})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/friendships?userId=%s", alice.Data.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.FriendshipListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	// Alice appears on either side of a friendship
	if assert.Len(suite.T(), response.Data, 2) {
		for _, friendship := range response.Data {
			involved := friendship.UserID == alice.Data.ID || friendship.FriendID == alice.Data.ID
			assert.True(suite.T(), involved)
		}
	}
}

func (suite *TestSuiteStandard) TestFriendshipsDelete() {
	alice := createTestUser(suite.T(), v1.UserEditable{Name: "Alice"})
	bob := createTestUser(suite.T(), v1.UserEditable{Name: "Bob"})

	friendship := createTestFriendship(suite.T(), v1.FriendshipEditable{
		UserID:   uid(alice.Data),
		FriendID: uid(bob.Data),
	})

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/friendships/%s", friendship.Data.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	// Now the inverse pairing can be created
	createTestFriendship(suite.T(), v1.FriendshipEditable{
		UserID:   uid(bob.Data),
		FriendID: uid(alice.Data),
	})
}
