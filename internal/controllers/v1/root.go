package v1

import (
	"net/http"

	"github.com/fairshare/backend/internal/httputil"
	"github.com/gin-gonic/gin"
)

type Response struct {
	Links Links `json:"links"`
}

type Links struct {
	Users       string `json:"users" example:"https://example.com/api/v1/users"`             // URL of the user list endpoint
	Friendships string `json:"friendships" example:"https://example.com/api/v1/friendships"` // URL of the friendship list endpoint
	Groups      string `json:"groups" example:"https://example.com/api/v1/groups"`           // URL of the group list endpoint
	Expenses    string `json:"expenses" example:"https://example.com/api/v1/expenses"`       // URL of the expense list endpoint
	Settlements string `json:"settlements" example:"https://example.com/api/v1/settlements"` // URL of the settlement list endpoint
}

// Get returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	Response
//	@Router			/v1 [get]
func Get(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Links: Links{
			Users:       httputil.RequestPathV1(c) + "/users",
			Friendships: httputil.RequestPathV1(c) + "/friendships",
			Groups:      httputil.RequestPathV1(c) + "/groups",
			Expenses:    httputil.RequestPathV1(c) + "/expenses",
			Settlements: httputil.RequestPathV1(c) + "/settlements",
		},
	})
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
