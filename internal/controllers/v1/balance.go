package v1

import (
	"net/http"

	"github.com/fairshare/backend/internal/httputil"
	"github.com/fairshare/backend/internal/ledger"
	"github.com/fairshare/backend/internal/models"
	ez_uuid "github.com/fairshare/backend/internal/uuid"
	"github.com/gin-gonic/gin"
)

type BalanceListResponse struct {
	Data  []ledger.Balance `json:"data"`
	Error *string          `json:"error"`
}

type FriendDetailResponse struct {
	Data  *ledger.FriendDetail `json:"data"`
	Error *string              `json:"error"`
}

type NetBalanceResponse struct {
	Data  *ledger.NetBalance `json:"data"`
	Error *string            `json:"error"`
}

type SuggestionGroupListResponse struct {
	Data  []ledger.SuggestionGroup `json:"data"`
	Error *string                  `json:"error"`
}

type SuggestionListResponse struct {
	Data  []ledger.Suggestion `json:"data"`
	Error *string             `json:"error"`
}

// calculator wires the balance engine to the database the way it is wired
// for every request: repositories over the global DB handle.
func calculator() *ledger.Calculator {
	repo := models.NewRepository(models.DB)
	return ledger.NewCalculator(repo, repo, repo)
}

// RegisterBalanceRoutes registers the balance and suggestion routes with
// the user RouterGroup that is passed.
func RegisterBalanceRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/:id/balances", OptionsUserBalances)
		r.GET("/:id/balances", GetUserBalances)
	}

	{
		r.OPTIONS("/:id/balances/:friendId", OptionsFriendBalance)
		r.GET("/:id/balances/:friendId", GetFriendBalance)
		r.GET("/:id/balances/:friendId/expenses", GetFriendExpenseBalance)
		r.GET("/:id/balances/:friendId/settlements", GetFriendNetBalance)
	}

	{
		r.OPTIONS("/:id/suggestions", OptionsUserSuggestions)
		r.GET("/:id/suggestions", GetUserSuggestions)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Balances
// @Success		204
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/users/{id}/balances [options]
func OptionsUserBalances(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Balances
// @Success		204
// @Param			id			path	string	true	"ID formatted as string"
// @Param			friendId	path	string	true	"ID formatted as string"
// @Router			/v1/users/{id}/balances/{friendId} [options]
func OptionsFriendBalance(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Balances
// @Success		204
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/users/{id}/suggestions [options]
func OptionsUserSuggestions(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Balances
// @Success		204
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/groups/{id}/balances [options]
func OptionsGroupBalances(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Balances
// @Success		204
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/groups/{id}/suggestions [options]
func OptionsGroupSuggestions(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get balances
// @Description	Returns the net balance with every counterparty, settlements included. Positive means the counterparty owes the user.
// @Tags			Balances
// @Produce		json
// @Success		200	{object}	BalanceListResponse
// @Failure		400	{object}	BalanceListResponse
// @Failure		404	{object}	BalanceListResponse
// @Failure		500	{object}	BalanceListResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/users/{id}/balances [get]
func GetUserBalances(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), BalanceListResponse{Error: &e})
		return
	}

	balances, err := calculator().FriendBalances(uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BalanceListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, BalanceListResponse{Data: balances})
}

// @Summary		Get balance with friend
// @Description	Returns the net balance with one counterparty, settlements included, and the expense history
// @Tags			Balances
// @Produce		json
// @Success		200			{object}	FriendDetailResponse
// @Failure		400			{object}	FriendDetailResponse
// @Failure		404			{object}	FriendDetailResponse
// @Failure		500			{object}	FriendDetailResponse
// @Param			id			path		string	true	"ID formatted as string"
// @Param			friendId	path		string	true	"ID formatted as string"
// @Router			/v1/users/{id}/balances/{friendId} [get]
func GetFriendBalance(c *gin.Context) {
	var uri URIFriend
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), FriendDetailResponse{Error: &e})
		return
	}

	detail, err := calculator().BalanceWithFriend(uri.ID.UUID, uri.FriendID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), FriendDetailResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, FriendDetailResponse{Data: &detail})
}

// @Summary		Get expense-only balance with friend
// @Description	Returns the balance with one counterparty from expenses alone, ignoring settlements
// @Tags			Balances
// @Produce		json
// @Success		200			{object}	FriendDetailResponse
// @Failure		400			{object}	FriendDetailResponse
// @Failure		404			{object}	FriendDetailResponse
// @Failure		500			{object}	FriendDetailResponse
// @Param			id			path		string	true	"ID formatted as string"
// @Param			friendId	path		string	true	"ID formatted as string"
// @Router			/v1/users/{id}/balances/{friendId}/expenses [get]
func GetFriendExpenseBalance(c *gin.Context) {
	var uri URIFriend
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), FriendDetailResponse{Error: &e})
		return
	}

	detail, err := calculator().ExpenseOnlyBalanceWithFriend(uri.ID.UUID, uri.FriendID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), FriendDetailResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, FriendDetailResponse{Data: &detail})
}

// @Summary		Get net balance with friend
// @Description	Returns the balance with one counterparty broken into its expense and settlement components
// @Tags			Balances
// @Produce		json
// @Success		200			{object}	NetBalanceResponse
// @Failure		400			{object}	NetBalanceResponse
// @Failure		404			{object}	NetBalanceResponse
// @Failure		500			{object}	NetBalanceResponse
// @Param			id			path		string	true	"ID formatted as string"
// @Param			friendId	path		string	true	"ID formatted as string"
// @Router			/v1/users/{id}/balances/{friendId}/settlements [get]
func GetFriendNetBalance(c *gin.Context) {
	var uri URIFriend
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), NetBalanceResponse{Error: &e})
		return
	}

	net, err := calculator().NetBalanceWithSettlements(uri.ID.UUID, uri.FriendID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), NetBalanceResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, NetBalanceResponse{Data: &net})
}

// @Summary		Get payment suggestions
// @Description	Returns who the user should pay and who should pay the user, sorted by descending amount
// @Tags			Balances
// @Produce		json
// @Success		200	{object}	SuggestionGroupListResponse
// @Failure		400	{object}	SuggestionGroupListResponse
// @Failure		404	{object}	SuggestionGroupListResponse
// @Failure		500	{object}	SuggestionGroupListResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/users/{id}/suggestions [get]
func GetUserSuggestions(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), SuggestionGroupListResponse{Error: &e})
		return
	}

	groups, err := calculator().PaymentSuggestions(uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SuggestionGroupListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, SuggestionGroupListResponse{Data: groups})
}

// @Summary		Get group balances
// @Description	Returns every member's net position against the group as a whole, from the group's expenses. Settlements are not netted out. The requesting user must be a member.
// @Tags			Balances
// @Produce		json
// @Success		200		{object}	BalanceListResponse
// @Failure		400		{object}	BalanceListResponse
// @Failure		403		{object}	BalanceListResponse
// @Failure		404		{object}	BalanceListResponse
// @Failure		500		{object}	BalanceListResponse
// @Param			id		path		string	true	"ID formatted as string"
// @Param			userId	query		string	true	"ID of the requesting user"
// @Router			/v1/groups/{id}/balances [get]
func GetGroupBalances(c *gin.Context) {
	group, err := memberGate(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BalanceListResponse{Error: &e})
		return
	}

	balances, err := calculator().GroupBalances(group.ID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BalanceListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, BalanceListResponse{Data: balances})
}

// @Summary		Get group settlement suggestions
// @Description	Returns the payment sequence that settles the group's balances. The requesting user must be a member.
// @Tags			Balances
// @Produce		json
// @Success		200		{object}	SuggestionListResponse
// @Failure		400		{object}	SuggestionListResponse
// @Failure		403		{object}	SuggestionListResponse
// @Failure		404		{object}	SuggestionListResponse
// @Failure		500		{object}	SuggestionListResponse
// @Param			id		path		string	true	"ID formatted as string"
// @Param			userId	query		string	true	"ID of the requesting user"
// @Router			/v1/groups/{id}/suggestions [get]
func GetGroupSuggestions(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), SuggestionListResponse{Error: &e})
		return
	}

	var query QueryUser
	if err := c.ShouldBindQuery(&query); err != nil {
		e := err.Error()
		c.JSON(status(err), SuggestionListResponse{Error: &e})
		return
	}

	if query.UserID == ez_uuid.Nil {
		e := errUserIDParameter.Error()
		c.JSON(http.StatusBadRequest, SuggestionListResponse{Error: &e})
		return
	}

	// The engine checks membership itself, but the group needs to exist
	var group models.Group
	if err := models.DB.First(&group, uri.ID).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), SuggestionListResponse{Error: &e})
		return
	}

	suggestions, err := calculator().GroupSettlementSuggestions(group.ID, query.UserID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SuggestionListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, SuggestionListResponse{Data: suggestions})
}
