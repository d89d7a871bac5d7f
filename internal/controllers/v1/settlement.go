package v1

import (
	"net/http"
	"time"

	"github.com/fairshare/backend/internal/httputil"
	"github.com/fairshare/backend/internal/models"
	ez_uuid "github.com/fairshare/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// SettlementEditable are the fields of a Settlement that can be set on
// creation. Recorded settlements are immutable except for the notes.
type SettlementEditable struct {
	PayerID    ez_uuid.UUID    `json:"payerId" binding:"required" format:"UUID"`
	ReceiverID ez_uuid.UUID    `json:"receiverId" binding:"required" format:"UUID"`
	Amount     decimal.Decimal `json:"amount" example:"10"`
	Date       time.Time       `json:"date" example:"2026-02-27T00:00:00Z"`
	Notes      string          `json:"notes" example:"Paid back in cash"`
	GroupID    *ez_uuid.UUID   `json:"groupId" format:"UUID"`
}

func (editable SettlementEditable) model() models.Settlement {
	settlement := models.Settlement{
		PayerID:    editable.PayerID.UUID,
		ReceiverID: editable.ReceiverID.UUID,
		Amount:     editable.Amount,
		Date:       editable.Date,
		Notes:      editable.Notes,
	}

	if editable.GroupID != nil {
		settlement.GroupID = &editable.GroupID.UUID
	}

	return settlement
}

// SettlementNotes is the only part of a settlement that can be updated.
type SettlementNotes struct {
	Notes string `json:"notes" example:"Paid back in cash"`
}

type SettlementResponse struct {
	Data  *models.Settlement `json:"data"`
	Error *string            `json:"error"`
}

type SettlementListResponse struct {
	Data  []models.Settlement `json:"data"`
	Error *string             `json:"error"`
}

// SettlementQueryFilter contains the fields settlements can be filtered by.
type SettlementQueryFilter struct {
	UserID  ez_uuid.UUID `form:"userId" format:"UUID"`
	GroupID ez_uuid.UUID `form:"group" format:"UUID"`
}

// RegisterSettlementRoutes registers the routes for settlements with
// the RouterGroup that is passed.
func RegisterSettlementRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsSettlements)
		r.GET("", GetSettlements)
		r.POST("", CreateSettlement)
	}

	{
		r.OPTIONS("/:id", OptionsSettlementDetail)
		r.GET("/:id", GetSettlement)
		r.PATCH("/:id", UpdateSettlement)
		r.DELETE("/:id", DeleteSettlement)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Settlements
// @Success		204
// @Router			/v1/settlements [options]
func OptionsSettlements(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Settlements
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/settlements/{id} [options]
func OptionsSettlementDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Settlement{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Record settlement
// @Description	Records money that changed hands between two users
// @Tags			Settlements
// @Produce		json
// @Success		201			{object}	SettlementResponse
// @Failure		400			{object}	SettlementResponse
// @Failure		404			{object}	SettlementResponse
// @Failure		500			{object}	SettlementResponse
// @Param			settlement	body		SettlementEditable	true	"Settlement"
// @Router			/v1/settlements [post]
func CreateSettlement(c *gin.Context) {
	var editable SettlementEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		e := err.Error()
		c.JSON(status(err), SettlementResponse{Error: &e})
		return
	}

	settlement := editable.model()

	if settlement.GroupID != nil {
		err := requireMembership(*settlement.GroupID, settlement.PayerID)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), SettlementResponse{Error: &e})
			return
		}
	}

	if err := models.DB.Create(&settlement).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), SettlementResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, SettlementResponse{Data: &settlement})
}

// @Summary		List settlements
// @Description	Returns a list of settlements
// @Tags			Settlements
// @Produce		json
// @Success		200		{object}	SettlementListResponse
// @Failure		400		{object}	SettlementListResponse
// @Failure		500		{object}	SettlementListResponse
// @Param			userId	query		string	false	"Filter by user ID, payer or receiver"
// @Param			group	query		string	false	"Filter by group ID"
// @Router			/v1/settlements [get]
func GetSettlements(c *gin.Context) {
	var filter SettlementQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, SettlementListResponse{Error: &e})
		return
	}

	q := models.DB.Order("datetime(settlements.date) DESC, datetime(settlements.created_at) DESC")

	if filter.UserID != ez_uuid.Nil {
		q = q.Where(
			models.DB.Where(models.Settlement{PayerID: filter.UserID.UUID}).
				Or(models.Settlement{ReceiverID: filter.UserID.UUID}))
	}

	if filter.GroupID != ez_uuid.Nil {
		q = q.Where("group_id = ?", filter.GroupID.UUID)
	}

	var settlements []models.Settlement
	err := q.Find(&settlements).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SettlementListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, SettlementListResponse{Data: settlements})
}

// @Summary		Get settlement
// @Description	Returns a specific settlement
// @Tags			Settlements
// @Produce		json
// @Success		200	{object}	SettlementResponse
// @Failure		400	{object}	SettlementResponse
// @Failure		404	{object}	SettlementResponse
// @Failure		500	{object}	SettlementResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/settlements/{id} [get]
func GetSettlement(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), SettlementResponse{Error: &e})
		return
	}

	var settlement models.Settlement
	err := models.DB.First(&settlement, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SettlementResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, SettlementResponse{Data: &settlement})
}

// @Summary		Update settlement notes
// @Description	Updates the notes of a settlement. Everything else is immutable. Only payer or receiver can do this.
// @Tags			Settlements
// @Accept			json
// @Produce		json
// @Success		200			{object}	SettlementResponse
// @Failure		400			{object}	SettlementResponse
// @Failure		403			{object}	SettlementResponse
// @Failure		404			{object}	SettlementResponse
// @Failure		500			{object}	SettlementResponse
// @Param			id			path		string			true	"ID formatted as string"
// @Param			userId		query		string			true	"ID of the acting user"
// @Param			settlement	body		SettlementNotes	true	"Settlement notes"
// @Router			/v1/settlements/{id} [patch]
func UpdateSettlement(c *gin.Context) {
	settlement, err := settlementPartyGate(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SettlementResponse{Error: &e})
		return
	}

	var notes SettlementNotes
	if err := c.ShouldBindJSON(&notes); err != nil {
		e := err.Error()
		c.JSON(status(err), SettlementResponse{Error: &e})
		return
	}

	err = models.DB.Model(settlement).Select("Notes").Updates(models.Settlement{Notes: notes.Notes}).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SettlementResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, SettlementResponse{Data: settlement})
}

// @Summary		Delete settlement
// @Description	Deletes a settlement. Only payer or receiver can do this.
// @Tags			Settlements
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		403		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			id		path	string	true	"ID formatted as string"
// @Param			userId	query	string	true	"ID of the acting user"
// @Router			/v1/settlements/{id} [delete]
func DeleteSettlement(c *gin.Context) {
	settlement, err := settlementPartyGate(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(settlement).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// settlementPartyGate loads the settlement and verifies that the acting
// user from the userId query parameter is its payer or receiver.
func settlementPartyGate(c *gin.Context) (*models.Settlement, error) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		return nil, err
	}

	var query QueryUser
	if err := c.ShouldBindQuery(&query); err != nil {
		return nil, err
	}

	if query.UserID == ez_uuid.Nil {
		return nil, errUserIDParameter
	}

	var settlement models.Settlement
	err := models.DB.First(&settlement, uri.ID).Error
	if err != nil {
		return nil, err
	}

	if !settlement.IsParty(query.UserID.UUID) {
		return nil, models.ErrNotSettlementParty
	}

	return &settlement, nil
}
