package v1

import (
	"net/http"
	"time"

	"github.com/fairshare/backend/internal/httputil"
	"github.com/fairshare/backend/internal/models"
	ez_uuid "github.com/fairshare/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
)

// ExpenseEditable are the fields of an Expense that can be set by requests.
// Participants are the users the amount is split between; the payer's own
// share is marked as paid on creation.
type ExpenseEditable struct {
	Description  string           `json:"description" example:"Groceries"`
	Amount       decimal.Decimal  `json:"amount" example:"30"`
	Date         time.Time        `json:"date" example:"2026-02-27T00:00:00Z"`
	CreatedByID  ez_uuid.UUID     `json:"createdById" format:"UUID"`
	PaidByID     ez_uuid.UUID     `json:"paidById" format:"UUID"`
	SplitType    models.SplitType `json:"splitType" example:"equal"`
	GroupID      *ez_uuid.UUID    `json:"groupId" format:"UUID"`
	Participants []ez_uuid.UUID   `json:"participants"`
}

func (editable ExpenseEditable) model() models.Expense {
	expense := models.Expense{
		Description: editable.Description,
		Amount:      editable.Amount,
		Date:        editable.Date,
		CreatedByID: editable.CreatedByID.UUID,
		PaidByID:    editable.PaidByID.UUID,
		SplitType:   editable.SplitType,
	}

	if editable.GroupID != nil {
		expense.GroupID = &editable.GroupID.UUID
	}

	return expense
}

func (editable ExpenseEditable) participants() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(editable.Participants))
	for _, id := range editable.Participants {
		ids = append(ids, id.UUID)
	}

	return ids
}

type ExpenseResponse struct {
	Data  *models.Expense `json:"data"`
	Error *string         `json:"error"`
}

type ExpenseListResponse struct {
	Data  []models.Expense `json:"data"`
	Error *string          `json:"error"`
}

// ExpenseQueryFilter contains the fields expenses can be filtered by.
type ExpenseQueryFilter struct {
	PaidBy      ez_uuid.UUID `form:"paidBy" format:"UUID"`
	GroupID     ez_uuid.UUID `form:"group" format:"UUID"`
	Description string       `form:"description" filterField:"false"`
}

// RegisterExpenseRoutes registers the routes for expenses with
// the RouterGroup that is passed.
func RegisterExpenseRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsExpenses)
		r.GET("", GetExpenses)
		r.POST("", CreateExpense)
	}

	{
		r.OPTIONS("/:id", OptionsExpenseDetail)
		r.GET("/:id", GetExpense)
		r.PATCH("/:id", UpdateExpense)
		r.DELETE("/:id", DeleteExpense)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Router			/v1/expenses [options]
func OptionsExpenses(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/expenses/{id} [options]
func OptionsExpenseDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Expense{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create expense
// @Description	Creates a new expense and its shares. Only equal splits are supported; the shares are computed atomically with the expense.
// @Tags			Expenses
// @Produce		json
// @Success		201		{object}	ExpenseResponse
// @Failure		400		{object}	ExpenseResponse
// @Failure		403		{object}	ExpenseResponse
// @Failure		404		{object}	ExpenseResponse
// @Failure		500		{object}	ExpenseResponse
// @Param			expense	body		ExpenseEditable	true	"Expense"
// @Router			/v1/expenses [post]
func CreateExpense(c *gin.Context) {
	var editable ExpenseEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{Error: &e})
		return
	}

	expense := editable.model()

	// Writing into a group requires the creator to be a member
	if expense.GroupID != nil {
		err := requireMembership(*expense.GroupID, expense.CreatedByID)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), ExpenseResponse{Error: &e})
			return
		}
	}

	if err := expense.CreateWithShares(models.DB, editable.participants()); err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, ExpenseResponse{Data: &expense})
}

// @Summary		List expenses
// @Description	Returns a list of expenses
// @Tags			Expenses
// @Produce		json
// @Success		200			{object}	ExpenseListResponse
// @Failure		400			{object}	ExpenseListResponse
// @Failure		500			{object}	ExpenseListResponse
// @Param			paidBy		query		string	false	"Filter by paying user ID"
// @Param			group		query		string	false	"Filter by group ID"
// @Param			description	query		string	false	"Filter by description, supports * as wildcard"
// @Router			/v1/expenses [get]
func GetExpenses(c *gin.Context) {
	var filter ExpenseQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, ExpenseListResponse{Error: &e})
		return
	}

	q := models.DB.
		Preload("Shares").
		Order("datetime(expenses.date) DESC, datetime(expenses.created_at) DESC")

	if filter.PaidBy != ez_uuid.Nil {
		q = q.Where(models.Expense{PaidByID: filter.PaidBy.UUID})
	}

	if filter.GroupID != ez_uuid.Nil {
		q = q.Where("group_id = ?", filter.GroupID.UUID)
	}

	var expenses []models.Expense
	err := q.Find(&expenses).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseListResponse{Error: &e})
		return
	}

	// The description filter supports * wildcards, which sqlite LIKE does
	// not, so it is applied here
	if filter.Description != "" {
		matched := make([]models.Expense, 0, len(expenses))
		for _, expense := range expenses {
			if glob.Glob(filter.Description, expense.Description) {
				matched = append(matched, expense)
			}
		}
		expenses = matched
	}

	c.JSON(http.StatusOK, ExpenseListResponse{Data: expenses})
}

// @Summary		Get expense
// @Description	Returns a specific expense with its shares
// @Tags			Expenses
// @Produce		json
// @Success		200	{object}	ExpenseResponse
// @Failure		400	{object}	ExpenseResponse
// @Failure		404	{object}	ExpenseResponse
// @Failure		500	{object}	ExpenseResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/expenses/{id} [get]
func GetExpense(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{Error: &e})
		return
	}

	var expense models.Expense
	err := models.DB.Preload("Shares").First(&expense, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, ExpenseResponse{Data: &expense})
}

// @Summary		Update expense
// @Description	Updates an expense. The shares are deleted and recreated from the update. Only the creator can do this.
// @Tags			Expenses
// @Accept			json
// @Produce		json
// @Success		200		{object}	ExpenseResponse
// @Failure		400		{object}	ExpenseResponse
// @Failure		403		{object}	ExpenseResponse
// @Failure		404		{object}	ExpenseResponse
// @Failure		500		{object}	ExpenseResponse
// @Param			id		path		string			true	"ID formatted as string"
// @Param			userId	query		string			true	"ID of the acting user"
// @Param			expense	body		ExpenseEditable	true	"Expense"
// @Router			/v1/expenses/{id} [patch]
func UpdateExpense(c *gin.Context) {
	expense, err := expenseOwnerGate(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{Error: &e})
		return
	}

	var editable ExpenseEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{Error: &e})
		return
	}

	if editable.Description != "" {
		expense.Description = editable.Description
	}

	if !editable.Amount.IsZero() {
		expense.Amount = editable.Amount
	}

	if !editable.Date.IsZero() {
		expense.Date = editable.Date
	}

	if editable.PaidByID != ez_uuid.Nil {
		expense.PaidByID = editable.PaidByID.UUID
	}

	if err := expense.SaveWithShares(models.DB, editable.participants()); err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, ExpenseResponse{Data: expense})
}

// @Summary		Delete expense
// @Description	Deletes an expense and its shares. Only the creator can do this.
// @Tags			Expenses
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		403		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			id		path	string	true	"ID formatted as string"
// @Param			userId	query	string	true	"ID of the acting user"
// @Router			/v1/expenses/{id} [delete]
func DeleteExpense(c *gin.Context) {
	expense, err := expenseOwnerGate(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(expense).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// expenseOwnerGate loads the expense and verifies that the acting user
// from the userId query parameter created it.
func expenseOwnerGate(c *gin.Context) (*models.Expense, error) {
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

	var expense models.Expense
	err := models.DB.Preload("Shares").First(&expense, uri.ID).Error
	if err != nil {
		return nil, err
	}

	if expense.CreatedByID != query.UserID.UUID {
		return nil, models.ErrNotExpenseOwner
	}

	return &expense, nil
}

// requireMembership verifies that the user is a member of the group.
func requireMembership(groupID, userID uuid.UUID) error {
	var group models.Group
	err := models.DB.First(&group, groupID).Error
	if err != nil {
		return err
	}

	member, err := group.IsMember(models.DB, userID)
	if err != nil {
		return err
	}

	if !member {
		return models.ErrNotGroupMember
	}

	return nil
}
