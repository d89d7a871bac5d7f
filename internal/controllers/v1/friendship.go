package v1

import (
	"net/http"

	"github.com/fairshare/backend/internal/httputil"
	"github.com/fairshare/backend/internal/models"
	ez_uuid "github.com/fairshare/backend/internal/uuid"
	"github.com/gin-gonic/gin"
)

// FriendshipEditable are the fields of a Friendship that can be set by requests.
type FriendshipEditable struct {
	UserID   ez_uuid.UUID `json:"userId" binding:"required" format:"UUID"`   // The user who adds the friend
	FriendID ez_uuid.UUID `json:"friendId" binding:"required" format:"UUID"` // The user being added
}

func (editable FriendshipEditable) model() models.Friendship {
	return models.Friendship{
		UserID:   editable.UserID.UUID,
		FriendID: editable.FriendID.UUID,
	}
}

type FriendshipResponse struct {
	Data  *models.Friendship `json:"data"`
	Error *string            `json:"error"`
}

type FriendshipListResponse struct {
	Data  []models.Friendship `json:"data"`
	Error *string             `json:"error"`
}

// RegisterFriendshipRoutes registers the routes for friendships with
// the RouterGroup that is passed.
func RegisterFriendshipRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsFriendships)
		r.GET("", GetFriendships)
		r.POST("", CreateFriendship)
	}

	{
		r.OPTIONS("/:id", OptionsFriendshipDetail)
		r.DELETE("/:id", DeleteFriendship)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Friendships
// @Success		204
// @Router			/v1/friendships [options]
func OptionsFriendships(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Friendships
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/friendships/{id} [options]
func OptionsFriendshipDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Friendship{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Header("allow", "DELETE")
	c.Status(http.StatusNoContent)
}

// @Summary		Create friendship
// @Description	Connects two users as friends
// @Tags			Friendships
// @Produce		json
// @Success		201			{object}	FriendshipResponse
// @Failure		400			{object}	FriendshipResponse
// @Failure		404			{object}	FriendshipResponse
// @Failure		500			{object}	FriendshipResponse
// @Param			friendship	body		FriendshipEditable	true	"Friendship"
// @Router			/v1/friendships [post]
func CreateFriendship(c *gin.Context) {
	var editable FriendshipEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		e := err.Error()
		c.JSON(status(err), FriendshipResponse{Error: &e})
		return
	}

	friendship := editable.model()
	if err := models.DB.Create(&friendship).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), FriendshipResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, FriendshipResponse{Data: &friendship})
}

// @Summary		List friendships
// @Description	Returns the friendships of a user
// @Tags			Friendships
// @Produce		json
// @Success		200		{object}	FriendshipListResponse
// @Failure		400		{object}	FriendshipListResponse
// @Failure		500		{object}	FriendshipListResponse
// @Param			userId	query		string	false	"Filter by user ID"
// @Router			/v1/friendships [get]
func GetFriendships(c *gin.Context) {
	var filter QueryUser
	if err := c.Bind(&filter); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, FriendshipListResponse{Error: &e})
		return
	}

	q := models.DB.Order("datetime(friendships.created_at) ASC")
	if filter.UserID != ez_uuid.Nil {
		q = q.Where(
			models.DB.Where(models.Friendship{UserID: filter.UserID.UUID}).
				Or(models.Friendship{FriendID: filter.UserID.UUID}))
	}

	var friendships []models.Friendship
	err := q.Find(&friendships).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), FriendshipListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, FriendshipListResponse{Data: friendships})
}

// @Summary		Delete friendship
// @Description	Removes the connection between two users
// @Tags			Friendships
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/friendships/{id} [delete]
func DeleteFriendship(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var friendship models.Friendship
	err := models.DB.First(&friendship, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&friendship).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
