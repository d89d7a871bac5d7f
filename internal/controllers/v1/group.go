package v1

import (
	"net/http"

	"github.com/fairshare/backend/internal/httputil"
	"github.com/fairshare/backend/internal/models"
	ez_uuid "github.com/fairshare/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GroupEditable are the fields of a Group that can be set by requests.
type GroupEditable struct {
	Name        string       `json:"name" example:"Flat 12b"`
	Note        string       `json:"note" example:"Shared flat expenses"`
	CreatedByID ez_uuid.UUID `json:"createdById" format:"UUID"` // The creating user, becomes the first admin
}

func (editable GroupEditable) model() models.Group {
	return models.Group{
		Name:        editable.Name,
		Note:        editable.Note,
		CreatedByID: editable.CreatedByID.UUID,
	}
}

// MemberEditable are the fields of a GroupMember that can be set by requests.
type MemberEditable struct {
	UserID ez_uuid.UUID      `json:"userId" binding:"required" format:"UUID"` // The user to add
	Role   models.MemberRole `json:"role" example:"MEMBER"`
}

type GroupResponse struct {
	Data  *models.Group `json:"data"`
	Error *string       `json:"error"`
}

type MemberResponse struct {
	Data  *models.GroupMember `json:"data"`
	Error *string             `json:"error"`
}

type MemberListResponse struct {
	Data  []models.GroupMember `json:"data"`
	Error *string              `json:"error"`
}

// RegisterGroupRoutes registers the routes for groups with
// the RouterGroup that is passed.
func RegisterGroupRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsGroups)
		r.POST("", CreateGroup)
	}

	{
		r.OPTIONS("/:id", OptionsGroupDetail)
		r.GET("/:id", GetGroup)
		r.PATCH("/:id", UpdateGroup)
		r.DELETE("/:id", DeleteGroup)
	}

	{
		r.OPTIONS("/:id/members", OptionsGroupMembers)
		r.GET("/:id/members", GetGroupMembers)
		r.POST("/:id/members", CreateGroupMember)
	}

	{
		r.OPTIONS("/:id/balances", OptionsGroupBalances)
		r.GET("/:id/balances", GetGroupBalances)
	}

	{
		r.OPTIONS("/:id/suggestions", OptionsGroupSuggestions)
		r.GET("/:id/suggestions", GetGroupSuggestions)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Groups
// @Success		204
// @Router			/v1/groups [options]
func OptionsGroups(c *gin.Context) {
	c.Header("allow", "POST")
	c.Status(http.StatusNoContent)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Groups
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/groups/{id} [options]
func OptionsGroupDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Group{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Groups
// @Success		204
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/groups/{id}/members [options]
func OptionsGroupMembers(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Create group
// @Description	Creates a new group. The creating user becomes its first admin.
// @Tags			Groups
// @Produce		json
// @Success		201		{object}	GroupResponse
// @Failure		400		{object}	GroupResponse
// @Failure		404		{object}	GroupResponse
// @Failure		500		{object}	GroupResponse
// @Param			group	body		GroupEditable	true	"Group"
// @Router			/v1/groups [post]
func CreateGroup(c *gin.Context) {
	var editable GroupEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		e := err.Error()
		c.JSON(status(err), GroupResponse{Error: &e})
		return
	}

	group := editable.model()

	// Group and admin membership are created together
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Create(&group).Error
		if err != nil {
			return err
		}

		return tx.Create(&models.GroupMember{
			GroupID: group.ID,
			UserID:  group.CreatedByID,
			Role:    models.RoleAdmin,
		}).Error
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GroupResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, GroupResponse{Data: &group})
}

// @Summary		Get group
// @Description	Returns a specific group. The requesting user must be a member.
// @Tags			Groups
// @Produce		json
// @Success		200		{object}	GroupResponse
// @Failure		400		{object}	GroupResponse
// @Failure		403		{object}	GroupResponse
// @Failure		404		{object}	GroupResponse
// @Failure		500		{object}	GroupResponse
// @Param			id		path		string	true	"ID formatted as string"
// @Param			userId	query		string	true	"ID of the requesting user"
// @Router			/v1/groups/{id} [get]
func GetGroup(c *gin.Context) {
	group, err := memberGate(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GroupResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, GroupResponse{Data: group})
}

// @Summary		Update group
// @Description	Updates a group. Only admins can do this.
// @Tags			Groups
// @Accept			json
// @Produce		json
// @Success		200		{object}	GroupResponse
// @Failure		400		{object}	GroupResponse
// @Failure		403		{object}	GroupResponse
// @Failure		404		{object}	GroupResponse
// @Failure		500		{object}	GroupResponse
// @Param			id		path		string			true	"ID formatted as string"
// @Param			userId	query		string			true	"ID of the requesting user"
// @Param			group	body		GroupEditable	true	"Group"
// @Router			/v1/groups/{id} [patch]
func UpdateGroup(c *gin.Context) {
	group, err := adminGate(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GroupResponse{Error: &e})
		return
	}

	var editable GroupEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		e := err.Error()
		c.JSON(status(err), GroupResponse{Error: &e})
		return
	}

	err = models.DB.Model(group).Updates(models.Group{
		Name: editable.Name,
		Note: editable.Note,
	}).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GroupResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, GroupResponse{Data: group})
}

// @Summary		Delete group
// @Description	Deletes a group. Only admins can do this.
// @Tags			Groups
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		403		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			id		path	string	true	"ID formatted as string"
// @Param			userId	query	string	true	"ID of the requesting user"
// @Router			/v1/groups/{id} [delete]
func DeleteGroup(c *gin.Context) {
	group, err := adminGate(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(group).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		List group members
// @Description	Returns the members of a group. The requesting user must be a member.
// @Tags			Groups
// @Produce		json
// @Success		200		{object}	MemberListResponse
// @Failure		400		{object}	MemberListResponse
// @Failure		403		{object}	MemberListResponse
// @Failure		404		{object}	MemberListResponse
// @Failure		500		{object}	MemberListResponse
// @Param			id		path		string	true	"ID formatted as string"
// @Param			userId	query		string	true	"ID of the requesting user"
// @Router			/v1/groups/{id}/members [get]
func GetGroupMembers(c *gin.Context) {
	group, err := memberGate(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MemberListResponse{Error: &e})
		return
	}

	members, err := group.Members(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MemberListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, MemberListResponse{Data: members})
}

// @Summary		Add group member
// @Description	Adds a user to a group. Only admins can do this.
// @Tags			Groups
// @Produce		json
// @Success		201		{object}	MemberResponse
// @Failure		400		{object}	MemberResponse
// @Failure		403		{object}	MemberResponse
// @Failure		404		{object}	MemberResponse
// @Failure		500		{object}	MemberResponse
// @Param			id		path		string			true	"ID formatted as string"
// @Param			userId	query		string			true	"ID of the requesting user"
// @Param			member	body		MemberEditable	true	"Member"
// @Router			/v1/groups/{id}/members [post]
func CreateGroupMember(c *gin.Context) {
	group, err := adminGate(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MemberResponse{Error: &e})
		return
	}

	var editable MemberEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		e := err.Error()
		c.JSON(status(err), MemberResponse{Error: &e})
		return
	}

	member := models.GroupMember{
		GroupID: group.ID,
		UserID:  editable.UserID.UUID,
		Role:    editable.Role,
	}
	if err := models.DB.Create(&member).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), MemberResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, MemberResponse{Data: &member})
}

// memberGate loads the group and verifies that the acting user from the
// userId query parameter is a member. It is the authorization gate for
// all group scoped reads.
func memberGate(c *gin.Context) (*models.Group, error) {
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

	var group models.Group
	err := models.DB.First(&group, uri.ID).Error
	if err != nil {
		return nil, err
	}

	member, err := group.IsMember(models.DB, query.UserID.UUID)
	if err != nil {
		return nil, err
	}

	if !member {
		return nil, models.ErrNotGroupMember
	}

	return &group, nil
}

// adminGate is memberGate with the additional requirement that the acting
// user is an admin of the group.
func adminGate(c *gin.Context) (*models.Group, error) {
	group, err := memberGate(c)
	if err != nil {
		return nil, err
	}

	var query QueryUser
	_ = c.ShouldBindQuery(&query)

	admin, err := group.IsAdmin(models.DB, query.UserID.UUID)
	if err != nil {
		return nil, err
	}

	if !admin {
		return nil, models.ErrNotGroupAdmin
	}

	return group, nil
}
