package v1

import (
	ez_uuid "github.com/fairshare/backend/internal/uuid"
)

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type URIFriend struct {
	URIID
	FriendID ez_uuid.UUID `uri:"friendId" binding:"required" format:"UUID"` // ID of the counterparty
}

// QueryUser carries the acting user for operations that are gated on
// membership or ownership. Authentication happens upstream of this
// backend; the authenticated subject arrives here as a plain parameter.
type QueryUser struct {
	UserID ez_uuid.UUID `form:"userId" format:"UUID"` // ID of the acting user
}
