package v1

import (
	"errors"
	"net/http"

	"github.com/fairshare/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate status for a database or engine error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, models.ErrNotGroupMember) ||
		errors.Is(err, models.ErrNotGroupAdmin) ||
		errors.Is(err, models.ErrNotExpenseOwner) ||
		errors.Is(err, models.ErrNotSettlementParty) {
		return http.StatusForbidden
	}

	return http.StatusBadRequest
}

var errUserIDParameter = errors.New("the userId parameter must be set")
