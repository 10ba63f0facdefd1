package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase/apis"

	"hms/internal/status"
)

var badRequestErrs = []error{
	status.ErrTeamNameRequired,
	status.ErrLeadPhoneRequired,
	status.ErrEmailDomain,
	status.ErrNoMembers,
	status.ErrTeamTooLarge,
	status.ErrMemberIncomplete,
	status.ErrProofRequired,
	status.ErrTxnRefRequired,
	status.ErrFileTooLarge,
	status.ErrNotImage,
	status.ErrTicketDecode,
	status.ErrDraftInvalid,
}

var notFoundErrs = []error{
	status.ErrEventNotFound,
	status.ErrRegistrationNotFound,
	status.ErrMemberNotFound,
	status.ErrDraftNotFound,
	status.ErrNothingToExport,
}

var conflictErrs = []error{
	status.ErrEventClosed,
	status.ErrEventHasRegistrations,
}

// apiError maps service errors onto the HTTP error surface. Anything not in
// the taxonomy is an internal error and keeps its cause out of the response.
func apiError(err error) error {
	for _, target := range badRequestErrs {
		if errors.Is(err, target) {
			return apis.NewBadRequestError(target.Error(), nil)
		}
	}
	for _, target := range notFoundErrs {
		if errors.Is(err, target) {
			return apis.NewNotFoundError(target.Error(), nil)
		}
	}
	for _, target := range conflictErrs {
		if errors.Is(err, target) {
			return apis.NewApiError(http.StatusConflict, target.Error(), nil)
		}
	}
	return apis.NewInternalServerError("internal error", err)
}
