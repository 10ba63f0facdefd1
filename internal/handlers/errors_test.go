package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/pocketbase/pocketbase/tools/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hms/internal/status"
)

func TestApiError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"team name required", status.ErrTeamNameRequired, http.StatusBadRequest},
		{"lead phone required", status.ErrLeadPhoneRequired, http.StatusBadRequest},
		{"email domain", status.ErrEmailDomain, http.StatusBadRequest},
		{"no members", status.ErrNoMembers, http.StatusBadRequest},
		{"team too large", status.ErrTeamTooLarge, http.StatusBadRequest},
		{"member incomplete", status.ErrMemberIncomplete, http.StatusBadRequest},
		{"proof required", status.ErrProofRequired, http.StatusBadRequest},
		{"txn ref required", status.ErrTxnRefRequired, http.StatusBadRequest},
		{"file too large", status.ErrFileTooLarge, http.StatusBadRequest},
		{"not an image", status.ErrNotImage, http.StatusBadRequest},
		{"ticket decode", status.ErrTicketDecode, http.StatusBadRequest},
		{"draft invalid", status.ErrDraftInvalid, http.StatusBadRequest},
		{"event not found", status.ErrEventNotFound, http.StatusNotFound},
		{"registration not found", status.ErrRegistrationNotFound, http.StatusNotFound},
		{"member not found", status.ErrMemberNotFound, http.StatusNotFound},
		{"draft not found", status.ErrDraftNotFound, http.StatusNotFound},
		{"nothing to export", status.ErrNothingToExport, http.StatusNotFound},
		{"event closed", status.ErrEventClosed, http.StatusConflict},
		{"event has registrations", status.ErrEventHasRegistrations, http.StatusConflict},
		{"unknown error", errors.New("sqlite is on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var apiErr *router.ApiError
			require.ErrorAs(t, apiError(tt.err), &apiErr)
			assert.Equal(t, tt.wantStatus, apiErr.Status)
		})
	}
}

func TestApiError_WrappedErrorsStillMap(t *testing.T) {
	wrapped := fmt.Errorf("lookup registration: %w", status.ErrRegistrationNotFound)

	var apiErr *router.ApiError
	require.ErrorAs(t, apiError(wrapped), &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestApiError_InternalCauseStaysOutOfMessage(t *testing.T) {
	cause := errors.New("dsn contains the db password")

	var apiErr *router.ApiError
	require.ErrorAs(t, apiError(cause), &apiErr)
	assert.Equal(t, "Internal error.", apiErr.Message)
}
