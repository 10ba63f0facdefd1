package status

import "errors"

// Validation failures. All of these are detected before any write.
var (
	ErrTeamNameRequired  = errors.New("registration: team name is required")
	ErrLeadPhoneRequired = errors.New("registration: lead phone is required")
	ErrEmailDomain       = errors.New("registration: email must use the institutional domain")
	ErrNoMembers         = errors.New("registration: at least one member is required")
	ErrTeamTooLarge      = errors.New("registration: team exceeds the event member limit")
	ErrMemberIncomplete  = errors.New("registration: member is missing required fields")
	ErrProofRequired     = errors.New("registration: payment proof is required for paid events")
	ErrTxnRefRequired    = errors.New("registration: transaction reference is required for paid events")
	ErrFileTooLarge      = errors.New("upload: file exceeds the size limit")
	ErrNotImage          = errors.New("upload: file is not a decodable image")
)

// Conflict and lookup failures.
var (
	ErrEventNotFound         = errors.New("event: event not found")
	ErrEventClosed           = errors.New("event: registrations are closed")
	ErrEventHasRegistrations = errors.New("event: event has registrations and cannot be deleted")
	ErrRegistrationNotFound  = errors.New("registration: registration not found")
	ErrMemberNotFound        = errors.New("registration: member not found")
	ErrDraftNotFound         = errors.New("draft: draft not found")
	ErrDraftInvalid          = errors.New("draft: draft payload is not valid JSON")
)

// Ticket and check-in failures.
var (
	ErrTicketDecode = errors.New("ticket: malformed ticket payload")
)

// Reporting failures.
var (
	ErrNothingToExport = errors.New("report: no rows to export")
)
