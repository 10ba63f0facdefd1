package models

// TicketClaim is the payload baked into a member's QR ticket. The field
// names stay single letters so the rendered code stays small enough to
// scan from a phone screen.
type TicketClaim struct {
	EventID        string `json:"e"`
	RegistrationID string `json:"t"`
	MemberID       string `json:"m"`
}
