package models

import (
	"time"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentApproved PaymentStatus = "approved"
	PaymentRejected PaymentStatus = "rejected"
)

// Streams a member can register under. StreamOther carries the free-text
// department when "OTHER" is selected.
var Streams = []string{"CSE", "ECE", "EEE", "MECH", "CIVIL", "OTHER"}

// Years of study.
var Years = []string{"1", "2", "3", "4"}

type Registration struct {
	ID            string        `json:"id"`
	EventID       string        `json:"event_id"`
	TeamName      string        `json:"team_name"`
	LeadEmail     string        `json:"lead_email"`
	LeadPhone     string        `json:"lead_phone"`
	TxnRef        string        `json:"txn_ref,omitempty"`
	ProofURL      string        `json:"payment_proof_url,omitempty"`
	PaymentStatus PaymentStatus `json:"payment_status"` // pending, approved, rejected
	CreatedAt     time.Time     `json:"created_at"`
	Members       []Member      `json:"members"`
}

type Member struct {
	ID             string `json:"id"`
	RegistrationID string `json:"registration_id"`
	Name           string `json:"name"`
	RegNo          string `json:"reg_no"`
	Email          string `json:"email"`
	Year           string `json:"year"`
	Stream         string `json:"stream"`
	StreamOther    string `json:"stream_other,omitempty"`
	Section        string `json:"section,omitempty"`
	Attendance     bool   `json:"attendance"`
}
