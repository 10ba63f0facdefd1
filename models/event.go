package models

import (
	"time"
)

type PricingMode string

const (
	PricingPerPerson PricingMode = "per_person"
	PricingPerTeam   PricingMode = "per_team"
)

type Event struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Date           time.Time   `json:"date"`
	Venue          string      `json:"venue"`
	Description    string      `json:"description"`
	PricingMode    PricingMode `json:"pricing_mode"` // per_person, per_team
	PricePerPerson float64     `json:"price_per_person"`
	PricePerTeam   float64     `json:"price_per_team"`
	MaxMembers     int         `json:"max_members"`
	PaymentQRURL   string      `json:"payment_qr_url,omitempty"`
	BankDetails    string      `json:"bank_details,omitempty"`
	WhatsappLink   string      `json:"whatsapp_link,omitempty"`
	IsOpen         bool        `json:"is_open"`
}

type EventStats struct {
	EventID string `json:"event_id"`
	Teams   int    `json:"teams"`
	Members int    `json:"members"`
	Revenue string `json:"revenue"`
}
