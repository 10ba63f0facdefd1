package services

import (
	"github.com/shopspring/decimal"

	"hms/models"
)

// Price returns the amount a team owes for an event: price per person times
// the member count, or the flat team price.
func Price(ev *models.Event, memberCount int) decimal.Decimal {
	switch ev.PricingMode {
	case models.PricingPerTeam:
		return decimal.NewFromFloat(ev.PricePerTeam)
	default:
		return decimal.NewFromFloat(ev.PricePerPerson).
			Mul(decimal.NewFromInt(int64(memberCount)))
	}
}

// Revenue computes what the event's teams owe in aggregate: member count
// times the per-person price, or team count times the flat team price.
func Revenue(ev *models.Event, teams, members int) decimal.Decimal {
	switch ev.PricingMode {
	case models.PricingPerTeam:
		return decimal.NewFromFloat(ev.PricePerTeam).
			Mul(decimal.NewFromInt(int64(teams)))
	default:
		return decimal.NewFromFloat(ev.PricePerPerson).
			Mul(decimal.NewFromInt(int64(members)))
	}
}
