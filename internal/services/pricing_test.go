package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hms/models"
)

func TestPrice_PerPerson(t *testing.T) {
	ev := &models.Event{PricingMode: models.PricingPerPerson, PricePerPerson: 100}

	assert.Equal(t, "300.00", Price(ev, 3).StringFixed(2))
	assert.Equal(t, "100.00", Price(ev, 1).StringFixed(2))
}

func TestPrice_PerTeam(t *testing.T) {
	ev := &models.Event{PricingMode: models.PricingPerTeam, PricePerTeam: 500}

	// Flat price regardless of team size
	assert.Equal(t, "500.00", Price(ev, 1).StringFixed(2))
	assert.Equal(t, "500.00", Price(ev, 4).StringFixed(2))
}

func TestPrice_FreeEvent(t *testing.T) {
	ev := &models.Event{PricingMode: models.PricingPerPerson, PricePerPerson: 0}

	assert.True(t, Price(ev, 4).IsZero())
}

func TestRevenue(t *testing.T) {
	ev := &models.Event{PricingMode: models.PricingPerPerson, PricePerPerson: 50}

	// 2 teams, 5 members in total
	assert.Equal(t, "250.00", Revenue(ev, 2, 5).StringFixed(2))
}

func TestRevenue_PerTeam(t *testing.T) {
	ev := &models.Event{PricingMode: models.PricingPerTeam, PricePerTeam: 200}

	// Flat price counts teams, not members
	assert.Equal(t, "600.00", Revenue(ev, 3, 7).StringFixed(2))
}
