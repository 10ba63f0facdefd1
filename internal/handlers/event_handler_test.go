package handlers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hms/models"
)

func decodePayload(t *testing.T, raw string) *eventPayload {
	t.Helper()
	var p eventPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return &p
}

func TestApplyPayload_ZeroPriceMakesEventFree(t *testing.T) {
	ev := &models.Event{PricePerPerson: 100, PricePerTeam: 500}

	err := applyPayload(ev, decodePayload(t, `{"price_per_person":0,"price_per_team":0}`))

	require.NoError(t, err)
	assert.Equal(t, 0.0, ev.PricePerPerson)
	assert.Equal(t, 0.0, ev.PricePerTeam)
}

func TestApplyPayload_ClearsTextFields(t *testing.T) {
	ev := &models.Event{BankDetails: "AC 1234", WhatsappLink: "https://chat.whatsapp.com/abc"}

	err := applyPayload(ev, decodePayload(t, `{"bank_details":"","whatsapp_link":""}`))

	require.NoError(t, err)
	assert.Empty(t, ev.BankDetails)
	assert.Empty(t, ev.WhatsappLink)
}

func TestApplyPayload_AbsentFieldsKeepCurrentValues(t *testing.T) {
	ev := &models.Event{
		Name:           "Hackathon",
		PricePerPerson: 100,
		MaxMembers:     4,
		BankDetails:    "AC 1234",
		IsOpen:         true,
	}

	err := applyPayload(ev, decodePayload(t, `{"venue":"Block C"}`))

	require.NoError(t, err)
	assert.Equal(t, "Block C", ev.Venue)
	assert.Equal(t, "Hackathon", ev.Name)
	assert.Equal(t, 100.0, ev.PricePerPerson)
	assert.Equal(t, 4, ev.MaxMembers)
	assert.Equal(t, "AC 1234", ev.BankDetails)
	assert.True(t, ev.IsOpen)
}

func TestApplyPayload_ParsesDates(t *testing.T) {
	ev := &models.Event{}

	require.NoError(t, applyPayload(ev, decodePayload(t, `{"date":"2026-09-15"}`)))
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), ev.Date)

	require.NoError(t, applyPayload(ev, decodePayload(t, `{"date":"2026-09-15T09:30:00Z"}`)))
	assert.Equal(t, time.Date(2026, 9, 15, 9, 30, 0, 0, time.UTC), ev.Date)
}

func TestApplyPayload_RejectsMalformedDate(t *testing.T) {
	ev := &models.Event{Date: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)}

	err := applyPayload(ev, decodePayload(t, `{"date":"next tuesday"}`))

	assert.Error(t, err)
	// The stored date is untouched
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), ev.Date)
}
