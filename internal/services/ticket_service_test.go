package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hms/internal/status"
	"hms/models"
)

type fakeTicketStore struct {
	reg     *models.Registration
	members []models.Member
	err     error
}

func (f *fakeTicketStore) Get(_ context.Context, id string) (*models.Registration, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.reg == nil || f.reg.ID != id {
		return nil, status.ErrRegistrationNotFound
	}
	return f.reg, nil
}

func (f *fakeTicketStore) GetMember(_ context.Context, memberID string) (*models.Member, error) {
	for i := range f.members {
		if f.members[i].ID == memberID {
			return &f.members[i], nil
		}
	}
	return nil, status.ErrMemberNotFound
}

func TestTicketService_EncodeDecodeRoundtrip(t *testing.T) {
	s := NewTicketService(nil)

	claim := models.TicketClaim{EventID: "ev1", RegistrationID: "reg1", MemberID: "mem1"}
	payload, err := s.Encode(claim)
	require.NoError(t, err)
	assert.JSONEq(t, `{"e":"ev1","t":"reg1","m":"mem1"}`, payload)

	decoded, err := s.Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, claim, *decoded)
}

func TestTicketService_DecodeRejectsGarbage(t *testing.T) {
	s := NewTicketService(nil)

	tests := []struct {
		name    string
		payload string
	}{
		{"not json", "hello world"},
		{"empty", ""},
		{"missing event", `{"t":"reg1","m":"mem1"}`},
		{"missing registration", `{"e":"ev1","m":"mem1"}`},
		{"missing member", `{"e":"ev1","t":"reg1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Decode(tt.payload)
			assert.ErrorIs(t, err, status.ErrTicketDecode)
		})
	}
}

func TestTicketService_RenderPNG(t *testing.T) {
	store := &fakeTicketStore{
		reg:     &models.Registration{ID: "reg1", EventID: "ev1"},
		members: []models.Member{{ID: "mem1", RegistrationID: "reg1", Name: "Asha"}},
	}
	s := NewTicketService(store)

	png, err := s.RenderPNG(context.Background(), "reg1", "mem1")
	require.NoError(t, err)

	// PNG magic bytes
	assert.True(t, bytes.HasPrefix(png, []byte{0x89, 'P', 'N', 'G'}))
}

func TestTicketService_RenderPNG_UnknownMember(t *testing.T) {
	store := &fakeTicketStore{
		reg:     &models.Registration{ID: "reg1", EventID: "ev1"},
		members: []models.Member{{ID: "mem1", RegistrationID: "reg1"}},
	}
	s := NewTicketService(store)

	_, err := s.RenderPNG(context.Background(), "reg1", "nope")
	assert.ErrorIs(t, err, status.ErrMemberNotFound)
}

func TestTicketService_RenderPNG_MemberOfAnotherTeam(t *testing.T) {
	store := &fakeTicketStore{
		reg:     &models.Registration{ID: "reg1", EventID: "ev1"},
		members: []models.Member{{ID: "mem9", RegistrationID: "reg2"}},
	}
	s := NewTicketService(store)

	// The member exists but belongs to a different registration
	_, err := s.RenderPNG(context.Background(), "reg1", "mem9")
	assert.ErrorIs(t, err, status.ErrMemberNotFound)
}

func TestTicketService_RenderPNG_UnknownRegistration(t *testing.T) {
	s := NewTicketService(&fakeTicketStore{})

	_, err := s.RenderPNG(context.Background(), "missing", "mem1")
	assert.ErrorIs(t, err, status.ErrRegistrationNotFound)
}
