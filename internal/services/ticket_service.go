package services

import (
	"context"
	"encoding/json"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"hms/internal/status"
	"hms/models"
)

const qrSize = 256

type ticketStore interface {
	Get(ctx context.Context, id string) (*models.Registration, error)
	GetMember(ctx context.Context, memberID string) (*models.Member, error)
}

// TicketService encodes per-member claims into QR tickets and back.
type TicketService struct {
	regs ticketStore
}

func NewTicketService(regs ticketStore) *TicketService {
	return &TicketService{regs: regs}
}

// Encode serializes a claim into the compact payload baked into the QR code.
func (s *TicketService) Encode(claim models.TicketClaim) (string, error) {
	b, err := json.Marshal(claim)
	if err != nil {
		return "", fmt.Errorf("encode ticket: %w", err)
	}
	return string(b), nil
}

// Decode parses a scanned payload. Malformed payloads and payloads with
// missing ids both fail with the decode error; whether the ids exist is a
// separate question answered by the store.
func (s *TicketService) Decode(payload string) (*models.TicketClaim, error) {
	var claim models.TicketClaim
	if err := json.Unmarshal([]byte(payload), &claim); err != nil {
		return nil, status.ErrTicketDecode
	}
	if claim.EventID == "" || claim.RegistrationID == "" || claim.MemberID == "" {
		return nil, status.ErrTicketDecode
	}
	return &claim, nil
}

// RenderPNG produces the member's ticket as a PNG QR image. The member must
// belong to the registration; ids from another team are a lookup failure.
func (s *TicketService) RenderPNG(ctx context.Context, registrationID, memberID string) ([]byte, error) {
	reg, err := s.regs.Get(ctx, registrationID)
	if err != nil {
		return nil, err
	}

	member, err := s.regs.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member.RegistrationID != reg.ID {
		return nil, status.ErrMemberNotFound
	}

	payload, err := s.Encode(models.TicketClaim{
		EventID:        reg.EventID,
		RegistrationID: reg.ID,
		MemberID:       member.ID,
	})
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(payload, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("render ticket: %w", err)
	}
	return png, nil
}
