package services

import (
	"context"
	"errors"
	"log/slog"

	"hms/internal/status"
	"hms/models"
	"hms/monitoring"
)

// Scan outcomes reported to the operator.
const (
	ScanMarked        = "marked"
	ScanAlreadyMarked = "already_marked"
	ScanNotFound      = "not_found"
	ScanInvalid       = "invalid"
)

type ScanResult struct {
	Status     string `json:"status"`
	MemberName string `json:"member_name,omitempty"`
	TeamName   string `json:"team_name,omitempty"`
}

type checkinStore interface {
	Get(ctx context.Context, id string) (*models.Registration, error)
	MarkAttendance(ctx context.Context, memberID string) error
}

// CheckinService runs the door-scan protocol.
type CheckinService struct {
	regs     checkinStore
	tickets  *TicketService
	notifier *NotifyService
	monitor  *monitoring.Monitor
}

func NewCheckinService(regs checkinStore, tickets *TicketService, notifier *NotifyService, monitor *monitoring.Monitor) *CheckinService {
	return &CheckinService{
		regs:     regs,
		tickets:  tickets,
		notifier: notifier,
		monitor:  monitor,
	}
}

// Scan decodes a ticket payload and marks the member present. Every outcome
// the operator can cause is a ScanResult, not an error; errors are reserved
// for store failures. The registration is always fetched fresh so a scan at
// one station sees marks made seconds earlier at another.
func (s *CheckinService) Scan(ctx context.Context, payload string) (*ScanResult, error) {
	claim, err := s.tickets.Decode(payload)
	if err != nil {
		return s.done(&ScanResult{Status: ScanInvalid}), nil
	}

	reg, err := s.regs.Get(ctx, claim.RegistrationID)
	if err != nil {
		if errors.Is(err, status.ErrRegistrationNotFound) {
			return s.done(&ScanResult{Status: ScanNotFound}), nil
		}
		return nil, err
	}

	if reg.EventID != claim.EventID {
		return s.done(&ScanResult{Status: ScanInvalid}), nil
	}

	var member *models.Member
	for i := range reg.Members {
		if reg.Members[i].ID == claim.MemberID {
			member = &reg.Members[i]
			break
		}
	}
	if member == nil {
		return s.done(&ScanResult{Status: ScanNotFound}), nil
	}

	if member.Attendance {
		return s.done(&ScanResult{
			Status:     ScanAlreadyMarked,
			MemberName: member.Name,
			TeamName:   reg.TeamName,
		}), nil
	}

	if err := s.regs.MarkAttendance(ctx, member.ID); err != nil {
		return nil, err
	}

	slog.Info("attendance marked",
		"event_id", reg.EventID,
		"registration_id", reg.ID,
		"member_id", member.ID,
	)

	return s.done(&ScanResult{
		Status:     ScanMarked,
		MemberName: member.Name,
		TeamName:   reg.TeamName,
	}), nil
}

func (s *CheckinService) done(result *ScanResult) *ScanResult {
	s.monitor.TrackScan(result.Status)
	s.notifier.PublishScan(result)
	return result
}
