package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"hms/internal/status"
	"hms/models"
)

type reportEvents interface {
	Get(ctx context.Context, id string) (*models.Event, error)
	List(ctx context.Context) ([]models.Event, error)
}

type reportRegistrations interface {
	ListByEvent(ctx context.Context, eventID string) ([]models.Registration, error)
	ListAll(ctx context.Context) ([]models.Registration, error)
	CountByEvent(ctx context.Context, eventID string) (teams, members int, err error)
}

// ReportService computes admin stats and CSV exports from current store
// snapshots.
type ReportService struct {
	events reportEvents
	regs   reportRegistrations
}

func NewReportService(events reportEvents, regs reportRegistrations) *ReportService {
	return &ReportService{events: events, regs: regs}
}

func (s *ReportService) EventStats(ctx context.Context, eventID string) (*models.EventStats, error) {
	ev, err := s.events.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	teams, members, err := s.regs.CountByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return &models.EventStats{
		EventID: ev.ID,
		Teams:   teams,
		Members: members,
		Revenue: Revenue(ev, teams, members).StringFixed(2),
	}, nil
}

// EventCSV exports one row per registered member of the event.
func (s *ReportService) EventCSV(ctx context.Context, eventID string) ([]byte, error) {
	if _, err := s.events.Get(ctx, eventID); err != nil {
		return nil, err
	}
	regs, err := s.regs.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{
		"Team ID", "Team Name", "Lead Email", "Lead Phone",
		"Member Name", "Reg No", "Email", "Year", "Section", "Stream",
		"Attendance", "Payment Status", "Timestamp",
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}

	for i := range regs {
		reg := &regs[i]
		for j := range reg.Members {
			m := &reg.Members[j]
			row := []string{
				reg.ID, reg.TeamName, reg.LeadEmail, reg.LeadPhone,
				m.Name, m.RegNo, m.Email, m.Year, m.Section, streamLabel(m),
				attendanceLabel(m.Attendance), string(reg.PaymentStatus),
				reg.CreatedAt.Format("2006-01-02 15:04:05"),
			}
			if err := w.Write(row); err != nil {
				return nil, fmt.Errorf("write csv: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

// AttendanceCSV exports every present member across all events.
func (s *ReportService) AttendanceCSV(ctx context.Context) ([]byte, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}
	eventNames := make(map[string]string, len(events))
	for i := range events {
		eventNames[events[i].ID] = events[i].Name
	}

	regs, err := s.regs.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Event", "Team", "Member Name", "Reg No", "Email", "Status"}); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}

	rows := 0
	for i := range regs {
		reg := &regs[i]
		for j := range reg.Members {
			m := &reg.Members[j]
			if !m.Attendance {
				continue
			}
			row := []string{
				eventNames[reg.EventID], reg.TeamName,
				m.Name, m.RegNo, m.Email, "PRESENT",
			}
			if err := w.Write(row); err != nil {
				return nil, fmt.Errorf("write csv: %w", err)
			}
			rows++
		}
	}
	if rows == 0 {
		return nil, status.ErrNothingToExport
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func attendanceLabel(present bool) string {
	if present {
		return "PRESENT"
	}
	return "ABSENT"
}

func streamLabel(m *models.Member) string {
	if m.Stream == "OTHER" && m.StreamOther != "" {
		return m.StreamOther
	}
	return m.Stream
}
