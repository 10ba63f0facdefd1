package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hms/internal/status"
	"hms/models"
)

type fakeReportEvents struct {
	events []models.Event
}

func (f *fakeReportEvents) Get(_ context.Context, id string) (*models.Event, error) {
	for i := range f.events {
		if f.events[i].ID == id {
			return &f.events[i], nil
		}
	}
	return nil, status.ErrEventNotFound
}

func (f *fakeReportEvents) List(_ context.Context) ([]models.Event, error) {
	return f.events, nil
}

type fakeReportRegistrations struct {
	regs []models.Registration
}

func (f *fakeReportRegistrations) ListByEvent(_ context.Context, eventID string) ([]models.Registration, error) {
	var out []models.Registration
	for i := range f.regs {
		if f.regs[i].EventID == eventID {
			out = append(out, f.regs[i])
		}
	}
	return out, nil
}

func (f *fakeReportRegistrations) ListAll(_ context.Context) ([]models.Registration, error) {
	return f.regs, nil
}

func (f *fakeReportRegistrations) CountByEvent(_ context.Context, eventID string) (int, int, error) {
	teams, members := 0, 0
	for i := range f.regs {
		if f.regs[i].EventID == eventID {
			teams++
			members += len(f.regs[i].Members)
		}
	}
	return teams, members, nil
}

func reportFixture() *ReportService {
	events := &fakeReportEvents{events: []models.Event{
		{ID: "ev1", Name: "Hackathon", PricingMode: models.PricingPerPerson, PricePerPerson: 100},
		{ID: "ev2", Name: "Quiz", PricingMode: models.PricingPerTeam, PricePerTeam: 300},
	}}
	regs := &fakeReportRegistrations{regs: []models.Registration{
		{
			ID: "reg1", EventID: "ev1", TeamName: "Null Pointers",
			LeadEmail: "asha@klu.ac.in", LeadPhone: "9876543210",
			PaymentStatus: models.PaymentApproved,
			CreatedAt:     time.Date(2026, 2, 14, 10, 30, 0, 0, time.UTC),
			Members: []models.Member{
				{ID: "mem1", Name: "Asha", RegNo: "2200031001", Email: "asha@klu.ac.in", Year: "3", Section: "A", Stream: "CSE", Attendance: true},
				{ID: "mem2", Name: "Ravi", RegNo: "2200031002", Email: "ravi@klu.ac.in", Year: "3", Section: "B", Stream: "OTHER", StreamOther: "AIDS"},
			},
		},
		{
			ID: "reg2", EventID: "ev2", TeamName: "Lone Wolf",
			PaymentStatus: models.PaymentPending,
			Members: []models.Member{
				{ID: "mem3", Name: "Meena", RegNo: "2200031003", Email: "meena@klu.ac.in", Attendance: true},
			},
		},
	}}
	return NewReportService(events, regs)
}

func TestReportService_EventStats(t *testing.T) {
	s := reportFixture()

	stats, err := s.EventStats(context.Background(), "ev1")

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Teams)
	assert.Equal(t, 2, stats.Members)
	assert.Equal(t, "200.00", stats.Revenue)
}

func TestReportService_EventStats_PerTeamRevenue(t *testing.T) {
	s := reportFixture()

	stats, err := s.EventStats(context.Background(), "ev2")

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Teams)
	assert.Equal(t, 1, stats.Members)
	assert.Equal(t, "300.00", stats.Revenue)
}

func TestReportService_EventStats_UnknownEvent(t *testing.T) {
	s := reportFixture()

	_, err := s.EventStats(context.Background(), "ghost")

	assert.ErrorIs(t, err, status.ErrEventNotFound)
}

func TestReportService_EventCSV(t *testing.T) {
	s := reportFixture()

	data, err := s.EventCSV(context.Background(), "ev1")
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + 2 members

	assert.Equal(t, []string{
		"Team ID", "Team Name", "Lead Email", "Lead Phone",
		"Member Name", "Reg No", "Email", "Year", "Section", "Stream",
		"Attendance", "Payment Status", "Timestamp",
	}, rows[0])

	assert.Equal(t, []string{
		"reg1", "Null Pointers", "asha@klu.ac.in", "9876543210",
		"Asha", "2200031001", "asha@klu.ac.in", "3", "A", "CSE",
		"PRESENT", "approved", "2026-02-14 10:30:00",
	}, rows[1])

	// OTHER stream exports the free-text department, absent members export ABSENT
	assert.Equal(t, "AIDS", rows[2][9])
	assert.Equal(t, "ABSENT", rows[2][10])
}

func TestReportService_AttendanceCSV(t *testing.T) {
	s := reportFixture()

	data, err := s.AttendanceCSV(context.Background())
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + 2 present members

	assert.Equal(t, []string{"Event", "Team", "Member Name", "Reg No", "Email", "Status"}, rows[0])
	assert.Equal(t, []string{"Hackathon", "Null Pointers", "Asha", "2200031001", "asha@klu.ac.in", "PRESENT"}, rows[1])
	assert.Equal(t, []string{"Quiz", "Lone Wolf", "Meena", "2200031003", "meena@klu.ac.in", "PRESENT"}, rows[2])
}

func TestReportService_AttendanceCSV_NothingToExport(t *testing.T) {
	events := &fakeReportEvents{events: []models.Event{{ID: "ev1", Name: "Hackathon"}}}
	regs := &fakeReportRegistrations{regs: []models.Registration{
		{ID: "reg1", EventID: "ev1", Members: []models.Member{{ID: "mem1"}}},
	}}
	s := NewReportService(events, regs)

	_, err := s.AttendanceCSV(context.Background())

	assert.ErrorIs(t, err, status.ErrNothingToExport)
}
