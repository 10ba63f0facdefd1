package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/tools/filesystem"

	"hms/internal/status"
	"hms/models"
	"hms/monitoring"
	"hms/utils"
)

// RegistrationInput is the wizard's final submit payload.
type RegistrationInput struct {
	EventID   string          `json:"event_id"`
	TeamName  string          `json:"team_name"`
	LeadEmail string          `json:"lead_email"`
	LeadPhone string          `json:"lead_phone"`
	TxnRef    string          `json:"txn_ref"`
	DraftKey  string          `json:"draft_key,omitempty"`
	Members   []models.Member `json:"members"`
}

// RegistrationResult is what the wizard shows on the confirmation step.
type RegistrationResult struct {
	Registration *models.Registration `json:"registration"`
	Price        string               `json:"price"`
}

type wizardEvents interface {
	Get(ctx context.Context, id string) (*models.Event, error)
}

type wizardRegistrations interface {
	Create(ctx context.Context, reg *models.Registration, proof *filesystem.File) error
}

// RegistrationService validates and persists wizard submissions. All gates
// run before any write, so a rejected submission leaves no partial state.
type RegistrationService struct {
	events      wizardEvents
	regs        wizardRegistrations
	drafts      *DraftService
	monitor     *monitoring.Monitor
	emailDomain string
	maxUpload   int64
	maxWidth    int
	jpegQuality int
}

func NewRegistrationService(
	events wizardEvents,
	regs wizardRegistrations,
	drafts *DraftService,
	monitor *monitoring.Monitor,
	emailDomain string,
	maxUpload int64,
	maxWidth, jpegQuality int,
) *RegistrationService {
	return &RegistrationService{
		events:      events,
		regs:        regs,
		drafts:      drafts,
		monitor:     monitor,
		emailDomain: emailDomain,
		maxUpload:   maxUpload,
		maxWidth:    maxWidth,
		jpegQuality: jpegQuality,
	}
}

// Submit runs the wizard gates in order, attaches the normalized payment
// proof and inserts the registration with its members. Free events skip the
// moderation queue and come back already approved.
func (s *RegistrationService) Submit(ctx context.Context, in *RegistrationInput, proof io.Reader, proofSize int64) (*RegistrationResult, error) {
	ev, err := s.events.Get(ctx, in.EventID)
	if err != nil {
		return nil, err
	}
	if !ev.IsOpen {
		return nil, status.ErrEventClosed
	}

	if err := s.validate(ev, in); err != nil {
		return nil, err
	}

	price := Price(ev, len(in.Members))

	var proofFile *filesystem.File
	if price.IsPositive() {
		if proof == nil {
			return nil, status.ErrProofRequired
		}
		if strings.TrimSpace(in.TxnRef) == "" {
			return nil, status.ErrTxnRefRequired
		}
		proofFile, err = s.normalizeProof(proof, proofSize)
		if err != nil {
			return nil, err
		}
	}

	paymentStatus := models.PaymentPending
	if price.IsZero() {
		paymentStatus = models.PaymentApproved
	}

	reg := &models.Registration{
		EventID:       ev.ID,
		TeamName:      strings.TrimSpace(in.TeamName),
		LeadEmail:     strings.TrimSpace(in.LeadEmail),
		LeadPhone:     strings.TrimSpace(in.LeadPhone),
		TxnRef:        strings.TrimSpace(in.TxnRef),
		PaymentStatus: paymentStatus,
		Members:       in.Members,
	}
	if err := s.regs.Create(ctx, reg, proofFile); err != nil {
		return nil, err
	}

	s.monitor.TrackRegistration(ev.ID, string(paymentStatus))
	slog.Info("registration created",
		"registration_id", reg.ID,
		"event_id", ev.ID,
		"members", len(reg.Members),
		"status", paymentStatus,
	)

	if in.DraftKey != "" && s.drafts != nil {
		if err := s.drafts.Delete(ctx, in.DraftKey); err != nil {
			slog.Warn("draft cleanup failed", "draft_key", in.DraftKey, "error", err)
		}
	}

	return &RegistrationResult{
		Registration: reg,
		Price:        price.StringFixed(2),
	}, nil
}

func (s *RegistrationService) validate(ev *models.Event, in *RegistrationInput) error {
	if strings.TrimSpace(in.TeamName) == "" {
		return status.ErrTeamNameRequired
	}
	if strings.TrimSpace(in.LeadPhone) == "" {
		return status.ErrLeadPhoneRequired
	}
	if !s.domainOK(in.LeadEmail) {
		return status.ErrEmailDomain
	}

	if len(in.Members) == 0 {
		return status.ErrNoMembers
	}
	if ev.MaxMembers > 0 && len(in.Members) > ev.MaxMembers {
		return status.ErrTeamTooLarge
	}

	for i := range in.Members {
		m := &in.Members[i]
		if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.RegNo) == "" {
			return status.ErrMemberIncomplete
		}
		if !oneOf(m.Year, models.Years) || !oneOf(m.Stream, models.Streams) {
			return status.ErrMemberIncomplete
		}
		if m.Stream == "OTHER" && strings.TrimSpace(m.StreamOther) == "" {
			return status.ErrMemberIncomplete
		}
		if !s.domainOK(m.Email) {
			return status.ErrEmailDomain
		}
	}
	return nil
}

func oneOf(value string, allowed []string) bool {
	for _, v := range allowed {
		if value == v {
			return true
		}
	}
	return false
}

// domainOK accepts addresses at the university domain or any of its
// subdomains. A bare hostname without an @ is never an email.
func (s *RegistrationService) domainOK(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return false
	}
	host := email[at+1:]
	return host == s.emailDomain || strings.HasSuffix(host, "."+s.emailDomain)
}

func (s *RegistrationService) normalizeProof(proof io.Reader, size int64) (*filesystem.File, error) {
	return NormalizeUpload(proof, size, s.maxUpload, s.maxWidth, s.jpegQuality, s.monitor, "proof")
}

// NormalizeUpload bounds and re-encodes an uploaded image. Shared by the
// registration proof path and the admin event payment QR path.
func NormalizeUpload(r io.Reader, size, maxUpload int64, maxWidth, quality int, monitor *monitoring.Monitor, kind string) (*filesystem.File, error) {
	if maxUpload > 0 && size > maxUpload {
		return nil, status.ErrFileTooLarge
	}

	start := time.Now()
	normalized, err := utils.NormalizeImage(io.LimitReader(r, maxUpload+1), maxWidth, quality)
	if err != nil {
		return nil, err
	}
	monitor.TrackUpload(kind, time.Since(start))

	name, err := utils.GenerateCode(8)
	if err != nil {
		return nil, fmt.Errorf("upload name: %w", err)
	}
	f, err := filesystem.NewFileFromBytes(normalized, kind+"_"+name+".jpg")
	if err != nil {
		return nil, fmt.Errorf("wrap upload: %w", err)
	}
	return f, nil
}
