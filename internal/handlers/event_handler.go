package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/filesystem"

	"hms/internal/repo"
	"hms/internal/services"
	"hms/models"
	"hms/monitoring"
)

type EventHandler struct {
	events         repo.Events
	monitor        *monitoring.Monitor
	maxUpload      int64
	maxWidth       int
	quality        int
	defaultMembers int
}

func NewEventHandler(events repo.Events, monitor *monitoring.Monitor, maxUpload int64, maxWidth, quality, defaultMembers int) *EventHandler {
	return &EventHandler{
		events:         events,
		monitor:        monitor,
		maxUpload:      maxUpload,
		maxWidth:       maxWidth,
		quality:        quality,
		defaultMembers: defaultMembers,
	}
}

// eventPayload carries partial updates: absent fields keep their current
// value, present fields apply even when zero (a price of 0 makes the event
// free, an empty string clears a text field).
type eventPayload struct {
	Name           *string  `json:"name"`
	Date           *string  `json:"date"`
	Venue          *string  `json:"venue"`
	Description    *string  `json:"description"`
	PricingMode    *string  `json:"pricing_mode"`
	PricePerPerson *float64 `json:"price_per_person"`
	PricePerTeam   *float64 `json:"price_per_team"`
	MaxMembers     *int     `json:"max_members"`
	BankDetails    *string  `json:"bank_details"`
	WhatsappLink   *string  `json:"whatsapp_link"`
	IsOpen         *bool    `json:"is_open"`
}

// List - public event listing, soonest first
func (h *EventHandler) List(e *core.RequestEvent) error {
	events, err := h.events.List(e.Request.Context())
	if err != nil {
		slog.Error("h.events.List()", "error", err)
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"events": events})
}

// Get - single event
func (h *EventHandler) Get(e *core.RequestEvent) error {
	ev, err := h.events.Get(e.Request.Context(), e.Request.PathValue("id"))
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, ev)
}

// Create - admin event creation (multipart: payload JSON + optional payment_qr image)
func (h *EventHandler) Create(e *core.RequestEvent) error {
	ev, qr, err := h.parseForm(e, &models.Event{MaxMembers: h.defaultMembers, IsOpen: true})
	if err != nil {
		return err
	}
	if ev.Name == "" {
		return apis.NewBadRequestError("event name is required", nil)
	}

	if err := h.events.Create(e.Request.Context(), ev, qr); err != nil {
		slog.Error("h.events.Create()", "name", ev.Name, "error", err)
		return apiError(err)
	}
	return e.JSON(http.StatusCreated, ev)
}

// Update - admin event update
func (h *EventHandler) Update(e *core.RequestEvent) error {
	ctx := e.Request.Context()
	current, err := h.events.Get(ctx, e.Request.PathValue("id"))
	if err != nil {
		return apiError(err)
	}

	ev, qr, err := h.parseForm(e, current)
	if err != nil {
		return err
	}

	if err := h.events.Update(ctx, ev, qr); err != nil {
		slog.Error("h.events.Update()", "event_id", ev.ID, "error", err)
		return apiError(err)
	}
	return e.JSON(http.StatusOK, ev)
}

// Toggle - flip registration open/closed
func (h *EventHandler) Toggle(e *core.RequestEvent) error {
	ctx := e.Request.Context()
	current, err := h.events.Get(ctx, e.Request.PathValue("id"))
	if err != nil {
		return apiError(err)
	}

	ev, err := h.events.SetOpen(ctx, current.ID, !current.IsOpen)
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, ev)
}

// Delete - refused while registrations reference the event
func (h *EventHandler) Delete(e *core.RequestEvent) error {
	if err := h.events.Delete(e.Request.Context(), e.Request.PathValue("id")); err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"message": "Event deleted"})
}

func (h *EventHandler) parseForm(e *core.RequestEvent, base *models.Event) (*models.Event, *filesystem.File, error) {
	if err := e.Request.ParseMultipartForm(h.maxUpload); err != nil {
		return nil, nil, apis.NewBadRequestError("Invalid form", err)
	}

	var payload eventPayload
	if raw := e.Request.FormValue("payload"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return nil, nil, apis.NewBadRequestError("Invalid payload", err)
		}
	}
	if err := applyPayload(base, &payload); err != nil {
		return nil, nil, apis.NewBadRequestError(err.Error(), nil)
	}

	var qr *filesystem.File
	file, header, err := e.Request.FormFile("payment_qr")
	if err == nil {
		defer file.Close()
		qr, err = services.NormalizeUpload(file, header.Size, h.maxUpload, h.maxWidth, h.quality, h.monitor, "qr")
		if err != nil {
			return nil, nil, apiError(err)
		}
	}
	return base, qr, nil
}

func applyPayload(ev *models.Event, p *eventPayload) error {
	if p.Name != nil {
		ev.Name = *p.Name
	}
	if p.Date != nil {
		t, err := parseEventDate(*p.Date)
		if err != nil {
			return err
		}
		ev.Date = t
	}
	if p.Venue != nil {
		ev.Venue = *p.Venue
	}
	if p.Description != nil {
		ev.Description = *p.Description
	}
	if p.PricingMode != nil {
		ev.PricingMode = models.PricingMode(*p.PricingMode)
	}
	if p.PricePerPerson != nil {
		ev.PricePerPerson = *p.PricePerPerson
	}
	if p.PricePerTeam != nil {
		ev.PricePerTeam = *p.PricePerTeam
	}
	if p.MaxMembers != nil {
		ev.MaxMembers = *p.MaxMembers
	}
	if p.BankDetails != nil {
		ev.BankDetails = *p.BankDetails
	}
	if p.WhatsappLink != nil {
		ev.WhatsappLink = *p.WhatsappLink
	}
	if p.IsOpen != nil {
		ev.IsOpen = *p.IsOpen
	}
	return nil
}

func parseEventDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
