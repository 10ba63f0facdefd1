package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"hms/internal/repo"
	"hms/internal/services"
	"hms/models"
	"hms/security"
)

type AdminHandler struct {
	guard         *security.AdminGuard
	registrations repo.Registrations
	reports       *services.ReportService
}

func NewAdminHandler(guard *security.AdminGuard, registrations repo.Registrations, reports *services.ReportService) *AdminHandler {
	return &AdminHandler{
		guard:         guard,
		registrations: registrations,
		reports:       reports,
	}
}

// Login - verify the shared admin secret
func (h *AdminHandler) Login(e *core.RequestEvent) error {
	var req struct {
		Key string `json:"key"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	if !h.guard.Verify(req.Key) {
		return apis.NewUnauthorizedError("Invalid admin key", nil)
	}
	return e.JSON(http.StatusOK, map[string]any{"message": "ok"})
}

// Approve - mark a registration's payment as approved
func (h *AdminHandler) Approve(e *core.RequestEvent) error {
	return h.moderate(e, models.PaymentApproved)
}

// Reject - mark a registration's payment as rejected
func (h *AdminHandler) Reject(e *core.RequestEvent) error {
	return h.moderate(e, models.PaymentRejected)
}

func (h *AdminHandler) moderate(e *core.RequestEvent, s models.PaymentStatus) error {
	id := e.Request.PathValue("id")
	if err := h.registrations.SetPaymentStatus(e.Request.Context(), id, s); err != nil {
		slog.Error("h.registrations.SetPaymentStatus()", "registration_id", id, "status", s, "error", err)
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"registration_id": id, "payment_status": s})
}

// ListByEvent - moderation queue for one event
func (h *AdminHandler) ListByEvent(e *core.RequestEvent) error {
	regs, err := h.registrations.ListByEvent(e.Request.Context(), e.Request.PathValue("id"))
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"registrations": regs})
}

// Stats - teams, members and revenue for one event
func (h *AdminHandler) Stats(e *core.RequestEvent) error {
	stats, err := h.reports.EventStats(e.Request.Context(), e.Request.PathValue("id"))
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, stats)
}

// ExportEvent - CSV of every registered member of one event
func (h *AdminHandler) ExportEvent(e *core.RequestEvent) error {
	id := e.Request.PathValue("id")
	data, err := h.reports.EventCSV(e.Request.Context(), id)
	if err != nil {
		return apiError(err)
	}
	return writeCSV(e, fmt.Sprintf("event_%s.csv", id), data)
}

// ExportAttendance - CSV of every present member across all events
func (h *AdminHandler) ExportAttendance(e *core.RequestEvent) error {
	data, err := h.reports.AttendanceCSV(e.Request.Context())
	if err != nil {
		return apiError(err)
	}
	return writeCSV(e, "attendance.csv", data)
}

func writeCSV(e *core.RequestEvent, filename string, data []byte) error {
	e.Response.Header().Set("Content-Type", "text/csv")
	e.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	e.Response.WriteHeader(http.StatusOK)
	_, err := e.Response.Write(data)
	return err
}
