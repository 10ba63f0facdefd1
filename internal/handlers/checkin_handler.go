package handlers

import (
	"log/slog"
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"hms/internal/services"
)

type CheckinHandler struct {
	checkin *services.CheckinService
}

func NewCheckinHandler(checkin *services.CheckinService) *CheckinHandler {
	return &CheckinHandler{checkin: checkin}
}

// Scan - door station posts a scanned QR payload
func (h *CheckinHandler) Scan(e *core.RequestEvent) error {
	var req struct {
		Payload string `json:"payload"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if req.Payload == "" {
		return apis.NewBadRequestError("Missing payload", nil)
	}

	result, err := h.checkin.Scan(e.Request.Context(), req.Payload)
	if err != nil {
		slog.Error("h.checkin.Scan()", "error", err)
		return apiError(err)
	}
	return e.JSON(http.StatusOK, result)
}
