package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"hms/internal/services"
)

type TicketHandler struct {
	tickets *services.TicketService
}

func NewTicketHandler(tickets *services.TicketService) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

// Render - member's ticket as a PNG QR image
func (h *TicketHandler) Render(e *core.RequestEvent) error {
	png, err := h.tickets.RenderPNG(
		e.Request.Context(),
		e.Request.PathValue("id"),
		e.Request.PathValue("memberId"),
	)
	if err != nil {
		return apiError(err)
	}
	return e.Blob(http.StatusOK, "image/png", png)
}
