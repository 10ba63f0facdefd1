package handlers

import (
	"io"
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"hms/internal/services"
)

// Drafts larger than this are rejected before touching Redis.
const maxDraftBytes = 64 << 10

type DraftHandler struct {
	drafts *services.DraftService
}

func NewDraftHandler(drafts *services.DraftService) *DraftHandler {
	return &DraftHandler{drafts: drafts}
}

// Get - resume a saved wizard draft
func (h *DraftHandler) Get(e *core.RequestEvent) error {
	blob, err := h.drafts.Get(e.Request.Context(), e.Request.PathValue("key"))
	if err != nil {
		return apiError(err)
	}
	e.Response.Header().Set("Content-Type", "application/json")
	e.Response.WriteHeader(http.StatusOK)
	_, err = e.Response.Write(blob)
	return err
}

// Put - save wizard progress
func (h *DraftHandler) Put(e *core.RequestEvent) error {
	blob, err := io.ReadAll(io.LimitReader(e.Request.Body, maxDraftBytes+1))
	if err != nil {
		return apis.NewBadRequestError("Invalid body", err)
	}
	if len(blob) == 0 || len(blob) > maxDraftBytes {
		return apis.NewBadRequestError("Draft body must be 1 byte to 64 KiB", nil)
	}

	if err := h.drafts.Put(e.Request.Context(), e.Request.PathValue("key"), blob); err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"message": "Draft saved"})
}

// Delete - discard a draft
func (h *DraftHandler) Delete(e *core.RequestEvent) error {
	if err := h.drafts.Delete(e.Request.Context(), e.Request.PathValue("key")); err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"message": "Draft deleted"})
}
