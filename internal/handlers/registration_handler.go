package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"hms/internal/services"
)

type RegistrationHandler struct {
	registrations *services.RegistrationService
	maxUpload     int64
}

func NewRegistrationHandler(registrations *services.RegistrationService, maxUpload int64) *RegistrationHandler {
	return &RegistrationHandler{
		registrations: registrations,
		maxUpload:     maxUpload,
	}
}

// Submit - final wizard step (multipart: payload JSON + optional proof image)
func (h *RegistrationHandler) Submit(e *core.RequestEvent) error {
	if err := e.Request.ParseMultipartForm(h.maxUpload); err != nil {
		return apis.NewBadRequestError("Invalid form", err)
	}

	raw := e.Request.FormValue("payload")
	if raw == "" {
		return apis.NewBadRequestError("Missing payload", nil)
	}

	var in services.RegistrationInput
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return apis.NewBadRequestError("Invalid payload", err)
	}

	var proof io.Reader
	var proofSize int64
	file, header, err := e.Request.FormFile("proof")
	if err == nil {
		defer func(f multipart.File) { _ = f.Close() }(file)
		proof = file
		proofSize = header.Size
	}

	result, err := h.registrations.Submit(e.Request.Context(), &in, proof, proofSize)
	if err != nil {
		slog.Error("h.registrations.Submit()", "event_id", in.EventID, "error", err)
		return apiError(err)
	}
	return e.JSON(http.StatusCreated, result)
}
