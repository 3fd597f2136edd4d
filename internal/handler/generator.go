package handler

import (
	"errors"
	"net/http"

	"github.com/passforge/passforge/internal/model"
	"github.com/passforge/passforge/internal/policy"
	"github.com/passforge/passforge/internal/service"
)

// GeneratorHandler handles HTTP requests for password generation and evaluation.
type GeneratorHandler struct {
	service *service.GeneratorService
}

// NewGeneratorHandler creates a new GeneratorHandler.
func NewGeneratorHandler(svc *service.GeneratorService) *GeneratorHandler {
	return &GeneratorHandler{service: svc}
}

// HandleGenerate handles POST /api/v1/generate requests. An empty body
// generates with the defaults.
func (h *GeneratorHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateRequest
	if r.ContentLength != 0 {
		if !decodeJSON(w, r, &req) {
			return
		}
	}

	resp, err := h.service.Generate(req)
	if err != nil {
		if errors.Is(err, policy.ErrInvalidPolicy) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		writeInternalError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, resp)
}

// HandleStrength handles POST /api/v1/strength requests.
func (h *GeneratorHandler) HandleStrength(w http.ResponseWriter, r *http.Request) {
	var req model.StrengthRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Strength(req)
	if err != nil {
		if errors.Is(err, policy.ErrPasswordTooLong) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		writeInternalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleValidate handles POST /api/v1/validate requests.
func (h *GeneratorHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	var req model.ValidateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Validate(req)
	if err != nil {
		if errors.Is(err, policy.ErrInvalidRequirements) || errors.Is(err, policy.ErrPasswordTooLong) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		writeInternalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
