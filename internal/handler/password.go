package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/passforge/passforge/internal/middleware"
	"github.com/passforge/passforge/internal/model"
	"github.com/passforge/passforge/internal/service"
)

// PasswordHandler handles HTTP requests for stored credentials.
type PasswordHandler struct {
	service *service.PasswordService
}

// NewPasswordHandler creates a new PasswordHandler.
func NewPasswordHandler(svc *service.PasswordService) *PasswordHandler {
	return &PasswordHandler{service: svc}
}

// HandleCreate handles POST /api/v1/passwords requests.
func (h *PasswordHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.PasswordEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTitleRequired),
			errors.Is(err, service.ErrEntryPasswordEmpty),
			errors.Is(err, service.ErrFieldTooLong):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeInternalError(w, r, err)
		}
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusCreated, resp)
}

// HandleList handles GET /api/v1/passwords requests.
func (h *PasswordHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	entries, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, entries)
}

// HandleDelete handles DELETE /api/v1/passwords/{id} requests.
func (h *PasswordHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeInternalError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
