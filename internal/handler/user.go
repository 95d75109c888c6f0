package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/taskdeck/taskdeck-go/internal/middleware"
	"github.com/taskdeck/taskdeck-go/internal/model"
	"github.com/taskdeck/taskdeck-go/internal/service"
)

// UserHandler handles HTTP requests for the current user's profile.
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

// HandleMe handles GET /users/me requests.
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, detail("Unauthorized"))
		return
	}

	resp, err := h.service.Profile(r.Context(), principal.ID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, detail("User not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, detail("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleChangePassword handles PUT /users/change-password requests.
func (h *UserHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, detail("Unauthorized"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, detail("invalid request body"))
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, detail(err.Error()))
		return
	}

	if err := h.service.ChangePassword(r.Context(), principal.ID, req); err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			writeJSON(w, http.StatusBadRequest, detail("Current password is incorrect"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, detail("internal server error"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleUpdatePhone handles PUT /users/update-phone requests.
func (h *UserHandler) HandleUpdatePhone(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, detail("Unauthorized"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.UpdatePhoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, detail("invalid request body"))
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, detail(err.Error()))
		return
	}

	if err := h.service.UpdatePhoneNumber(r.Context(), principal.ID, req.PhoneNumber); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, detail("User not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, detail("internal server error"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
