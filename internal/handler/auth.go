package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/taskdeck/taskdeck-go/internal/model"
	"github.com/taskdeck/taskdeck-go/internal/service"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleCreateUser handles POST /auth/ requests.
func (h *AuthHandler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, detail("invalid request body"))
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, detail(err.Error()))
		return
	}

	if err := h.service.Register(r.Context(), req); err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			writeJSON(w, http.StatusConflict, detail(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, detail("internal server error"))
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// HandleToken handles POST /auth/token requests. The body is a
// password-grant form: username and password fields, form-encoded.
func (h *AuthHandler) HandleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, detail("invalid form body"))
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		writeJSON(w, http.StatusUnprocessableEntity, detail("username and password are required"))
		return
	}

	resp, err := h.service.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, detail("Could not validate credentials"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, detail("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
