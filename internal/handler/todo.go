package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/taskdeck/taskdeck-go/internal/middleware"
	"github.com/taskdeck/taskdeck-go/internal/model"
	"github.com/taskdeck/taskdeck-go/internal/service"
)

// TodoHandler handles HTTP requests for the current user's to-do items.
type TodoHandler struct {
	service *service.TodoService
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{service: svc}
}

// todoIDParam parses the {todo_id} path parameter; ids are positive integers.
func todoIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "todo_id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// HandleList handles GET /todos requests.
func (h *TodoHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, detail("Unauthorized"))
		return
	}

	todos, err := h.service.List(r.Context(), principal.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, detail("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, todos)
}

// HandleGet handles GET /todos/{todo_id} requests.
func (h *TodoHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, detail("Unauthorized"))
		return
	}

	id, ok := todoIDParam(r)
	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, detail("invalid todo id"))
		return
	}

	todo, err := h.service.Get(r.Context(), id, principal.ID)
	if err != nil {
		if errors.Is(err, service.ErrTodoNotFound) {
			writeJSON(w, http.StatusNotFound, detail("Todo not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, detail("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

// HandleCreate handles POST /todos requests.
func (h *TodoHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, detail("Unauthorized"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.TodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, detail("invalid request body"))
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, detail(err.Error()))
		return
	}

	todo, err := h.service.Create(r.Context(), principal.ID, req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, detail("internal server error"))
		return
	}

	writeJSON(w, http.StatusCreated, todo)
}

// HandleUpdate handles PUT /todos/{todo_id} requests.
func (h *TodoHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, detail("Unauthorized"))
		return
	}

	id, ok := todoIDParam(r)
	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, detail("invalid todo id"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.TodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, detail("invalid request body"))
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, detail(err.Error()))
		return
	}

	if err := h.service.Update(r.Context(), id, principal.ID, req); err != nil {
		if errors.Is(err, service.ErrTodoNotFound) {
			writeJSON(w, http.StatusNotFound, detail("Todo not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, detail("internal server error"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete handles DELETE /todos/{todo_id} requests.
func (h *TodoHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, detail("Unauthorized"))
		return
	}

	id, ok := todoIDParam(r)
	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, detail("invalid todo id"))
		return
	}

	if err := h.service.Delete(r.Context(), id, principal.ID); err != nil {
		if errors.Is(err, service.ErrTodoNotFound) {
			writeJSON(w, http.StatusNotFound, detail("Todo not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, detail("internal server error"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
