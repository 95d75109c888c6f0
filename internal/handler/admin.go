package handler

import (
	"errors"
	"net/http"

	"github.com/taskdeck/taskdeck-go/internal/service"
)

// AdminHandler handles admin-only HTTP requests. The admin role check
// happens in the route middleware; these handlers see every user's data.
type AdminHandler struct {
	service *service.TodoService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(svc *service.TodoService) *AdminHandler {
	return &AdminHandler{service: svc}
}

// HandleListTodos handles GET /admin/todos requests.
func (h *AdminHandler) HandleListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.service.ListAll(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, detail("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, todos)
}

// HandleDeleteTodo handles DELETE /admin/todos/{todo_id} requests.
func (h *AdminHandler) HandleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := todoIDParam(r)
	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, detail("invalid todo id"))
		return
	}

	if err := h.service.DeleteAny(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrTodoNotFound) {
			writeJSON(w, http.StatusNotFound, detail("Todo not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, detail("internal server error"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
