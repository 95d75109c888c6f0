package service

import (
	"context"
	"errors"

	"github.com/taskdeck/taskdeck-go/internal/model"
	"github.com/taskdeck/taskdeck-go/internal/repository"
)

// ErrTodoNotFound covers both a genuinely missing item and an item
// owned by someone else. The two cases are deliberately
// indistinguishable so ids cannot be probed for existence.
var ErrTodoNotFound = errors.New("todo not found")

// TodoService handles to-do item business logic.
type TodoService struct {
	repo *repository.TodoRepository
}

// NewTodoService creates a new TodoService.
func NewTodoService(repo *repository.TodoRepository) *TodoService {
	return &TodoService{repo: repo}
}

// List returns all to-do items owned by the principal.
func (s *TodoService) List(ctx context.Context, ownerID int64) ([]model.TodoResponse, error) {
	todos, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return todosToResponse(todos), nil
}

// Get returns a single to-do item owned by the principal.
func (s *TodoService) Get(ctx context.Context, id, ownerID int64) (model.TodoResponse, error) {
	todo, err := s.repo.GetByID(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return model.TodoResponse{}, ErrTodoNotFound
		}
		return model.TodoResponse{}, err
	}
	return todoToResponse(*todo), nil
}

// Create stores a new to-do item owned by the principal.
func (s *TodoService) Create(ctx context.Context, ownerID int64, req model.TodoRequest) (model.TodoResponse, error) {
	todo := model.Todo{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Completed:   req.Completed,
		OwnerID:     ownerID,
	}

	if err := s.repo.Create(ctx, &todo); err != nil {
		return model.TodoResponse{}, err
	}

	return todoToResponse(todo), nil
}

// Update replaces all mutable fields of a to-do item owned by the principal.
func (s *TodoService) Update(ctx context.Context, id, ownerID int64, req model.TodoRequest) error {
	todo := model.Todo{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Completed:   req.Completed,
		OwnerID:     ownerID,
	}

	err := s.repo.Update(ctx, &todo)
	if errors.Is(err, repository.ErrTodoNotFound) {
		return ErrTodoNotFound
	}
	return err
}

// Delete removes a to-do item owned by the principal.
func (s *TodoService) Delete(ctx context.Context, id, ownerID int64) error {
	err := s.repo.Delete(ctx, id, ownerID)
	if errors.Is(err, repository.ErrTodoNotFound) {
		return ErrTodoNotFound
	}
	return err
}

// ListAll returns every to-do item across all users. Callers must have
// already passed the admin role check.
func (s *TodoService) ListAll(ctx context.Context) ([]model.TodoResponse, error) {
	todos, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return todosToResponse(todos), nil
}

// DeleteAny removes a to-do item regardless of owner. Callers must
// have already passed the admin role check.
func (s *TodoService) DeleteAny(ctx context.Context, id int64) error {
	err := s.repo.DeleteAny(ctx, id)
	if errors.Is(err, repository.ErrTodoNotFound) {
		return ErrTodoNotFound
	}
	return err
}

func todoToResponse(t model.Todo) model.TodoResponse {
	return model.TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Completed:   t.Completed,
		OwnerID:     t.OwnerID,
	}
}

func todosToResponse(todos []model.Todo) []model.TodoResponse {
	result := make([]model.TodoResponse, len(todos))
	for i, t := range todos {
		result[i] = todoToResponse(t)
	}
	return result
}
