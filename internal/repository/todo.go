package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/taskdeck/taskdeck-go/internal/model"
)

var ErrTodoNotFound = errors.New("todo not found")

// TodoRepository handles to-do item persistence operations. All
// non-admin queries are scoped by owner_id, so a row owned by someone
// else is indistinguishable from a missing one.
type TodoRepository struct {
	db *sql.DB
}

// NewTodoRepository creates a new TodoRepository.
func NewTodoRepository(db *sql.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

const todoColumns = `id, title, description, priority, completed, owner_id`

// Create inserts a new to-do item and sets the generated ID.
func (r *TodoRepository) Create(ctx context.Context, todo *model.Todo) error {
	query := `INSERT INTO todos (title, description, priority, completed, owner_id)
		VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		todo.Title, todo.Description, todo.Priority, todo.Completed, todo.OwnerID,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	todo.ID = id
	return nil
}

// GetByID retrieves a to-do item scoped to its owner.
func (r *TodoRepository) GetByID(ctx context.Context, id, ownerID int64) (*model.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = ? AND owner_id = ?`
	return scanTodo(r.db.QueryRowContext(ctx, query, id, ownerID))
}

// ListByOwner retrieves all to-do items owned by a user.
func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE owner_id = ?`
	return r.queryTodos(ctx, query, ownerID)
}

// Update replaces all mutable fields of a to-do item scoped to its owner.
func (r *TodoRepository) Update(ctx context.Context, todo *model.Todo) error {
	query := `UPDATE todos SET title = ?, description = ?, priority = ?, completed = ?
		WHERE id = ? AND owner_id = ?`

	result, err := r.db.ExecContext(ctx, query,
		todo.Title, todo.Description, todo.Priority, todo.Completed,
		todo.ID, todo.OwnerID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(result, ErrTodoNotFound)
}

// Delete removes a to-do item scoped to its owner.
func (r *TodoRepository) Delete(ctx context.Context, id, ownerID int64) error {
	query := `DELETE FROM todos WHERE id = ? AND owner_id = ?`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	return requireRowAffected(result, ErrTodoNotFound)
}

// ListAll retrieves every to-do item regardless of owner. Admin only.
func (r *TodoRepository) ListAll(ctx context.Context) ([]model.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos`
	return r.queryTodos(ctx, query)
}

// DeleteAny removes a to-do item regardless of owner. Admin only.
func (r *TodoRepository) DeleteAny(ctx context.Context, id int64) error {
	query := `DELETE FROM todos WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return requireRowAffected(result, ErrTodoNotFound)
}

func (r *TodoRepository) queryTodos(ctx context.Context, query string, args ...any) ([]model.Todo, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var todos []model.Todo
	for rows.Next() {
		var t model.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.Completed, &t.OwnerID); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}

	return todos, rows.Err()
}

func scanTodo(row *sql.Row) (*model.Todo, error) {
	todo := &model.Todo{}
	err := row.Scan(&todo.ID, &todo.Title, &todo.Description, &todo.Priority, &todo.Completed, &todo.OwnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	return todo, nil
}
