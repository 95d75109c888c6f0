package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/taskdeck/taskdeck-go/internal/crypto"
	"github.com/taskdeck/taskdeck-go/internal/middleware"
	"github.com/taskdeck/taskdeck-go/internal/model"
	"github.com/taskdeck/taskdeck-go/internal/repository"
	"github.com/taskdeck/taskdeck-go/internal/service"
)

const testSecret = "test-secret"

// newTestRouter wires the full HTTP surface against a mocked store,
// mirroring the route layout in cmd/api.
func newTestRouter(t *testing.T) (http.Handler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("creating sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
		db.Close()
	})

	userRepo := repository.NewUserRepository(db)
	todoRepo := repository.NewTodoRepository(db)

	authHandler := NewAuthHandler(service.NewAuthService(userRepo, testSecret, time.Hour))
	userHandler := NewUserHandler(service.NewUserService(userRepo))
	todoService := service.NewTodoService(todoRepo)
	todoHandler := NewTodoHandler(todoService)
	adminHandler := NewAdminHandler(todoService)

	r := chi.NewRouter()
	r.Post("/auth/", authHandler.HandleCreateUser)
	r.Post("/auth/token", authHandler.HandleToken)

	r.Group(func(r chi.Router) {
		r.Use(middleware.BearerAuth(testSecret))

		r.Get("/users/me", userHandler.HandleMe)
		r.Put("/users/change-password", userHandler.HandleChangePassword)
		r.Put("/users/update-phone", userHandler.HandleUpdatePhone)

		r.Get("/todos", todoHandler.HandleList)
		r.Post("/todos", todoHandler.HandleCreate)
		r.Get("/todos/{todo_id}", todoHandler.HandleGet)
		r.Put("/todos/{todo_id}", todoHandler.HandleUpdate)
		r.Delete("/todos/{todo_id}", todoHandler.HandleDelete)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(model.RoleAdmin))
			r.Get("/admin/todos", adminHandler.HandleListTodos)
			r.Delete("/admin/todos/{todo_id}", adminHandler.HandleDeleteTodo)
		})
	})

	return r, mock
}

func issueTestToken(t *testing.T, username string, userID int64, role string) string {
	t.Helper()
	token, err := crypto.IssueToken(username, userID, role, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() unexpected error: %v", err)
	}
	return token
}

func userColumns() []string {
	return []string{
		"id", "username", "email", "first_name", "last_name",
		"hashed_password", "role", "is_active", "phone_number",
	}
}

func TestRegisterLoginMeFlow(t *testing.T) {
	router, mock := newTestRouter(t)

	storedHash, err := crypto.HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	mock.ExpectExec("INSERT INTO users").
		WithArgs("alice", "alice@example.com", "Alice", "Smith", sqlmock.AnyArg(), "user", true, "5551234").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("FROM users WHERE username").
		WithArgs("alice").
		WillReturnRows(mock.NewRows(userColumns()).
			AddRow(1, "alice", "alice@example.com", "Alice", "Smith", storedHash, "user", true, "5551234"))
	mock.ExpectQuery("FROM users WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(mock.NewRows(userColumns()).
			AddRow(1, "alice", "alice@example.com", "Alice", "Smith", storedHash, "user", true, "5551234"))

	// Register.
	body := `{"username":"alice","email":"alice@example.com","first_name":"Alice",
		"last_name":"Smith","password":"secret1","role":"user","phone_number":"5551234"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body)
	}

	// Login.
	form := url.Values{"username": {"alice"}, "password": {"secret1"}}
	req = httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("token status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body)
	}

	var tokenResp model.TokenResponse
	if err := json.NewDecoder(rec.Body).Decode(&tokenResp); err != nil {
		t.Fatalf("decoding token response: %v", err)
	}
	if tokenResp.AccessToken == "" {
		t.Fatal("access_token is empty")
	}
	if tokenResp.TokenType != "bearer" {
		t.Errorf("token_type = %q, want %q", tokenResp.TokenType, "bearer")
	}

	// Me.
	req = httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokenResp.AccessToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("me status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body)
	}

	var me model.UserResponse
	if err := json.NewDecoder(rec.Body).Decode(&me); err != nil {
		t.Fatalf("decoding me response: %v", err)
	}
	if me.Username != "alice" {
		t.Errorf("username = %q, want %q", me.Username, "alice")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectQuery("FROM users WHERE username").
		WithArgs("alice").
		WillReturnRows(mock.NewRows(userColumns()))

	form := url.Values{"username": {"alice"}, "password": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body["detail"] != "Could not validate credentials" {
		t.Errorf("detail = %q, want %q", body["detail"], "Could not validate credentials")
	}
}

func TestRegisterValidationFailure(t *testing.T) {
	router, _ := newTestRouter(t)

	// Password below the 6-character minimum.
	body := `{"username":"alice","email":"alice@example.com","first_name":"Alice",
		"last_name":"Smith","password":"short","role":"user","phone_number":"5551234"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestDeleteForeignTodoLooksMissing(t *testing.T) {
	router, mock := newTestRouter(t)

	// Todo 5 belongs to alice (user 1); bob (user 2) deleting it gets
	// 404, not 403.
	mock.ExpectExec("DELETE FROM todos").
		WithArgs(int64(5), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	req := httptest.NewRequest(http.MethodDelete, "/todos/5", nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, "bob", 2, "user"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestAdminTodosRejectsNonAdmin(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/todos", nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, "bob", 2, "user"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAdminTodosListsEveryOwner(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectQuery("FROM todos").
		WillReturnRows(mock.NewRows([]string{"id", "title", "description", "priority", "completed", "owner_id"}).
			AddRow(1, "a", "d", 1, false, 1).
			AddRow(2, "b", "d", 2, true, 2))

	req := httptest.NewRequest(http.MethodGet, "/admin/todos", nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, "root", 9, "admin"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body)
	}

	var todos []model.TodoResponse
	if err := json.NewDecoder(rec.Body).Decode(&todos); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(todos) != 2 {
		t.Fatalf("len = %d, want 2", len(todos))
	}
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body["detail"] != "Unauthorized" {
		t.Errorf("detail = %q, want %q", body["detail"], "Unauthorized")
	}
}

func TestCreateTodo(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectExec("INSERT INTO todos").
		WithArgs("buy milk", "two liters", 5, false, int64(1)).
		WillReturnResult(sqlmock.NewResult(3, 1))

	body := `{"title":"buy milk","description":"two liters","priority":5}`
	req := httptest.NewRequest(http.MethodPost, "/todos", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, "alice", 1, "user"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body)
	}

	var todo model.TodoResponse
	if err := json.NewDecoder(rec.Body).Decode(&todo); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if todo.ID != 3 || todo.OwnerID != 1 {
		t.Errorf("todo = %+v, want id 3 owned by 1", todo)
	}
}
