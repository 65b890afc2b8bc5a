package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/xyppyx/DoNext/backend/internal/models"
	"github.com/xyppyx/DoNext/backend/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubTodoService lets each test plug in just the behavior it exercises.
type stubTodoService struct {
	getTodoByID   func(ctx context.Context, id, principalID uuid.UUID) (*models.Todo, error)
	createTodo    func(ctx context.Context, draft models.Todo, principalID uuid.UUID) (*models.Todo, error)
	listTodos     func(ctx context.Context, principalID uuid.UUID) ([]models.Todo, error)
	listRootTodos func(ctx context.Context, principalID uuid.UUID) ([]models.Todo, error)
	listSubTodos  func(ctx context.Context, parentID, principalID uuid.UUID) ([]models.Todo, error)
	updateTodo    func(ctx context.Context, id uuid.UUID, patch services.TodoPatch, principalID uuid.UUID) (*models.Todo, error)
	deleteTodo    func(ctx context.Context, id, principalID uuid.UUID) error
}

func (s *stubTodoService) GetTodoByID(ctx context.Context, id, principalID uuid.UUID) (*models.Todo, error) {
	return s.getTodoByID(ctx, id, principalID)
}

func (s *stubTodoService) CreateTodo(ctx context.Context, draft models.Todo, principalID uuid.UUID) (*models.Todo, error) {
	return s.createTodo(ctx, draft, principalID)
}

func (s *stubTodoService) ListTodos(ctx context.Context, principalID uuid.UUID) ([]models.Todo, error) {
	return s.listTodos(ctx, principalID)
}

func (s *stubTodoService) ListRootTodos(ctx context.Context, principalID uuid.UUID) ([]models.Todo, error) {
	return s.listRootTodos(ctx, principalID)
}

func (s *stubTodoService) ListSubTodos(ctx context.Context, parentID, principalID uuid.UUID) ([]models.Todo, error) {
	return s.listSubTodos(ctx, parentID, principalID)
}

func (s *stubTodoService) UpdateTodo(ctx context.Context, id uuid.UUID, patch services.TodoPatch, principalID uuid.UUID) (*models.Todo, error) {
	return s.updateTodo(ctx, id, patch, principalID)
}

func (s *stubTodoService) DeleteTodo(ctx context.Context, id, principalID uuid.UUID) error {
	return s.deleteTodo(ctx, id, principalID)
}

type stubRegisterService struct {
	registerUser func(ctx context.Context, username, password string) (*models.User, error)
}

func (s *stubRegisterService) RegisterUser(ctx context.Context, username, password string) (*models.User, error) {
	return s.registerUser(ctx, username, password)
}

type stubAuthService struct {
	authenticate  func(ctx context.Context, username, password string) (*models.User, error)
	generateToken func(user *models.User) (string, error)
	parseToken    func(tokenString string) (uuid.UUID, error)
}

func (s *stubAuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	return s.authenticate(ctx, username, password)
}

func (s *stubAuthService) GenerateToken(user *models.User) (string, error) {
	return s.generateToken(user)
}

func (s *stubAuthService) ParseToken(tokenString string) (uuid.UUID, error) {
	return s.parseToken(tokenString)
}

type stubUserService struct {
	getUserByID       func(ctx context.Context, id uuid.UUID) (*models.User, error)
	getUserByUsername func(ctx context.Context, username string) (*models.User, error)
	usernameExists    func(ctx context.Context, username string) (bool, error)
}

func (s *stubUserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.getUserByID(ctx, id)
}

func (s *stubUserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUserByUsername(ctx, username)
}

func (s *stubUserService) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.usernameExists(ctx, username)
}

// asPrincipal injects an authenticated user id the way the auth middleware
// would after validating a token.
func asPrincipal(id uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", id)
		c.Next()
	}
}

func performRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Errorf("Expected status %d, got %d: %s", want, w.Code, w.Body.String())
	}
}
