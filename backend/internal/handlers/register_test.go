package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/xyppyx/DoNext/backend/internal/apperrors"
	"github.com/xyppyx/DoNext/backend/internal/models"
	"github.com/xyppyx/DoNext/backend/internal/services"
)

func newAuthRouter(register services.RegisterService, auth services.AuthService, users services.UserService) *gin.Engine {
	handler := NewAuthHandler(register, auth, users)
	router := gin.New()
	api := router.Group("/api/users")
	{
		api.POST("/register", handler.Register)
		api.POST("/login", handler.Login)
		api.POST("/logout", handler.Logout)
		api.GET("/check-username", handler.CheckUsername)
	}
	return router
}

func TestRegisterEndpoint(t *testing.T) {
	register := &stubRegisterService{
		registerUser: func(ctx context.Context, username, password string) (*models.User, error) {
			return &models.User{
				ID:       uuid.Must(uuid.NewV4()),
				Username: username,
				Role:     models.DefaultUserRole,
			}, nil
		},
	}

	router := newAuthRouter(register, nil, nil)
	w := performRequest(router, http.MethodPost, "/api/users/register", `{"username":"alice","password":"password123"}`)
	expectStatus(t, w, http.StatusCreated)

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["username"] != "alice" || body["success"] != true {
		t.Errorf("Unexpected response body: %v", body)
	}
	if _, leaked := body["password_hash"]; leaked {
		t.Error("Password hash leaked into the response")
	}
}

func TestRegisterEndpoint_Conflict(t *testing.T) {
	register := &stubRegisterService{
		registerUser: func(ctx context.Context, username, password string) (*models.User, error) {
			return nil, apperrors.Conflict("user", username, "username already exists")
		},
	}

	router := newAuthRouter(register, nil, nil)
	w := performRequest(router, http.MethodPost, "/api/users/register", `{"username":"alice","password":"password123"}`)
	expectStatus(t, w, http.StatusConflict)
}

func TestRegisterEndpoint_MissingFields(t *testing.T) {
	router := newAuthRouter(&stubRegisterService{}, nil, nil)
	w := performRequest(router, http.MethodPost, "/api/users/register", `{"username":"alice"}`)
	expectStatus(t, w, http.StatusBadRequest)
}

func TestLoginEndpoint(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	auth := &stubAuthService{
		authenticate: func(ctx context.Context, username, password string) (*models.User, error) {
			return &models.User{ID: userID, Username: username, Role: models.DefaultUserRole}, nil
		},
		generateToken: func(user *models.User) (string, error) {
			return "signed-token", nil
		},
	}

	router := newAuthRouter(nil, auth, nil)
	w := performRequest(router, http.MethodPost, "/api/users/login", `{"username":"alice","password":"password123"}`)
	expectStatus(t, w, http.StatusOK)

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["token"] != "signed-token" {
		t.Errorf("Expected token in response, got %v", body)
	}
}

func TestLoginEndpoint_InvalidCredentials(t *testing.T) {
	auth := &stubAuthService{
		authenticate: func(ctx context.Context, username, password string) (*models.User, error) {
			return nil, services.ErrInvalidCredentials
		},
	}

	router := newAuthRouter(nil, auth, nil)
	w := performRequest(router, http.MethodPost, "/api/users/login", `{"username":"alice","password":"wrong"}`)
	expectStatus(t, w, http.StatusUnauthorized)

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	// The same message regardless of which credential was wrong.
	if body["error"] != "invalid username or password" {
		t.Errorf("Unexpected error message: %v", body["error"])
	}
}

func TestCheckUsernameEndpoint(t *testing.T) {
	users := &stubUserService{
		usernameExists: func(ctx context.Context, username string) (bool, error) {
			return username == "taken", nil
		},
	}
	router := newAuthRouter(nil, nil, users)

	w := performRequest(router, http.MethodGet, "/api/users/check-username?username=taken", "")
	expectStatus(t, w, http.StatusOK)
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["exists"] != true || body["available"] != false {
		t.Errorf("Unexpected body for taken username: %v", body)
	}

	w = performRequest(router, http.MethodGet, "/api/users/check-username?username=free", "")
	expectStatus(t, w, http.StatusOK)
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["exists"] != false || body["available"] != true {
		t.Errorf("Unexpected body for free username: %v", body)
	}

	w = performRequest(router, http.MethodGet, "/api/users/check-username", "")
	expectStatus(t, w, http.StatusBadRequest)
}

func TestLogoutEndpoint(t *testing.T) {
	router := newAuthRouter(nil, nil, nil)
	w := performRequest(router, http.MethodPost, "/api/users/logout", "")
	expectStatus(t, w, http.StatusOK)
}
