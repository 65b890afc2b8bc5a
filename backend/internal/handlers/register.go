package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xyppyx/DoNext/backend/internal/services"
)

type AuthHandler struct {
	registerService services.RegisterService
	authService     services.AuthService
	userService     services.UserService
}

func NewAuthHandler(registerService services.RegisterService, authService services.AuthService, userService services.UserService) *AuthHandler {
	return &AuthHandler{
		registerService: registerService,
		authService:     authService,
		userService:     userService,
	}
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new account.
// POST /api/users/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	user, err := h.registerService.RegisterUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
	})
}

// Login verifies credentials and returns an access token.
// POST /api/users/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	user, err := h.authService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
			return
		}
		respondError(c, err)
		return
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"token":    token,
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
	})
}

// CheckUsername reports whether a username is still available.
// GET /api/users/check-username?username=xxx
func (h *AuthHandler) CheckUsername(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		respondValidation(c, "username is required")
		return
	}

	exists, err := h.userService.UsernameExists(c.Request.Context(), username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"exists":    exists,
		"available": !exists,
	})
}

// Logout is stateless: tokens simply expire. The endpoint exists so clients
// have a uniform logout call.
// POST /api/users/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}
