package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xyppyx/DoNext/backend/internal/models"
	"github.com/xyppyx/DoNext/backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// userProfile strips fields clients of other users should not see.
func userProfile(user *models.User) gin.H {
	return gin.H{
		"id":            user.ID,
		"username":      user.Username,
		"email":         user.Email,
		"role":          user.Role,
		"created_at":    user.CreatedAt,
		"last_login_at": user.LastLoginAt,
	}
}

// GetUserByID returns a user's public profile.
// GET /api/users/:id
func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userProfile(user))
}

// GetUserByUsername returns a user's public profile looked up by name.
// GET /api/users/by-username/:username
func (h *UserHandler) GetUserByUsername(c *gin.Context) {
	username := c.Param("username")
	user, err := h.userService.GetUserByUsername(c.Request.Context(), username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userProfile(user))
}
