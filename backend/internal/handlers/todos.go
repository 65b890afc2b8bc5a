package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/xyppyx/DoNext/backend/internal/middleware"
	"github.com/xyppyx/DoNext/backend/internal/models"
	"github.com/xyppyx/DoNext/backend/internal/services"
)

type TodoHandler struct {
	todoService services.TodoService
}

func NewTodoHandler(todoService services.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

type createTodoRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	ParentID    *string    `json:"parent_id"`
	Completed   bool       `json:"completed"`
	Progress    int        `json:"progress"`
	Priority    int        `json:"priority"`
	Importance  int        `json:"importance"`
	DueDate     *time.Time `json:"due_date"`
}

func principal(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.PrincipalID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, false
	}
	return id, true
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.FromString(c.Param(param))
	if err != nil {
		respondValidation(c, "invalid "+param)
		return uuid.Nil, false
	}
	return id, true
}

// CreateTodo creates a todo, optionally as a child of an existing one.
// POST /api/todos
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	principalID, ok := principal(c)
	if !ok {
		return
	}

	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	draft := models.Todo{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		Progress:    req.Progress,
		Priority:    req.Priority,
		Importance:  req.Importance,
		DueDate:     req.DueDate,
	}
	if req.ParentID != nil {
		parentID, err := uuid.FromString(*req.ParentID)
		if err != nil {
			respondValidation(c, "invalid parent_id")
			return
		}
		draft.ParentID = &parentID
	}

	todo, err := h.todoService.CreateTodo(c.Request.Context(), draft, principalID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, todo)
}

// GetTodos lists every todo of the authenticated user.
// GET /api/todos
func (h *TodoHandler) GetTodos(c *gin.Context) {
	principalID, ok := principal(c)
	if !ok {
		return
	}

	todos, err := h.todoService.ListTodos(c.Request.Context(), principalID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, todos)
}

// GetMainTodos lists the user's top-level todos.
// GET /api/todos/main
func (h *TodoHandler) GetMainTodos(c *gin.Context) {
	principalID, ok := principal(c)
	if !ok {
		return
	}

	todos, err := h.todoService.ListRootTodos(c.Request.Context(), principalID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, todos)
}

// GetTodoByID returns a single owned todo.
// GET /api/todos/:id
func (h *TodoHandler) GetTodoByID(c *gin.Context) {
	principalID, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	todo, err := h.todoService.GetTodoByID(c.Request.Context(), id, principalID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

// GetSubTodos lists the direct children of an owned todo.
// GET /api/todos/:id/subtodos
func (h *TodoHandler) GetSubTodos(c *gin.Context) {
	principalID, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	todos, err := h.todoService.ListSubTodos(c.Request.Context(), id, principalID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, todos)
}

// UpdateTodo patches the mutable fields of an owned todo.
// PUT /api/todos/:id
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	principalID, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var patch services.TodoPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondValidation(c, err.Error())
		return
	}

	todo, err := h.todoService.UpdateTodo(c.Request.Context(), id, patch, principalID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

// DeleteTodo removes an owned todo and its whole subtree.
// DELETE /api/todos/:id
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	principalID, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.todoService.DeleteTodo(c.Request.Context(), id, principalID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
