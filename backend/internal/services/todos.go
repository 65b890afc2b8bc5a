package services

import (
	"context"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/xyppyx/DoNext/backend/internal/apperrors"
	"github.com/xyppyx/DoNext/backend/internal/models"
	"github.com/xyppyx/DoNext/backend/internal/repositories"
)

// TodoService manages the per-user todo hierarchy. Every operation verifies
// that the acting user owns the touched todos; GetTodoByID is the single
// ownership check all other operations route through.
type TodoService interface {
	GetTodoByID(ctx context.Context, id, principalID uuid.UUID) (*models.Todo, error)
	CreateTodo(ctx context.Context, draft models.Todo, principalID uuid.UUID) (*models.Todo, error)
	ListTodos(ctx context.Context, principalID uuid.UUID) ([]models.Todo, error)
	ListRootTodos(ctx context.Context, principalID uuid.UUID) ([]models.Todo, error)
	ListSubTodos(ctx context.Context, parentID, principalID uuid.UUID) ([]models.Todo, error)
	UpdateTodo(ctx context.Context, id uuid.UUID, patch TodoPatch, principalID uuid.UUID) (*models.Todo, error)
	DeleteTodo(ctx context.Context, id, principalID uuid.UUID) error
}

// TodoPatch carries the fields UpdateTodo may change. Nil fields are left
// untouched. Owner, parent, id and creation time are not patchable.
type TodoPatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Completed   *bool      `json:"completed"`
	Progress    *int       `json:"progress"`
	Priority    *int       `json:"priority"`
	Importance  *int       `json:"importance"`
	DueDate     *time.Time `json:"due_date"`
}

type TodoServiceImpl struct {
	store repositories.Store
	now   func() time.Time
}

func NewTodoService(store repositories.Store) *TodoServiceImpl {
	return &TodoServiceImpl{
		store: store,
		now:   time.Now,
	}
}

// GetTodoByID returns the todo only if it exists and belongs to the acting
// user. Existence is checked before ownership, so an unknown id is always
// NotFound regardless of who asks.
func (s *TodoServiceImpl) GetTodoByID(ctx context.Context, id, principalID uuid.UUID) (*models.Todo, error) {
	var todo *models.Todo
	err := s.store.Transact(ctx, func(tx repositories.Store) error {
		var err error
		todo, err = getOwnedTodo(ctx, tx, id, principalID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return todo, nil
}

// getOwnedTodo is the ownership choke point. All reads and mutations go
// through it inside their own transaction so the authorization check and the
// subsequent write observe the same snapshot.
func getOwnedTodo(ctx context.Context, tx repositories.Store, id, principalID uuid.UUID) (*models.Todo, error) {
	todo, err := tx.Todos().FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("failed to load todo", err)
	}
	if todo == nil {
		return nil, apperrors.NotFound("todo", id.String())
	}
	if todo.UserID != principalID {
		return nil, apperrors.AccessDenied("todo", id.String())
	}
	return todo, nil
}

func requirePrincipal(ctx context.Context, tx repositories.Store, principalID uuid.UUID) error {
	user, err := tx.Users().FindByID(ctx, principalID)
	if err != nil {
		return apperrors.Internal("failed to load user", err)
	}
	if user == nil {
		return apperrors.NotFound("user", principalID.String())
	}
	return nil
}

// CreateTodo persists a new todo for the acting user. The owner is always
// the principal; any owner value in the draft is discarded. A parent
// reference is validated through the same ownership check as a direct
// lookup, so attaching a child to another user's todo is denied.
func (s *TodoServiceImpl) CreateTodo(ctx context.Context, draft models.Todo, principalID uuid.UUID) (*models.Todo, error) {
	if err := validateTitle(draft.Title); err != nil {
		return nil, err
	}
	if err := validateProgress(draft.Progress); err != nil {
		return nil, err
	}

	var created *models.Todo
	err := s.store.Transact(ctx, func(tx repositories.Store) error {
		if err := requirePrincipal(ctx, tx, principalID); err != nil {
			return err
		}
		if draft.ParentID != nil {
			if _, err := getOwnedTodo(ctx, tx, *draft.ParentID, principalID); err != nil {
				return err
			}
		}

		now := s.now()
		todo := models.Todo{
			ID:          uuid.Must(uuid.NewV4()),
			UserID:      principalID,
			ParentID:    draft.ParentID,
			Title:       strings.TrimSpace(draft.Title),
			Description: draft.Description,
			Completed:   draft.Completed,
			Progress:    draft.Progress,
			Priority:    draft.Priority,
			Importance:  draft.Importance,
			DueDate:     draft.DueDate,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Todos().Create(ctx, &todo); err != nil {
			return apperrors.Internal("failed to create todo", err)
		}
		created = &todo
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListTodos returns every todo of the acting user, in store order.
func (s *TodoServiceImpl) ListTodos(ctx context.Context, principalID uuid.UUID) ([]models.Todo, error) {
	var todos []models.Todo
	err := s.store.Transact(ctx, func(tx repositories.Store) error {
		if err := requirePrincipal(ctx, tx, principalID); err != nil {
			return err
		}
		var err error
		todos, err = tx.Todos().FindByOwner(ctx, principalID)
		if err != nil {
			return apperrors.Internal("failed to list todos", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return todos, nil
}

// ListRootTodos returns the acting user's top-level todos.
func (s *TodoServiceImpl) ListRootTodos(ctx context.Context, principalID uuid.UUID) ([]models.Todo, error) {
	var todos []models.Todo
	err := s.store.Transact(ctx, func(tx repositories.Store) error {
		if err := requirePrincipal(ctx, tx, principalID); err != nil {
			return err
		}
		var err error
		todos, err = tx.Todos().FindRootsByOwner(ctx, principalID)
		if err != nil {
			return apperrors.Internal("failed to list root todos", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return todos, nil
}

// ListSubTodos returns the direct children of the given parent after
// authorizing access to the parent itself.
func (s *TodoServiceImpl) ListSubTodos(ctx context.Context, parentID, principalID uuid.UUID) ([]models.Todo, error) {
	var todos []models.Todo
	err := s.store.Transact(ctx, func(tx repositories.Store) error {
		if _, err := getOwnedTodo(ctx, tx, parentID, principalID); err != nil {
			return err
		}
		var err error
		todos, err = tx.Todos().FindByParent(ctx, parentID)
		if err != nil {
			return apperrors.Internal("failed to list sub todos", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return todos, nil
}

// UpdateTodo applies the patch to the todo's mutable fields. Owner, parent,
// id and creation time are never altered; the update timestamp is refreshed.
func (s *TodoServiceImpl) UpdateTodo(ctx context.Context, id uuid.UUID, patch TodoPatch, principalID uuid.UUID) (*models.Todo, error) {
	if patch.Title != nil {
		if err := validateTitle(*patch.Title); err != nil {
			return nil, err
		}
	}
	if patch.Progress != nil {
		if err := validateProgress(*patch.Progress); err != nil {
			return nil, err
		}
	}

	var updated *models.Todo
	err := s.store.Transact(ctx, func(tx repositories.Store) error {
		todo, err := getOwnedTodo(ctx, tx, id, principalID)
		if err != nil {
			return err
		}

		if patch.Title != nil {
			todo.Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Description != nil {
			todo.Description = *patch.Description
		}
		if patch.Completed != nil {
			todo.Completed = *patch.Completed
		}
		if patch.Progress != nil {
			todo.Progress = *patch.Progress
		}
		if patch.Priority != nil {
			todo.Priority = *patch.Priority
		}
		if patch.Importance != nil {
			todo.Importance = *patch.Importance
		}
		if patch.DueDate != nil {
			todo.DueDate = patch.DueDate
		}
		todo.UpdatedAt = s.now()

		if err := tx.Todos().Save(ctx, todo); err != nil {
			return apperrors.Internal("failed to update todo", err)
		}
		updated = todo
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTodo removes the todo and its entire subtree. The store guarantees
// the cascade is atomic: no child outlives a deleted parent.
func (s *TodoServiceImpl) DeleteTodo(ctx context.Context, id, principalID uuid.UUID) error {
	return s.store.Transact(ctx, func(tx repositories.Store) error {
		todo, err := getOwnedTodo(ctx, tx, id, principalID)
		if err != nil {
			return err
		}
		if err := tx.Todos().Delete(ctx, todo); err != nil {
			return apperrors.Internal("failed to delete todo", err)
		}
		return nil
	})
}

func validateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return apperrors.Validation("title", "title is required")
	}
	if len(trimmed) > models.MaxTitleLength {
		return apperrors.Validation("title", "title is too long")
	}
	return nil
}

func validateProgress(progress int) error {
	if progress < 0 || progress > 100 {
		return apperrors.Validation("progress", "progress must be between 0 and 100")
	}
	return nil
}
