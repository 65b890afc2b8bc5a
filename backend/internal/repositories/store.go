package repositories

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/xyppyx/DoNext/backend/internal/models"
)

// UserRepository is the identity store. FindByID and FindByUsername return
// (nil, nil) when no such user exists; absence is not an error at this layer.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Save(ctx context.Context, user *models.User) error
}

// TodoRepository is the todo store. Lookup methods follow the same
// (nil, nil)-on-absence convention as UserRepository.
//
// Delete must remove the todo and its entire descendant subtree atomically:
// either the whole subtree is gone or the operation fails with no partial
// deletion.
type TodoRepository interface {
	Create(ctx context.Context, todo *models.Todo) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Todo, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Todo, error)
	FindRootsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Todo, error)
	FindByParent(ctx context.Context, parentID uuid.UUID) ([]models.Todo, error)
	Save(ctx context.Context, todo *models.Todo) error
	Delete(ctx context.Context, todo *models.Todo) error
}

// Store bundles the repositories behind one transactional boundary.
// Transact runs fn against a Store bound to a single transaction; fn
// returning an error rolls everything back. Service operations that pair an
// authorization read with a write run entirely inside one Transact call so
// the check and the mutation observe the same snapshot.
type Store interface {
	Users() UserRepository
	Todos() TodoRepository
	Transact(ctx context.Context, fn func(Store) error) error
}
