package services

import (
	"context"
	"strings"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/xyppyx/DoNext/backend/internal/models"
	"github.com/xyppyx/DoNext/backend/internal/repositories"
)

// fakeStore is an in-memory Store honoring the repository contracts,
// including the atomic cascading delete.
type fakeStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
	todos map[uuid.UUID]models.Todo
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users: make(map[uuid.UUID]models.User),
		todos: make(map[uuid.UUID]models.Todo),
	}
}

func (f *fakeStore) Users() repositories.UserRepository { return &fakeUserRepo{store: f} }
func (f *fakeStore) Todos() repositories.TodoRepository { return &fakeTodoRepo{store: f} }

func (f *fakeStore) Transact(ctx context.Context, fn func(repositories.Store) error) error {
	return fn(f)
}

func (f *fakeStore) addUser(username string) models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	user := models.User{
		ID:       uuid.Must(uuid.NewV4()),
		Username: username,
		Role:     models.DefaultUserRole,
	}
	f.users[user.ID] = user
	return user
}

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, user := range r.store.users {
		if strings.EqualFold(user.Username, username) {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	user, err := r.FindByUsername(ctx, username)
	return user != nil, err
}

func (r *fakeUserRepo) Save(ctx context.Context, user *models.User) error {
	return r.Create(ctx, user)
}

type fakeTodoRepo struct {
	store *fakeStore
}

func (r *fakeTodoRepo) Create(ctx context.Context, todo *models.Todo) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.todos[todo.ID] = *todo
	return nil
}

func (r *fakeTodoRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Todo, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	todo, ok := r.store.todos[id]
	if !ok {
		return nil, nil
	}
	return &todo, nil
}

func (r *fakeTodoRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Todo, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var todos []models.Todo
	for _, todo := range r.store.todos {
		if todo.UserID == ownerID {
			todos = append(todos, todo)
		}
	}
	return todos, nil
}

func (r *fakeTodoRepo) FindRootsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Todo, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var todos []models.Todo
	for _, todo := range r.store.todos {
		if todo.UserID == ownerID && todo.ParentID == nil {
			todos = append(todos, todo)
		}
	}
	return todos, nil
}

func (r *fakeTodoRepo) FindByParent(ctx context.Context, parentID uuid.UUID) ([]models.Todo, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var todos []models.Todo
	for _, todo := range r.store.todos {
		if todo.ParentID != nil && *todo.ParentID == parentID {
			todos = append(todos, todo)
		}
	}
	return todos, nil
}

func (r *fakeTodoRepo) Save(ctx context.Context, todo *models.Todo) error {
	return r.Create(ctx, todo)
}

func (r *fakeTodoRepo) Delete(ctx context.Context, todo *models.Todo) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.deleteSubtreeLocked(todo.ID)
	return nil
}

func (r *fakeTodoRepo) deleteSubtreeLocked(id uuid.UUID) {
	for childID, child := range r.store.todos {
		if child.ParentID != nil && *child.ParentID == id {
			r.deleteSubtreeLocked(childID)
		}
	}
	delete(r.store.todos, id)
}
