package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/xyppyx/DoNext/backend/internal/models"
	"gorm.io/gorm"
)

// GormStore implements Store on top of a gorm connection or transaction.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Users() UserRepository {
	return &gormUserRepository{db: s.db}
}

func (s *GormStore) Todos() TodoRepository {
	return &gormTodoRepository{db: s.db}
}

func (s *GormStore) Transact(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

type gormUserRepository struct {
	db *gorm.DB
}

func (r *gormUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *gormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *gormUserRepository) Save(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

type gormTodoRepository struct {
	db *gorm.DB
}

func (r *gormTodoRepository) Create(ctx context.Context, todo *models.Todo) error {
	return r.db.WithContext(ctx).Create(todo).Error
}

func (r *gormTodoRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Todo, error) {
	var todo models.Todo
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&todo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *gormTodoRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Todo, error) {
	var todos []models.Todo
	err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).Find(&todos).Error
	return todos, err
}

func (r *gormTodoRepository) FindRootsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Todo, error) {
	var todos []models.Todo
	err := r.db.WithContext(ctx).Where("user_id = ? AND parent_id IS NULL", ownerID).Find(&todos).Error
	return todos, err
}

func (r *gormTodoRepository) FindByParent(ctx context.Context, parentID uuid.UUID) ([]models.Todo, error) {
	var todos []models.Todo
	err := r.db.WithContext(ctx).Where("parent_id = ?", parentID).Find(&todos).Error
	return todos, err
}

func (r *gormTodoRepository) Save(ctx context.Context, todo *models.Todo) error {
	return r.db.WithContext(ctx).Save(todo).Error
}

// Delete removes the todo and every descendant in one transaction. The
// schema also declares ON DELETE CASCADE on parent_id, but the subtree is
// deleted bottom-up here so the contract does not depend on foreign key
// enforcement being enabled.
func (r *gormTodoRepository) Delete(ctx context.Context, todo *models.Todo) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteSubtree(tx, todo.ID)
	})
}

func deleteSubtree(tx *gorm.DB, id uuid.UUID) error {
	var children []models.Todo
	if err := tx.Where("parent_id = ?", id).Find(&children).Error; err != nil {
		return fmt.Errorf("collect children of %s: %w", id, err)
	}
	for i := range children {
		if err := deleteSubtree(tx, children[i].ID); err != nil {
			return err
		}
	}
	return tx.Delete(&models.Todo{}, "id = ?", id).Error
}
