package services

import (
	"context"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/xyppyx/DoNext/backend/internal/apperrors"
	"github.com/xyppyx/DoNext/backend/internal/models"
	"github.com/xyppyx/DoNext/backend/internal/repositories"
)

type UserService interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

type UserServiceImpl struct {
	store repositories.Store
}

func NewUserService(store repositories.Store) *UserServiceImpl {
	return &UserServiceImpl{store: store}
}

func (s *UserServiceImpl) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.store.Users().FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("failed to load user", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("user", id.String())
	}
	return user, nil
}

func (s *UserServiceImpl) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.store.Users().FindByUsername(ctx, username)
	if err != nil {
		return nil, apperrors.Internal("failed to load user", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("user", username)
	}
	return user, nil
}

func (s *UserServiceImpl) UsernameExists(ctx context.Context, username string) (bool, error) {
	exists, err := s.store.Users().ExistsByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return false, apperrors.Internal("failed to check username", err)
	}
	return exists, nil
}
