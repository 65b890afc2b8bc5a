package services

import (
	"context"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/xyppyx/DoNext/backend/internal/apperrors"
	"github.com/xyppyx/DoNext/backend/internal/models"
	"github.com/xyppyx/DoNext/backend/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	// bcrypt rejects inputs longer than 72 bytes.
	maxPasswordLength = 72
)

type RegisterService interface {
	RegisterUser(ctx context.Context, username, password string) (*models.User, error)
}

type RegisterServiceImpl struct {
	store repositories.Store
	now   func() time.Time
}

func NewRegisterService(store repositories.Store) *RegisterServiceImpl {
	return &RegisterServiceImpl{
		store: store,
		now:   time.Now,
	}
}

// RegisterUser creates a new account with the default role. The raw password
// is bcrypt-hashed before anything is persisted and never stored.
func (s *RegisterServiceImpl) RegisterUser(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperrors.Validation("username", "username is required")
	}
	if len(username) > 255 {
		return nil, apperrors.Validation("username", "username is too long")
	}
	if len(password) < minPasswordLength {
		return nil, apperrors.Validation("password", "password must be at least 6 characters")
	}
	if len(password) > maxPasswordLength {
		return nil, apperrors.Validation("password", "password is too long")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password", err)
	}

	var user *models.User
	err = s.store.Transact(ctx, func(tx repositories.Store) error {
		exists, err := tx.Users().ExistsByUsername(ctx, username)
		if err != nil {
			return apperrors.Internal("failed to check username", err)
		}
		if exists {
			return apperrors.Conflict("user", username, "username already exists")
		}

		now := s.now()
		u := models.User{
			ID:           uuid.Must(uuid.NewV4()),
			Username:     username,
			PasswordHash: string(hash),
			Role:         models.DefaultUserRole,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.Users().Create(ctx, &u); err != nil {
			return apperrors.Internal("failed to create user", err)
		}
		user = &u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
