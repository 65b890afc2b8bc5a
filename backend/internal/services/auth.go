package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/xyppyx/DoNext/backend/internal/apperrors"
	"github.com/xyppyx/DoNext/backend/internal/models"
	"github.com/xyppyx/DoNext/backend/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

const tokenIssuer = "do-next-backend"

// ErrInvalidCredentials is returned for both unknown usernames and wrong
// passwords so callers cannot probe which part failed.
var ErrInvalidCredentials = errors.New("invalid username or password")

type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	GenerateToken(user *models.User) (string, error)
	ParseToken(tokenString string) (uuid.UUID, error)
}

type AuthServiceImpl struct {
	store    repositories.Store
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

func NewAuthService(store repositories.Store, secret string, tokenTTL time.Duration) *AuthServiceImpl {
	return &AuthServiceImpl{
		store:    store,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

func VerifyPassword(hashedPassword, plainPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	return err == nil
}

// Authenticate checks the credentials and, on success, bumps the user's
// last-login timestamp inside the same transaction.
func (s *AuthServiceImpl) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user *models.User
	err := s.store.Transact(ctx, func(tx repositories.Store) error {
		u, err := tx.Users().FindByUsername(ctx, username)
		if err != nil {
			return apperrors.Internal("failed to load user", err)
		}
		if u == nil {
			return ErrInvalidCredentials
		}
		if !VerifyPassword(u.PasswordHash, password) {
			return ErrInvalidCredentials
		}

		now := s.now()
		u.LastLoginAt = &now
		u.UpdatedAt = now
		if err := tx.Users().Save(ctx, u); err != nil {
			return apperrors.Internal("failed to record login", err)
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GenerateToken signs a short-lived HS256 access token for the user.
func (s *AuthServiceImpl) GenerateToken(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    user.Role,
		"iat":     now.Unix(),
		"exp":     now.Add(s.tokenTTL).Unix(),
		"iss":     tokenIssuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates the token signature and expiry and returns the
// principal's user id.
func (s *AuthServiceImpl) ParseToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid token claims")
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("missing user_id in token")
	}

	userID, err := uuid.FromString(userIDStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user_id format: %w", err)
	}
	return userID, nil
}
