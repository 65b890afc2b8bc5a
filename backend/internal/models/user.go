package models

import (
	"time"

	"github.com/gofrs/uuid"
)

const DefaultUserRole = "USER"

type User struct {
	ID           uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	Username     string     `json:"username" gorm:"uniqueIndex;not null;size:255"`
	Email        string     `json:"email,omitempty" gorm:"size:255"`
	PasswordHash string     `json:"-" gorm:"column:password_hash;not null;size:255"`
	Role         string     `json:"role" gorm:"not null;default:'USER';size:50"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}
