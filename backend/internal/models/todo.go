package models

import (
	"time"

	"github.com/gofrs/uuid"
)

// MaxTitleLength caps todo titles, matching the column width.
const MaxTitleLength = 255

// Todo is a task owned by exactly one user. ParentID points at another todo
// of the same owner; a nil ParentID marks a main (top-level) task.
type Todo struct {
	ID          uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	UserID      uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty" gorm:"type:uuid;index"`
	Title       string     `json:"title" gorm:"not null;size:255"`
	Description string     `json:"description" gorm:"type:text"`
	Completed   bool       `json:"completed" gorm:"not null;default:false"`
	Progress    int        `json:"progress" gorm:"not null;default:0"`
	Priority    int        `json:"priority" gorm:"not null;default:0"`
	Importance  int        `json:"importance" gorm:"not null;default:0"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsRoot reports whether the todo is a top-level task.
func (t *Todo) IsRoot() bool {
	return t.ParentID == nil
}
