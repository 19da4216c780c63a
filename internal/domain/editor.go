package domain

import (
	"time"

	"github.com/google/uuid"
)

// Editor is the acting staff member. Accounts are provisioned elsewhere; this
// table only backs the audit columns and token subject lookup.
type Editor struct {
	ID    uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Name  string    `gorm:"column:nombre" json:"nombre"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Editor) TableName() string { return "editor" }
