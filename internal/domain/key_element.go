package domain

import (
	"time"

	"github.com/google/uuid"
)

// KeyElement is one short free-text tag characterizing a story.
type KeyElement struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StoryID uuid.UUID `gorm:"column:historia_id;type:uuid;not null;index" json:"historia_id"`
	Story   *Story    `gorm:"constraint:OnDelete:CASCADE;foreignKey:StoryID;references:ID" json:"historia,omitempty"`

	Element string `gorm:"column:elemento;not null" json:"elemento"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (KeyElement) TableName() string { return "elemento_clave" }
