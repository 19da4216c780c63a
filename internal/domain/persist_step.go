package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Persist step statuses.
const (
	StepStatusOK     = "ok"
	StepStatusFailed = "fallido"
)

// PersistStep journals the outcome of each satellite write during record
// assembly. The root story row is never rolled back when a satellite write
// fails; failed steps stay here until a repair retries them.
type PersistStep struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StoryID uuid.UUID `gorm:"column:historia_id;type:uuid;not null;index" json:"historia_id"`

	Seq     int            `gorm:"column:seq;not null" json:"seq"`
	Step    string         `gorm:"column:paso;not null" json:"paso"`
	Status  string         `gorm:"column:estado;not null" json:"estado"`
	Detail  string         `gorm:"column:detalle" json:"detalle"`
	Payload datatypes.JSON `gorm:"column:payload;type:jsonb" json:"payload"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (PersistStep) TableName() string { return "paso_persistencia" }
