package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	WitnessPrincipal = "principal"
	WitnessSecondary = "secundario"
)

// Witness holds one declarant of a story. Exactly one principal per story,
// zero or more secondaries.
type Witness struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StoryID uuid.UUID `gorm:"column:historia_id;type:uuid;not null;index" json:"historia_id"`
	Story   *Story    `gorm:"constraint:OnDelete:CASCADE;foreignKey:StoryID;references:ID" json:"historia,omitempty"`

	Kind                 string  `gorm:"column:tipo_testigo;not null;default:'principal'" json:"tipo_testigo"`
	Pseudonym            string  `gorm:"column:pseudonimo" json:"pseudonimo"`
	ApproxAge            int     `gorm:"column:edad_aproximada" json:"edad_aproximada"`
	Occupation           string  `gorm:"column:ocupacion" json:"ocupacion"`
	RelationToEvent      string  `gorm:"column:relacion_evento" json:"relacion_evento"`
	WasPresent           bool    `gorm:"column:presencial;default:true" json:"presencial"`
	EstimatedCredibility float64 `gorm:"column:credibilidad_estimada" json:"credibilidad_estimada"`
	PriorExposure        bool    `gorm:"column:antecedentes_paranormales;default:false" json:"antecedentes_paranormales"`
	ContactAvailable     bool    `gorm:"column:contacto_disponible;default:false" json:"contacto_disponible"`
	Notes                string  `gorm:"column:notas;type:text" json:"notas"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Witness) TableName() string { return "testigo" }
