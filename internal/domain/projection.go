package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Target audiences.
const (
	AudienceGeneral  = "general"
	AudienceYoung    = "jovenes"
	AudienceAdult    = "adultos"
	AudienceHardcore = "aficionados_paranormal"
)

// Projection estimates how a story will perform once published. Four 0-5
// sub-scores combined with fixed weights into a single percentage.
type Projection struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StoryID uuid.UUID `gorm:"column:historia_id;type:uuid;not null;uniqueIndex" json:"historia_id"`
	Story   *Story    `gorm:"constraint:OnDelete:CASCADE;foreignKey:StoryID;references:ID" json:"historia,omitempty"`

	TargetAudience   string `gorm:"column:audiencia_objetivo;not null;default:'general'" json:"audiencia_objetivo"`
	Engagement       int    `gorm:"column:engagement_esperado" json:"engagement_esperado"`
	ViralPotential   int    `gorm:"column:potencial_viral" json:"potencial_viral"`
	EmotionalImpact  int    `gorm:"column:impacto_emocional" json:"impacto_emocional"`
	InterestDuration int    `gorm:"column:duracion_interes" json:"duracion_interes"`

	Percent int    `gorm:"column:porcentaje_desempeno" json:"porcentaje_desempeno"`
	Band    string `gorm:"column:banda_desempeno" json:"banda_desempeno"`

	// Free-form numeric targets (views, shares, comments, rating).
	TargetMetrics datatypes.JSON `gorm:"column:metricas_objetivo;type:jsonb" json:"metricas_objetivo"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Projection) TableName() string { return "proyeccion_desempeno" }
