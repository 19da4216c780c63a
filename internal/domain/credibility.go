package domain

import (
	"time"

	"github.com/google/uuid"
)

// CredibilityFactors holds the eleven independent 0-5 sub-scores behind the
// aggregate credibility percentage. One row per story at most.
type CredibilityFactors struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StoryID uuid.UUID `gorm:"column:historia_id;type:uuid;not null;uniqueIndex" json:"historia_id"`
	Story   *Story    `gorm:"constraint:OnDelete:CASCADE;foreignKey:StoryID;references:ID" json:"historia,omitempty"`

	MultipleWitnesses    int `gorm:"column:factor_multiples_testigos" json:"factor_multiples_testigos"`
	PhysicalEvidence     int `gorm:"column:factor_evidencia_fisica" json:"factor_evidencia_fisica"`
	Consistency          int `gorm:"column:factor_consistencia" json:"factor_consistencia"`
	VerifiableLocation   int `gorm:"column:factor_ubicacion_verificable" json:"factor_ubicacion_verificable"`
	HistoricalContext    int `gorm:"column:factor_contexto_historico" json:"factor_contexto_historico"`
	WitnessSobriety      int `gorm:"column:factor_sobriedad_testigo" json:"factor_sobriedad_testigo"`
	PriorKnowledge       int `gorm:"column:factor_conocimiento_previo" json:"factor_conocimiento_previo"`
	EmotionalState       int `gorm:"column:factor_estado_emocional" json:"factor_estado_emocional"`
	NoSecondaryMotive    int `gorm:"column:factor_sin_motivo_secundario" json:"factor_sin_motivo_secundario"`
	ExternalCorroboration int `gorm:"column:factor_corroboracion_externa" json:"factor_corroboracion_externa"`
	Documentation        int `gorm:"column:factor_documentacion" json:"factor_documentacion"`

	// Derived at decomposition; stored denormalized for listing screens.
	Percent int    `gorm:"column:porcentaje_credibilidad" json:"porcentaje_credibilidad"`
	Band    string `gorm:"column:banda_credibilidad" json:"banda_credibilidad"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (CredibilityFactors) TableName() string { return "factores_credibilidad" }

// Scores returns the sub-scores in their canonical order.
func (c CredibilityFactors) Scores() []int {
	return []int{
		c.MultipleWitnesses, c.PhysicalEvidence, c.Consistency,
		c.VerifiableLocation, c.HistoricalContext, c.WitnessSobriety,
		c.PriorKnowledge, c.EmotionalState, c.NoSecondaryMotive,
		c.ExternalCorroboration, c.Documentation,
	}
}
