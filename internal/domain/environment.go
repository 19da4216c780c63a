package domain

import (
	"time"

	"github.com/google/uuid"
)

// Environment is the 0-or-1 environmental snapshot taken at event time.
type Environment struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StoryID uuid.UUID `gorm:"column:historia_id;type:uuid;not null;uniqueIndex" json:"historia_id"`
	Story   *Story    `gorm:"constraint:OnDelete:CASCADE;foreignKey:StoryID;references:ID" json:"historia,omitempty"`

	Weather          string   `gorm:"column:clima" json:"clima"`
	TemperatureC     *float64 `gorm:"column:temperatura_c" json:"temperatura_c,omitempty"`
	HumidityPct      *int     `gorm:"column:humedad_pct" json:"humedad_pct,omitempty"`
	Lighting         string   `gorm:"column:iluminacion" json:"iluminacion"`
	AmbientSound     string   `gorm:"column:sonido_ambiente" json:"sonido_ambiente"`
	SocialSituation  string   `gorm:"column:situacion_social" json:"situacion_social"`
	LunarPhase       string   `gorm:"column:fase_lunar" json:"fase_lunar"`
	ReligiousOverlap string   `gorm:"column:coincidencia_religiosa" json:"coincidencia_religiosa"`
	HistoricOverlap  string   `gorm:"column:coincidencia_historica" json:"coincidencia_historica"`
	EmotionalState   string   `gorm:"column:estado_emocional_testigos" json:"estado_emocional_testigos"`
	TemporalPattern  bool     `gorm:"column:patron_temporal_detectado;default:false" json:"patron_temporal_detectado"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Environment) TableName() string { return "contexto_ambiental" }
