package domain

import (
	"time"

	"github.com/google/uuid"
)

// Rights completeness statuses derived from the authorization flags and date.
const (
	RightsComplete = "completo"
	RightsPartial  = "parcial"
	RightsPending  = "pendiente"
)

// Rights holds usage and adaptation permissions for a story.
type Rights struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StoryID uuid.UUID `gorm:"column:historia_id;type:uuid;not null;uniqueIndex" json:"historia_id"`
	Story   *Story    `gorm:"constraint:OnDelete:CASCADE;foreignKey:StoryID;references:ID" json:"historia,omitempty"`

	UsageCategory           string     `gorm:"column:categoria_derechos" json:"categoria_derechos"`
	CommercialAuthorized    bool       `gorm:"column:autorizacion_comercial;default:false" json:"autorizacion_comercial"`
	AdaptationAuthorized    bool       `gorm:"column:autorizacion_adaptacion;default:false" json:"autorizacion_adaptacion"`
	UsageRestrictions       string     `gorm:"column:restricciones_uso;type:text" json:"restricciones_uso"`
	RightsHolderContact     string     `gorm:"column:contacto_titular" json:"contacto_titular"`
	AuthorizationDate       *time.Time `gorm:"column:fecha_autorizacion" json:"fecha_autorizacion,omitempty"`
	ValidityMonths          int        `gorm:"column:vigencia_meses" json:"vigencia_meses"`
	LegalNotes              string     `gorm:"column:notas_legales;type:text" json:"notas_legales"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Rights) TableName() string { return "derechos_historia" }

// CompletenessStatus derives the rights status: Complete needs both
// authorization flags plus an authorization date, Partial needs only the date.
func (r Rights) CompletenessStatus() string {
	switch {
	case r.CommercialAuthorized && r.AdaptationAuthorized && r.AuthorizationDate != nil:
		return RightsComplete
	case r.AuthorizationDate != nil:
		return RightsPartial
	default:
		return RightsPending
	}
}
