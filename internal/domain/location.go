package domain

import (
	"time"

	"github.com/google/uuid"
)

// Location is owned by exactly one Story at creation time. Rows are recreated
// per record rather than deduplicated by address.
type Location struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	Country    string `gorm:"column:pais;not null;default:'Colombia'" json:"pais"`
	Level1Name string `gorm:"column:nivel1_nombre" json:"nivel1_nombre"`
	Level2Name string `gorm:"column:nivel2_nombre" json:"nivel2_nombre"`
	Level3Name string `gorm:"column:nivel3_nombre" json:"nivel3_nombre"`
	Level4Name string `gorm:"column:nivel4_nombre" json:"nivel4_nombre"`

	Latitude        *float64 `gorm:"column:latitud" json:"latitud,omitempty"`
	Longitude       *float64 `gorm:"column:longitud" json:"longitud,omitempty"`
	PrecisionMeters *int     `gorm:"column:precision_radio_m" json:"precision_radio_m,omitempty"`

	PlaceDescription string `gorm:"column:descripcion_lugar;type:text" json:"descripcion_lugar"`

	PriorActivityReported bool       `gorm:"column:actividad_previa_reportada;default:false" json:"actividad_previa_reportada"`
	PriorReportCount      int        `gorm:"column:numero_reportes_previos;default:0" json:"numero_reportes_previos"`
	FirstActivityAt       *time.Time `gorm:"column:primera_actividad" json:"primera_actividad,omitempty"`
	LastActivityAt        *time.Time `gorm:"column:ultima_actividad" json:"ultima_actividad,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Location) TableName() string { return "ubicacion" }
