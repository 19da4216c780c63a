package domain

import (
	"time"

	"github.com/google/uuid"
)

// Media asset kinds.
const (
	MediaAudio    = "audio"
	MediaImage    = "imagen"
	MediaVideo    = "video"
	MediaDocument = "documento"
)

// Authenticity verification states.
const (
	AuthenticityPending    = "pendiente"
	AuthenticityVerified   = "verificado"
	AuthenticityManipulated = "manipulado"
)

// MediaAsset records metadata returned by the upload collaborator. The upload
// itself happens outside this service; only the resulting URL and probe data
// are persisted.
type MediaAsset struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StoryID uuid.UUID `gorm:"column:historia_id;type:uuid;not null;index" json:"historia_id"`
	Story   *Story    `gorm:"constraint:OnDelete:CASCADE;foreignKey:StoryID;references:ID" json:"historia,omitempty"`

	Kind            string   `gorm:"column:tipo_archivo;not null" json:"tipo_archivo"`
	URL             string   `gorm:"column:url_archivo;not null" json:"url_archivo"`
	SizeBytes       int64    `gorm:"column:tamano_bytes" json:"tamano_bytes"`
	DurationSeconds *float64 `gorm:"column:duracion_segundos" json:"duracion_segundos,omitempty"`
	Format          string   `gorm:"column:formato" json:"formato"`

	CaptureDevice    string     `gorm:"column:dispositivo_captura" json:"dispositivo_captura"`
	CaptureLatitude  *float64   `gorm:"column:captura_latitud" json:"captura_latitud,omitempty"`
	CaptureLongitude *float64   `gorm:"column:captura_longitud" json:"captura_longitud,omitempty"`
	CapturedAt       *time.Time `gorm:"column:fecha_captura" json:"fecha_captura,omitempty"`

	Authenticity  string `gorm:"column:verificacion_autenticidad;not null;default:'pendiente'" json:"verificacion_autenticidad"`
	Relevance     int    `gorm:"column:relevancia;default:3" json:"relevancia"`
	PublicAccess  bool   `gorm:"column:acceso_publico;default:false" json:"acceso_publico"`
	Transcription string `gorm:"column:transcripcion_analisis;type:text" json:"transcripcion_analisis"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (MediaAsset) TableName() string { return "archivo_multimedia" }
