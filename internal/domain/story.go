package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Processing states of a testimony record through the review pipeline.
const (
	StateExtracted = "extraida"
	StateInReview  = "en_revision"
	StateApproved  = "aprobada"
	StateRejected  = "rechazada"
	StatePublished = "publicada"
)

// Source channels.
const (
	SourceListenerCall  = "llamada_oyente"
	SourceShowStory     = "historia_programa"
	SourceOwnResearch   = "investigacion_propia"
	SourceInterview     = "entrevista_presencial"
	SourceWrittenSubmit = "envio_escrito"
	SourceOther         = "otro"
)

// Primary genres.
const (
	GenreGhosts     = "fantasmas_apariciones"
	GenreUFO        = "ovnis_luces"
	GenreCryptids   = "criptidos"
	GenrePossession = "posesiones_demonios"
	GenreHistoric   = "misterios_historicos"
	GenreOther      = "otro"
)

// Verification levels, weakest to strongest claim.
const (
	VerifyNone          = "sin_verificar"
	VerifySingleWitness = "testimonio_unico"
	VerifyMultiWitness  = "multiples_testigos"
	VerifyPhysical      = "evidencia_fisica"
	VerifyInvestigated  = "investigacion_completa"
	VerifyDebunked      = "descartada_fraude"
)

// Event-date knowledge states. The draft carries the raw string (ISO date,
// range, or the "Desconocido" sentinel); the row keeps parsed dates plus this
// discriminator so the sentinel survives a round trip.
const (
	EventDateExact   = "exacta"
	EventDateRange   = "rango"
	EventDateUnknown = "desconocida"
)

// Story is the root testimony record. Satellite rows reference it by StoryID.
type Story struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LocationID *uuid.UUID `gorm:"column:ubicacion_id;type:uuid;index" json:"ubicacion_id,omitempty"`
	Location   *Location  `gorm:"foreignKey:LocationID;references:ID" json:"ubicacion,omitempty"`

	Title            string `gorm:"column:titulo_provisional;not null" json:"titulo_provisional"`
	ShortDescription string `gorm:"column:descripcion_corta;not null" json:"descripcion_corta"`
	LongDescription  string `gorm:"column:descripcion_larga" json:"descripcion_larga"`
	FullTestimony    string `gorm:"column:testimonio_completo;type:text;not null" json:"testimonio_completo"`
	VerbatimExcerpt  string `gorm:"column:extracto_verbatim;type:text" json:"extracto_verbatim"`
	RewrittenStory   string `gorm:"column:historia_reescrita;type:text" json:"historia_reescrita"`

	SourceChannel string `gorm:"column:fuente_relato;not null;default:'otro'" json:"fuente_relato"`
	PrimaryGenre  string `gorm:"column:genero_principal;not null;default:'otro'" json:"genero_principal"`
	HistoricalEra string `gorm:"column:epoca_historica" json:"epoca_historica"`

	CredibilityLevel    float64 `gorm:"column:nivel_credibilidad" json:"nivel_credibilidad"`
	ImpactWeight        int     `gorm:"column:ponderacion_impacto;default:1" json:"ponderacion_impacto"`
	AdaptationPotential int     `gorm:"column:potencial_adaptacion;default:1" json:"potencial_adaptacion"`
	VerificationLevel   string  `gorm:"column:nivel_verificacion;not null;default:'sin_verificar'" json:"nivel_verificacion"`

	EventDateState string     `gorm:"column:estado_fecha_evento;not null;default:'desconocida'" json:"estado_fecha_evento"`
	EventDateStart *time.Time `gorm:"column:fecha_evento_inicio" json:"fecha_evento_inicio,omitempty"`
	EventDateEnd   *time.Time `gorm:"column:fecha_evento_fin" json:"fecha_evento_fin,omitempty"`
	EventTime      string     `gorm:"column:hora_evento" json:"hora_evento"`

	Recurrent         bool   `gorm:"column:evento_recurrente;default:false" json:"evento_recurrente"`
	RecurrencePattern string `gorm:"column:patron_recurrencia" json:"patron_recurrencia"`

	ProductionDifficulty int     `gorm:"column:dificultad_produccion" json:"dificultad_produccion"`
	ProductionHours      int     `gorm:"column:tiempo_produccion_horas" json:"tiempo_produccion_horas"`
	ProductionBudget     float64 `gorm:"column:presupuesto_estimado" json:"presupuesto_estimado"`

	SensitiveContent bool           `gorm:"column:contenido_sensible;default:false" json:"contenido_sensible"`
	ContentWarnings  datatypes.JSON `gorm:"column:advertencias_contenido;type:jsonb" json:"advertencias_contenido"`

	State       string     `gorm:"column:estado_procesamiento;not null;default:'extraida';index" json:"estado_procesamiento"`
	PublishedAt *time.Time `gorm:"column:fecha_publicacion" json:"fecha_publicacion,omitempty"`

	UniqueCode       string `gorm:"column:codigo_unico;uniqueIndex;not null" json:"codigo_unico"`
	SimilarityHash   string `gorm:"column:hash_similitud;index" json:"hash_similitud"`
	ExcerptWordCount int    `gorm:"column:longitud_extracto_palabras" json:"longitud_extracto_palabras"`

	CreatedBy   uuid.UUID  `gorm:"column:created_by;type:uuid;not null" json:"created_by"`
	ModeratedBy *uuid.UUID `gorm:"column:moderated_by;type:uuid" json:"moderated_by,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Story) TableName() string { return "historia" }
