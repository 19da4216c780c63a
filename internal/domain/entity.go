package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Entity is a globally shared paranormal entity, deduplicated by normalized
// name. Stories link to it through StoryEntity.
type Entity struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	Name           string `gorm:"column:nombre;uniqueIndex;not null" json:"nombre"`
	NormalizedName string `gorm:"column:nombre_normalizado;uniqueIndex;not null" json:"nombre_normalizado"`
	Kind           string `gorm:"column:tipo_entidad" json:"tipo_entidad"`

	PhysicalDescription string `gorm:"column:descripcion_fisica;type:text" json:"descripcion_fisica"`
	Behavior            string `gorm:"column:comportamiento;type:text" json:"comportamiento"`
	HostilityLevel      int    `gorm:"column:nivel_hostilidad" json:"nivel_hostilidad"`

	KnownAliases    datatypes.JSON `gorm:"column:alias_conocidos;type:jsonb" json:"alias_conocidos"`
	TriggerKeywords datatypes.JSON `gorm:"column:palabras_clave;type:jsonb" json:"palabras_clave"`

	FirstSeenAt *time.Time `gorm:"column:primera_aparicion" json:"primera_aparicion,omitempty"`
	LastSeenAt  *time.Time `gorm:"column:ultima_aparicion" json:"ultima_aparicion,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Entity) TableName() string { return "entidad_paranormal" }

// StoryEntity associates a story with an entity, weighted by how central the
// entity is to the narrative.
type StoryEntity struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StoryID  uuid.UUID `gorm:"column:historia_id;type:uuid;not null;uniqueIndex:idx_historia_entidad" json:"historia_id"`
	EntityID uuid.UUID `gorm:"column:entidad_id;type:uuid;not null;uniqueIndex:idx_historia_entidad" json:"entidad_id"`

	Relevance int `gorm:"column:relevancia;default:3" json:"relevancia"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (StoryEntity) TableName() string { return "historia_entidad" }
