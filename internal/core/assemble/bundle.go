package assemble

import (
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/domain"
)

// EntityLink pairs an entity payload with its relevance weight for the story
// join row. The entity itself is upserted by normalized name before linking.
type EntityLink struct {
	Entity    domain.Entity
	Relevance int
}

// Bundle is the decomposed relational form of one draft: the root story row
// plus every satellite payload, with ids pre-assigned so satellites can
// reference the parent before it exists in the store.
type Bundle struct {
	Story    domain.Story
	Location *domain.Location

	Witnesses   []domain.Witness
	Entities    []EntityLink
	Environment *domain.Environment
	Credibility *domain.CredibilityFactors
	Projection  *domain.Projection
	Rights      *domain.Rights
	Media       []domain.MediaAsset
	KeyElements []domain.KeyElement
}
