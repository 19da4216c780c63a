package assemble

import (
	"github.com/google/uuid"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/core/draft"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/domain"
)

// Exported row builders for section-level updates. Each produces the same row
// a full Decompose would, scoped to one section of an existing story.

func LocationRow(l draft.LocationSection) *domain.Location {
	return locationRow(l)
}

func WitnessRows(d draft.Draft, storyID uuid.UUID) []domain.Witness {
	return witnessRows(d, storyID)
}

func EntityLinks(sections []draft.EntitySection) []EntityLink {
	return entityLinks(sections)
}

func EnvironmentRow(e draft.EnvironmentSection, storyID uuid.UUID) *domain.Environment {
	return environmentRow(e, storyID)
}

func CredibilityRow(c draft.CredibilitySection, storyID uuid.UUID) *domain.CredibilityFactors {
	return credibilityRow(c, storyID)
}

func ProjectionRow(p draft.ProjectionSection, storyID uuid.UUID) *domain.Projection {
	return projectionRow(p, storyID)
}

func RightsRow(r draft.RightsSection, storyID uuid.UUID) *domain.Rights {
	return rightsRow(r, storyID)
}

func MediaRows(sections []draft.MediaSection, storyID uuid.UUID) []domain.MediaAsset {
	return mediaRows(sections, storyID)
}

func KeyElementRows(elems []string, storyID uuid.UUID) []domain.KeyElement {
	return keyElementRows(elems, storyID)
}
