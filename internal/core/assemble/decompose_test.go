package assemble

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/core/draft"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/domain"
)

func baseDraft() draft.Draft {
	d := draft.New()
	return d.WithStory(draft.StorySection{
		Title:            "La llorona del puente viejo",
		ShortDescription: "Llanto de mujer sobre el rio a medianoche",
		FullTestimony:    "El celador la escucho y la vio cruzar el puente sin tocar el piso.",
		VerbatimExcerpt:  "la vi cruzar sin tocar el piso",
		SourceChannel:    "llamada_oyente",
		PrimaryGenre:     "fantasmas_apariciones",
		EventDate:        "2001-10-07",
		EventTime:        "23:45",
	})
}

func TestDecomposeRejectsInvalidDraft(t *testing.T) {
	_, ve := Decompose(draft.New(), uuid.New(), false, time.Now())
	if ve == nil {
		t.Fatal("Decompose accepted an empty draft")
	}
	if len(ve.Missing) != 3 {
		t.Fatalf("Missing = %v, want the three required fields", ve.Missing)
	}
}

func TestDecomposeDefaults(t *testing.T) {
	actor := uuid.New()
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	b, ve := Decompose(baseDraft(), actor, false, now)
	if ve != nil {
		t.Fatalf("Decompose: %v", ve)
	}

	s := b.Story
	if s.State != domain.StateExtracted {
		t.Fatalf("State = %q, want %q", s.State, domain.StateExtracted)
	}
	if !strings.HasPrefix(s.UniqueCode, "HIST-20260314") {
		t.Fatalf("UniqueCode = %q, want generated HIST token", s.UniqueCode)
	}
	if s.SimilarityHash == "" {
		t.Fatal("SimilarityHash should be derived when absent")
	}
	if s.ExcerptWordCount != 7 {
		t.Fatalf("ExcerptWordCount = %d, want 7", s.ExcerptWordCount)
	}
	if s.EventDateState != domain.EventDateExact || s.EventDateStart == nil {
		t.Fatalf("event date state = %q start=%v, want exact", s.EventDateState, s.EventDateStart)
	}
	if s.CreatedBy != actor {
		t.Fatalf("CreatedBy = %v, want %v", s.CreatedBy, actor)
	}
	if s.PublishedAt != nil || s.ModeratedBy != nil {
		t.Fatal("unpublished story must not carry publication stamps")
	}

	// A bare country default is not a location.
	if b.Location != nil || s.LocationID != nil {
		t.Fatal("default location section should not produce a row")
	}

	// The principal witness row always exists, named or not.
	if len(b.Witnesses) != 1 {
		t.Fatalf("witnesses = %d, want 1", len(b.Witnesses))
	}
	if w := b.Witnesses[0]; w.Kind != domain.WitnessPrincipal || w.Pseudonym != "Anonimo" {
		t.Fatalf("principal witness = %+v, want Anonimo principal", w)
	}

	if b.Environment != nil || b.Credibility != nil || b.Projection != nil || b.Rights != nil {
		t.Fatal("empty sections should not produce satellite rows")
	}
}

func TestDecomposePublishNow(t *testing.T) {
	actor := uuid.New()
	now := time.Now().UTC()

	b, ve := Decompose(baseDraft(), actor, true, now)
	if ve != nil {
		t.Fatalf("Decompose: %v", ve)
	}
	s := b.Story
	if s.State != domain.StatePublished {
		t.Fatalf("State = %q, want %q", s.State, domain.StatePublished)
	}
	if s.PublishedAt == nil || !s.PublishedAt.Equal(now) {
		t.Fatalf("PublishedAt = %v, want %v", s.PublishedAt, now)
	}
	if s.ModeratedBy == nil || *s.ModeratedBy != actor {
		t.Fatalf("ModeratedBy = %v, want %v", s.ModeratedBy, actor)
	}
}

func TestDecomposeCredibilityPrecedence(t *testing.T) {
	d := baseDraft()
	story := d.Story
	story.CredibilityLevel = 1.0
	d = d.WithStory(story)
	d = d.WithCredibility(draft.CredibilitySection{
		Present:           true,
		MultipleWitnesses: 5,
		PhysicalEvidence:  5,
		Consistency:       5,
	})

	b, ve := Decompose(d, uuid.New(), false, time.Now())
	if ve != nil {
		t.Fatalf("Decompose: %v", ve)
	}
	if b.Credibility == nil {
		t.Fatal("credibility row missing")
	}
	if b.Credibility.Percent != 27 {
		t.Fatalf("Percent = %d, want 27", b.Credibility.Percent)
	}
	// The factor aggregate overrides the direct 0-5 input.
	if b.Story.CredibilityLevel != 1.4 {
		t.Fatalf("CredibilityLevel = %v, want 1.4", b.Story.CredibilityLevel)
	}
}

func TestDecomposeKeyElementDedup(t *testing.T) {
	d := baseDraft().WithKeyElements([]string{"Carretera", "carretera ", "cementerio", "CEMENTERIO"})
	b, ve := Decompose(d, uuid.New(), false, time.Now())
	if ve != nil {
		t.Fatalf("Decompose: %v", ve)
	}
	if len(b.KeyElements) != 2 {
		t.Fatalf("key elements = %d, want 2 after case-insensitive dedup", len(b.KeyElements))
	}
	if b.KeyElements[0].Element != "Carretera" {
		t.Fatalf("first spelling should win, got %q", b.KeyElements[0].Element)
	}
}

func TestDecomposeSkipsUnnamedEntities(t *testing.T) {
	d := baseDraft().WithEntities([]draft.EntitySection{
		{Name: "  ", Kind: "aparicion"},
		{Name: "La Dama Gris", Kind: "aparicion", Relevance: 9},
	})
	b, ve := Decompose(d, uuid.New(), false, time.Now())
	if ve != nil {
		t.Fatalf("Decompose: %v", ve)
	}
	if len(b.Entities) != 1 {
		t.Fatalf("entities = %d, want 1", len(b.Entities))
	}
	link := b.Entities[0]
	if link.Entity.NormalizedName != "la dama gris" {
		t.Fatalf("NormalizedName = %q", link.Entity.NormalizedName)
	}
	if link.Relevance != 5 {
		t.Fatalf("Relevance = %d, want clamp to 5", link.Relevance)
	}
}

func TestSimilarityHashFoldsCaseAndWhitespace(t *testing.T) {
	a := SimilarityHash("La Llorona", "la  vi en   el puente")
	b := SimilarityHash("la llorona", "LA VI EN EL PUENTE")
	if a != b {
		t.Fatal("hash should survive case and whitespace edits")
	}
	c := SimilarityHash("La Llorona", "otra historia distinta")
	if a == c {
		t.Fatal("different testimonies must not collide")
	}
}

func TestNormalizeEntityName(t *testing.T) {
	if got := NormalizeEntityName("  El   Silbador "); got != "el silbador" {
		t.Fatalf("NormalizeEntityName = %q", got)
	}
}
