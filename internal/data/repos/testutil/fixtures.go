package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/domain"
)

func SeedEditor(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *domain.Editor {
	tb.Helper()
	e := &domain.Editor{
		ID:    uuid.New(),
		Email: email,
		Name:  "Editor de prueba",
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed editor: %v", err)
	}
	return e
}

func SeedStory(tb testing.TB, ctx context.Context, tx *gorm.DB, createdBy uuid.UUID) *domain.Story {
	tb.Helper()
	s := &domain.Story{
		ID:               uuid.New(),
		Title:            "La dama del paramo",
		ShortDescription: "Aparicion recurrente en la via al paramo",
		FullTestimony:    "El testigo relata que la vio tres noches seguidas.",
		SourceChannel:    domain.SourceListenerCall,
		PrimaryGenre:     domain.GenreGhosts,
		EventDateState:   domain.EventDateUnknown,
		State:            domain.StateExtracted,
		UniqueCode:       fmt.Sprintf("HIST-TEST-%s", uuid.NewString()[:8]),
		ContentWarnings:  datatypes.JSON([]byte("[]")),
		CreatedBy:        createdBy,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed story: %v", err)
	}
	return s
}

func SeedLocation(tb testing.TB, ctx context.Context, tx *gorm.DB, level2 string) *domain.Location {
	tb.Helper()
	l := &domain.Location{
		ID:         uuid.New(),
		Country:    "Colombia",
		Level1Name: "Boyaca",
		Level2Name: level2,
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed location: %v", err)
	}
	return l
}

func SeedEntity(tb testing.TB, ctx context.Context, tx *gorm.DB, name, normalized string) *domain.Entity {
	tb.Helper()
	e := &domain.Entity{
		ID:              uuid.New(),
		Name:            name,
		NormalizedName:  normalized,
		Kind:            "aparicion",
		KnownAliases:    datatypes.JSON([]byte("[]")),
		TriggerKeywords: datatypes.JSON([]byte("[]")),
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed entity: %v", err)
	}
	return e
}

func SeedWitness(tb testing.TB, ctx context.Context, tx *gorm.DB, storyID uuid.UUID, kind string) *domain.Witness {
	tb.Helper()
	w := &domain.Witness{
		ID:         uuid.New(),
		StoryID:    storyID,
		Kind:       kind,
		Pseudonym:  "Anonimo",
		WasPresent: true,
	}
	if err := tx.WithContext(ctx).Create(w).Error; err != nil {
		tb.Fatalf("seed witness: %v", err)
	}
	return w
}
