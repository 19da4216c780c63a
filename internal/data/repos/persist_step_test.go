package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/data/repos/testutil"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/domain"
)

func TestPersistStepRepoJournal(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewPersistStepRepo(db, testutil.Logger(t))

	editor := testutil.SeedEditor(t, ctx, tx, "journal@archivo.test")
	story := testutil.SeedStory(t, ctx, tx, editor.ID)

	steps := []*domain.PersistStep{
		{
			ID:      uuid.New(),
			StoryID: story.ID,
			Seq:     1,
			Step:    "testigos",
			Status:  domain.StepStatusOK,
			Payload: datatypes.JSON([]byte(`[]`)),
		},
		{
			ID:      uuid.New(),
			StoryID: story.ID,
			Seq:     2,
			Step:    "contexto_ambiental",
			Status:  domain.StepStatusFailed,
			Detail:  "connection reset",
			Payload: datatypes.JSON([]byte(`{"clima":"tormenta"}`)),
		},
	}
	if _, err := repo.Create(ctx, tx, steps); err != nil {
		t.Fatalf("create steps: %v", err)
	}

	all, err := repo.GetByStoryID(ctx, tx, story.ID)
	if err != nil || len(all) != 2 {
		t.Fatalf("get by story: err=%v len=%d", err, len(all))
	}
	if all[0].Seq != 1 || all[1].Seq != 2 {
		t.Fatalf("steps should come back in seq order: %d, %d", all[0].Seq, all[1].Seq)
	}

	failed, err := repo.GetFailedByStoryID(ctx, tx, story.ID)
	if err != nil || len(failed) != 1 {
		t.Fatalf("get failed: err=%v len=%d", err, len(failed))
	}
	if failed[0].Step != "contexto_ambiental" {
		t.Fatalf("failed step = %q", failed[0].Step)
	}

	if err := repo.MarkStatus(ctx, tx, failed[0].ID, domain.StepStatusOK, ""); err != nil {
		t.Fatalf("mark status: %v", err)
	}
	if failed, err = repo.GetFailedByStoryID(ctx, tx, story.ID); err != nil || len(failed) != 0 {
		t.Fatalf("repaired step should leave the failed set: err=%v len=%d", err, len(failed))
	}

	if err := repo.FullDeleteByStoryIDs(ctx, tx, []uuid.UUID{story.ID}); err != nil {
		t.Fatalf("full delete: %v", err)
	}
	if all, err = repo.GetByStoryID(ctx, tx, story.ID); err != nil || len(all) != 0 {
		t.Fatalf("journal should be empty after delete: err=%v len=%d", err, len(all))
	}
}

func TestEnvironmentRepoUpsertByStoryID(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewEnvironmentRepo(db, testutil.Logger(t))

	editor := testutil.SeedEditor(t, ctx, tx, "ambiente@archivo.test")
	story := testutil.SeedStory(t, ctx, tx, editor.ID)

	if err := repo.UpsertByStoryID(ctx, tx, &domain.Environment{
		ID:      uuid.New(),
		StoryID: story.ID,
		Weather: "niebla densa",
	}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := repo.UpsertByStoryID(ctx, tx, &domain.Environment{
		ID:         uuid.New(),
		StoryID:    story.ID,
		Weather:    "niebla densa",
		LunarPhase: "nueva",
	}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	rows, err := repo.GetByStoryIDs(ctx, tx, []uuid.UUID{story.ID})
	if err != nil || len(rows) != 1 {
		t.Fatalf("one environment row per story: err=%v len=%d", err, len(rows))
	}
	if rows[0].LunarPhase != "nueva" {
		t.Fatalf("upsert should refresh fields, got %+v", rows[0])
	}
}
