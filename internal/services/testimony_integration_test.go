package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/data/repos"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/data/repos/testutil"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/domain"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/platform/apierr"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/requestdata"
)

func TestRecordLifecyclePostgres(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	ctx := context.Background()
	editor := testutil.SeedEditor(t, ctx, tx, "ciclo@archivo.test")
	ctx = requestdata.WithRequestData(ctx, &requestdata.RequestData{EditorID: editor.ID})

	svc := NewTestimonyService(
		tx, log,
		repos.NewStoryRepo(tx, log),
		repos.NewLocationRepo(tx, log),
		repos.NewWitnessRepo(tx, log),
		repos.NewEntityRepo(tx, log),
		repos.NewStoryEntityRepo(tx, log),
		repos.NewEnvironmentRepo(tx, log),
		repos.NewCredibilityRepo(tx, log),
		repos.NewProjectionRepo(tx, log),
		repos.NewRightsRepo(tx, log),
		repos.NewMediaRepo(tx, log),
		repos.NewKeyElementRepo(tx, log),
		repos.NewPersistStepRepo(tx, log),
	)

	res, err := svc.Create(ctx, recordDraft())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("Create warnings = %+v", res.Warnings)
	}

	rec, err := svc.Load(ctx, res.StoryID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec.Draft.Story.Title != "El silbon de la sabana" {
		t.Fatalf("Title = %q", rec.Draft.Story.Title)
	}
	if rec.Draft.Location.Level2Name != "Yopal" {
		t.Fatalf("Level2Name = %q", rec.Draft.Location.Level2Name)
	}
	if rec.Story.LocationID == nil {
		t.Fatal("story should reference its location row")
	}
	locID := *rec.Story.LocationID

	warnings, err := svc.Delete(ctx, res.StoryID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("Delete warnings = %+v", warnings)
	}

	var ae *apierr.Error
	if _, err := svc.Load(ctx, res.StoryID); !errors.As(err, &ae) || ae.Status != http.StatusNotFound {
		t.Fatalf("Load after delete = %v, want 404", err)
	}

	satellites := []struct {
		name  string
		model interface{}
	}{
		{"testigos", &domain.Witness{}},
		{"vinculos de entidad", &domain.StoryEntity{}},
		{"contexto ambiental", &domain.Environment{}},
		{"factores de credibilidad", &domain.CredibilityFactors{}},
		{"proyeccion", &domain.Projection{}},
		{"derechos", &domain.Rights{}},
		{"archivos multimedia", &domain.MediaAsset{}},
		{"elementos clave", &domain.KeyElement{}},
		{"pasos de persistencia", &domain.PersistStep{}},
	}
	for _, s := range satellites {
		var n int64
		if err := tx.WithContext(ctx).Model(s.model).Where("historia_id = ?", res.StoryID).Count(&n).Error; err != nil {
			t.Fatalf("count %s: %v", s.name, err)
		}
		if n != 0 {
			t.Fatalf("%s retains %d rows after delete", s.name, n)
		}
	}

	var n int64
	if err := tx.WithContext(ctx).Model(&domain.Location{}).Where("id = ?", locID).Count(&n).Error; err != nil {
		t.Fatalf("count ubicacion: %v", err)
	}
	if n != 0 {
		t.Fatal("location row survived delete")
	}
}
