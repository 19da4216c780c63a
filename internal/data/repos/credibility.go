package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/domain"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/platform/logger"
)

type CredibilityRepo interface {
	UpsertByStoryID(ctx context.Context, tx *gorm.DB, row *domain.CredibilityFactors) error
	GetByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) ([]*domain.CredibilityFactors, error)
	FullDeleteByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) error
}

type credibilityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCredibilityRepo(db *gorm.DB, baseLog *logger.Logger) CredibilityRepo {
	return &credibilityRepo{db: db, log: baseLog.With("repo", "CredibilityRepo")}
}

func (r *credibilityRepo) UpsertByStoryID(ctx context.Context, tx *gorm.DB, row *domain.CredibilityFactors) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if row == nil || row.StoryID == uuid.Nil {
		return nil
	}
	row.UpdatedAt = time.Now().UTC()
	return t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "historia_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"factor_multiples_testigos", "factor_evidencia_fisica",
				"factor_consistencia", "factor_ubicacion_verificable",
				"factor_contexto_historico", "factor_sobriedad_testigo",
				"factor_conocimiento_previo", "factor_estado_emocional",
				"factor_sin_motivo_secundario", "factor_corroboracion_externa",
				"factor_documentacion", "porcentaje_credibilidad",
				"banda_credibilidad", "updated_at",
			}),
		}).
		Create(row).Error
}

func (r *credibilityRepo) GetByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) ([]*domain.CredibilityFactors, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.CredibilityFactors
	if len(storyIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("historia_id IN ?", storyIDs).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *credibilityRepo) FullDeleteByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(storyIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).Unscoped().Where("historia_id IN ?", storyIDs).Delete(&domain.CredibilityFactors{}).Error
}
