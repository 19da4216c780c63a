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

type ProjectionRepo interface {
	UpsertByStoryID(ctx context.Context, tx *gorm.DB, row *domain.Projection) error
	GetByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) ([]*domain.Projection, error)
	FullDeleteByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) error
}

type projectionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProjectionRepo(db *gorm.DB, baseLog *logger.Logger) ProjectionRepo {
	return &projectionRepo{db: db, log: baseLog.With("repo", "ProjectionRepo")}
}

func (r *projectionRepo) UpsertByStoryID(ctx context.Context, tx *gorm.DB, row *domain.Projection) error {
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
				"audiencia_objetivo", "engagement_esperado", "potencial_viral",
				"impacto_emocional", "duracion_interes", "porcentaje_desempeno",
				"banda_desempeno", "metricas_objetivo", "updated_at",
			}),
		}).
		Create(row).Error
}

func (r *projectionRepo) GetByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) ([]*domain.Projection, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Projection
	if len(storyIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("historia_id IN ?", storyIDs).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *projectionRepo) FullDeleteByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(storyIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).Unscoped().Where("historia_id IN ?", storyIDs).Delete(&domain.Projection{}).Error
}
