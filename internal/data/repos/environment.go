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

type EnvironmentRepo interface {
	UpsertByStoryID(ctx context.Context, tx *gorm.DB, row *domain.Environment) error
	GetByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) ([]*domain.Environment, error)
	FullDeleteByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) error
}

type environmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEnvironmentRepo(db *gorm.DB, baseLog *logger.Logger) EnvironmentRepo {
	return &environmentRepo{db: db, log: baseLog.With("repo", "EnvironmentRepo")}
}

func (r *environmentRepo) UpsertByStoryID(ctx context.Context, tx *gorm.DB, row *domain.Environment) error {
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
				"clima", "temperatura_c", "humedad_pct", "iluminacion",
				"sonido_ambiente", "situacion_social", "fase_lunar",
				"coincidencia_religiosa", "coincidencia_historica",
				"estado_emocional_testigos", "patron_temporal_detectado",
				"updated_at",
			}),
		}).
		Create(row).Error
}

func (r *environmentRepo) GetByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) ([]*domain.Environment, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Environment
	if len(storyIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("historia_id IN ?", storyIDs).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *environmentRepo) FullDeleteByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(storyIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).Unscoped().Where("historia_id IN ?", storyIDs).Delete(&domain.Environment{}).Error
}
