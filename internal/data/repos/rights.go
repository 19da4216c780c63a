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

type RightsRepo interface {
	UpsertByStoryID(ctx context.Context, tx *gorm.DB, row *domain.Rights) error
	GetByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) ([]*domain.Rights, error)
	FullDeleteByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) error
}

type rightsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRightsRepo(db *gorm.DB, baseLog *logger.Logger) RightsRepo {
	return &rightsRepo{db: db, log: baseLog.With("repo", "RightsRepo")}
}

func (r *rightsRepo) UpsertByStoryID(ctx context.Context, tx *gorm.DB, row *domain.Rights) error {
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
				"categoria_derechos", "autorizacion_comercial",
				"autorizacion_adaptacion", "restricciones_uso",
				"contacto_titular", "fecha_autorizacion", "vigencia_meses",
				"notas_legales", "updated_at",
			}),
		}).
		Create(row).Error
}

func (r *rightsRepo) GetByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) ([]*domain.Rights, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Rights
	if len(storyIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("historia_id IN ?", storyIDs).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *rightsRepo) FullDeleteByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(storyIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).Unscoped().Where("historia_id IN ?", storyIDs).Delete(&domain.Rights{}).Error
}
