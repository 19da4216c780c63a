package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/domain"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/platform/logger"
)

type PersistStepRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*domain.PersistStep) ([]*domain.PersistStep, error)
	GetByStoryID(ctx context.Context, tx *gorm.DB, storyID uuid.UUID) ([]*domain.PersistStep, error)
	GetFailedByStoryID(ctx context.Context, tx *gorm.DB, storyID uuid.UUID) ([]*domain.PersistStep, error)
	MarkStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status, detail string) error
	FullDeleteByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) error
}

type persistStepRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPersistStepRepo(db *gorm.DB, baseLog *logger.Logger) PersistStepRepo {
	return &persistStepRepo{db: db, log: baseLog.With("repo", "PersistStepRepo")}
}

func (r *persistStepRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.PersistStep) ([]*domain.PersistStep, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*domain.PersistStep{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *persistStepRepo) GetByStoryID(ctx context.Context, tx *gorm.DB, storyID uuid.UUID) ([]*domain.PersistStep, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.PersistStep
	if storyID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("historia_id = ?", storyID).
		Order("seq ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *persistStepRepo) GetFailedByStoryID(ctx context.Context, tx *gorm.DB, storyID uuid.UUID) ([]*domain.PersistStep, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.PersistStep
	if storyID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("historia_id = ? AND estado = ?", storyID, domain.StepStatusFailed).
		Order("seq ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *persistStepRepo) MarkStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status, detail string) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	return t.WithContext(ctx).
		Model(&domain.PersistStep{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"estado":     status,
			"detalle":    detail,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *persistStepRepo) FullDeleteByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(storyIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).Unscoped().Where("historia_id IN ?", storyIDs).Delete(&domain.PersistStep{}).Error
}
