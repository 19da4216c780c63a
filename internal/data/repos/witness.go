package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/domain"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/platform/logger"
)

type WitnessRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*domain.Witness) ([]*domain.Witness, error)
	GetByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) ([]*domain.Witness, error)
	FullDeleteByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) error
}

type witnessRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWitnessRepo(db *gorm.DB, baseLog *logger.Logger) WitnessRepo {
	return &witnessRepo{db: db, log: baseLog.With("repo", "WitnessRepo")}
}

func (r *witnessRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.Witness) ([]*domain.Witness, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*domain.Witness{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *witnessRepo) GetByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) ([]*domain.Witness, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Witness
	if len(storyIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("historia_id IN ?", storyIDs).
		Order("tipo_testigo ASC, created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *witnessRepo) FullDeleteByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(storyIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).Unscoped().Where("historia_id IN ?", storyIDs).Delete(&domain.Witness{}).Error
}
