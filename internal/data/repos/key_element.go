package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/domain"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/platform/logger"
)

type KeyElementRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*domain.KeyElement) ([]*domain.KeyElement, error)
	GetByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) ([]*domain.KeyElement, error)
	FullDeleteByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) error
}

type keyElementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewKeyElementRepo(db *gorm.DB, baseLog *logger.Logger) KeyElementRepo {
	return &keyElementRepo{db: db, log: baseLog.With("repo", "KeyElementRepo")}
}

func (r *keyElementRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.KeyElement) ([]*domain.KeyElement, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*domain.KeyElement{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *keyElementRepo) GetByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) ([]*domain.KeyElement, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.KeyElement
	if len(storyIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("historia_id IN ?", storyIDs).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *keyElementRepo) FullDeleteByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(storyIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).Unscoped().Where("historia_id IN ?", storyIDs).Delete(&domain.KeyElement{}).Error
}
