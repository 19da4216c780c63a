package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/domain"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/platform/logger"
)

type MediaRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*domain.MediaAsset) ([]*domain.MediaAsset, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.MediaAsset, error)
	GetByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) ([]*domain.MediaAsset, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
	FullDeleteByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) error
}

type mediaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMediaRepo(db *gorm.DB, baseLog *logger.Logger) MediaRepo {
	return &mediaRepo{db: db, log: baseLog.With("repo", "MediaRepo")}
}

func (r *mediaRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.MediaAsset) ([]*domain.MediaAsset, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*domain.MediaAsset{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *mediaRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.MediaAsset, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.MediaAsset
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mediaRepo) GetByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) ([]*domain.MediaAsset, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.MediaAsset
	if len(storyIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("historia_id IN ?", storyIDs).
		Order("relevancia DESC, created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mediaRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now().UTC()
	}
	return t.WithContext(ctx).
		Model(&domain.MediaAsset{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *mediaRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(ctx).Unscoped().Where("id IN ?", ids).Delete(&domain.MediaAsset{}).Error
}

func (r *mediaRepo) FullDeleteByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(storyIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).Unscoped().Where("historia_id IN ?", storyIDs).Delete(&domain.MediaAsset{}).Error
}
