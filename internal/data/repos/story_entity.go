package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/domain"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/platform/logger"
)

type StoryEntityRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, rows []*domain.StoryEntity) error
	GetByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) ([]*domain.StoryEntity, error)
	GetByEntityIDs(ctx context.Context, tx *gorm.DB, entityIDs []uuid.UUID) ([]*domain.StoryEntity, error)
	FullDeleteByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) error
}

type storyEntityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStoryEntityRepo(db *gorm.DB, baseLog *logger.Logger) StoryEntityRepo {
	return &storyEntityRepo{db: db, log: baseLog.With("repo", "StoryEntityRepo")}
}

func (r *storyEntityRepo) Upsert(ctx context.Context, tx *gorm.DB, rows []*domain.StoryEntity) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "historia_id"}, {Name: "entidad_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"relevancia"}),
		}).
		Create(&rows).Error
}

func (r *storyEntityRepo) GetByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) ([]*domain.StoryEntity, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.StoryEntity
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

func (r *storyEntityRepo) GetByEntityIDs(ctx context.Context, tx *gorm.DB, entityIDs []uuid.UUID) ([]*domain.StoryEntity, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.StoryEntity
	if len(entityIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("entidad_id IN ?", entityIDs).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *storyEntityRepo) FullDeleteByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(storyIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).Unscoped().Where("historia_id IN ?", storyIDs).Delete(&domain.StoryEntity{}).Error
}
