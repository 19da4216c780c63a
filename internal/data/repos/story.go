package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/domain"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/platform/logger"
)

type StoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*domain.Story) ([]*domain.Story, error)

	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Story, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Story, error)
	GetByUniqueCode(ctx context.Context, tx *gorm.DB, code string) (*domain.Story, error)
	GetBySimilarityHash(ctx context.Context, tx *gorm.DB, hash string) ([]*domain.Story, error)
	List(ctx context.Context, tx *gorm.DB, state string, limit, offset int) ([]*domain.Story, error)

	Update(ctx context.Context, tx *gorm.DB, row *domain.Story) error
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error

	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type storyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStoryRepo(db *gorm.DB, baseLog *logger.Logger) StoryRepo {
	return &storyRepo{db: db, log: baseLog.With("repo", "StoryRepo")}
}

func (r *storyRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.Story) ([]*domain.Story, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*domain.Story{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *storyRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Story, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Story
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *storyRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Story, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	rows, err := r.GetByIDs(ctx, tx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *storyRepo) GetByUniqueCode(ctx context.Context, tx *gorm.DB, code string) (*domain.Story, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if code == "" {
		return nil, nil
	}
	var out []*domain.Story
	if err := t.WithContext(ctx).Where("codigo_unico = ?", code).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *storyRepo) GetBySimilarityHash(ctx context.Context, tx *gorm.DB, hash string) ([]*domain.Story, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Story
	if hash == "" {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("hash_similitud = ?", hash).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *storyRepo) List(ctx context.Context, tx *gorm.DB, state string, limit, offset int) ([]*domain.Story, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(ctx).Order("created_at DESC")
	if state != "" {
		q = q.Where("estado_procesamiento = ?", state)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	var out []*domain.Story
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *storyRepo) Update(ctx context.Context, tx *gorm.DB, row *domain.Story) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if row == nil {
		return nil
	}
	return t.WithContext(ctx).Save(row).Error
}

func (r *storyRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&domain.Story{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *storyRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(ctx).Where("id IN ?", ids).Delete(&domain.Story{}).Error
}

func (r *storyRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(ctx).Unscoped().Where("id IN ?", ids).Delete(&domain.Story{}).Error
}
