package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/domain"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/platform/logger"
)

type EditorRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*domain.Editor) ([]*domain.Editor, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Editor, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*domain.Editor, error)
}

type editorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEditorRepo(db *gorm.DB, baseLog *logger.Logger) EditorRepo {
	return &editorRepo{db: db, log: baseLog.With("repo", "EditorRepo")}
}

func (r *editorRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.Editor) ([]*domain.Editor, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*domain.Editor{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *editorRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Editor, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Editor
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *editorRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*domain.Editor, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if email == "" {
		return nil, nil
	}
	var out []*domain.Editor
	if err := t.WithContext(ctx).Where("email = ?", email).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}
