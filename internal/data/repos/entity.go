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

type EntityRepo interface {
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Entity, error)
	GetByNormalizedNames(ctx context.Context, tx *gorm.DB, names []string) ([]*domain.Entity, error)
	List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*domain.Entity, error)

	// UpsertByNormalizedName inserts the entity or refreshes the descriptive
	// fields of the existing row with the same nombre_normalizado. The row ID
	// is reloaded after the write so links can reference it.
	UpsertByNormalizedName(ctx context.Context, tx *gorm.DB, row *domain.Entity) (*domain.Entity, error)

	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type entityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEntityRepo(db *gorm.DB, baseLog *logger.Logger) EntityRepo {
	return &entityRepo{db: db, log: baseLog.With("repo", "EntityRepo")}
}

func (r *entityRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Entity, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Entity
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *entityRepo) GetByNormalizedNames(ctx context.Context, tx *gorm.DB, names []string) ([]*domain.Entity, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Entity
	if len(names) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("nombre_normalizado IN ?", names).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *entityRepo) List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*domain.Entity, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(ctx).Order("nombre_normalizado ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	var out []*domain.Entity
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *entityRepo) UpsertByNormalizedName(ctx context.Context, tx *gorm.DB, row *domain.Entity) (*domain.Entity, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if row == nil || row.NormalizedName == "" {
		return nil, nil
	}
	row.UpdatedAt = time.Now().UTC()

	if err := t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "nombre_normalizado"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"tipo_entidad", "descripcion_fisica", "comportamiento",
				"nivel_hostilidad", "alias_conocidos", "palabras_clave",
				"primera_aparicion", "ultima_aparicion", "updated_at",
			}),
		}).
		Create(row).Error; err != nil {
		return nil, err
	}

	var saved domain.Entity
	if err := t.WithContext(ctx).
		Where("nombre_normalizado = ?", row.NormalizedName).
		First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *entityRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(ctx).Unscoped().Where("id IN ?", ids).Delete(&domain.Entity{}).Error
}
