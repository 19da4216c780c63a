package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/domain"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/platform/logger"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/requestdata"
)

// In-memory repo doubles. Rows live in plain maps and every write can be made
// to fail through an error hook, so service tests can exercise the
// partial-failure paths without a database.

type memStoryRepo struct {
	rows      map[uuid.UUID]*domain.Story
	deleted   map[uuid.UUID]bool
	createErr error
}

func (r *memStoryRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.Story) ([]*domain.Story, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, row := range rows {
		r.rows[row.ID] = row
	}
	return rows, nil
}

func (r *memStoryRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Story, error) {
	var out []*domain.Story
	for _, id := range ids {
		if row, ok := r.rows[id]; ok && !r.deleted[id] {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *memStoryRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Story, error) {
	if r.deleted[id] {
		return nil, nil
	}
	return r.rows[id], nil
}

func (r *memStoryRepo) GetByUniqueCode(ctx context.Context, tx *gorm.DB, code string) (*domain.Story, error) {
	for id, row := range r.rows {
		if !r.deleted[id] && row.UniqueCode == code {
			return row, nil
		}
	}
	return nil, nil
}

func (r *memStoryRepo) GetBySimilarityHash(ctx context.Context, tx *gorm.DB, hash string) ([]*domain.Story, error) {
	var out []*domain.Story
	for id, row := range r.rows {
		if !r.deleted[id] && row.SimilarityHash == hash {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *memStoryRepo) List(ctx context.Context, tx *gorm.DB, state string, limit, offset int) ([]*domain.Story, error) {
	var out []*domain.Story
	for id, row := range r.rows {
		if r.deleted[id] {
			continue
		}
		if state != "" && row.State != state {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *memStoryRepo) Update(ctx context.Context, tx *gorm.DB, row *domain.Story) error {
	r.rows[row.ID] = row
	return nil
}

func (r *memStoryRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	row, ok := r.rows[id]
	if !ok {
		return nil
	}
	if v, ok := updates["estado_procesamiento"].(string); ok {
		row.State = v
	}
	if raw, ok := updates["ubicacion_id"]; ok {
		row.LocationID = nil
		if v, ok := raw.(uuid.UUID); ok {
			locID := v
			row.LocationID = &locID
		}
	}
	return nil
}

func (r *memStoryRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	for _, id := range ids {
		r.deleted[id] = true
	}
	return nil
}

func (r *memStoryRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	for _, id := range ids {
		delete(r.rows, id)
		delete(r.deleted, id)
	}
	return nil
}

type memLocationRepo struct {
	rows      map[uuid.UUID]*domain.Location
	createErr error
}

func (r *memLocationRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.Location) ([]*domain.Location, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, row := range rows {
		r.rows[row.ID] = row
	}
	return rows, nil
}

func (r *memLocationRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Location, error) {
	var out []*domain.Location
	for _, id := range ids {
		if row, ok := r.rows[id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *memLocationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Location, error) {
	return r.rows[id], nil
}

func (r *memLocationRepo) Update(ctx context.Context, tx *gorm.DB, row *domain.Location) error {
	r.rows[row.ID] = row
	return nil
}

func (r *memLocationRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	for _, id := range ids {
		delete(r.rows, id)
	}
	return nil
}

type memWitnessRepo struct {
	byStory   map[uuid.UUID][]*domain.Witness
	createErr error
}

func (r *memWitnessRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.Witness) ([]*domain.Witness, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, row := range rows {
		r.byStory[row.StoryID] = append(r.byStory[row.StoryID], row)
	}
	return rows, nil
}

func (r *memWitnessRepo) GetByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) ([]*domain.Witness, error) {
	var out []*domain.Witness
	for _, id := range storyIDs {
		out = append(out, r.byStory[id]...)
	}
	return out, nil
}

func (r *memWitnessRepo) FullDeleteByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) error {
	for _, id := range storyIDs {
		delete(r.byStory, id)
	}
	return nil
}

type memEntityRepo struct {
	byName    map[string]*domain.Entity
	upsertErr error
}

func (r *memEntityRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Entity, error) {
	var out []*domain.Entity
	for _, id := range ids {
		for _, row := range r.byName {
			if row.ID == id {
				out = append(out, row)
			}
		}
	}
	return out, nil
}

func (r *memEntityRepo) GetByNormalizedNames(ctx context.Context, tx *gorm.DB, names []string) ([]*domain.Entity, error) {
	var out []*domain.Entity
	for _, name := range names {
		if row, ok := r.byName[name]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *memEntityRepo) List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*domain.Entity, error) {
	var out []*domain.Entity
	for _, row := range r.byName {
		out = append(out, row)
	}
	return out, nil
}

func (r *memEntityRepo) UpsertByNormalizedName(ctx context.Context, tx *gorm.DB, row *domain.Entity) (*domain.Entity, error) {
	if r.upsertErr != nil {
		return nil, r.upsertErr
	}
	if existing, ok := r.byName[row.NormalizedName]; ok {
		row.ID = existing.ID
	} else if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	r.byName[row.NormalizedName] = row
	return row, nil
}

func (r *memEntityRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	for _, id := range ids {
		for name, row := range r.byName {
			if row.ID == id {
				delete(r.byName, name)
			}
		}
	}
	return nil
}

type memLinkRepo struct {
	rows      []*domain.StoryEntity
	upsertErr error
}

func (r *memLinkRepo) Upsert(ctx context.Context, tx *gorm.DB, rows []*domain.StoryEntity) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	for _, row := range rows {
		replaced := false
		for i, have := range r.rows {
			if have.StoryID == row.StoryID && have.EntityID == row.EntityID {
				r.rows[i] = row
				replaced = true
			}
		}
		if !replaced {
			r.rows = append(r.rows, row)
		}
	}
	return nil
}

func (r *memLinkRepo) GetByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) ([]*domain.StoryEntity, error) {
	var out []*domain.StoryEntity
	for _, row := range r.rows {
		for _, id := range storyIDs {
			if row.StoryID == id {
				out = append(out, row)
			}
		}
	}
	return out, nil
}

func (r *memLinkRepo) GetByEntityIDs(ctx context.Context, tx *gorm.DB, entityIDs []uuid.UUID) ([]*domain.StoryEntity, error) {
	var out []*domain.StoryEntity
	for _, row := range r.rows {
		for _, id := range entityIDs {
			if row.EntityID == id {
				out = append(out, row)
			}
		}
	}
	return out, nil
}

func (r *memLinkRepo) FullDeleteByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) error {
	kept := r.rows[:0]
	for _, row := range r.rows {
		drop := false
		for _, id := range storyIDs {
			if row.StoryID == id {
				drop = true
			}
		}
		if !drop {
			kept = append(kept, row)
		}
	}
	r.rows = kept
	return nil
}

type memEnvironmentRepo struct {
	byStory   map[uuid.UUID]*domain.Environment
	upsertErr error
}

func (r *memEnvironmentRepo) UpsertByStoryID(ctx context.Context, tx *gorm.DB, row *domain.Environment) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.byStory[row.StoryID] = row
	return nil
}

func (r *memEnvironmentRepo) GetByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) ([]*domain.Environment, error) {
	var out []*domain.Environment
	for _, id := range storyIDs {
		if row, ok := r.byStory[id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *memEnvironmentRepo) FullDeleteByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) error {
	for _, id := range storyIDs {
		delete(r.byStory, id)
	}
	return nil
}

type memCredibilityRepo struct {
	byStory   map[uuid.UUID]*domain.CredibilityFactors
	upsertErr error
}

func (r *memCredibilityRepo) UpsertByStoryID(ctx context.Context, tx *gorm.DB, row *domain.CredibilityFactors) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.byStory[row.StoryID] = row
	return nil
}

func (r *memCredibilityRepo) GetByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) ([]*domain.CredibilityFactors, error) {
	var out []*domain.CredibilityFactors
	for _, id := range storyIDs {
		if row, ok := r.byStory[id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *memCredibilityRepo) FullDeleteByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) error {
	for _, id := range storyIDs {
		delete(r.byStory, id)
	}
	return nil
}

type memProjectionRepo struct {
	byStory   map[uuid.UUID]*domain.Projection
	upsertErr error
}

func (r *memProjectionRepo) UpsertByStoryID(ctx context.Context, tx *gorm.DB, row *domain.Projection) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.byStory[row.StoryID] = row
	return nil
}

func (r *memProjectionRepo) GetByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) ([]*domain.Projection, error) {
	var out []*domain.Projection
	for _, id := range storyIDs {
		if row, ok := r.byStory[id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *memProjectionRepo) FullDeleteByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) error {
	for _, id := range storyIDs {
		delete(r.byStory, id)
	}
	return nil
}

type memRightsRepo struct {
	byStory   map[uuid.UUID]*domain.Rights
	upsertErr error
}

func (r *memRightsRepo) UpsertByStoryID(ctx context.Context, tx *gorm.DB, row *domain.Rights) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.byStory[row.StoryID] = row
	return nil
}

func (r *memRightsRepo) GetByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) ([]*domain.Rights, error) {
	var out []*domain.Rights
	for _, id := range storyIDs {
		if row, ok := r.byStory[id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *memRightsRepo) FullDeleteByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) error {
	for _, id := range storyIDs {
		delete(r.byStory, id)
	}
	return nil
}

type memMediaRepo struct {
	rows      map[uuid.UUID]*domain.MediaAsset
	createErr error
}

func (r *memMediaRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.MediaAsset) ([]*domain.MediaAsset, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, row := range rows {
		r.rows[row.ID] = row
	}
	return rows, nil
}

func (r *memMediaRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.MediaAsset, error) {
	var out []*domain.MediaAsset
	for _, id := range ids {
		if row, ok := r.rows[id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *memMediaRepo) GetByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) ([]*domain.MediaAsset, error) {
	var out []*domain.MediaAsset
	for _, row := range r.rows {
		for _, id := range storyIDs {
			if row.StoryID == id {
				out = append(out, row)
			}
		}
	}
	return out, nil
}

func (r *memMediaRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	return nil
}

func (r *memMediaRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	for _, id := range ids {
		delete(r.rows, id)
	}
	return nil
}

func (r *memMediaRepo) FullDeleteByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) error {
	for id, row := range r.rows {
		for _, storyID := range storyIDs {
			if row.StoryID == storyID {
				delete(r.rows, id)
			}
		}
	}
	return nil
}

type memKeyElementRepo struct {
	byStory   map[uuid.UUID][]*domain.KeyElement
	createErr error
}

func (r *memKeyElementRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.KeyElement) ([]*domain.KeyElement, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, row := range rows {
		r.byStory[row.StoryID] = append(r.byStory[row.StoryID], row)
	}
	return rows, nil
}

func (r *memKeyElementRepo) GetByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) ([]*domain.KeyElement, error) {
	var out []*domain.KeyElement
	for _, id := range storyIDs {
		out = append(out, r.byStory[id]...)
	}
	return out, nil
}

func (r *memKeyElementRepo) FullDeleteByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) error {
	for _, id := range storyIDs {
		delete(r.byStory, id)
	}
	return nil
}

type memStepRepo struct {
	rows      []*domain.PersistStep
	createErr error
}

func (r *memStepRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.PersistStep) ([]*domain.PersistStep, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
		r.rows = append(r.rows, row)
	}
	return rows, nil
}

func (r *memStepRepo) GetByStoryID(ctx context.Context, tx *gorm.DB, storyID uuid.UUID) ([]*domain.PersistStep, error) {
	var out []*domain.PersistStep
	for _, row := range r.rows {
		if row.StoryID == storyID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *memStepRepo) GetFailedByStoryID(ctx context.Context, tx *gorm.DB, storyID uuid.UUID) ([]*domain.PersistStep, error) {
	var out []*domain.PersistStep
	for _, row := range r.rows {
		if row.StoryID == storyID && row.Status == domain.StepStatusFailed {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *memStepRepo) MarkStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status, detail string) error {
	for _, row := range r.rows {
		if row.ID == id {
			row.Status = status
			row.Detail = detail
		}
	}
	return nil
}

func (r *memStepRepo) FullDeleteByStoryIDs(ctx context.Context, tx *gorm.DB, storyIDs []uuid.UUID) error {
	kept := r.rows[:0]
	for _, row := range r.rows {
		drop := false
		for _, id := range storyIDs {
			if row.StoryID == id {
				drop = true
			}
		}
		if !drop {
			kept = append(kept, row)
		}
	}
	r.rows = kept
	return nil
}

type memRepos struct {
	stories     *memStoryRepo
	locations   *memLocationRepo
	witnesses   *memWitnessRepo
	entities    *memEntityRepo
	links       *memLinkRepo
	environment *memEnvironmentRepo
	credibility *memCredibilityRepo
	projection  *memProjectionRepo
	rights      *memRightsRepo
	media       *memMediaRepo
	keyElements *memKeyElementRepo
	steps       *memStepRepo
}

func newMemRepos() *memRepos {
	return &memRepos{
		stories:     &memStoryRepo{rows: map[uuid.UUID]*domain.Story{}, deleted: map[uuid.UUID]bool{}},
		locations:   &memLocationRepo{rows: map[uuid.UUID]*domain.Location{}},
		witnesses:   &memWitnessRepo{byStory: map[uuid.UUID][]*domain.Witness{}},
		entities:    &memEntityRepo{byName: map[string]*domain.Entity{}},
		links:       &memLinkRepo{},
		environment: &memEnvironmentRepo{byStory: map[uuid.UUID]*domain.Environment{}},
		credibility: &memCredibilityRepo{byStory: map[uuid.UUID]*domain.CredibilityFactors{}},
		projection:  &memProjectionRepo{byStory: map[uuid.UUID]*domain.Projection{}},
		rights:      &memRightsRepo{byStory: map[uuid.UUID]*domain.Rights{}},
		media:       &memMediaRepo{rows: map[uuid.UUID]*domain.MediaAsset{}},
		keyElements: &memKeyElementRepo{byStory: map[uuid.UUID][]*domain.KeyElement{}},
		steps:       &memStepRepo{},
	}
}

func (m *memRepos) service(tb testing.TB) TestimonyService {
	tb.Helper()
	log, err := logger.New("test")
	if err != nil {
		tb.Fatalf("init logger: %v", err)
	}
	return NewTestimonyService(
		nil, log,
		m.stories, m.locations, m.witnesses, m.entities, m.links,
		m.environment, m.credibility, m.projection, m.rights,
		m.media, m.keyElements, m.steps,
	)
}

func (m *memRepos) repair(tb testing.TB) RepairService {
	tb.Helper()
	log, err := logger.New("test")
	if err != nil {
		tb.Fatalf("init logger: %v", err)
	}
	return NewRepairService(
		nil, log,
		m.witnesses, m.entities, m.links, m.environment,
		m.credibility, m.projection, m.rights,
		m.media, m.keyElements, m.steps,
	)
}

func editorContext() context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{EditorID: uuid.New()})
}
