package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/core/assemble"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/core/draft"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/core/normalize"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/core/scoring"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/data/repos"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/domain"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/platform/apierr"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/platform/logger"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/requestdata"
)

// Journal step names, in write order.
const (
	StepLocation    = "ubicacion"
	StepWitnesses   = "testigos"
	StepEntities    = "entidades"
	StepEnvironment = "contexto_ambiental"
	StepCredibility = "factores_credibilidad"
	StepRights      = "derechos"
	StepProjection  = "proyeccion_desempeno"
	StepMedia       = "archivos_multimedia"
	StepKeyElements = "elementos_clave"
)

// StepWarning reports one satellite write that failed while the root record
// survived.
type StepWarning struct {
	Step   string `json:"paso"`
	Detail string `json:"detalle"`
}

type CreateResult struct {
	StoryID    uuid.UUID     `json:"historia_id"`
	UniqueCode string        `json:"codigo_unico"`
	State      string        `json:"estado_procesamiento"`
	Warnings   []StepWarning `json:"advertencias,omitempty"`
}

// Record is a fully loaded testimony: the root row plus the recomposed
// editable draft and the derived rights status.
type Record struct {
	Story        *domain.Story `json:"historia"`
	Draft        draft.Draft   `json:"borrador"`
	RightsStatus string        `json:"estado_derechos"`
}

type TestimonyService interface {
	Create(ctx context.Context, d draft.Draft) (*CreateResult, error)
	Load(ctx context.Context, id uuid.UUID) (*Record, error)
	List(ctx context.Context, state string, limit, offset int) ([]*domain.Story, error)

	UpdateStory(ctx context.Context, id uuid.UUID, s draft.StorySection) error
	UpdateLocation(ctx context.Context, id uuid.UUID, l draft.LocationSection) error
	ReplaceWitnesses(ctx context.Context, id uuid.UUID, main draft.WitnessSection, secondaries []draft.WitnessSection) error
	ReplaceEntities(ctx context.Context, id uuid.UUID, es []draft.EntitySection) error
	UpdateEnvironment(ctx context.Context, id uuid.UUID, e draft.EnvironmentSection) error
	UpdateCredibility(ctx context.Context, id uuid.UUID, c draft.CredibilitySection) error
	UpdateProjection(ctx context.Context, id uuid.UUID, p draft.ProjectionSection) error
	UpdateRights(ctx context.Context, id uuid.UUID, r draft.RightsSection) error
	ReplaceKeyElements(ctx context.Context, id uuid.UUID, elems []string) error

	Transition(ctx context.Context, id uuid.UUID, target string) (*domain.Story, error)
	Delete(ctx context.Context, id uuid.UUID) ([]StepWarning, error)
	ScreenDuplicates(ctx context.Context, title, testimony, code string) ([]*domain.Story, error)
}

type testimonyService struct {
	db  *gorm.DB
	log *logger.Logger

	stories     repos.StoryRepo
	locations   repos.LocationRepo
	witnesses   repos.WitnessRepo
	entities    repos.EntityRepo
	links       repos.StoryEntityRepo
	environment repos.EnvironmentRepo
	credibility repos.CredibilityRepo
	projection  repos.ProjectionRepo
	rights      repos.RightsRepo
	media       repos.MediaRepo
	keyElements repos.KeyElementRepo
	steps       repos.PersistStepRepo
}

func NewTestimonyService(
	db *gorm.DB,
	baseLog *logger.Logger,
	stories repos.StoryRepo,
	locations repos.LocationRepo,
	witnesses repos.WitnessRepo,
	entities repos.EntityRepo,
	links repos.StoryEntityRepo,
	environment repos.EnvironmentRepo,
	credibility repos.CredibilityRepo,
	projection repos.ProjectionRepo,
	rights repos.RightsRepo,
	media repos.MediaRepo,
	keyElements repos.KeyElementRepo,
	steps repos.PersistStepRepo,
) TestimonyService {
	return &testimonyService{
		db:          db,
		log:         baseLog.With("service", "TestimonyService"),
		stories:     stories,
		locations:   locations,
		witnesses:   witnesses,
		entities:    entities,
		links:       links,
		environment: environment,
		credibility: credibility,
		projection:  projection,
		rights:      rights,
		media:       media,
		keyElements: keyElements,
		steps:       steps,
	}
}

// Create persists a decomposed draft. The root story row is mandatory; every
// satellite write that fails is journaled and reported as a warning instead of
// aborting the record.
func (s *testimonyService) Create(ctx context.Context, d draft.Draft) (*CreateResult, error) {
	actorID := actorFrom(ctx)
	if actorID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "editor_no_identificado", fmt.Errorf("missing editor identity"))
	}

	bundle, ve := assemble.Decompose(d, actorID, d.PublishNow, time.Now().UTC())
	if ve != nil {
		return nil, apierr.New(http.StatusUnprocessableEntity, "borrador_invalido", ve)
	}

	result := &CreateResult{StoryID: bundle.Story.ID}
	seq := 0
	journal := func(step, detail string, payload any, failed bool) {
		seq++
		status := domain.StepStatusOK
		if failed {
			status = domain.StepStatusFailed
			result.Warnings = append(result.Warnings, StepWarning{Step: step, Detail: detail})
			s.log.Warn("satellite write failed", "historia_id", bundle.Story.ID, "paso", step, "detalle", detail)
		}
		raw, _ := json.Marshal(payload)
		row := &domain.PersistStep{
			StoryID: bundle.Story.ID,
			Seq:     seq,
			Step:    step,
			Status:  status,
			Detail:  detail,
			Payload: datatypes.JSON(raw),
		}
		if _, err := s.steps.Create(ctx, nil, []*domain.PersistStep{row}); err != nil {
			s.log.Warn("failed to journal persist step", "historia_id", bundle.Story.ID, "paso", step, "error", err)
		}
	}

	// The location row must exist before the story references it. If the
	// write fails, the story is kept and simply loses the reference. The
	// journal entry waits until the story row exists so a fatal story insert
	// leaves no steps pointing at a record that was never created.
	locationDetail := ""
	locationFailed := false
	if bundle.Location != nil {
		if _, err := s.locations.Create(ctx, nil, []*domain.Location{bundle.Location}); err != nil {
			locationFailed = true
			locationDetail = err.Error()
			bundle.Story.LocationID = nil
		}
	}

	if _, err := s.stories.Create(ctx, nil, []*domain.Story{&bundle.Story}); err != nil {
		if bundle.Location != nil && !locationFailed {
			if delErr := s.locations.FullDeleteByIDs(ctx, nil, []uuid.UUID{bundle.Location.ID}); delErr != nil {
				s.log.Warn("failed to remove orphaned location", "ubicacion_id", bundle.Location.ID, "error", delErr)
			}
		}
		return nil, apierr.New(http.StatusInternalServerError, "historia_no_persistida", err)
	}
	result.UniqueCode = bundle.Story.UniqueCode
	result.State = bundle.Story.State

	if bundle.Location != nil {
		journal(StepLocation, locationDetail, bundle.Location, locationFailed)
	}
	s.writeSatellites(ctx, bundle, journal)
	return result, nil
}

func (s *testimonyService) writeSatellites(ctx context.Context, b *assemble.Bundle, journal func(step, detail string, payload any, failed bool)) {
	if len(b.Witnesses) > 0 {
		rows := make([]*domain.Witness, 0, len(b.Witnesses))
		for i := range b.Witnesses {
			rows = append(rows, &b.Witnesses[i])
		}
		if _, err := s.witnesses.Create(ctx, nil, rows); err != nil {
			journal(StepWitnesses, err.Error(), rows, true)
		} else {
			journal(StepWitnesses, "", rows, false)
		}
	}

	if len(b.Entities) > 0 {
		if err := s.linkEntities(ctx, b.Story.ID, b.Entities); err != nil {
			journal(StepEntities, err.Error(), b.Entities, true)
		} else {
			journal(StepEntities, "", b.Entities, false)
		}
	}

	if b.Environment != nil {
		if err := s.environment.UpsertByStoryID(ctx, nil, b.Environment); err != nil {
			journal(StepEnvironment, err.Error(), b.Environment, true)
		} else {
			journal(StepEnvironment, "", b.Environment, false)
		}
	}

	if b.Credibility != nil {
		if err := s.credibility.UpsertByStoryID(ctx, nil, b.Credibility); err != nil {
			journal(StepCredibility, err.Error(), b.Credibility, true)
		} else {
			journal(StepCredibility, "", b.Credibility, false)
		}
	}

	if b.Rights != nil {
		if err := s.rights.UpsertByStoryID(ctx, nil, b.Rights); err != nil {
			journal(StepRights, err.Error(), b.Rights, true)
		} else {
			journal(StepRights, "", b.Rights, false)
		}
	}

	if b.Projection != nil {
		if err := s.projection.UpsertByStoryID(ctx, nil, b.Projection); err != nil {
			journal(StepProjection, err.Error(), b.Projection, true)
		} else {
			journal(StepProjection, "", b.Projection, false)
		}
	}

	if len(b.Media) > 0 {
		rows := make([]*domain.MediaAsset, 0, len(b.Media))
		for i := range b.Media {
			rows = append(rows, &b.Media[i])
		}
		if _, err := s.media.Create(ctx, nil, rows); err != nil {
			journal(StepMedia, err.Error(), rows, true)
		} else {
			journal(StepMedia, "", rows, false)
		}
	}

	if len(b.KeyElements) > 0 {
		rows := make([]*domain.KeyElement, 0, len(b.KeyElements))
		for i := range b.KeyElements {
			rows = append(rows, &b.KeyElements[i])
		}
		if _, err := s.keyElements.Create(ctx, nil, rows); err != nil {
			journal(StepKeyElements, err.Error(), rows, true)
		} else {
			journal(StepKeyElements, "", rows, false)
		}
	}
}

// linkEntities upserts each shared entity by normalized name and links it to
// the story with its relevance weight.
func (s *testimonyService) linkEntities(ctx context.Context, storyID uuid.UUID, links []assemble.EntityLink) error {
	rows := make([]*domain.StoryEntity, 0, len(links))
	for i := range links {
		saved, err := s.entities.UpsertByNormalizedName(ctx, nil, &links[i].Entity)
		if err != nil {
			return err
		}
		if saved == nil {
			continue
		}
		rows = append(rows, &domain.StoryEntity{
			StoryID:   storyID,
			EntityID:  saved.ID,
			Relevance: links[i].Relevance,
		})
	}
	return s.links.Upsert(ctx, nil, rows)
}

// Load composes the full relational graph of one story back into a draft.
func (s *testimonyService) Load(ctx context.Context, id uuid.UUID) (*Record, error) {
	story, err := s.stories.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "historia_no_cargada", err)
	}
	if story == nil {
		return nil, apierr.New(http.StatusNotFound, "historia_no_encontrada", fmt.Errorf("story %s not found", id))
	}

	b := &assemble.Bundle{Story: *story}
	ids := []uuid.UUID{id}

	if story.LocationID != nil {
		loc, err := s.locations.GetByID(ctx, nil, *story.LocationID)
		if err != nil {
			return nil, apierr.New(http.StatusInternalServerError, "historia_no_cargada", err)
		}
		b.Location = loc
	}

	witnesses, err := s.witnesses.GetByStoryIDs(ctx, nil, ids)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "historia_no_cargada", err)
	}
	for _, w := range witnesses {
		b.Witnesses = append(b.Witnesses, *w)
	}

	linkRows, err := s.links.GetByStoryIDs(ctx, nil, ids)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "historia_no_cargada", err)
	}
	if len(linkRows) > 0 {
		entityIDs := make([]uuid.UUID, 0, len(linkRows))
		for _, l := range linkRows {
			entityIDs = append(entityIDs, l.EntityID)
		}
		entityRows, err := s.entities.GetByIDs(ctx, nil, entityIDs)
		if err != nil {
			return nil, apierr.New(http.StatusInternalServerError, "historia_no_cargada", err)
		}
		byID := make(map[uuid.UUID]*domain.Entity, len(entityRows))
		for _, e := range entityRows {
			byID[e.ID] = e
		}
		for _, l := range linkRows {
			e, ok := byID[l.EntityID]
			if !ok {
				continue
			}
			b.Entities = append(b.Entities, assemble.EntityLink{Entity: *e, Relevance: l.Relevance})
		}
	}

	environments, err := s.environment.GetByStoryIDs(ctx, nil, ids)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "historia_no_cargada", err)
	}
	if len(environments) > 0 {
		b.Environment = environments[0]
	}

	credRows, err := s.credibility.GetByStoryIDs(ctx, nil, ids)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "historia_no_cargada", err)
	}
	if len(credRows) > 0 {
		b.Credibility = credRows[0]
	}

	projRows, err := s.projection.GetByStoryIDs(ctx, nil, ids)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "historia_no_cargada", err)
	}
	if len(projRows) > 0 {
		b.Projection = projRows[0]
	}

	rightsRows, err := s.rights.GetByStoryIDs(ctx, nil, ids)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "historia_no_cargada", err)
	}
	if len(rightsRows) > 0 {
		b.Rights = rightsRows[0]
	}

	mediaRows, err := s.media.GetByStoryIDs(ctx, nil, ids)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "historia_no_cargada", err)
	}
	for _, m := range mediaRows {
		b.Media = append(b.Media, *m)
	}

	elemRows, err := s.keyElements.GetByStoryIDs(ctx, nil, ids)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "historia_no_cargada", err)
	}
	for _, k := range elemRows {
		b.KeyElements = append(b.KeyElements, *k)
	}

	rightsStatus := domain.RightsPending
	if b.Rights != nil {
		rightsStatus = b.Rights.CompletenessStatus()
	}
	return &Record{Story: story, Draft: assemble.Compose(b), RightsStatus: rightsStatus}, nil
}

func (s *testimonyService) List(ctx context.Context, state string, limit, offset int) ([]*domain.Story, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.stories.List(ctx, nil, state, limit, offset)
}

func (s *testimonyService) UpdateStory(ctx context.Context, id uuid.UUID, sec draft.StorySection) error {
	story, err := s.mustStory(ctx, id)
	if err != nil {
		return err
	}

	date := normalize.Date(sec.EventDate)
	dateState := domain.EventDateUnknown
	switch date.Kind {
	case normalize.DateExact:
		dateState = domain.EventDateExact
	case normalize.DateRange:
		dateState = domain.EventDateRange
	}

	warnings, _ := json.Marshal(normalize.StringList(sec.ContentWarnings))
	updates := map[string]interface{}{
		"titulo_provisional":  strings.TrimSpace(sec.Title),
		"descripcion_corta":   strings.TrimSpace(sec.ShortDescription),
		"descripcion_larga":   strings.TrimSpace(sec.LongDescription),
		"testimonio_completo": strings.TrimSpace(sec.FullTestimony),
		"extracto_verbatim":   sec.VerbatimExcerpt,
		"historia_reescrita":  sec.RewrittenStory,

		"fuente_relato":    normalize.Enum(sec.SourceChannel, []string{domain.SourceListenerCall, domain.SourceShowStory, domain.SourceOwnResearch, domain.SourceInterview, domain.SourceWrittenSubmit, domain.SourceOther}, domain.SourceOther),
		"genero_principal": normalize.Enum(sec.PrimaryGenre, []string{domain.GenreGhosts, domain.GenreUFO, domain.GenreCryptids, domain.GenrePossession, domain.GenreHistoric, domain.GenreOther}, domain.GenreOther),
		"epoca_historica":  strings.TrimSpace(sec.HistoricalEra),

		"nivel_credibilidad":   normalize.Rating05(sec.CredibilityLevel),
		"ponderacion_impacto":  normalize.ClampInt(sec.ImpactWeight, 1, 5),
		"potencial_adaptacion": normalize.ClampInt(sec.AdaptationPotential, 1, 3),
		"nivel_verificacion":   normalize.Enum(sec.VerificationLevel, []string{domain.VerifyNone, domain.VerifySingleWitness, domain.VerifyMultiWitness, domain.VerifyPhysical, domain.VerifyInvestigated, domain.VerifyDebunked}, domain.VerifyNone),

		"estado_fecha_evento": dateState,
		"fecha_evento_inicio": date.Start,
		"fecha_evento_fin":    date.End,
		"hora_evento":         normalize.TimeOfDay(sec.EventTime),

		"evento_recurrente":  sec.Recurrent,
		"patron_recurrencia": strings.TrimSpace(sec.RecurrencePattern),

		"dificultad_produccion":   normalize.ClampInt(sec.ProductionDifficulty, 0, 5),
		"tiempo_produccion_horas": sec.ProductionHours,
		"presupuesto_estimado":    sec.ProductionBudget,

		"contenido_sensible":     sec.SensitiveContent,
		"advertencias_contenido": datatypes.JSON(warnings),

		"longitud_extracto_palabras": normalize.WordCount(sec.VerbatimExcerpt),
	}

	if err := s.stories.UpdateFields(ctx, nil, story.ID, updates); err != nil {
		return apierr.New(http.StatusInternalServerError, "historia_no_actualizada", err)
	}
	return nil
}

func (s *testimonyService) UpdateLocation(ctx context.Context, id uuid.UUID, l draft.LocationSection) error {
	story, err := s.mustStory(ctx, id)
	if err != nil {
		return err
	}

	row := assemble.LocationRow(l)
	if row == nil {
		// Nothing meaningful: detach and drop any existing location.
		if story.LocationID == nil {
			return nil
		}
		old := *story.LocationID
		if err := s.stories.UpdateFields(ctx, nil, story.ID, map[string]interface{}{"ubicacion_id": nil}); err != nil {
			return apierr.New(http.StatusInternalServerError, "ubicacion_no_actualizada", err)
		}
		if err := s.locations.FullDeleteByIDs(ctx, nil, []uuid.UUID{old}); err != nil {
			return apierr.New(http.StatusInternalServerError, "ubicacion_no_actualizada", err)
		}
		return nil
	}

	if story.LocationID != nil {
		row.ID = *story.LocationID
		if err := s.locations.Update(ctx, nil, row); err != nil {
			return apierr.New(http.StatusInternalServerError, "ubicacion_no_actualizada", err)
		}
		return nil
	}

	if _, err := s.locations.Create(ctx, nil, []*domain.Location{row}); err != nil {
		return apierr.New(http.StatusInternalServerError, "ubicacion_no_actualizada", err)
	}
	if err := s.stories.UpdateFields(ctx, nil, story.ID, map[string]interface{}{"ubicacion_id": row.ID}); err != nil {
		return apierr.New(http.StatusInternalServerError, "ubicacion_no_actualizada", err)
	}
	return nil
}

func (s *testimonyService) ReplaceWitnesses(ctx context.Context, id uuid.UUID, main draft.WitnessSection, secondaries []draft.WitnessSection) error {
	if _, err := s.mustStory(ctx, id); err != nil {
		return err
	}
	d := draft.New().WithMainWitness(main).WithSecondaryWitnesses(secondaries)
	rows := assemble.WitnessRows(d, id)
	ptrs := make([]*domain.Witness, 0, len(rows))
	for i := range rows {
		ptrs = append(ptrs, &rows[i])
	}
	if err := s.witnesses.FullDeleteByStoryIDs(ctx, nil, []uuid.UUID{id}); err != nil {
		return apierr.New(http.StatusInternalServerError, "testigos_no_actualizados", err)
	}
	if _, err := s.witnesses.Create(ctx, nil, ptrs); err != nil {
		return apierr.New(http.StatusInternalServerError, "testigos_no_actualizados", err)
	}
	return nil
}

func (s *testimonyService) ReplaceEntities(ctx context.Context, id uuid.UUID, es []draft.EntitySection) error {
	if _, err := s.mustStory(ctx, id); err != nil {
		return err
	}
	if err := s.links.FullDeleteByStoryIDs(ctx, nil, []uuid.UUID{id}); err != nil {
		return apierr.New(http.StatusInternalServerError, "entidades_no_actualizadas", err)
	}
	if err := s.linkEntities(ctx, id, assemble.EntityLinks(es)); err != nil {
		return apierr.New(http.StatusInternalServerError, "entidades_no_actualizadas", err)
	}
	return nil
}

func (s *testimonyService) UpdateEnvironment(ctx context.Context, id uuid.UUID, e draft.EnvironmentSection) error {
	if _, err := s.mustStory(ctx, id); err != nil {
		return err
	}
	row := assemble.EnvironmentRow(e, id)
	if row == nil {
		if err := s.environment.FullDeleteByStoryIDs(ctx, nil, []uuid.UUID{id}); err != nil {
			return apierr.New(http.StatusInternalServerError, "contexto_no_actualizado", err)
		}
		return nil
	}
	if err := s.environment.UpsertByStoryID(ctx, nil, row); err != nil {
		return apierr.New(http.StatusInternalServerError, "contexto_no_actualizado", err)
	}
	return nil
}

// UpdateCredibility refreshes the factor block and re-derives the story's
// aggregate credibility level from it.
func (s *testimonyService) UpdateCredibility(ctx context.Context, id uuid.UUID, c draft.CredibilitySection) error {
	if _, err := s.mustStory(ctx, id); err != nil {
		return err
	}
	row := assemble.CredibilityRow(c, id)
	if row == nil {
		if err := s.credibility.FullDeleteByStoryIDs(ctx, nil, []uuid.UUID{id}); err != nil {
			return apierr.New(http.StatusInternalServerError, "credibilidad_no_actualizada", err)
		}
		return nil
	}
	if err := s.credibility.UpsertByStoryID(ctx, nil, row); err != nil {
		return apierr.New(http.StatusInternalServerError, "credibilidad_no_actualizada", err)
	}
	updates := map[string]interface{}{"nivel_credibilidad": scoring.CredibilityLevel(row.Percent)}
	if err := s.stories.UpdateFields(ctx, nil, id, updates); err != nil {
		return apierr.New(http.StatusInternalServerError, "credibilidad_no_actualizada", err)
	}
	return nil
}

func (s *testimonyService) UpdateProjection(ctx context.Context, id uuid.UUID, p draft.ProjectionSection) error {
	if _, err := s.mustStory(ctx, id); err != nil {
		return err
	}
	row := assemble.ProjectionRow(p, id)
	if row == nil {
		if err := s.projection.FullDeleteByStoryIDs(ctx, nil, []uuid.UUID{id}); err != nil {
			return apierr.New(http.StatusInternalServerError, "proyeccion_no_actualizada", err)
		}
		return nil
	}
	if err := s.projection.UpsertByStoryID(ctx, nil, row); err != nil {
		return apierr.New(http.StatusInternalServerError, "proyeccion_no_actualizada", err)
	}
	return nil
}

func (s *testimonyService) UpdateRights(ctx context.Context, id uuid.UUID, r draft.RightsSection) error {
	if _, err := s.mustStory(ctx, id); err != nil {
		return err
	}
	row := assemble.RightsRow(r, id)
	if row == nil {
		if err := s.rights.FullDeleteByStoryIDs(ctx, nil, []uuid.UUID{id}); err != nil {
			return apierr.New(http.StatusInternalServerError, "derechos_no_actualizados", err)
		}
		return nil
	}
	if err := s.rights.UpsertByStoryID(ctx, nil, row); err != nil {
		return apierr.New(http.StatusInternalServerError, "derechos_no_actualizados", err)
	}
	return nil
}

func (s *testimonyService) ReplaceKeyElements(ctx context.Context, id uuid.UUID, elems []string) error {
	if _, err := s.mustStory(ctx, id); err != nil {
		return err
	}
	rows := assemble.KeyElementRows(elems, id)
	ptrs := make([]*domain.KeyElement, 0, len(rows))
	for i := range rows {
		ptrs = append(ptrs, &rows[i])
	}
	if err := s.keyElements.FullDeleteByStoryIDs(ctx, nil, []uuid.UUID{id}); err != nil {
		return apierr.New(http.StatusInternalServerError, "elementos_no_actualizados", err)
	}
	if _, err := s.keyElements.Create(ctx, nil, ptrs); err != nil {
		return apierr.New(http.StatusInternalServerError, "elementos_no_actualizados", err)
	}
	return nil
}

// Allowed review-pipeline transitions. Reopening a published or rejected
// record sends it back to review.
var stateTransitions = map[string][]string{
	domain.StateExtracted: {domain.StateInReview},
	domain.StateInReview:  {domain.StateApproved, domain.StateRejected},
	domain.StateApproved:  {domain.StatePublished},
	domain.StateRejected:  {domain.StateInReview},
	domain.StatePublished: {domain.StateInReview},
}

func (s *testimonyService) Transition(ctx context.Context, id uuid.UUID, target string) (*domain.Story, error) {
	story, err := s.mustStory(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, t := range stateTransitions[story.State] {
		if t == target {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, apierr.New(http.StatusConflict, "transicion_invalida",
			fmt.Errorf("cannot move story from %q to %q", story.State, target))
	}

	updates := map[string]interface{}{"estado_procesamiento": target}
	now := time.Now().UTC()
	switch target {
	case domain.StatePublished:
		updates["fecha_publicacion"] = now
		if actor := actorFrom(ctx); actor != uuid.Nil {
			updates["moderated_by"] = actor
		}
	case domain.StateApproved, domain.StateRejected:
		if actor := actorFrom(ctx); actor != uuid.Nil {
			updates["moderated_by"] = actor
		}
	}

	if err := s.stories.UpdateFields(ctx, nil, story.ID, updates); err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "transicion_no_aplicada", err)
	}
	return s.stories.GetByID(ctx, nil, story.ID)
}

// Delete removes the record best-effort: each satellite table is cleared
// independently and failures are reported, then the root row is soft-deleted.
func (s *testimonyService) Delete(ctx context.Context, id uuid.UUID) ([]StepWarning, error) {
	story, err := s.mustStory(ctx, id)
	if err != nil {
		return nil, err
	}

	var warnings []StepWarning
	ids := []uuid.UUID{id}
	drop := func(step string, fn func() error) {
		if err := fn(); err != nil {
			warnings = append(warnings, StepWarning{Step: step, Detail: err.Error()})
			s.log.Warn("satellite delete failed", "historia_id", id, "paso", step, "error", err)
		}
	}

	drop(StepWitnesses, func() error { return s.witnesses.FullDeleteByStoryIDs(ctx, nil, ids) })
	drop(StepEntities, func() error { return s.links.FullDeleteByStoryIDs(ctx, nil, ids) })
	drop(StepEnvironment, func() error { return s.environment.FullDeleteByStoryIDs(ctx, nil, ids) })
	drop(StepCredibility, func() error { return s.credibility.FullDeleteByStoryIDs(ctx, nil, ids) })
	drop(StepRights, func() error { return s.rights.FullDeleteByStoryIDs(ctx, nil, ids) })
	drop(StepProjection, func() error { return s.projection.FullDeleteByStoryIDs(ctx, nil, ids) })
	drop(StepMedia, func() error { return s.media.FullDeleteByStoryIDs(ctx, nil, ids) })
	drop(StepKeyElements, func() error { return s.keyElements.FullDeleteByStoryIDs(ctx, nil, ids) })
	drop("paso_persistencia", func() error { return s.steps.FullDeleteByStoryIDs(ctx, nil, ids) })

	if err := s.stories.SoftDeleteByIDs(ctx, nil, ids); err != nil {
		return warnings, apierr.New(http.StatusInternalServerError, "historia_no_eliminada", err)
	}
	if story.LocationID != nil {
		drop(StepLocation, func() error { return s.locations.FullDeleteByIDs(ctx, nil, []uuid.UUID{*story.LocationID}) })
	}
	return warnings, nil
}

// ScreenDuplicates is advisory: it reports stored records sharing the
// similarity fingerprint or the unique code, never blocking a write.
func (s *testimonyService) ScreenDuplicates(ctx context.Context, title, testimony, code string) ([]*domain.Story, error) {
	seen := map[uuid.UUID]bool{}
	var out []*domain.Story

	hash := assemble.SimilarityHash(title, testimony)
	byHash, err := s.stories.GetBySimilarityHash(ctx, nil, hash)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "busqueda_fallida", err)
	}
	for _, st := range byHash {
		if !seen[st.ID] {
			seen[st.ID] = true
			out = append(out, st)
		}
	}

	if code = strings.TrimSpace(code); code != "" {
		byCode, err := s.stories.GetByUniqueCode(ctx, nil, code)
		if err != nil {
			return nil, apierr.New(http.StatusInternalServerError, "busqueda_fallida", err)
		}
		if byCode != nil && !seen[byCode.ID] {
			out = append(out, byCode)
		}
	}
	return out, nil
}

func (s *testimonyService) mustStory(ctx context.Context, id uuid.UUID) (*domain.Story, error) {
	story, err := s.stories.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "historia_no_cargada", err)
	}
	if story == nil {
		return nil, apierr.New(http.StatusNotFound, "historia_no_encontrada", fmt.Errorf("story %s not found", id))
	}
	return story, nil
}

func actorFrom(ctx context.Context) uuid.UUID {
	if rd := requestdata.GetRequestData(ctx); rd != nil {
		return rd.EditorID
	}
	return uuid.Nil
}
