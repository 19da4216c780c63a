package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/data/repos"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/domain"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/platform/apierr"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/platform/logger"
)

// RepairResult summarizes one repair pass over a story's journal.
type RepairResult struct {
	StoryID   uuid.UUID     `json:"historia_id"`
	Attempted int           `json:"intentados"`
	Repaired  int           `json:"reparados"`
	Remaining []StepWarning `json:"pendientes,omitempty"`
}

// RepairService replays failed satellite writes from the persistence journal.
// Each failed step stored its full payload, so a retry re-executes the exact
// write that was lost.
type RepairService interface {
	Repair(ctx context.Context, storyID uuid.UUID) (*RepairResult, error)
}

type repairService struct {
	db  *gorm.DB
	log *logger.Logger

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

func NewRepairService(
	db *gorm.DB,
	baseLog *logger.Logger,
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
) RepairService {
	return &repairService{
		db:          db,
		log:         baseLog.With("service", "RepairService"),
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

func (s *repairService) Repair(ctx context.Context, storyID uuid.UUID) (*RepairResult, error) {
	failed, err := s.steps.GetFailedByStoryID(ctx, nil, storyID)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "journal_no_cargado", err)
	}

	result := &RepairResult{StoryID: storyID, Attempted: len(failed)}
	for _, step := range failed {
		if err := s.replay(ctx, step); err != nil {
			result.Remaining = append(result.Remaining, StepWarning{Step: step.Step, Detail: err.Error()})
			if markErr := s.steps.MarkStatus(ctx, nil, step.ID, domain.StepStatusFailed, err.Error()); markErr != nil {
				s.log.Warn("failed to update journal step", "paso_id", step.ID, "error", markErr)
			}
			continue
		}
		result.Repaired++
		if markErr := s.steps.MarkStatus(ctx, nil, step.ID, domain.StepStatusOK, ""); markErr != nil {
			s.log.Warn("failed to update journal step", "paso_id", step.ID, "error", markErr)
		}
	}
	return result, nil
}

func (s *repairService) replay(ctx context.Context, step *domain.PersistStep) error {
	switch step.Step {
	case StepWitnesses:
		var rows []*domain.Witness
		if err := json.Unmarshal(step.Payload, &rows); err != nil {
			return fmt.Errorf("unreadable payload: %w", err)
		}
		_, err := s.witnesses.Create(ctx, nil, rows)
		return err

	case StepEntities:
		var payload []struct {
			Entity    domain.Entity `json:"Entity"`
			Relevance int           `json:"Relevance"`
		}
		if err := json.Unmarshal(step.Payload, &payload); err != nil {
			return fmt.Errorf("unreadable payload: %w", err)
		}
		linkRows := make([]*domain.StoryEntity, 0, len(payload))
		for i := range payload {
			saved, err := s.entities.UpsertByNormalizedName(ctx, nil, &payload[i].Entity)
			if err != nil {
				return err
			}
			if saved == nil {
				continue
			}
			linkRows = append(linkRows, &domain.StoryEntity{
				StoryID:   step.StoryID,
				EntityID:  saved.ID,
				Relevance: payload[i].Relevance,
			})
		}
		return s.links.Upsert(ctx, nil, linkRows)

	case StepEnvironment:
		var row domain.Environment
		if err := json.Unmarshal(step.Payload, &row); err != nil {
			return fmt.Errorf("unreadable payload: %w", err)
		}
		return s.environment.UpsertByStoryID(ctx, nil, &row)

	case StepCredibility:
		var row domain.CredibilityFactors
		if err := json.Unmarshal(step.Payload, &row); err != nil {
			return fmt.Errorf("unreadable payload: %w", err)
		}
		return s.credibility.UpsertByStoryID(ctx, nil, &row)

	case StepProjection:
		var row domain.Projection
		if err := json.Unmarshal(step.Payload, &row); err != nil {
			return fmt.Errorf("unreadable payload: %w", err)
		}
		return s.projection.UpsertByStoryID(ctx, nil, &row)

	case StepRights:
		var row domain.Rights
		if err := json.Unmarshal(step.Payload, &row); err != nil {
			return fmt.Errorf("unreadable payload: %w", err)
		}
		return s.rights.UpsertByStoryID(ctx, nil, &row)

	case StepMedia:
		var rows []*domain.MediaAsset
		if err := json.Unmarshal(step.Payload, &rows); err != nil {
			return fmt.Errorf("unreadable payload: %w", err)
		}
		_, err := s.media.Create(ctx, nil, rows)
		return err

	case StepKeyElements:
		var rows []*domain.KeyElement
		if err := json.Unmarshal(step.Payload, &rows); err != nil {
			return fmt.Errorf("unreadable payload: %w", err)
		}
		_, err := s.keyElements.Create(ctx, nil, rows)
		return err

	case StepLocation:
		// The story reference was already cleared when the location write
		// failed; re-creating an orphan row helps nobody.
		return fmt.Errorf("location steps are not replayable")

	default:
		return fmt.Errorf("unknown journal step %q", step.Step)
	}
}
