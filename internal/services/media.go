package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/core/normalize"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/data/repos"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/domain"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/platform/apierr"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/platform/gcp"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/platform/logger"
)

// MediaService hands an uploaded file to the storage collaborator and records
// the returned metadata as a media satellite row.
type MediaService interface {
	Register(ctx context.Context, storyID uuid.UUID, filename, kind string, file io.Reader) (*domain.MediaAsset, error)
	Remove(ctx context.Context, storyID, mediaID uuid.UUID) error
}

type mediaService struct {
	log     *logger.Logger
	bucket  gcp.BucketService
	stories repos.StoryRepo
	media   repos.MediaRepo
}

func NewMediaService(baseLog *logger.Logger, bucket gcp.BucketService, stories repos.StoryRepo, media repos.MediaRepo) MediaService {
	return &mediaService{
		log:     baseLog.With("service", "MediaService"),
		bucket:  bucket,
		stories: stories,
		media:   media,
	}
}

var mediaKindSet = []string{domain.MediaAudio, domain.MediaImage, domain.MediaVideo, domain.MediaDocument}

func (s *mediaService) Register(ctx context.Context, storyID uuid.UUID, filename, kind string, file io.Reader) (*domain.MediaAsset, error) {
	// The bucket collaborator is optional at startup; without it uploads are
	// rejected cleanly instead of panicking mid-request.
	if s.bucket == nil {
		return nil, apierr.New(http.StatusServiceUnavailable, "almacenamiento_no_disponible", fmt.Errorf("storage backend not configured"))
	}

	story, err := s.stories.GetByID(ctx, nil, storyID)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "historia_no_cargada", err)
	}
	if story == nil {
		return nil, apierr.New(http.StatusNotFound, "historia_no_encontrada", fmt.Errorf("story %s not found", storyID))
	}

	ext := strings.ToLower(path.Ext(filename))
	key := fmt.Sprintf("historias/%s/%d%s", storyID, time.Now().UTC().UnixNano(), ext)
	uploaded, err := s.bucket.UploadMedia(ctx, key, file)
	if err != nil {
		return nil, apierr.New(http.StatusBadGateway, "carga_fallida", err)
	}

	row := &domain.MediaAsset{
		ID:           uuid.New(),
		StoryID:      storyID,
		Kind:         normalize.Enum(kind, mediaKindSet, domain.MediaDocument),
		URL:          uploaded.URL,
		SizeBytes:    uploaded.SizeBytes,
		Format:       uploaded.Format,
		Authenticity: domain.AuthenticityPending,
		Relevance:    3,
	}
	if _, err := s.media.Create(ctx, nil, []*domain.MediaAsset{row}); err != nil {
		// Orphaned object cleanup is best effort.
		if delErr := s.bucket.DeleteObject(ctx, key); delErr != nil {
			s.log.Warn("failed to remove orphaned object", "key", key, "error", delErr)
		}
		return nil, apierr.New(http.StatusInternalServerError, "archivo_no_registrado", err)
	}
	return row, nil
}

func (s *mediaService) Remove(ctx context.Context, storyID, mediaID uuid.UUID) error {
	rows, err := s.media.GetByIDs(ctx, nil, []uuid.UUID{mediaID})
	if err != nil {
		return apierr.New(http.StatusInternalServerError, "archivo_no_cargado", err)
	}
	if len(rows) == 0 || rows[0].StoryID != storyID {
		return apierr.New(http.StatusNotFound, "archivo_no_encontrado", fmt.Errorf("media %s not found for story %s", mediaID, storyID))
	}
	if err := s.media.FullDeleteByIDs(ctx, nil, []uuid.UUID{mediaID}); err != nil {
		return apierr.New(http.StatusInternalServerError, "archivo_no_eliminado", err)
	}
	return nil
}
