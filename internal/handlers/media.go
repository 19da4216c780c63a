package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/platform/logger"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/services"
)

type MediaHandler struct {
	log   *logger.Logger
	media services.MediaService
}

func NewMediaHandler(baseLog *logger.Logger, media services.MediaService) *MediaHandler {
	return &MediaHandler{log: baseLog.With("handler", "MediaHandler"), media: media}
}

// Upload stores the multipart file through the storage collaborator and
// registers the returned metadata as a media row on the story.
func (h *MediaHandler) Upload(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("archivo")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "archivo_faltante", err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "archivo_ilegible", err)
		return
	}
	defer file.Close()

	row, err := h.media.Register(c.Request.Context(), id, fileHeader.Filename, c.PostForm("tipo_archivo"), file)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, row)
}

func (h *MediaHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	mediaID, ok := pathID(c, "archivoID")
	if !ok {
		return
	}
	if err := h.media.Remove(c.Request.Context(), id, mediaID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"archivo_id": mediaID})
}
