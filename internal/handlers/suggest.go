package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/platform/logger"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/services"
)

type SuggestHandler struct {
	log     *logger.Logger
	suggest services.SuggestService
}

func NewSuggestHandler(baseLog *logger.Logger, suggest services.SuggestService) *SuggestHandler {
	return &SuggestHandler{log: baseLog.With("handler", "SuggestHandler"), suggest: suggest}
}

func (h *SuggestHandler) KeyElements(c *gin.Context) {
	genre := c.Query("genero")
	RespondOK(c, gin.H{
		"genero":          genre,
		"elementos_clave": h.suggest.Suggestions(genre),
	})
}

func (h *SuggestHandler) Genres(c *gin.Context) {
	RespondOK(c, gin.H{"generos": h.suggest.Genres()})
}
