package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/core/draft"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/core/jsonio"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/platform/logger"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/services"
)

// TransferHandler covers the JSON interchange surface: template download,
// legacy-tolerant import, and export of stored records.
type TransferHandler struct {
	log       *logger.Logger
	testimony services.TestimonyService
}

func NewTransferHandler(baseLog *logger.Logger, testimony services.TestimonyService) *TransferHandler {
	return &TransferHandler{log: baseLog.With("handler", "TransferHandler"), testimony: testimony}
}

// Template serves an empty draft with the documentation block, the file
// distributed to field correspondents.
func (h *TransferHandler) Template(c *gin.Context) {
	raw, err := jsonio.Export(draft.New(), true)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "plantilla_no_generada", err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

// Import accepts a raw document in the nested or legacy flat shape, resolves
// it through the alias chains, and persists the result.
func (h *TransferHandler) Import(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "cuerpo_invalido", err)
		return
	}
	d, err := jsonio.Import(raw)
	if err != nil {
		var fe *jsonio.FormatError
		if errors.As(err, &fe) {
			RespondError(c, http.StatusUnprocessableEntity, "documento_invalido", fe)
			return
		}
		RespondError(c, http.StatusBadRequest, "cuerpo_invalido", err)
		return
	}
	result, err := h.testimony.Create(c.Request.Context(), d)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, result)
}

// Export serializes a stored record back to the draft document shape.
// ?plantilla=true appends the documentation block.
func (h *TransferHandler) Export(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	record, err := h.testimony.Load(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	withTemplate := c.Query("plantilla") == "true"
	raw, err := jsonio.Export(record.Draft, withTemplate)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "exportacion_fallida", err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}
