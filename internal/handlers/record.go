package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/core/draft"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/platform/logger"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/services"
)

type RecordHandler struct {
	log       *logger.Logger
	testimony services.TestimonyService
	repair    services.RepairService
}

func NewRecordHandler(baseLog *logger.Logger, testimony services.TestimonyService, repair services.RepairService) *RecordHandler {
	return &RecordHandler{
		log:       baseLog.With("handler", "RecordHandler"),
		testimony: testimony,
		repair:    repair,
	}
}

// Create accepts a full draft and persists it as a relational record.
func (h *RecordHandler) Create(c *gin.Context) {
	d := draft.New()
	if err := c.ShouldBindJSON(&d); err != nil {
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

func (h *RecordHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	record, err := h.testimony.Load(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, record)
}

func (h *RecordHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limite", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("desplazamiento", "0"))
	stories, err := h.testimony.List(c.Request.Context(), c.Query("estado"), limit, offset)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"historias": stories})
}

func (h *RecordHandler) UpdateStory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var section draft.StorySection
	if err := c.ShouldBindJSON(&section); err != nil {
		RespondError(c, http.StatusBadRequest, "cuerpo_invalido", err)
		return
	}
	if err := h.testimony.UpdateStory(c.Request.Context(), id, section); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"historia_id": id})
}

func (h *RecordHandler) UpdateLocation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var section draft.LocationSection
	if err := c.ShouldBindJSON(&section); err != nil {
		RespondError(c, http.StatusBadRequest, "cuerpo_invalido", err)
		return
	}
	if err := h.testimony.UpdateLocation(c.Request.Context(), id, section); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"historia_id": id})
}

func (h *RecordHandler) UpdateWitnesses(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Main        draft.WitnessSection   `json:"testigo_principal"`
		Secondaries []draft.WitnessSection `json:"testigos_secundarios"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "cuerpo_invalido", err)
		return
	}
	if err := h.testimony.ReplaceWitnesses(c.Request.Context(), id, body.Main, body.Secondaries); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"historia_id": id})
}

func (h *RecordHandler) UpdateEntities(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Entities []draft.EntitySection `json:"entidades_paranormales"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "cuerpo_invalido", err)
		return
	}
	if err := h.testimony.ReplaceEntities(c.Request.Context(), id, body.Entities); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"historia_id": id})
}

func (h *RecordHandler) UpdateEnvironment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var section draft.EnvironmentSection
	if err := c.ShouldBindJSON(&section); err != nil {
		RespondError(c, http.StatusBadRequest, "cuerpo_invalido", err)
		return
	}
	if err := h.testimony.UpdateEnvironment(c.Request.Context(), id, section); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"historia_id": id})
}

func (h *RecordHandler) UpdateCredibility(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var section draft.CredibilitySection
	if err := c.ShouldBindJSON(&section); err != nil {
		RespondError(c, http.StatusBadRequest, "cuerpo_invalido", err)
		return
	}
	section.Present = true
	if err := h.testimony.UpdateCredibility(c.Request.Context(), id, section); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"historia_id": id})
}

func (h *RecordHandler) UpdateProjection(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var section draft.ProjectionSection
	if err := c.ShouldBindJSON(&section); err != nil {
		RespondError(c, http.StatusBadRequest, "cuerpo_invalido", err)
		return
	}
	if err := h.testimony.UpdateProjection(c.Request.Context(), id, section); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"historia_id": id})
}

func (h *RecordHandler) UpdateRights(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var section draft.RightsSection
	if err := c.ShouldBindJSON(&section); err != nil {
		RespondError(c, http.StatusBadRequest, "cuerpo_invalido", err)
		return
	}
	if err := h.testimony.UpdateRights(c.Request.Context(), id, section); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"historia_id": id})
}

func (h *RecordHandler) UpdateKeyElements(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Elements []string `json:"elementos_clave"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "cuerpo_invalido", err)
		return
	}
	if err := h.testimony.ReplaceKeyElements(c.Request.Context(), id, body.Elements); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"historia_id": id})
}

func (h *RecordHandler) Transition(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body struct {
		State string `json:"estado"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "cuerpo_invalido", err)
		return
	}
	story, err := h.testimony.Transition(c.Request.Context(), id, body.State)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, story)
}

func (h *RecordHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	warnings, err := h.testimony.Delete(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"historia_id": id, "advertencias": warnings})
}

// ScreenDuplicates reports records that share the similarity fingerprint or
// the unique code of the submitted fields. Advisory only.
func (h *RecordHandler) ScreenDuplicates(c *gin.Context) {
	var body struct {
		Title     string `json:"titulo_provisional"`
		Testimony string `json:"testimonio_completo"`
		Code      string `json:"codigo_unico"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "cuerpo_invalido", err)
		return
	}
	matches, err := h.testimony.ScreenDuplicates(c.Request.Context(), body.Title, body.Testimony, body.Code)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"coincidencias": matches})
}

func (h *RecordHandler) Repair(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.repair.Repair(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "id_invalido", err)
		return uuid.Nil, false
	}
	return id, true
}
