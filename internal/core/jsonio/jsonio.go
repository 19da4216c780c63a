package jsonio

import (
	"encoding/json"
	"fmt"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/core/draft"
)

// FormatError means the document could not be parsed or carried no
// recognizable root key. Import aborts without producing a partial draft.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("documento de importacion invalido: %s", e.Reason)
}

// Export serializes the draft verbatim, optionally merged with the
// documentation template distributed to field correspondents.
func Export(d draft.Draft, withTemplate bool) ([]byte, error) {
	if !withTemplate {
		return json.MarshalIndent(d, "", "  ")
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	doc["_documentacion"] = templateNotes
	return json.MarshalIndent(doc, "", "  ")
}

var templateNotes = map[string]string{
	"fechas":          "Use formato AAAA-MM-DD, un rango AAAA-MM-DD/AAAA-MM-DD, o la palabra Desconocido.",
	"calificaciones":  "Los factores y puntajes van de 0 a 5.",
	"testigos":        "Declare un testigo principal; los demas van en testigos_secundarios.",
	"entidades":       "Las entidades se deduplican globalmente por nombre.",
	"elementos_clave": "Lista corta de etiquetas libres; consulte el catalogo de sugerencias.",
}

// Import accepts the nested section shape or the flatter legacy shape. Every
// known field is resolved through its ordered alias chain: canonical key
// first, then the historically used alternates, then the default.
func Import(raw []byte) (draft.Draft, error) {
	var root map[string]any
	if err := json.Unmarshal(raw, &root); err != nil {
		return draft.Draft{}, &FormatError{Reason: "JSON no parseable"}
	}
	if !recognizable(root) {
		return draft.Draft{}, &FormatError{Reason: "sin clave raiz reconocible"}
	}
	return buildDraft(root), nil
}

// recognizable requires at least one known root key: a section name, its
// legacy alias, or a legacy flat field.
func recognizable(root map[string]any) bool {
	known := []string{
		"historias", "historia", "relato",
		"ubicacion", "lugar",
		"testigo_principal", "testigo",
		"titulo_provisional", "titulo",
		"testimonio_completo", "testimonio",
	}
	for _, k := range known {
		if _, ok := root[k]; ok {
			return true
		}
	}
	return false
}
