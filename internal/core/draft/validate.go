package draft

import (
	"fmt"
	"strings"
)

// ValidationError lists every missing required field. Nothing is persisted
// while one of these is outstanding.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Missing) == 0 {
		return "draft invalido"
	}
	return fmt.Sprintf("campos requeridos faltantes: %s", strings.Join(e.Missing, ", "))
}

// Validate checks the three required narrative fields after trimming.
func Validate(d Draft) *ValidationError {
	var missing []string
	if strings.TrimSpace(d.Story.Title) == "" {
		missing = append(missing, "titulo_provisional")
	}
	if strings.TrimSpace(d.Story.ShortDescription) == "" {
		missing = append(missing, "descripcion_corta")
	}
	if strings.TrimSpace(d.Story.FullTestimony) == "" {
		missing = append(missing, "testimonio_completo")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
