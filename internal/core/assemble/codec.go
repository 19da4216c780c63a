package assemble

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/core/normalize"
)

// Enum sets shared by both assembly directions.
var (
	sourceChannels = []string{
		"llamada_oyente", "historia_programa", "investigacion_propia",
		"entrevista_presencial", "envio_escrito", "otro",
	}
	genres = []string{
		"fantasmas_apariciones", "ovnis_luces", "criptidos",
		"posesiones_demonios", "misterios_historicos", "otro",
	}
	verificationLevels = []string{
		"sin_verificar", "testimonio_unico", "multiples_testigos",
		"evidencia_fisica", "investigacion_completa", "descartada_fraude",
	}
	audiences  = []string{"general", "jovenes", "adultos", "aficionados_paranormal"}
	mediaKinds = []string{"audio", "imagen", "video", "documento"}
	authStates = []string{"pendiente", "verificado", "manipulado"}
)

// NewUniqueCode builds the time-based random token assigned when a draft
// arrives without one.
func NewUniqueCode(now time.Time) string {
	buf := make([]byte, 3)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("HIST-%s-%s", now.UTC().Format("20060102150405"), hex.EncodeToString(buf))
}

// SimilarityHash fingerprints title+testimony for advisory duplicate
// screening. Case and runs of whitespace are folded so trivial edits keep the
// same hash.
func SimilarityHash(title, testimony string) string {
	canon := strings.ToLower(strings.Join(strings.Fields(title), " ")) +
		"|" + strings.ToLower(strings.Join(strings.Fields(testimony), " "))
	sum := sha256.Sum256([]byte(canon))
	return hex.EncodeToString(sum[:])
}

// NormalizeEntityName is the natural key for global entity deduplication.
func NormalizeEntityName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func jsonList(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	raw, _ := json.Marshal(values)
	return datatypes.JSON(raw)
}

func listFromJSON(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return []string{}
	}
	return out
}

// parseWhen accepts an ISO date, an RFC3339 timestamp, or the sentinel.
func parseWhen(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, normalize.Unknown) {
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

func formatWhen(t *time.Time) string {
	if t == nil {
		return normalize.Unknown
	}
	return t.Format("2006-01-02")
}
