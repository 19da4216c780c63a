package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Unknown is the documented sentinel for user-facing "unknown" semantics.
// It is stored and round-tripped verbatim, never silently turned into null.
const Unknown = "Desconocido"

const isoDate = "2006-01-02"

func String(v, def string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return v
}

// Enum returns v when it is one of allowed (case-insensitive match returns the
// canonical spelling), otherwise def.
func Enum(v string, allowed []string, def string) string {
	v = strings.TrimSpace(v)
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a
		}
	}
	return def
}

func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func ClampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Rating05 clamps a sub-score to the 0-5 rating range.
func Rating05(v float64) float64 { return ClampFloat(v, 0, 5) }

// StringList coerces a raw value destined for a list field: slices pass
// through element-wise, strings are comma-split, anything else yields an
// empty list.
func StringList(v any) []string {
	switch t := v.(type) {
	case nil:
		return []string{}
	case []string:
		out := make([]string, 0, len(t))
		for _, s := range t {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s := strings.TrimSpace(AsString(e)); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if strings.TrimSpace(t) == "" {
			return []string{}
		}
		parts := strings.Split(t, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	default:
		return []string{}
	}
}

func WordCount(s string) int {
	return len(strings.Fields(s))
}

type DateKind int

const (
	DateUnknown DateKind = iota
	DateExact
	DateRange
)

// DateValue is the canonical form of an event-date field: a valid ISO date,
// a recognized range, or the Unknown sentinel. Free strings that merely look
// date-like resolve to Unknown rather than an invalid parse.
type DateValue struct {
	Kind  DateKind
	Start *time.Time
	End   *time.Time
}

// Date parses "YYYY-MM-DD", "YYYY-MM-DD/YYYY-MM-DD", or the sentinel.
func Date(raw string) DateValue {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, Unknown) {
		return DateValue{Kind: DateUnknown}
	}
	if start, end, ok := splitRange(raw); ok {
		s, errS := time.Parse(isoDate, start)
		e, errE := time.Parse(isoDate, end)
		if errS == nil && errE == nil && !e.Before(s) {
			return DateValue{Kind: DateRange, Start: &s, End: &e}
		}
		return DateValue{Kind: DateUnknown}
	}
	if t, err := time.Parse(isoDate, raw); err == nil {
		return DateValue{Kind: DateExact, Start: &t}
	}
	return DateValue{Kind: DateUnknown}
}

func splitRange(raw string) (string, string, bool) {
	for _, sep := range []string{"/", " a "} {
		if idx := strings.Index(raw, sep); idx > 0 {
			return strings.TrimSpace(raw[:idx]), strings.TrimSpace(raw[idx+len(sep):]), true
		}
	}
	return "", "", false
}

// String re-serializes the canonical value: ISO date, "start/end" range, or
// the sentinel.
func (d DateValue) String() string {
	switch d.Kind {
	case DateExact:
		if d.Start == nil {
			return Unknown
		}
		return d.Start.Format(isoDate)
	case DateRange:
		if d.Start == nil || d.End == nil {
			return Unknown
		}
		return d.Start.Format(isoDate) + "/" + d.End.Format(isoDate)
	default:
		return Unknown
	}
}

// TimeOfDay keeps a valid HH:MM (or HH:MM:SS) value, everything else becomes
// the sentinel.
func TimeOfDay(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, Unknown) {
		return Unknown
	}
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("15:04")
		}
	}
	return Unknown
}

func AsString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

func AsFloat(v any, def float64) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return f
		}
		return def
	default:
		return def
	}
}

func AsInt(v any, def int) int {
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return i
		}
		return def
	default:
		return def
	}
}

// AsBool understands the affirmative spellings seen across template versions.
func AsBool(v any, def bool) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "si", "sí", "yes":
			return true
		case "false", "0", "no":
			return false
		default:
			return def
		}
	case float64:
		return t != 0
	case int:
		return t != 0
	default:
		return def
	}
}
