package normalize

// Kind discriminates how a raw draft value is coerced.
type Kind int

const (
	KindString Kind = iota
	KindEnum
	KindInt
	KindFloat
	KindBool
	KindList
	KindDate
	KindTime
)

// Field describes one draft field: its coercion kind, allowed enum values,
// numeric bounds, and fallback default. Apply never fails; out-of-range
// numerics clamp, invalid enums fall back to the default.
type Field struct {
	Key     string
	Kind    Kind
	Allowed []string
	Min     float64
	Max     float64
	Default any
}

func (f Field) Apply(raw any) any {
	switch f.Kind {
	case KindEnum:
		def, _ := f.Default.(string)
		return Enum(AsString(raw), f.Allowed, def)
	case KindInt:
		def, _ := f.Default.(int)
		v := AsInt(raw, def)
		if f.Max > f.Min {
			v = ClampInt(v, int(f.Min), int(f.Max))
		}
		return v
	case KindFloat:
		def, _ := f.Default.(float64)
		v := AsFloat(raw, def)
		if f.Max > f.Min {
			v = ClampFloat(v, f.Min, f.Max)
		}
		return v
	case KindBool:
		def, _ := f.Default.(bool)
		return AsBool(raw, def)
	case KindList:
		return StringList(raw)
	case KindDate:
		return Date(AsString(raw)).String()
	case KindTime:
		return TimeOfDay(AsString(raw))
	default:
		def, _ := f.Default.(string)
		return String(AsString(raw), def)
	}
}
