package normalize

import (
	"reflect"
	"testing"
)

func TestDate(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		kind DateKind
		out  string
	}{
		{"exact iso", "2003-06-21", DateExact, "2003-06-21"},
		{"slash range", "1998-01-01/1998-03-15", DateRange, "1998-01-01/1998-03-15"},
		{"a range", "2010-05-01 a 2010-05-03", DateRange, "2010-05-01/2010-05-03"},
		{"sentinel", "Desconocido", DateUnknown, Unknown},
		{"sentinel lowercase", "desconocido", DateUnknown, Unknown},
		{"empty", "", DateUnknown, Unknown},
		{"free text", "una noche de 1995", DateUnknown, Unknown},
		{"inverted range", "2010-05-03/2010-05-01", DateUnknown, Unknown},
		{"half valid range", "2010-05-01/nunca", DateUnknown, Unknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Date(tc.raw)
			if d.Kind != tc.kind {
				t.Fatalf("Date(%q).Kind = %v, want %v", tc.raw, d.Kind, tc.kind)
			}
			if got := d.String(); got != tc.out {
				t.Fatalf("Date(%q).String() = %q, want %q", tc.raw, got, tc.out)
			}
		})
	}
}

func TestEnum(t *testing.T) {
	allowed := []string{"audio", "imagen", "video"}
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"exact", "audio", "audio"},
		{"case insensitive", "IMAGEN", "imagen"},
		{"padded", "  video ", "video"},
		{"unknown falls back", "holograma", "documento"},
		{"empty falls back", "", "documento"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Enum(tc.in, allowed, "documento"); got != tc.want {
				t.Fatalf("Enum(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := ClampInt(7, 0, 5); got != 5 {
		t.Fatalf("ClampInt(7,0,5) = %d, want 5", got)
	}
	if got := ClampInt(-2, 0, 5); got != 0 {
		t.Fatalf("ClampInt(-2,0,5) = %d, want 0", got)
	}
	if got := ClampInt(3, 0, 5); got != 3 {
		t.Fatalf("ClampInt(3,0,5) = %d, want 3", got)
	}
	if got := Rating05(6.2); got != 5 {
		t.Fatalf("Rating05(6.2) = %v, want 5", got)
	}
	if got := Rating05(-1); got != 0 {
		t.Fatalf("Rating05(-1) = %v, want 0", got)
	}
}

func TestStringList(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want []string
	}{
		{"nil", nil, []string{}},
		{"comma string", "carretera, madrugada ,, cementerio", []string{"carretera", "madrugada", "cementerio"}},
		{"string slice", []string{" uno ", "", "dos"}, []string{"uno", "dos"}},
		{"any slice", []any{"tres", 4, ""}, []string{"tres", "4"}},
		{"number", 12, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StringList(tc.in); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("StringList(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestAsBool(t *testing.T) {
	cases := []struct {
		name string
		in   any
		def  bool
		want bool
	}{
		{"bool", true, false, true},
		{"si", "si", false, true},
		{"si con tilde", "sí", false, true},
		{"yes", "YES", false, true},
		{"no", "no", true, false},
		{"zero string", "0", true, false},
		{"numeric one", float64(1), false, true},
		{"garbage keeps default", "quizas", true, true},
		{"nil keeps default", nil, true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AsBool(tc.in, tc.def); got != tc.want {
				t.Fatalf("AsBool(%v, %v) = %v, want %v", tc.in, tc.def, got, tc.want)
			}
		})
	}
}

func TestTimeOfDay(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"hhmm", "03:15", "03:15"},
		{"hhmmss truncates", "22:30:45", "22:30"},
		{"sentinel", "Desconocido", Unknown},
		{"empty", "", Unknown},
		{"garbage", "medianoche", Unknown},
		{"out of range", "25:99", Unknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TimeOfDay(tc.in); got != tc.want {
				t.Fatalf("TimeOfDay(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestWordCount(t *testing.T) {
	if got := WordCount("  la   vi tres noches  seguidas "); got != 5 {
		t.Fatalf("WordCount = %d, want 5", got)
	}
	if got := WordCount(""); got != 0 {
		t.Fatalf("WordCount(empty) = %d, want 0", got)
	}
}

func TestFieldApply(t *testing.T) {
	enum := Field{Kind: KindEnum, Allowed: []string{"general", "adultos"}, Default: "general"}
	if got := enum.Apply("ADULTOS"); got != "adultos" {
		t.Fatalf("enum Apply = %v, want adultos", got)
	}
	if got := enum.Apply("ninos"); got != "general" {
		t.Fatalf("enum Apply fallback = %v, want general", got)
	}

	num := Field{Kind: KindInt, Default: 1, Min: 1, Max: 5}
	if got := num.Apply(float64(9)); got != 5 {
		t.Fatalf("int Apply clamp = %v, want 5", got)
	}
	if got := num.Apply("no es numero"); got != 1 {
		t.Fatalf("int Apply default = %v, want 1", got)
	}

	date := Field{Kind: KindDate}
	if got := date.Apply("2001-10-07"); got != "2001-10-07" {
		t.Fatalf("date Apply = %v, want 2001-10-07", got)
	}
	if got := date.Apply("hace mucho"); got != Unknown {
		t.Fatalf("date Apply sentinel = %v, want %q", got, Unknown)
	}
}
