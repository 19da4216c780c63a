package jsonio

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/core/draft"
)

func TestImportCanonicalDocument(t *testing.T) {
	doc := `{
		"historias": {
			"titulo_provisional": "Luces sobre el embalse",
			"descripcion_corta": "Tres luces en triangulo",
			"testimonio_completo": "Se quedaron quietas media hora y se fueron sin ruido.",
			"genero_principal": "ovnis_luces",
			"fecha_evento": "2019-08-11",
			"hora_evento": "21:10"
		},
		"ubicacion": {
			"nivel1_nombre": "Antioquia",
			"nivel2_nombre": "Guatape",
			"latitud": 6.233,
			"longitud": -75.158
		},
		"testigo_principal": {"pseudonimo": "El Pescador", "edad_aproximada": 61},
		"testigos_secundarios": [{"pseudonimo": "Su Hijo"}],
		"entidades_paranormales": [{"nombre": "Triangulo Silencioso", "tipo_entidad": "objeto volador", "relevancia": 5}],
		"elementos_clave": ["avistamiento masivo", "objeto silencioso"],
		"publicar_inmediatamente": true
	}`

	d, err := Import([]byte(doc))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if d.Story.Title != "Luces sobre el embalse" || d.Story.PrimaryGenre != "ovnis_luces" {
		t.Fatalf("story: %+v", d.Story)
	}
	if d.Story.EventDate != "2019-08-11" || d.Story.EventTime != "21:10" {
		t.Fatalf("event date/time: %q %q", d.Story.EventDate, d.Story.EventTime)
	}
	if d.Location.Level2Name != "Guatape" || d.Location.Latitude == nil || *d.Location.Latitude != 6.233 {
		t.Fatalf("location: %+v", d.Location)
	}
	if d.MainWitness.Pseudonym != "El Pescador" || d.MainWitness.ApproxAge != 61 {
		t.Fatalf("main witness: %+v", d.MainWitness)
	}
	if len(d.SecondaryWitnesses) != 1 || d.SecondaryWitnesses[0].Pseudonym != "Su Hijo" {
		t.Fatalf("secondary witnesses: %+v", d.SecondaryWitnesses)
	}
	if len(d.Entities) != 1 || d.Entities[0].Relevance != 5 {
		t.Fatalf("entities: %+v", d.Entities)
	}
	if !reflect.DeepEqual(d.KeyElements, []string{"avistamiento masivo", "objeto silencioso"}) {
		t.Fatalf("key elements: %v", d.KeyElements)
	}
	if !d.PublishNow {
		t.Fatal("publicar_inmediatamente should set PublishNow")
	}
}

func TestImportLegacyAliases(t *testing.T) {
	// Older exports used "ciudad" for the second administrative level and the
	// shorter field names throughout.
	doc := `{
		"relato": {
			"titulo": "El jinete sin cabeza de la hacienda",
			"resumen": "Cascos de caballo a medianoche",
			"testimonio": "Los trabajadores oian el galope cada viernes.",
			"genero": "misterios_historicos",
			"fecha": "1950-01-01 a 1955-12-31"
		},
		"lugar": {
			"departamento": "Tolima",
			"ciudad": "Honda",
			"barrio": "El Carmen"
		},
		"testigo": {"alias": "Capataz", "estuvo_presente": "si"},
		"credibilidad": {"consistencia": 4, "evidencia_fisica": 2}
	}`

	d, err := Import([]byte(doc))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if d.Story.Title != "El jinete sin cabeza de la hacienda" {
		t.Fatalf("titulo alias: %q", d.Story.Title)
	}
	if d.Story.ShortDescription != "Cascos de caballo a medianoche" {
		t.Fatalf("resumen alias: %q", d.Story.ShortDescription)
	}
	if d.Story.PrimaryGenre != "misterios_historicos" {
		t.Fatalf("genero alias: %q", d.Story.PrimaryGenre)
	}
	if d.Story.EventDate != "1950-01-01/1955-12-31" {
		t.Fatalf("fecha alias: %q", d.Story.EventDate)
	}
	if d.Location.Level1Name != "Tolima" || d.Location.Level2Name != "Honda" || d.Location.Level4Name != "El Carmen" {
		t.Fatalf("location aliases: %+v", d.Location)
	}
	if d.MainWitness.Pseudonym != "Capataz" || !d.MainWitness.WasPresent {
		t.Fatalf("witness aliases: %+v", d.MainWitness)
	}
	if !d.Credibility.Present || d.Credibility.Consistency != 4 || d.Credibility.PhysicalEvidence != 2 {
		t.Fatalf("credibilidad alias: %+v", d.Credibility)
	}
}

func TestImportLegacyFlatRoot(t *testing.T) {
	doc := `{
		"titulo_provisional": "Sombra en el beneficiadero",
		"descripcion_corta": "Una sombra que apaga las lamparas",
		"testimonio_completo": "Cada vez que prendian la luz, algo la apagaba.",
		"ciudad": "Salento",
		"pseudonimo": "El Recolector"
	}`

	d, err := Import([]byte(doc))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if d.Story.Title != "Sombra en el beneficiadero" {
		t.Fatalf("flat title: %q", d.Story.Title)
	}
	if d.Location.Level2Name != "Salento" {
		t.Fatalf("flat ciudad: %q", d.Location.Level2Name)
	}
	if d.MainWitness.Pseudonym != "El Recolector" {
		t.Fatalf("flat pseudonimo: %q", d.MainWitness.Pseudonym)
	}
}

func TestImportAppliesDefaults(t *testing.T) {
	d, err := Import([]byte(`{"titulo": "Solo un titulo"}`))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if d.Story.SourceChannel != "otro" || d.Story.State != "extraida" {
		t.Fatalf("story defaults: %+v", d.Story)
	}
	if d.Story.EventDate != "Desconocido" {
		t.Fatalf("date default: %q", d.Story.EventDate)
	}
	if d.Location.Country != "Colombia" {
		t.Fatalf("country default: %q", d.Location.Country)
	}
	if d.Credibility.Present {
		t.Fatal("absent factor block must not mark credibility as present")
	}
}

func TestImportRejectsBadDocuments(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"unparseable", `{"titulo": `},
		{"no recognizable root", `{"foo": 1, "bar": "x"}`},
		{"array root", `[1, 2, 3]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Import([]byte(tc.doc))
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("Import(%q) err = %v, want FormatError", tc.doc, err)
			}
		})
	}
}

func TestExportWithTemplate(t *testing.T) {
	raw, err := Export(draft.New(), true)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if _, ok := doc["_documentacion"]; !ok {
		t.Fatal("template export should carry the documentation block")
	}
	if _, ok := doc["historias"]; !ok {
		t.Fatal("template export should still carry the draft sections")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	d := draft.New()
	d = d.WithStory(draft.StorySection{
		Title:            "El duende de la finca",
		ShortDescription: "Trenza las crines de los caballos",
		FullTestimony:    "Amanecian los caballos sudados y con las crines trenzadas.",
		PrimaryGenre:     "criptidos",
		EventDate:        "Desconocido",
		EventTime:        "Desconocido",
	})
	d = d.WithKeyElements([]string{"caballos", "trenzas"})

	raw, err := Export(d, false)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	back, err := Import(raw)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if back.Story.Title != d.Story.Title || back.Story.PrimaryGenre != "criptidos" {
		t.Fatalf("story round trip: %+v", back.Story)
	}
	if back.Story.EventDate != "Desconocido" {
		t.Fatalf("sentinel round trip: %q", back.Story.EventDate)
	}
	if !reflect.DeepEqual(back.KeyElements, []string{"caballos", "trenzas"}) {
		t.Fatalf("key elements round trip: %v", back.KeyElements)
	}
}
