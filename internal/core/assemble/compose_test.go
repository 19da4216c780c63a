package assemble

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/core/draft"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/core/normalize"
)

func TestComposeNilBundle(t *testing.T) {
	d := Compose(nil)
	if d.Story.State != "extraida" || d.Location.Country != "Colombia" {
		t.Fatal("nil bundle should compose to the draft defaults")
	}
}

func TestComposeRoundTrip(t *testing.T) {
	lat := 5.539
	lon := -73.367
	temp := 8.5

	d := baseDraft()
	d = d.WithLocation(draft.LocationSection{
		Country:          "Colombia",
		Level1Name:       "Boyaca",
		Level2Name:       "Tunja",
		Latitude:         &lat,
		Longitude:        &lon,
		PlaceDescription: "Puente colonial sobre el rio",
		FirstActivity:    "1989-11-02",
		LastActivity:     normalize.Unknown,
	})
	d = d.WithMainWitness(draft.WitnessSection{
		Pseudonym:            "El Celador",
		ApproxAge:            54,
		WasPresent:           true,
		EstimatedCredibility: 4,
	})
	d = d.WithSecondaryWitnesses([]draft.WitnessSection{
		{Pseudonym: "La Vecina", WasPresent: false, Notes: "escucho el llanto desde su casa"},
	})
	d = d.WithEntities([]draft.EntitySection{
		{
			Name:            "La Llorona",
			Kind:            "aparicion",
			HostilityLevel:  2,
			KnownAliases:    []string{"la dama del rio"},
			TriggerKeywords: []string{"llanto", "rio"},
			Relevance:       4,
		},
	})
	d = d.WithEnvironment(draft.EnvironmentSection{
		Weather:      "lluvia ligera",
		TemperatureC: &temp,
		LunarPhase:   "llena",
	})
	d = d.WithCredibility(draft.CredibilitySection{
		Present:           true,
		MultipleWitnesses: 4,
		Consistency:       3,
		Documentation:     1,
	})
	d = d.WithProjection(draft.ProjectionSection{
		TargetAudience:  "adultos",
		Engagement:      4,
		EmotionalImpact: 5,
		TargetViews:     120000,
		TargetRating:    4.5,
	})
	d = d.WithRights(draft.RightsSection{
		UsageCategory:        "uso_completo",
		CommercialAuthorized: true,
		AuthorizationDate:    "2026-01-15",
		ValidityMonths:       24,
	})
	d = d.WithMedia([]draft.MediaSection{
		{Kind: "audio", URL: "https://cdn.example.com/llanto.mp3", SizeBytes: 2048, Format: "mp3", Relevance: 5},
	})
	d = d.WithKeyElements([]string{"puente", "llanto nocturno"})

	b, ve := Decompose(d, uuid.New(), false, time.Now().UTC())
	if ve != nil {
		t.Fatalf("Decompose: %v", ve)
	}
	got := Compose(b)

	if got.Story.Title != d.Story.Title || got.Story.EventDate != "2001-10-07" || got.Story.EventTime != "23:45" {
		t.Fatalf("story round trip: %+v", got.Story)
	}
	if got.Location.Level2Name != "Tunja" || got.Location.Latitude == nil || *got.Location.Latitude != lat {
		t.Fatalf("location round trip: %+v", got.Location)
	}
	if got.Location.FirstActivity != "1989-11-02" || got.Location.LastActivity != normalize.Unknown {
		t.Fatalf("activity dates round trip: %+v", got.Location)
	}
	if got.MainWitness.Pseudonym != "El Celador" || got.MainWitness.EstimatedCredibility != 4 {
		t.Fatalf("main witness round trip: %+v", got.MainWitness)
	}
	if len(got.SecondaryWitnesses) != 1 || got.SecondaryWitnesses[0].Pseudonym != "La Vecina" {
		t.Fatalf("secondary witnesses round trip: %+v", got.SecondaryWitnesses)
	}
	if len(got.Entities) != 1 {
		t.Fatalf("entities round trip: %+v", got.Entities)
	}
	ent := got.Entities[0]
	if ent.Name != "La Llorona" || ent.Relevance != 4 {
		t.Fatalf("entity fields: %+v", ent)
	}
	if !reflect.DeepEqual(ent.KnownAliases, []string{"la dama del rio"}) {
		t.Fatalf("aliases: %v", ent.KnownAliases)
	}
	if got.Environment.Weather != "lluvia ligera" || got.Environment.TemperatureC == nil || *got.Environment.TemperatureC != temp {
		t.Fatalf("environment round trip: %+v", got.Environment)
	}
	if !got.Credibility.Present || got.Credibility.MultipleWitnesses != 4 || got.Credibility.Documentation != 1 {
		t.Fatalf("credibility round trip: %+v", got.Credibility)
	}
	if got.Projection.TargetAudience != "adultos" || got.Projection.TargetViews != 120000 || got.Projection.TargetRating != 4.5 {
		t.Fatalf("projection round trip: %+v", got.Projection)
	}
	if !got.Rights.CommercialAuthorized || got.Rights.AuthorizationDate != "2026-01-15" || got.Rights.ValidityMonths != 24 {
		t.Fatalf("rights round trip: %+v", got.Rights)
	}
	if len(got.Media) != 1 || got.Media[0].URL != "https://cdn.example.com/llanto.mp3" || got.Media[0].Kind != "audio" {
		t.Fatalf("media round trip: %+v", got.Media)
	}
	if !reflect.DeepEqual(got.KeyElements, []string{"puente", "llanto nocturno"}) {
		t.Fatalf("key elements round trip: %v", got.KeyElements)
	}
}
