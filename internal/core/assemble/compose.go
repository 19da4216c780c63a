package assemble

import (
	"encoding/json"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/core/draft"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/core/normalize"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/domain"
)

// Compose is the functional inverse of Decompose: it flattens a loaded
// bundle back into the editable draft shape. Missing satellite rows fall back
// to the draft defaults so callers never see an undefined field.
func Compose(b *Bundle) draft.Draft {
	d := draft.New()
	if b == nil {
		return d
	}

	d = d.WithStory(storySection(b.Story))
	if b.Location != nil {
		d = d.WithLocation(locationSection(*b.Location))
	}

	var secondaries []draft.WitnessSection
	for _, w := range b.Witnesses {
		section := witnessSection(w)
		if w.Kind == domain.WitnessPrincipal {
			d = d.WithMainWitness(section)
			continue
		}
		secondaries = append(secondaries, section)
	}
	d = d.WithSecondaryWitnesses(secondaries)

	entities := make([]draft.EntitySection, 0, len(b.Entities))
	for _, link := range b.Entities {
		entities = append(entities, entitySection(link))
	}
	d = d.WithEntities(entities)

	if b.Environment != nil {
		d = d.WithEnvironment(environmentSection(*b.Environment))
	}
	if b.Credibility != nil {
		d = d.WithCredibility(credibilitySection(*b.Credibility))
	}
	if b.Projection != nil {
		d = d.WithProjection(projectionSection(*b.Projection))
	}
	if b.Rights != nil {
		d = d.WithRights(rightsSection(*b.Rights))
	}

	media := make([]draft.MediaSection, 0, len(b.Media))
	for _, m := range b.Media {
		media = append(media, mediaSection(m))
	}
	d = d.WithMedia(media)

	elems := make([]string, 0, len(b.KeyElements))
	for _, k := range b.KeyElements {
		elems = append(elems, k.Element)
	}
	return d.WithKeyElements(elems)
}

func storySection(s domain.Story) draft.StorySection {
	date := normalize.DateValue{}
	switch s.EventDateState {
	case domain.EventDateExact:
		date = normalize.DateValue{Kind: normalize.DateExact, Start: s.EventDateStart}
	case domain.EventDateRange:
		date = normalize.DateValue{Kind: normalize.DateRange, Start: s.EventDateStart, End: s.EventDateEnd}
	}

	return draft.StorySection{
		Title:            s.Title,
		ShortDescription: s.ShortDescription,
		LongDescription:  s.LongDescription,
		FullTestimony:    s.FullTestimony,
		VerbatimExcerpt:  s.VerbatimExcerpt,
		RewrittenStory:   s.RewrittenStory,

		SourceChannel: s.SourceChannel,
		PrimaryGenre:  s.PrimaryGenre,
		HistoricalEra: s.HistoricalEra,

		CredibilityLevel:    s.CredibilityLevel,
		ImpactWeight:        s.ImpactWeight,
		AdaptationPotential: s.AdaptationPotential,
		VerificationLevel:   s.VerificationLevel,

		EventDate: date.String(),
		EventTime: normalize.TimeOfDay(s.EventTime),

		Recurrent:         s.Recurrent,
		RecurrencePattern: s.RecurrencePattern,

		ProductionDifficulty: s.ProductionDifficulty,
		ProductionHours:      s.ProductionHours,
		ProductionBudget:     s.ProductionBudget,

		SensitiveContent: s.SensitiveContent,
		ContentWarnings:  listFromJSON(s.ContentWarnings),

		State:            s.State,
		UniqueCode:       s.UniqueCode,
		SimilarityHash:   s.SimilarityHash,
		ExcerptWordCount: s.ExcerptWordCount,
	}
}

func locationSection(l domain.Location) draft.LocationSection {
	return draft.LocationSection{
		Country:    l.Country,
		Level1Name: l.Level1Name,
		Level2Name: l.Level2Name,
		Level3Name: l.Level3Name,
		Level4Name: l.Level4Name,

		Latitude:        l.Latitude,
		Longitude:       l.Longitude,
		PrecisionMeters: l.PrecisionMeters,

		PlaceDescription: l.PlaceDescription,

		PriorActivityReported: l.PriorActivityReported,
		PriorReportCount:      l.PriorReportCount,
		FirstActivity:         formatWhen(l.FirstActivityAt),
		LastActivity:          formatWhen(l.LastActivityAt),
	}
}

func witnessSection(w domain.Witness) draft.WitnessSection {
	return draft.WitnessSection{
		Pseudonym:            w.Pseudonym,
		ApproxAge:            w.ApproxAge,
		Occupation:           w.Occupation,
		RelationToEvent:      w.RelationToEvent,
		WasPresent:           w.WasPresent,
		EstimatedCredibility: w.EstimatedCredibility,
		PriorExposure:        w.PriorExposure,
		ContactAvailable:     w.ContactAvailable,
		Notes:                w.Notes,
	}
}

func entitySection(link EntityLink) draft.EntitySection {
	e := link.Entity
	return draft.EntitySection{
		Name:                e.Name,
		Kind:                e.Kind,
		PhysicalDescription: e.PhysicalDescription,
		Behavior:            e.Behavior,
		HostilityLevel:      e.HostilityLevel,
		KnownAliases:        listFromJSON(e.KnownAliases),
		TriggerKeywords:     listFromJSON(e.TriggerKeywords),
		FirstSeen:           formatWhen(e.FirstSeenAt),
		LastSeen:            formatWhen(e.LastSeenAt),
		Relevance:           link.Relevance,
	}
}

func environmentSection(e domain.Environment) draft.EnvironmentSection {
	return draft.EnvironmentSection{
		Weather:          e.Weather,
		TemperatureC:     e.TemperatureC,
		HumidityPct:      e.HumidityPct,
		Lighting:         e.Lighting,
		AmbientSound:     e.AmbientSound,
		SocialSituation:  e.SocialSituation,
		LunarPhase:       e.LunarPhase,
		ReligiousOverlap: e.ReligiousOverlap,
		HistoricOverlap:  e.HistoricOverlap,
		EmotionalState:   e.EmotionalState,
		TemporalPattern:  e.TemporalPattern,
	}
}

func credibilitySection(c domain.CredibilityFactors) draft.CredibilitySection {
	return draft.CredibilitySection{
		Present: true,

		MultipleWitnesses:     c.MultipleWitnesses,
		PhysicalEvidence:      c.PhysicalEvidence,
		Consistency:           c.Consistency,
		VerifiableLocation:    c.VerifiableLocation,
		HistoricalContext:     c.HistoricalContext,
		WitnessSobriety:       c.WitnessSobriety,
		PriorKnowledge:        c.PriorKnowledge,
		EmotionalState:        c.EmotionalState,
		NoSecondaryMotive:     c.NoSecondaryMotive,
		ExternalCorroboration: c.ExternalCorroboration,
		Documentation:         c.Documentation,
	}
}

func projectionSection(p domain.Projection) draft.ProjectionSection {
	section := draft.ProjectionSection{
		TargetAudience:   p.TargetAudience,
		Engagement:       p.Engagement,
		ViralPotential:   p.ViralPotential,
		EmotionalImpact:  p.EmotionalImpact,
		InterestDuration: p.InterestDuration,
	}
	if len(p.TargetMetrics) > 0 {
		var metrics struct {
			Views    int     `json:"vistas_objetivo"`
			Shares   int     `json:"compartidos_objetivo"`
			Comments int     `json:"comentarios_objetivo"`
			Rating   float64 `json:"calificacion_objetivo"`
		}
		if err := json.Unmarshal(p.TargetMetrics, &metrics); err == nil {
			section.TargetViews = metrics.Views
			section.TargetShares = metrics.Shares
			section.TargetComments = metrics.Comments
			section.TargetRating = metrics.Rating
		}
	}
	return section
}

func rightsSection(r domain.Rights) draft.RightsSection {
	return draft.RightsSection{
		UsageCategory:        r.UsageCategory,
		CommercialAuthorized: r.CommercialAuthorized,
		AdaptationAuthorized: r.AdaptationAuthorized,
		UsageRestrictions:    r.UsageRestrictions,
		RightsHolderContact:  r.RightsHolderContact,
		AuthorizationDate:    formatWhen(r.AuthorizationDate),
		ValidityMonths:       r.ValidityMonths,
		LegalNotes:           r.LegalNotes,
	}
}

func mediaSection(m domain.MediaAsset) draft.MediaSection {
	section := draft.MediaSection{
		Kind:            m.Kind,
		URL:             m.URL,
		SizeBytes:       m.SizeBytes,
		DurationSeconds: m.DurationSeconds,
		Format:          m.Format,

		CaptureDevice:    m.CaptureDevice,
		CaptureLatitude:  m.CaptureLatitude,
		CaptureLongitude: m.CaptureLongitude,

		Authenticity:  m.Authenticity,
		Relevance:     m.Relevance,
		PublicAccess:  m.PublicAccess,
		Transcription: m.Transcription,
	}
	if m.CapturedAt != nil {
		section.CapturedAt = m.CapturedAt.Format("2006-01-02")
	}
	return section
}
