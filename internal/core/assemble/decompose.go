package assemble

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/core/draft"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/core/normalize"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/core/scoring"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/domain"
)

// Decompose validates a draft and maps it onto the relational graph. The
// returned bundle carries pre-assigned ids; nothing is persisted here.
func Decompose(d draft.Draft, actorID uuid.UUID, publishNow bool, now time.Time) (*Bundle, *draft.ValidationError) {
	if ve := draft.Validate(d); ve != nil {
		return nil, ve
	}

	storyID := uuid.New()
	b := &Bundle{Story: storyRow(d, storyID, actorID, publishNow, now)}

	if loc := locationRow(d.Location); loc != nil {
		b.Location = loc
		b.Story.LocationID = &loc.ID
	}

	b.Witnesses = witnessRows(d, storyID)
	b.Entities = entityLinks(d.Entities)
	b.Environment = environmentRow(d.Environment, storyID)
	b.Credibility = credibilityRow(d.Credibility, storyID)
	b.Projection = projectionRow(d.Projection, storyID)
	b.Rights = rightsRow(d.Rights, storyID)
	b.Media = mediaRows(d.Media, storyID)
	b.KeyElements = keyElementRows(d.KeyElements, storyID)

	// Precedence: the eleven-factor aggregate overrides the single 0-5 input
	// whenever the factor block was filled in.
	if b.Credibility != nil {
		b.Story.CredibilityLevel = scoring.CredibilityLevel(b.Credibility.Percent)
	}
	return b, nil
}

func storyRow(d draft.Draft, id, actorID uuid.UUID, publishNow bool, now time.Time) domain.Story {
	s := d.Story

	code := strings.TrimSpace(s.UniqueCode)
	if code == "" {
		code = NewUniqueCode(now)
	}
	hash := strings.TrimSpace(s.SimilarityHash)
	if hash == "" {
		hash = SimilarityHash(s.Title, s.FullTestimony)
	}
	wordCount := s.ExcerptWordCount
	if wordCount == 0 {
		wordCount = normalize.WordCount(s.VerbatimExcerpt)
	}

	date := normalize.Date(s.EventDate)
	dateState := domain.EventDateUnknown
	switch date.Kind {
	case normalize.DateExact:
		dateState = domain.EventDateExact
	case normalize.DateRange:
		dateState = domain.EventDateRange
	}

	row := domain.Story{
		ID:               id,
		Title:            strings.TrimSpace(s.Title),
		ShortDescription: strings.TrimSpace(s.ShortDescription),
		LongDescription:  strings.TrimSpace(s.LongDescription),
		FullTestimony:    strings.TrimSpace(s.FullTestimony),
		VerbatimExcerpt:  s.VerbatimExcerpt,
		RewrittenStory:   s.RewrittenStory,

		SourceChannel: normalize.Enum(s.SourceChannel, sourceChannels, "otro"),
		PrimaryGenre:  normalize.Enum(s.PrimaryGenre, genres, "otro"),
		HistoricalEra: strings.TrimSpace(s.HistoricalEra),

		CredibilityLevel:    normalize.Rating05(s.CredibilityLevel),
		ImpactWeight:        normalize.ClampInt(s.ImpactWeight, 1, 5),
		AdaptationPotential: normalize.ClampInt(s.AdaptationPotential, 1, 3),
		VerificationLevel:   normalize.Enum(s.VerificationLevel, verificationLevels, "sin_verificar"),

		EventDateState: dateState,
		EventDateStart: date.Start,
		EventDateEnd:   date.End,
		EventTime:      normalize.TimeOfDay(s.EventTime),

		Recurrent:         s.Recurrent,
		RecurrencePattern: strings.TrimSpace(s.RecurrencePattern),

		ProductionDifficulty: normalize.ClampInt(s.ProductionDifficulty, 0, 5),
		ProductionHours:      s.ProductionHours,
		ProductionBudget:     s.ProductionBudget,

		SensitiveContent: s.SensitiveContent,
		ContentWarnings:  jsonList(s.ContentWarnings),

		State:            domain.StateExtracted,
		UniqueCode:       code,
		SimilarityHash:   hash,
		ExcerptWordCount: wordCount,

		CreatedBy: actorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if publishNow {
		row.State = domain.StatePublished
		published := now
		row.PublishedAt = &published
		moderator := actorID
		row.ModeratedBy = &moderator
	}
	return row
}

// locationRow returns nil unless at least one meaningful field is present:
// a named administrative level or a coordinate. A bare country default does
// not warrant a row.
func locationRow(l draft.LocationSection) *domain.Location {
	meaningful := strings.TrimSpace(l.Level1Name) != "" ||
		strings.TrimSpace(l.Level2Name) != "" ||
		strings.TrimSpace(l.Level3Name) != "" ||
		strings.TrimSpace(l.Level4Name) != "" ||
		l.Latitude != nil || l.Longitude != nil
	if !meaningful {
		return nil
	}
	return &domain.Location{
		ID:         uuid.New(),
		Country:    normalize.String(l.Country, "Colombia"),
		Level1Name: strings.TrimSpace(l.Level1Name),
		Level2Name: strings.TrimSpace(l.Level2Name),
		Level3Name: strings.TrimSpace(l.Level3Name),
		Level4Name: strings.TrimSpace(l.Level4Name),

		Latitude:        l.Latitude,
		Longitude:       l.Longitude,
		PrecisionMeters: l.PrecisionMeters,

		PlaceDescription: strings.TrimSpace(l.PlaceDescription),

		PriorActivityReported: l.PriorActivityReported,
		PriorReportCount:      l.PriorReportCount,
		FirstActivityAt:       parseWhen(l.FirstActivity),
		LastActivityAt:        parseWhen(l.LastActivity),
	}
}

// witnessRows emits exactly one principal followed by the secondaries. An
// unnamed principal still gets a row under the default pseudonym so the
// one-principal invariant holds.
func witnessRows(d draft.Draft, storyID uuid.UUID) []domain.Witness {
	rows := []domain.Witness{witnessRow(d.MainWitness, storyID, domain.WitnessPrincipal)}
	for _, w := range d.SecondaryWitnesses {
		rows = append(rows, witnessRow(w, storyID, domain.WitnessSecondary))
	}
	return rows
}

func witnessRow(w draft.WitnessSection, storyID uuid.UUID, kind string) domain.Witness {
	return domain.Witness{
		ID:                   uuid.New(),
		StoryID:              storyID,
		Kind:                 kind,
		Pseudonym:            normalize.String(w.Pseudonym, "Anonimo"),
		ApproxAge:            normalize.ClampInt(w.ApproxAge, 0, 120),
		Occupation:           strings.TrimSpace(w.Occupation),
		RelationToEvent:      strings.TrimSpace(w.RelationToEvent),
		WasPresent:           w.WasPresent,
		EstimatedCredibility: normalize.Rating05(w.EstimatedCredibility),
		PriorExposure:        w.PriorExposure,
		ContactAvailable:     w.ContactAvailable,
		Notes:                w.Notes,
	}
}

func entityLinks(sections []draft.EntitySection) []EntityLink {
	links := make([]EntityLink, 0, len(sections))
	for _, e := range sections {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			continue
		}
		links = append(links, EntityLink{
			Entity: domain.Entity{
				ID:                  uuid.New(),
				Name:                name,
				NormalizedName:      NormalizeEntityName(name),
				Kind:                strings.TrimSpace(e.Kind),
				PhysicalDescription: e.PhysicalDescription,
				Behavior:            e.Behavior,
				HostilityLevel:      normalize.ClampInt(e.HostilityLevel, 0, 5),
				KnownAliases:        jsonList(normalize.StringList(e.KnownAliases)),
				TriggerKeywords:     jsonList(normalize.StringList(e.TriggerKeywords)),
				FirstSeenAt:         parseWhen(e.FirstSeen),
				LastSeenAt:          parseWhen(e.LastSeen),
			},
			Relevance: normalize.ClampInt(e.Relevance, 1, 5),
		})
	}
	return links
}

func environmentRow(e draft.EnvironmentSection, storyID uuid.UUID) *domain.Environment {
	empty := e.Weather == "" && e.TemperatureC == nil && e.HumidityPct == nil &&
		e.Lighting == "" && e.AmbientSound == "" && e.SocialSituation == "" &&
		e.LunarPhase == "" && e.ReligiousOverlap == "" && e.HistoricOverlap == "" &&
		e.EmotionalState == "" && !e.TemporalPattern
	if empty {
		return nil
	}
	return &domain.Environment{
		ID:               uuid.New(),
		StoryID:          storyID,
		Weather:          strings.TrimSpace(e.Weather),
		TemperatureC:     e.TemperatureC,
		HumidityPct:      e.HumidityPct,
		Lighting:         strings.TrimSpace(e.Lighting),
		AmbientSound:     strings.TrimSpace(e.AmbientSound),
		SocialSituation:  strings.TrimSpace(e.SocialSituation),
		LunarPhase:       strings.TrimSpace(e.LunarPhase),
		ReligiousOverlap: strings.TrimSpace(e.ReligiousOverlap),
		HistoricOverlap:  strings.TrimSpace(e.HistoricOverlap),
		EmotionalState:   strings.TrimSpace(e.EmotionalState),
		TemporalPattern:  e.TemporalPattern,
	}
}

func credibilityRow(c draft.CredibilitySection, storyID uuid.UUID) *domain.CredibilityFactors {
	if !c.Present {
		return nil
	}
	clamp := func(v int) int { return normalize.ClampInt(v, 0, 5) }
	row := &domain.CredibilityFactors{
		ID:      uuid.New(),
		StoryID: storyID,

		MultipleWitnesses:     clamp(c.MultipleWitnesses),
		PhysicalEvidence:      clamp(c.PhysicalEvidence),
		Consistency:           clamp(c.Consistency),
		VerifiableLocation:    clamp(c.VerifiableLocation),
		HistoricalContext:     clamp(c.HistoricalContext),
		WitnessSobriety:       clamp(c.WitnessSobriety),
		PriorKnowledge:        clamp(c.PriorKnowledge),
		EmotionalState:        clamp(c.EmotionalState),
		NoSecondaryMotive:     clamp(c.NoSecondaryMotive),
		ExternalCorroboration: clamp(c.ExternalCorroboration),
		Documentation:         clamp(c.Documentation),
	}
	row.Percent = scoring.CredibilityPercent(row.Scores())
	row.Band = scoring.Band(row.Percent)
	return row
}

func projectionRow(p draft.ProjectionSection, storyID uuid.UUID) *domain.Projection {
	empty := p.Engagement == 0 && p.ViralPotential == 0 && p.EmotionalImpact == 0 &&
		p.InterestDuration == 0 && p.TargetViews == 0 && p.TargetShares == 0 &&
		p.TargetComments == 0 && p.TargetRating == 0
	if empty {
		return nil
	}
	clamp := func(v int) int { return normalize.ClampInt(v, 0, 5) }
	row := &domain.Projection{
		ID:      uuid.New(),
		StoryID: storyID,

		TargetAudience:   normalize.Enum(p.TargetAudience, audiences, "general"),
		Engagement:       clamp(p.Engagement),
		ViralPotential:   clamp(p.ViralPotential),
		EmotionalImpact:  clamp(p.EmotionalImpact),
		InterestDuration: clamp(p.InterestDuration),
	}
	row.Percent = scoring.PerformancePercent(row.Engagement, row.ViralPotential, row.EmotionalImpact, row.InterestDuration)
	row.Band = scoring.Band(row.Percent)

	metrics := map[string]any{
		"vistas_objetivo":       p.TargetViews,
		"compartidos_objetivo":  p.TargetShares,
		"comentarios_objetivo":  p.TargetComments,
		"calificacion_objetivo": p.TargetRating,
	}
	raw, _ := json.Marshal(metrics)
	row.TargetMetrics = datatypes.JSON(raw)
	return row
}

func rightsRow(r draft.RightsSection, storyID uuid.UUID) *domain.Rights {
	authDate := parseWhen(r.AuthorizationDate)
	empty := r.UsageCategory == "" && !r.CommercialAuthorized && !r.AdaptationAuthorized &&
		r.UsageRestrictions == "" && r.RightsHolderContact == "" && authDate == nil &&
		r.ValidityMonths == 0 && r.LegalNotes == ""
	if empty {
		return nil
	}
	return &domain.Rights{
		ID:      uuid.New(),
		StoryID: storyID,

		UsageCategory:        strings.TrimSpace(r.UsageCategory),
		CommercialAuthorized: r.CommercialAuthorized,
		AdaptationAuthorized: r.AdaptationAuthorized,
		UsageRestrictions:    r.UsageRestrictions,
		RightsHolderContact:  strings.TrimSpace(r.RightsHolderContact),
		AuthorizationDate:    authDate,
		ValidityMonths:       r.ValidityMonths,
		LegalNotes:           r.LegalNotes,
	}
}

func mediaRows(sections []draft.MediaSection, storyID uuid.UUID) []domain.MediaAsset {
	rows := make([]domain.MediaAsset, 0, len(sections))
	for _, m := range sections {
		url := strings.TrimSpace(m.URL)
		if url == "" {
			continue
		}
		rows = append(rows, domain.MediaAsset{
			ID:      uuid.New(),
			StoryID: storyID,

			Kind:            normalize.Enum(m.Kind, mediaKinds, "documento"),
			URL:             url,
			SizeBytes:       m.SizeBytes,
			DurationSeconds: m.DurationSeconds,
			Format:          strings.TrimSpace(m.Format),

			CaptureDevice:    strings.TrimSpace(m.CaptureDevice),
			CaptureLatitude:  m.CaptureLatitude,
			CaptureLongitude: m.CaptureLongitude,
			CapturedAt:       parseWhen(m.CapturedAt),

			Authenticity:  normalize.Enum(m.Authenticity, authStates, "pendiente"),
			Relevance:     normalize.ClampInt(m.Relevance, 1, 5),
			PublicAccess:  m.PublicAccess,
			Transcription: m.Transcription,
		})
	}
	return rows
}

func keyElementRows(elems []string, storyID uuid.UUID) []domain.KeyElement {
	seen := map[string]bool{}
	rows := make([]domain.KeyElement, 0, len(elems))
	for _, e := range normalize.StringList(elems) {
		key := strings.ToLower(e)
		if seen[key] {
			continue
		}
		seen[key] = true
		rows = append(rows, domain.KeyElement{
			ID:      uuid.New(),
			StoryID: storyID,
			Element: e,
		})
	}
	return rows
}
