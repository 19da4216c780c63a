package jsonio

import (
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/core/draft"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/core/normalize"
)

// spec is one entry of the import contract: the canonical key, then every
// historically used alternate, resolved in order before the default applies.
// The chain is data so old export formats never get dropped silently.
type spec struct {
	keys []string
	f    normalize.Field
}

func s(def string, keys ...string) spec {
	return spec{keys: keys, f: normalize.Field{Kind: normalize.KindString, Default: def}}
}
func e(def string, allowed []string, keys ...string) spec {
	return spec{keys: keys, f: normalize.Field{Kind: normalize.KindEnum, Allowed: allowed, Default: def}}
}
func i(def, lo, hi int, keys ...string) spec {
	return spec{keys: keys, f: normalize.Field{Kind: normalize.KindInt, Default: def, Min: float64(lo), Max: float64(hi)}}
}
func fl(def, lo, hi float64, keys ...string) spec {
	return spec{keys: keys, f: normalize.Field{Kind: normalize.KindFloat, Default: def, Min: lo, Max: hi}}
}
func b(def bool, keys ...string) spec {
	return spec{keys: keys, f: normalize.Field{Kind: normalize.KindBool, Default: def}}
}
func li(keys ...string) spec {
	return spec{keys: keys, f: normalize.Field{Kind: normalize.KindList}}
}
func dt(keys ...string) spec {
	return spec{keys: keys, f: normalize.Field{Kind: normalize.KindDate}}
}
func tm(keys ...string) spec {
	return spec{keys: keys, f: normalize.Field{Kind: normalize.KindTime}}
}

var (
	sourceChannels = []string{"llamada_oyente", "historia_programa", "investigacion_propia", "entrevista_presencial", "envio_escrito", "otro"}
	genres         = []string{"fantasmas_apariciones", "ovnis_luces", "criptidos", "posesiones_demonios", "misterios_historicos", "otro"}
	verifyLevels   = []string{"sin_verificar", "testimonio_unico", "multiples_testigos", "evidencia_fisica", "investigacion_completa", "descartada_fraude"}
	audiences      = []string{"general", "jovenes", "adultos", "aficionados_paranormal"}
	mediaKinds     = []string{"audio", "imagen", "video", "documento"}
	authStates     = []string{"pendiente", "verificado", "manipulado"}
	states         = []string{"extraida", "en_revision", "aprobada", "rechazada", "publicada"}
)

// Story section contract.
var storySpecs = map[string]spec{
	"title":       s("", "titulo_provisional", "titulo"),
	"short":       s("", "descripcion_corta", "resumen"),
	"long":        s("", "descripcion_larga", "descripcion"),
	"testimony":   s("", "testimonio_completo", "testimonio", "relato_completo"),
	"excerpt":     s("", "extracto_verbatim", "extracto"),
	"rewritten":   s("", "historia_reescrita", "narrativa"),
	"source":      e("otro", sourceChannels, "fuente_relato", "fuente"),
	"genre":       e("otro", genres, "genero_principal", "genero"),
	"era":         s("", "epoca_historica", "epoca"),
	"cred":        fl(0, 0, 5, "nivel_credibilidad", "credibilidad"),
	"impact":      i(1, 1, 5, "ponderacion_impacto", "impacto"),
	"adaptation":  i(1, 1, 3, "potencial_adaptacion"),
	"verify":      e("sin_verificar", verifyLevels, "nivel_verificacion", "verificacion"),
	"date":        dt("fecha_evento", "fecha", "fecha_aproximada"),
	"time":        tm("hora_evento", "hora"),
	"recurrent":   b(false, "evento_recurrente", "recurrente"),
	"pattern":     s("", "patron_recurrencia"),
	"difficulty":  i(0, 0, 5, "dificultad_produccion"),
	"hours":       i(0, 0, 0, "tiempo_produccion_horas", "tiempo_produccion"),
	"budget":      fl(0, 0, 0, "presupuesto_estimado", "presupuesto"),
	"sensitive":   b(false, "contenido_sensible"),
	"warnings":    li("advertencias_contenido", "advertencias"),
	"state":       e("extraida", states, "estado_procesamiento", "estado"),
	"code":        s("", "codigo_unico", "codigo"),
	"hash":        s("", "hash_similitud"),
	"excerptlen":  i(0, 0, 0, "longitud_extracto_palabras"),
}

// Location section contract. "ciudad" is the documented legacy alias for
// nivel2_nombre; the other administrative levels keep their pre-hierarchy
// names as alternates.
var locationSpecs = map[string]spec{
	"country":   s("Colombia", "pais"),
	"level1":    s("", "nivel1_nombre", "departamento"),
	"level2":    s("", "nivel2_nombre", "ciudad", "municipio"),
	"level3":    s("", "nivel3_nombre", "vereda", "corregimiento"),
	"level4":    s("", "nivel4_nombre", "barrio"),
	"desc":      s("", "descripcion_lugar", "lugar_especifico"),
	"prior":     b(false, "actividad_previa_reportada", "actividad_previa"),
	"reports":   i(0, 0, 0, "numero_reportes_previos"),
	"first":     dt("primera_actividad"),
	"last":      dt("ultima_actividad"),
}

var witnessSpecs = map[string]spec{
	"pseudonym": s("", "pseudonimo", "nombre_publico", "alias"),
	"age":       i(0, 0, 120, "edad_aproximada", "edad"),
	"job":       s("", "ocupacion", "oficio"),
	"relation":  s("", "relacion_evento", "relacion"),
	"present":   b(true, "presencial", "estuvo_presente"),
	"cred":      fl(0, 0, 5, "credibilidad_estimada"),
	"prior":     b(false, "antecedentes_paranormales", "experiencias_previas"),
	"contact":   b(false, "contacto_disponible"),
	"notes":     s("", "notas", "observaciones"),
}

var entitySpecs = map[string]spec{
	"name":      s("", "nombre", "nombre_entidad"),
	"kind":      s("", "tipo_entidad", "tipo"),
	"physical":  s("", "descripcion_fisica"),
	"behavior":  s("", "comportamiento", "conducta"),
	"hostility": i(0, 0, 5, "nivel_hostilidad", "hostilidad"),
	"aliases":   li("alias_conocidos", "alias"),
	"keywords":  li("palabras_clave", "disparadores"),
	"first":     dt("primera_aparicion"),
	"last":      dt("ultima_aparicion"),
	"relevance": i(3, 1, 5, "relevancia", "relevancia_en_historia"),
}

var environmentSpecs = map[string]spec{
	"weather":   s("", "clima", "clima_evento"),
	"lighting":  s("", "iluminacion"),
	"sound":     s("", "sonido_ambiente", "sonidos"),
	"social":    s("", "situacion_social"),
	"lunar":     s("", "fase_lunar"),
	"religious": s("", "coincidencia_religiosa", "festividad"),
	"historic":  s("", "coincidencia_historica"),
	"emotional": s("", "estado_emocional_testigos", "estado_emocional"),
	"pattern":   b(false, "patron_temporal_detectado", "patron_temporal"),
}

var credibilitySpecs = map[string]spec{
	"witnesses":     i(0, 0, 5, "factor_multiples_testigos", "multiples_testigos"),
	"physical":      i(0, 0, 5, "factor_evidencia_fisica", "evidencia_fisica"),
	"consistency":   i(0, 0, 5, "factor_consistencia", "consistencia"),
	"location":      i(0, 0, 5, "factor_ubicacion_verificable", "ubicacion_verificable"),
	"history":       i(0, 0, 5, "factor_contexto_historico", "contexto_historico"),
	"sobriety":      i(0, 0, 5, "factor_sobriedad_testigo", "sobriedad"),
	"knowledge":     i(0, 0, 5, "factor_conocimiento_previo", "conocimiento_previo"),
	"emotional":     i(0, 0, 5, "factor_estado_emocional", "estado_emocional"),
	"motive":        i(0, 0, 5, "factor_sin_motivo_secundario", "sin_motivo_secundario"),
	"corroboration": i(0, 0, 5, "factor_corroboracion_externa", "corroboracion_externa"),
	"docs":          i(0, 0, 5, "factor_documentacion", "documentacion"),
}

var rightsSpecs = map[string]spec{
	"category":   s("", "categoria_derechos", "derechos_uso"),
	"commercial": b(false, "autorizacion_comercial"),
	"adaptation": b(false, "autorizacion_adaptacion"),
	"limits":     s("", "restricciones_uso", "restricciones"),
	"contact":    s("", "contacto_titular", "contacto_derechos"),
	"date":       dt("fecha_autorizacion"),
	"validity":   i(0, 0, 0, "vigencia_meses", "vigencia"),
	"legal":      s("", "notas_legales"),
}

var projectionSpecs = map[string]spec{
	"audience":   e("general", audiences, "audiencia_objetivo", "audiencia"),
	"engagement": i(0, 0, 5, "engagement_esperado", "engagement"),
	"viral":      i(0, 0, 5, "potencial_viral"),
	"emotional":  i(0, 0, 5, "impacto_emocional"),
	"duration":   i(0, 0, 5, "duracion_interes"),
	"views":      i(0, 0, 0, "vistas_objetivo", "vistas"),
	"shares":     i(0, 0, 0, "compartidos_objetivo", "compartidos"),
	"comments":   i(0, 0, 0, "comentarios_objetivo", "comentarios"),
	"rating":     fl(0, 0, 0, "calificacion_objetivo", "calificacion"),
}

var mediaSpecs = map[string]spec{
	"kind":       e("documento", mediaKinds, "tipo_archivo", "tipo"),
	"url":        s("", "url_archivo", "url"),
	"size":       i(0, 0, 0, "tamano_bytes", "tamano"),
	"format":     s("", "formato"),
	"device":     s("", "dispositivo_captura", "dispositivo"),
	"captured":   dt("fecha_captura"),
	"auth":       e("pendiente", authStates, "verificacion_autenticidad", "autenticidad"),
	"relevance":  i(3, 1, 5, "relevancia"),
	"public":     b(false, "acceso_publico"),
	"transcript": s("", "transcripcion_analisis", "transcripcion"),
}

func lookup(section, root map[string]any, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := section[k]; ok {
			return v, true
		}
	}
	// Legacy flat exports put section fields at the document root.
	for _, k := range keys {
		if v, ok := root[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func strVal(section, root map[string]any, sp spec) string {
	v, ok := lookup(section, root, sp.keys)
	if !ok {
		v = sp.f.Default
	}
	out, _ := sp.f.Apply(v).(string)
	return out
}

func intVal(section, root map[string]any, sp spec) int {
	v, ok := lookup(section, root, sp.keys)
	if !ok {
		v = sp.f.Default
	}
	out, _ := sp.f.Apply(v).(int)
	return out
}

func floatVal(section, root map[string]any, sp spec) float64 {
	v, ok := lookup(section, root, sp.keys)
	if !ok {
		v = sp.f.Default
	}
	out, _ := sp.f.Apply(v).(float64)
	return out
}

func boolVal(section, root map[string]any, sp spec) bool {
	v, ok := lookup(section, root, sp.keys)
	if !ok {
		v = sp.f.Default
	}
	out, _ := sp.f.Apply(v).(bool)
	return out
}

func listVal(section, root map[string]any, sp spec) []string {
	v, _ := lookup(section, root, sp.keys)
	out, _ := sp.f.Apply(v).([]string)
	return out
}

func ptrFloat(section, root map[string]any, keys ...string) *float64 {
	v, ok := lookup(section, root, keys)
	if !ok || v == nil {
		return nil
	}
	f := normalize.AsFloat(v, 0)
	return &f
}

func ptrInt(section, root map[string]any, keys ...string) *int {
	v, ok := lookup(section, root, keys)
	if !ok || v == nil {
		return nil
	}
	n := normalize.AsInt(v, 0)
	return &n
}

func sectionMap(root map[string]any, names ...string) (map[string]any, bool) {
	for _, n := range names {
		if m, ok := root[n].(map[string]any); ok {
			return m, true
		}
	}
	return map[string]any{}, false
}

func sectionList(root map[string]any, names ...string) []map[string]any {
	for _, n := range names {
		raw, ok := root[n].([]any)
		if !ok {
			continue
		}
		out := make([]map[string]any, 0, len(raw))
		for _, e := range raw {
			if m, ok := e.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}

func buildDraft(root map[string]any) draft.Draft {
	d := draft.New()

	story, _ := sectionMap(root, "historias", "historia", "relato")
	d = d.WithStory(draft.StorySection{
		Title:            strVal(story, root, storySpecs["title"]),
		ShortDescription: strVal(story, root, storySpecs["short"]),
		LongDescription:  strVal(story, root, storySpecs["long"]),
		FullTestimony:    strVal(story, root, storySpecs["testimony"]),
		VerbatimExcerpt:  strVal(story, root, storySpecs["excerpt"]),
		RewrittenStory:   strVal(story, root, storySpecs["rewritten"]),

		SourceChannel: strVal(story, root, storySpecs["source"]),
		PrimaryGenre:  strVal(story, root, storySpecs["genre"]),
		HistoricalEra: strVal(story, root, storySpecs["era"]),

		CredibilityLevel:    floatVal(story, root, storySpecs["cred"]),
		ImpactWeight:        intVal(story, root, storySpecs["impact"]),
		AdaptationPotential: intVal(story, root, storySpecs["adaptation"]),
		VerificationLevel:   strVal(story, root, storySpecs["verify"]),

		EventDate: strVal(story, root, storySpecs["date"]),
		EventTime: strVal(story, root, storySpecs["time"]),

		Recurrent:         boolVal(story, root, storySpecs["recurrent"]),
		RecurrencePattern: strVal(story, root, storySpecs["pattern"]),

		ProductionDifficulty: intVal(story, root, storySpecs["difficulty"]),
		ProductionHours:      intVal(story, root, storySpecs["hours"]),
		ProductionBudget:     floatVal(story, root, storySpecs["budget"]),

		SensitiveContent: boolVal(story, root, storySpecs["sensitive"]),
		ContentWarnings:  listVal(story, root, storySpecs["warnings"]),

		State:            strVal(story, root, storySpecs["state"]),
		UniqueCode:       strVal(story, root, storySpecs["code"]),
		SimilarityHash:   strVal(story, root, storySpecs["hash"]),
		ExcerptWordCount: intVal(story, root, storySpecs["excerptlen"]),
	})

	loc, _ := sectionMap(root, "ubicacion", "lugar")
	d = d.WithLocation(draft.LocationSection{
		Country:    strVal(loc, root, locationSpecs["country"]),
		Level1Name: strVal(loc, root, locationSpecs["level1"]),
		Level2Name: strVal(loc, root, locationSpecs["level2"]),
		Level3Name: strVal(loc, root, locationSpecs["level3"]),
		Level4Name: strVal(loc, root, locationSpecs["level4"]),

		Latitude:        ptrFloat(loc, root, "latitud", "lat"),
		Longitude:       ptrFloat(loc, root, "longitud", "lng", "lon"),
		PrecisionMeters: ptrInt(loc, root, "precision_radio_m", "precision"),

		PlaceDescription: strVal(loc, root, locationSpecs["desc"]),

		PriorActivityReported: boolVal(loc, root, locationSpecs["prior"]),
		PriorReportCount:      intVal(loc, root, locationSpecs["reports"]),
		FirstActivity:         strVal(loc, root, locationSpecs["first"]),
		LastActivity:          strVal(loc, root, locationSpecs["last"]),
	})

	main, _ := sectionMap(root, "testigo_principal", "testigo")
	d = d.WithMainWitness(witnessFromMap(main, root))

	var secondaries []draft.WitnessSection
	for _, m := range sectionList(root, "testigos_secundarios", "otros_testigos") {
		secondaries = append(secondaries, witnessFromMap(m, map[string]any{}))
	}
	d = d.WithSecondaryWitnesses(secondaries)

	var entities []draft.EntitySection
	for _, m := range sectionList(root, "entidades_paranormales", "entidades") {
		entities = append(entities, draft.EntitySection{
			Name:                strVal(m, root, entitySpecs["name"]),
			Kind:                strVal(m, root, entitySpecs["kind"]),
			PhysicalDescription: strVal(m, root, entitySpecs["physical"]),
			Behavior:            strVal(m, root, entitySpecs["behavior"]),
			HostilityLevel:      intVal(m, root, entitySpecs["hostility"]),
			KnownAliases:        listVal(m, root, entitySpecs["aliases"]),
			TriggerKeywords:     listVal(m, root, entitySpecs["keywords"]),
			FirstSeen:           strVal(m, root, entitySpecs["first"]),
			LastSeen:            strVal(m, root, entitySpecs["last"]),
			Relevance:           intVal(m, root, entitySpecs["relevance"]),
		})
	}
	d = d.WithEntities(entities)

	if env, ok := sectionMap(root, "contexto_ambiental", "contexto", "ambiente"); ok {
		d = d.WithEnvironment(draft.EnvironmentSection{
			Weather:          strVal(env, root, environmentSpecs["weather"]),
			TemperatureC:     ptrFloat(env, root, "temperatura_c", "temperatura"),
			HumidityPct:      ptrInt(env, root, "humedad_pct", "humedad"),
			Lighting:         strVal(env, root, environmentSpecs["lighting"]),
			AmbientSound:     strVal(env, root, environmentSpecs["sound"]),
			SocialSituation:  strVal(env, root, environmentSpecs["social"]),
			LunarPhase:       strVal(env, root, environmentSpecs["lunar"]),
			ReligiousOverlap: strVal(env, root, environmentSpecs["religious"]),
			HistoricOverlap:  strVal(env, root, environmentSpecs["historic"]),
			EmotionalState:   strVal(env, root, environmentSpecs["emotional"]),
			TemporalPattern:  boolVal(env, root, environmentSpecs["pattern"]),
		})
	}

	if cred, ok := sectionMap(root, "factores_credibilidad", "credibilidad"); ok && len(cred) > 0 {
		d = d.WithCredibility(draft.CredibilitySection{
			Present: true,

			MultipleWitnesses:     intVal(cred, root, credibilitySpecs["witnesses"]),
			PhysicalEvidence:      intVal(cred, root, credibilitySpecs["physical"]),
			Consistency:           intVal(cred, root, credibilitySpecs["consistency"]),
			VerifiableLocation:    intVal(cred, root, credibilitySpecs["location"]),
			HistoricalContext:     intVal(cred, root, credibilitySpecs["history"]),
			WitnessSobriety:       intVal(cred, root, credibilitySpecs["sobriety"]),
			PriorKnowledge:        intVal(cred, root, credibilitySpecs["knowledge"]),
			EmotionalState:        intVal(cred, root, credibilitySpecs["emotional"]),
			NoSecondaryMotive:     intVal(cred, root, credibilitySpecs["motive"]),
			ExternalCorroboration: intVal(cred, root, credibilitySpecs["corroboration"]),
			Documentation:         intVal(cred, root, credibilitySpecs["docs"]),
		})
	}

	rights, _ := sectionMap(root, "derechos", "derechos_historia")
	d = d.WithRights(draft.RightsSection{
		UsageCategory:        strVal(rights, root, rightsSpecs["category"]),
		CommercialAuthorized: boolVal(rights, root, rightsSpecs["commercial"]),
		AdaptationAuthorized: boolVal(rights, root, rightsSpecs["adaptation"]),
		UsageRestrictions:    strVal(rights, root, rightsSpecs["limits"]),
		RightsHolderContact:  strVal(rights, root, rightsSpecs["contact"]),
		AuthorizationDate:    strVal(rights, root, rightsSpecs["date"]),
		ValidityMonths:       intVal(rights, root, rightsSpecs["validity"]),
		LegalNotes:           strVal(rights, root, rightsSpecs["legal"]),
	})

	proj, _ := sectionMap(root, "proyeccion_desempeno", "metricas_desempeno", "metricas_iniciales")
	d = d.WithProjection(draft.ProjectionSection{
		TargetAudience:   strVal(proj, root, projectionSpecs["audience"]),
		Engagement:       intVal(proj, root, projectionSpecs["engagement"]),
		ViralPotential:   intVal(proj, root, projectionSpecs["viral"]),
		EmotionalImpact:  intVal(proj, root, projectionSpecs["emotional"]),
		InterestDuration: intVal(proj, root, projectionSpecs["duration"]),

		TargetViews:    intVal(proj, root, projectionSpecs["views"]),
		TargetShares:   intVal(proj, root, projectionSpecs["shares"]),
		TargetComments: intVal(proj, root, projectionSpecs["comments"]),
		TargetRating:   floatVal(proj, root, projectionSpecs["rating"]),
	})

	var media []draft.MediaSection
	for _, m := range sectionList(root, "archivos_multimedia", "multimedia", "archivos") {
		duration := ptrFloat(m, map[string]any{}, "duracion_segundos", "duracion")
		media = append(media, draft.MediaSection{
			Kind:            strVal(m, root, mediaSpecs["kind"]),
			URL:             strVal(m, root, mediaSpecs["url"]),
			SizeBytes:       int64(intVal(m, root, mediaSpecs["size"])),
			DurationSeconds: duration,
			Format:          strVal(m, root, mediaSpecs["format"]),

			CaptureDevice:    strVal(m, root, mediaSpecs["device"]),
			CaptureLatitude:  ptrFloat(m, map[string]any{}, "captura_latitud"),
			CaptureLongitude: ptrFloat(m, map[string]any{}, "captura_longitud"),
			CapturedAt:       strVal(m, root, mediaSpecs["captured"]),

			Authenticity:  strVal(m, root, mediaSpecs["auth"]),
			Relevance:     intVal(m, root, mediaSpecs["relevance"]),
			PublicAccess:  boolVal(m, root, mediaSpecs["public"]),
			Transcription: strVal(m, root, mediaSpecs["transcript"]),
		})
	}
	d = d.WithMedia(media)

	if v, ok := lookup(root, root, []string{"elementos_clave", "elementos", "etiquetas"}); ok {
		d = d.WithKeyElements(normalize.StringList(v))
	}

	d = d.WithPublishNow(boolVal(root, root, b(false, "publicar_inmediatamente", "publicar")))
	return d
}

func witnessFromMap(m, root map[string]any) draft.WitnessSection {
	return draft.WitnessSection{
		Pseudonym:            strVal(m, root, witnessSpecs["pseudonym"]),
		ApproxAge:            intVal(m, root, witnessSpecs["age"]),
		Occupation:           strVal(m, root, witnessSpecs["job"]),
		RelationToEvent:      strVal(m, root, witnessSpecs["relation"]),
		WasPresent:           boolVal(m, root, witnessSpecs["present"]),
		EstimatedCredibility: floatVal(m, root, witnessSpecs["cred"]),
		PriorExposure:        boolVal(m, root, witnessSpecs["prior"]),
		ContactAvailable:     boolVal(m, root, witnessSpecs["contact"]),
		Notes:                strVal(m, root, witnessSpecs["notes"]),
	}
}
