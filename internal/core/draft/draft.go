package draft

import "github.com/medianoche-studio/archivo-anomalo-backend/internal/core/normalize"

// CurrentVersion is the draft template version written on export. Imports of
// older template versions are resolved through the jsonio alias chains.
const CurrentVersion = 3

// Draft is the flat, editable shape consumed by forms and JSON
// import/export. It is a value type: every mutation goes through a section
// reducer returning a new Draft, never an in-place merge.
type Draft struct {
	Version int `json:"version_plantilla"`

	Story              StorySection       `json:"historias"`
	Location           LocationSection    `json:"ubicacion"`
	MainWitness        WitnessSection     `json:"testigo_principal"`
	SecondaryWitnesses []WitnessSection   `json:"testigos_secundarios"`
	Entities           []EntitySection    `json:"entidades_paranormales"`
	Environment        EnvironmentSection `json:"contexto_ambiental"`
	Credibility        CredibilitySection `json:"factores_credibilidad"`
	Rights             RightsSection      `json:"derechos"`
	Projection         ProjectionSection  `json:"proyeccion_desempeno"`
	Media              []MediaSection     `json:"archivos_multimedia"`
	KeyElements        []string           `json:"elementos_clave"`

	PublishNow bool `json:"publicar_inmediatamente"`
}

// StorySection mirrors the root narrative fields. Date and time fields carry
// the loose editable form: an ISO date, a range, or the "Desconocido"
// sentinel.
type StorySection struct {
	Title            string `json:"titulo_provisional"`
	ShortDescription string `json:"descripcion_corta"`
	LongDescription  string `json:"descripcion_larga"`
	FullTestimony    string `json:"testimonio_completo"`
	VerbatimExcerpt  string `json:"extracto_verbatim"`
	RewrittenStory   string `json:"historia_reescrita"`

	SourceChannel string `json:"fuente_relato"`
	PrimaryGenre  string `json:"genero_principal"`
	HistoricalEra string `json:"epoca_historica"`

	CredibilityLevel    float64 `json:"nivel_credibilidad"`
	ImpactWeight        int     `json:"ponderacion_impacto"`
	AdaptationPotential int     `json:"potencial_adaptacion"`
	VerificationLevel   string  `json:"nivel_verificacion"`

	EventDate string `json:"fecha_evento"`
	EventTime string `json:"hora_evento"`

	Recurrent         bool   `json:"evento_recurrente"`
	RecurrencePattern string `json:"patron_recurrencia"`

	ProductionDifficulty int     `json:"dificultad_produccion"`
	ProductionHours      int     `json:"tiempo_produccion_horas"`
	ProductionBudget     float64 `json:"presupuesto_estimado"`

	SensitiveContent bool     `json:"contenido_sensible"`
	ContentWarnings  []string `json:"advertencias_contenido"`

	State            string `json:"estado_procesamiento"`
	UniqueCode       string `json:"codigo_unico"`
	SimilarityHash   string `json:"hash_similitud"`
	ExcerptWordCount int    `json:"longitud_extracto_palabras"`
}

type LocationSection struct {
	Country    string `json:"pais"`
	Level1Name string `json:"nivel1_nombre"`
	Level2Name string `json:"nivel2_nombre"`
	Level3Name string `json:"nivel3_nombre"`
	Level4Name string `json:"nivel4_nombre"`

	Latitude        *float64 `json:"latitud,omitempty"`
	Longitude       *float64 `json:"longitud,omitempty"`
	PrecisionMeters *int     `json:"precision_radio_m,omitempty"`

	PlaceDescription string `json:"descripcion_lugar"`

	PriorActivityReported bool   `json:"actividad_previa_reportada"`
	PriorReportCount      int    `json:"numero_reportes_previos"`
	FirstActivity         string `json:"primera_actividad"`
	LastActivity          string `json:"ultima_actividad"`
}

type WitnessSection struct {
	Pseudonym            string  `json:"pseudonimo"`
	ApproxAge            int     `json:"edad_aproximada"`
	Occupation           string  `json:"ocupacion"`
	RelationToEvent      string  `json:"relacion_evento"`
	WasPresent           bool    `json:"presencial"`
	EstimatedCredibility float64 `json:"credibilidad_estimada"`
	PriorExposure        bool    `json:"antecedentes_paranormales"`
	ContactAvailable     bool    `json:"contacto_disponible"`
	Notes                string  `json:"notas"`
}

type EntitySection struct {
	Name                string   `json:"nombre"`
	Kind                string   `json:"tipo_entidad"`
	PhysicalDescription string   `json:"descripcion_fisica"`
	Behavior            string   `json:"comportamiento"`
	HostilityLevel      int      `json:"nivel_hostilidad"`
	KnownAliases        []string `json:"alias_conocidos"`
	TriggerKeywords     []string `json:"palabras_clave"`
	FirstSeen           string   `json:"primera_aparicion"`
	LastSeen            string   `json:"ultima_aparicion"`
	Relevance           int      `json:"relevancia"`
}

type EnvironmentSection struct {
	Weather          string   `json:"clima"`
	TemperatureC     *float64 `json:"temperatura_c,omitempty"`
	HumidityPct      *int     `json:"humedad_pct,omitempty"`
	Lighting         string   `json:"iluminacion"`
	AmbientSound     string   `json:"sonido_ambiente"`
	SocialSituation  string   `json:"situacion_social"`
	LunarPhase       string   `json:"fase_lunar"`
	ReligiousOverlap string   `json:"coincidencia_religiosa"`
	HistoricOverlap  string   `json:"coincidencia_historica"`
	EmotionalState   string   `json:"estado_emocional_testigos"`
	TemporalPattern  bool     `json:"patron_temporal_detectado"`
}

// CredibilitySection carries the eleven sub-scores. Present is false when the
// editor never opened the factor panel; in that case the single
// nivel_credibilidad input stands.
type CredibilitySection struct {
	Present bool `json:"diligenciado"`

	MultipleWitnesses     int `json:"factor_multiples_testigos"`
	PhysicalEvidence      int `json:"factor_evidencia_fisica"`
	Consistency           int `json:"factor_consistencia"`
	VerifiableLocation    int `json:"factor_ubicacion_verificable"`
	HistoricalContext     int `json:"factor_contexto_historico"`
	WitnessSobriety       int `json:"factor_sobriedad_testigo"`
	PriorKnowledge        int `json:"factor_conocimiento_previo"`
	EmotionalState        int `json:"factor_estado_emocional"`
	NoSecondaryMotive     int `json:"factor_sin_motivo_secundario"`
	ExternalCorroboration int `json:"factor_corroboracion_externa"`
	Documentation         int `json:"factor_documentacion"`
}

// Scores returns the sub-scores in their canonical order.
func (c CredibilitySection) Scores() []int {
	return []int{
		c.MultipleWitnesses, c.PhysicalEvidence, c.Consistency,
		c.VerifiableLocation, c.HistoricalContext, c.WitnessSobriety,
		c.PriorKnowledge, c.EmotionalState, c.NoSecondaryMotive,
		c.ExternalCorroboration, c.Documentation,
	}
}

type RightsSection struct {
	UsageCategory        string `json:"categoria_derechos"`
	CommercialAuthorized bool   `json:"autorizacion_comercial"`
	AdaptationAuthorized bool   `json:"autorizacion_adaptacion"`
	UsageRestrictions    string `json:"restricciones_uso"`
	RightsHolderContact  string `json:"contacto_titular"`
	AuthorizationDate    string `json:"fecha_autorizacion"`
	ValidityMonths       int    `json:"vigencia_meses"`
	LegalNotes           string `json:"notas_legales"`
}

type ProjectionSection struct {
	TargetAudience   string `json:"audiencia_objetivo"`
	Engagement       int    `json:"engagement_esperado"`
	ViralPotential   int    `json:"potencial_viral"`
	EmotionalImpact  int    `json:"impacto_emocional"`
	InterestDuration int    `json:"duracion_interes"`

	TargetViews    int     `json:"vistas_objetivo"`
	TargetShares   int     `json:"compartidos_objetivo"`
	TargetComments int     `json:"comentarios_objetivo"`
	TargetRating   float64 `json:"calificacion_objetivo"`
}

type MediaSection struct {
	Kind            string   `json:"tipo_archivo"`
	URL             string   `json:"url_archivo"`
	SizeBytes       int64    `json:"tamano_bytes"`
	DurationSeconds *float64 `json:"duracion_segundos,omitempty"`
	Format          string   `json:"formato"`

	CaptureDevice    string   `json:"dispositivo_captura"`
	CaptureLatitude  *float64 `json:"captura_latitud,omitempty"`
	CaptureLongitude *float64 `json:"captura_longitud,omitempty"`
	CapturedAt       string   `json:"fecha_captura"`

	Authenticity  string `json:"verificacion_autenticidad"`
	Relevance     int    `json:"relevancia"`
	PublicAccess  bool   `json:"acceso_publico"`
	Transcription string `json:"transcripcion_analisis"`
}

// New returns an empty draft with the documented defaults in place.
func New() Draft {
	return Draft{
		Version: CurrentVersion,
		Story: StorySection{
			SourceChannel:       "otro",
			PrimaryGenre:        "otro",
			VerificationLevel:   "sin_verificar",
			ImpactWeight:        1,
			AdaptationPotential: 1,
			EventDate:           normalize.Unknown,
			EventTime:           normalize.Unknown,
			State:               "extraida",
			ContentWarnings:     []string{},
		},
		Location: LocationSection{
			Country:       "Colombia",
			FirstActivity: normalize.Unknown,
			LastActivity:  normalize.Unknown,
		},
		MainWitness:        WitnessSection{WasPresent: true},
		SecondaryWitnesses: []WitnessSection{},
		Entities:           []EntitySection{},
		Projection:         ProjectionSection{TargetAudience: "general"},
		Rights:             RightsSection{AuthorizationDate: normalize.Unknown},
		Media:              []MediaSection{},
		KeyElements:        []string{},
	}
}
