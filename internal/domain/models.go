package domain

import (
	"time"

	"github.com/google/uuid"
)

// RawDocument is the output of the OCR collaborator for one uploaded file.
// It is immutable once produced and consumed exactly once by the pipeline.
type RawDocument struct {
	Filename     string  `json:"filename"`
	MimeType     string  `json:"mime_type"`
	Texte        string  `json:"texte"`
	ConfianceOCR float64 `json:"confiance_ocr"` // 0..1
}

// PersonalInfo holds the identity fields extracted from a document.
// Unset fields stay at the empty string, never nil, so downstream string
// operations are total.
type PersonalInfo struct {
	Nom               string `json:"nom"`
	Prenom            string `json:"prenom"`
	DateNaissance     string `json:"date_naissance"`
	Sexe              string `json:"sexe"`
	Telephone         string `json:"telephone"`
	Email             string `json:"email"`
	Adresse           string `json:"adresse"`
	Ville             string `json:"ville"`
	Pays              string `json:"pays"`
	DestinationVoyage string `json:"destination_voyage"`
	FrequenceVoyage   string `json:"frequence_voyage"`
}

// HealthQuestionnaire groups extracted questionnaire answers into fixed
// sections. Missing sections are empty maps, not nil.
type HealthQuestionnaire struct {
	AntecedentsMedicaux map[string]string `json:"antecedents_medicaux"`
	SanteActuelle       map[string]string `json:"sante_actuelle"`
	ModeVie             map[string]string `json:"mode_vie"`
	Allergies           map[string]string `json:"allergies"`
	SanteMentale        map[string]string `json:"sante_mentale"`
	Voyage              map[string]string `json:"voyage"`
}

// NewHealthQuestionnaire returns a questionnaire with all sections allocated.
func NewHealthQuestionnaire() HealthQuestionnaire {
	return HealthQuestionnaire{
		AntecedentsMedicaux: map[string]string{},
		SanteActuelle:       map[string]string{},
		ModeVie:             map[string]string{},
		Allergies:           map[string]string{},
		SanteMentale:        map[string]string{},
		Voyage:              map[string]string{},
	}
}

// DocumentVerification holds document-level validity findings.
type DocumentVerification struct {
	TypeDocument         DocumentType `json:"type_document"`
	DateEmission         string       `json:"date_emission"`
	DateExpiration       string       `json:"date_expiration"`
	EstExpire            bool         `json:"est_expire"`
	MessageExpiration    string       `json:"message_expiration"`
	QualiteOK            bool         `json:"qualite_ok"`
	MessageQualite       string       `json:"message_qualite"`
	BesoinNouveauFichier bool         `json:"besoin_nouveau_fichier"`
	EstComplet           bool         `json:"est_complet"`
	DoitVerifier         bool         `json:"doit_verifier"`
	MessageCompletude    string       `json:"message_completude"`
	CoherenceInterDocs   bool         `json:"coherence_inter_docs"`
	MessageCoherence     string       `json:"message_coherence"`
}

// ScoreSet carries the scores of one analysis plus their level labels.
type ScoreSet struct {
	ScoreConfiance               float64 `json:"score_confiance"` // 0..100
	ScoreCoherence               float64 `json:"score_coherence"` // 0..100
	ScoreRisque                  float64 `json:"score_risque"`    // 0..1
	ProbabiliteAcceptation       float64 `json:"probabilite_acceptation"`
	ProbabiliteFraude            float64 `json:"probabilite_fraude"`
	ProbabiliteConfianceAssureur float64 `json:"probabilite_confiance_assureur"`
	NiveauRisque                 string  `json:"niveau_risque"`
	NiveauFraude                 string  `json:"niveau_fraude"`
	NiveauConfiance              string  `json:"niveau_confiance"`
}

// Incoherence is an internally-inconsistent pair of extracted answers.
type Incoherence struct {
	Champ       string   `json:"champ"`
	Description string   `json:"description"`
	Valeur1     string   `json:"valeur_1"`
	Valeur2     string   `json:"valeur_2"`
	Severite    Severity `json:"severite"`
}

// FraudSignal is a finding strong enough to independently raise the fraud
// probability.
type FraudSignal struct {
	Champ       string `json:"champ"`
	Description string `json:"description"`
}

// DocumentAnalysis is the analysis of a single uploaded document.
type DocumentAnalysis struct {
	ID            uuid.UUID            `json:"id"`
	Document      RawDocument          `json:"document"`
	Personal      PersonalInfo         `json:"informations_personnelles"`
	Sante         HealthQuestionnaire  `json:"questionnaire_sante"`
	Verification  DocumentVerification `json:"verification"`
	Scores        ScoreSet             `json:"scores"`
	Incoherences  []Incoherence        `json:"incoherences"`
	SignauxFraude []FraudSignal        `json:"signaux_fraude"`
}

// DemandeAnalysis is the aggregate for one underwriting request. It is
// created once per analysis request and immutable after synthesis.
type DemandeAnalysis struct {
	DemandeID         string              `json:"demande_id"`
	Documents         []DocumentAnalysis  `json:"documents"`
	Personal          PersonalInfo        `json:"informations_personnelles"`
	Sante             HealthQuestionnaire `json:"questionnaire_sante"`
	Scores            ScoreSet            `json:"scores"`
	Avis              Avis                `json:"avis"`
	ActionRecommandee string              `json:"action_recommandee"`
	Justification     string              `json:"justification"`
	Incoherences      []Incoherence       `json:"incoherences"`
	SignauxFraude     []FraudSignal       `json:"signaux_fraude"`
	AssureurIDs       []uuid.UUID         `json:"assureur_ids"`
	CreatedAt         time.Time           `json:"created_at"`
}

// Insurer is read-only reference data consumed by the routing engine.
type Insurer struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Nom           string    `db:"nom" json:"nom"`
	Email         string    `db:"email" json:"email"`
	Zones         []string  `json:"zones"`
	Pays          []string  `json:"pays"`
	International bool      `db:"international" json:"international"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// InsurerNotification is the routing notification record emitted per
// concerned insurer. Delivery itself is out of scope; only the record and
// its status are part of this engine's contract.
type InsurerNotification struct {
	ID        uuid.UUID          `db:"id" json:"id"`
	DemandeID string             `db:"demande_id" json:"demande_id"`
	InsurerID uuid.UUID          `db:"insurer_id" json:"insurer_id"`
	Nom       string             `db:"nom" json:"insurer_name"`
	Status    NotificationStatus `db:"status" json:"status"`
	Method    string             `db:"method" json:"method"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt time.Time          `db:"updated_at" json:"updated_at"`
}

// InsurerStats holds aggregate analysis statistics for one insurer.
type InsurerStats struct {
	InsurerID          uuid.UUID `db:"insurer_id" json:"insurer_id"`
	TotalAnalyses      int       `db:"total_analyses" json:"total_analyses"`
	AvisFavorable      int       `db:"avis_favorable" json:"avis_favorable"`
	AvisReserve        int       `db:"avis_reserve" json:"avis_reserve"`
	AvisDefavorable    int       `db:"avis_defavorable" json:"avis_defavorable"`
	AvisRejetFraude    int       `db:"avis_rejet_fraude" json:"avis_rejet_fraude"`
	AnalysesAujourdhui int       `db:"analyses_aujourdhui" json:"analyses_aujourdhui"`
	TauxAcceptationMoy float64   `db:"taux_acceptation_moy" json:"taux_acceptation_moy"`
	TauxFraudeMoy      float64   `db:"taux_fraude_moy" json:"taux_fraude_moy"`
}

// User is a back-office actor whose role scopes which analysis view they
// receive.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
