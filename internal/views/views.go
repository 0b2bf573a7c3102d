// Package views projects a full analysis into the subset each back-office
// role is allowed to see. Projections only ever narrow: no view exposes a
// field absent from the underlying analysis.
package views

import (
	"fmt"
	"math"

	"assurdoc/internal/domain"
	"assurdoc/internal/scoring"
)

// Formatter projects an analysis into one role's view. Project never
// mutates the analysis.
type Formatter interface {
	Role() domain.UserRole
	Project(a *domain.DemandeAnalysis) any
}

// For returns the formatter for a role. Unknown roles are an error, never
// a fallback to a wider view.
func For(role domain.UserRole) (Formatter, error) {
	switch role {
	case domain.RoleAssureur:
		return assureurFormatter{}, nil
	case domain.RoleMedecin:
		return medecinFormatter{}, nil
	case domain.RoleTechnicien:
		return technicienFormatter{}, nil
	case domain.RoleAgent:
		return agentFormatter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, role)
	}
}

// DocumentSummary is the per-document validity digest shared by the
// technicien and agent views.
type DocumentSummary struct {
	Filename     string                      `json:"filename"`
	ConfianceOCR float64                     `json:"confiance_ocr"`
	Verification domain.DocumentVerification `json:"verification"`
}

func documentSummaries(a *domain.DemandeAnalysis) []DocumentSummary {
	out := make([]DocumentSummary, 0, len(a.Documents))
	for _, d := range a.Documents {
		out = append(out, DocumentSummary{
			Filename:     d.Document.Filename,
			ConfianceOCR: d.Document.ConfianceOCR,
			Verification: d.Verification,
		})
	}
	return out
}

// AssureurView carries the commercial decision and its fraud context, but
// never the medical questionnaire.
type AssureurView struct {
	DemandeID         string               `json:"demande_id"`
	Personal          domain.PersonalInfo  `json:"informations_personnelles"`
	Scores            domain.ScoreSet      `json:"scores"`
	Avis              domain.Avis          `json:"avis"`
	ActionRecommandee string               `json:"action_recommandee"`
	Justification     string               `json:"justification"`
	Incoherences      []domain.Incoherence `json:"incoherences"`
	SignauxFraude     []domain.FraudSignal `json:"signaux_fraude"`
}

type assureurFormatter struct{}

func (assureurFormatter) Role() domain.UserRole { return domain.RoleAssureur }

func (assureurFormatter) Project(a *domain.DemandeAnalysis) any {
	return AssureurView{
		DemandeID:         a.DemandeID,
		Personal:          a.Personal,
		Scores:            a.Scores,
		Avis:              a.Avis,
		ActionRecommandee: a.ActionRecommandee,
		Justification:     a.Justification,
		Incoherences:      a.Incoherences,
		SignauxFraude:     a.SignauxFraude,
	}
}

// MedecinView carries the full medical picture and the risk reading, but
// none of the fraud machinery or the commercial decision.
type MedecinView struct {
	DemandeID      string                     `json:"demande_id"`
	Personal       domain.PersonalInfo        `json:"informations_personnelles"`
	Sante          domain.HealthQuestionnaire `json:"questionnaire_sante"`
	ScoreRisque    float64                    `json:"score_risque"`
	NiveauRisque   string                     `json:"niveau_risque"`
	FacteursRisque []string                   `json:"facteurs_risque"`
	Incoherences   []domain.Incoherence       `json:"incoherences"`
}

type medecinFormatter struct{}

func (medecinFormatter) Role() domain.UserRole { return domain.RoleMedecin }

func (medecinFormatter) Project(a *domain.DemandeAnalysis) any {
	risk := scoring.EvaluateRisk(scoring.Input{Personal: a.Personal, Sante: a.Sante})
	return MedecinView{
		DemandeID:      a.DemandeID,
		Personal:       a.Personal,
		Sante:          a.Sante,
		ScoreRisque:    a.Scores.ScoreRisque,
		NiveauRisque:   a.Scores.NiveauRisque,
		FacteursRisque: risk.Facteurs,
		Incoherences:   a.Incoherences,
	}
}

// TechnicienView carries document validity findings only: no identity
// beyond filenames, no health data, no scores.
type TechnicienView struct {
	DemandeID string            `json:"demande_id"`
	Documents []DocumentSummary `json:"documents"`
}

type technicienFormatter struct{}

func (technicienFormatter) Role() domain.UserRole { return domain.RoleTechnicien }

func (technicienFormatter) Project(a *domain.DemandeAnalysis) any {
	return TechnicienView{
		DemandeID: a.DemandeID,
		Documents: documentSummaries(a),
	}
}

// AgentView is the union view for case handling, with a single 0-100
// synthesis score and the concrete follow-up checklist.
type AgentView struct {
	DemandeID         string                     `json:"demande_id"`
	Personal          domain.PersonalInfo        `json:"informations_personnelles"`
	Sante             domain.HealthQuestionnaire `json:"questionnaire_sante"`
	Documents         []DocumentSummary          `json:"documents"`
	Scores            domain.ScoreSet            `json:"scores"`
	ScoreGlobal       float64                    `json:"score_global"`
	Avis              domain.Avis                `json:"avis"`
	ActionRecommandee string                     `json:"action_recommandee"`
	Justification     string                     `json:"justification"`
	Incoherences      []domain.Incoherence       `json:"incoherences"`
	SignauxFraude     []domain.FraudSignal       `json:"signaux_fraude"`
	Checklist         []string                   `json:"checklist"`
}

type agentFormatter struct{}

func (agentFormatter) Role() domain.UserRole { return domain.RoleAgent }

func (agentFormatter) Project(a *domain.DemandeAnalysis) any {
	return AgentView{
		DemandeID:         a.DemandeID,
		Personal:          a.Personal,
		Sante:             a.Sante,
		Documents:         documentSummaries(a),
		Scores:            a.Scores,
		ScoreGlobal:       ScoreGlobal(a.Scores),
		Avis:              a.Avis,
		ActionRecommandee: a.ActionRecommandee,
		Justification:     a.Justification,
		Incoherences:      a.Incoherences,
		SignauxFraude:     a.SignauxFraude,
		Checklist:         checklist(a),
	}
}

// ScoreGlobal folds the score set into a single 0-100 number for triage
// lists: 40% acceptation, 30% coherence, 20% insurer confidence, minus 10%
// fraud.
func ScoreGlobal(s domain.ScoreSet) float64 {
	g := 40*s.ProbabiliteAcceptation +
		30*(s.ScoreCoherence/100) +
		20*s.ProbabiliteConfianceAssureur -
		10*s.ProbabiliteFraude
	return math.Round(math.Min(100, math.Max(0, g)))
}

// checklist lists the concrete follow-ups an agent should run, ending with
// the recommended action.
func checklist(a *domain.DemandeAnalysis) []string {
	var items []string
	for _, d := range a.Documents {
		if d.Verification.EstExpire {
			items = append(items, fmt.Sprintf("Demander un document en cours de validité (%s)", d.Document.Filename))
		}
		if d.Verification.BesoinNouveauFichier {
			items = append(items, fmt.Sprintf("Demander un nouveau fichier lisible (%s)", d.Document.Filename))
		}
		if d.Verification.DoitVerifier {
			items = append(items, fmt.Sprintf("Vérifier manuellement la complétude du dossier (%s)", d.Document.Filename))
		}
	}
	if a.Scores.ProbabiliteFraude >= 0.5 {
		items = append(items, "Transmettre le dossier à la cellule anti-fraude")
	}
	items = append(items, a.ActionRecommandee)
	return items
}
