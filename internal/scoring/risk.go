package scoring

import (
	"strconv"
	"strings"
	"time"

	"assurdoc/internal/doccheck"
	"assurdoc/internal/domain"
)

// RiskResult is the outcome of the medical/lifestyle risk aggregation.
type RiskResult struct {
	ScoreRisque            float64
	ProbabiliteAcceptation float64
	NiveauRisque           string
	Facteurs               []string
}

// riskFactor is one additive contribution to the risk score.
type riskFactor struct {
	label  string
	weight func(Input) float64
}

func boolWeight(section func(domain.HealthQuestionnaire) map[string]string, cle string, w float64) func(Input) float64 {
	return func(in Input) float64 {
		if section(in.Sante)[cle] == "Oui" {
			return w
		}
		return 0
	}
}

func antecedentsOf(q domain.HealthQuestionnaire) map[string]string   { return q.AntecedentsMedicaux }
func santeActuelleOf(q domain.HealthQuestionnaire) map[string]string { return q.SanteActuelle }
func modeVieOf(q domain.HealthQuestionnaire) map[string]string       { return q.ModeVie }
func santeMentaleOf(q domain.HealthQuestionnaire) map[string]string  { return q.SanteMentale }

var riskFactors = []riskFactor{
	{"Hypertension", boolWeight(antecedentsOf, "hypertension", 0.15)},
	{"Diabète", boolWeight(antecedentsOf, "diabete", 0.15)},
	{"Maladie cardiaque", boolWeight(antecedentsOf, "maladie_cardiaque", 0.25)},
	{"Hospitalisation récente", boolWeight(antecedentsOf, "hospitalisation_recente", 0.20)},
	{"Actuellement malade", boolWeight(santeActuelleOf, "actuellement_malade", 0.15)},
	{"Symptômes persistants", func(in Input) float64 {
		if in.Sante.SanteActuelle["symptomes"] != "" {
			return 0.10
		}
		return 0
	}},
	{"Tabagisme", func(in Input) float64 {
		if in.Sante.ModeVie["fumeur"] != "Oui" {
			return 0
		}
		// Scaled by daily cigarette count.
		n, err := strconv.Atoi(in.Sante.ModeVie["nb_cigarettes"])
		switch {
		case err == nil && n >= 20:
			return 0.25
		case err == nil && n >= 10:
			return 0.20
		default:
			return 0.10
		}
	}},
	{"Alcool", func(in Input) float64 {
		if in.Sante.ModeVie["alcool"] != "Oui" {
			return 0
		}
		// Scaled by declared frequency.
		freq := strings.ToLower(in.Sante.ModeVie["frequence_alcool"])
		switch {
		case strings.Contains(freq, "quotidien") || strings.Contains(freq, "tous les jours"):
			return 0.20
		case strings.Contains(freq, "hebdo"):
			return 0.15
		default:
			return 0.10
		}
	}},
	{"Trouble de santé mentale diagnostiqué", func(in Input) float64 {
		if in.Sante.SanteMentale["depression"] == "Oui" || in.Sante.SanteMentale["anxiete"] == "Oui" {
			return 0.15
		}
		return 0
	}},
	{"Activité physique régulière", func(in Input) float64 {
		if in.Sante.ModeVie["activite_physique"] == "Oui" {
			return -0.10
		}
		return 0
	}},
}

// EvaluateRisk accumulates additive weights per confirmed condition or risk
// behavior, with one negative adjustment for regular physical activity.
// The final score is clamped to [0,1] and the acceptance probability is its
// rounded inverse.
func EvaluateRisk(in Input) RiskResult {
	var score float64
	var facteurs []string
	for _, f := range riskFactors {
		w := f.weight(in)
		if w == 0 {
			continue
		}
		score += w
		if w > 0 {
			facteurs = append(facteurs, f.label)
		}
	}

	score = clamp01(score)
	return RiskResult{
		ScoreRisque:            score,
		ProbabiliteAcceptation: round2(1 - score),
		NiveauRisque:           NiveauRisque(score),
		Facteurs:               facteurs,
	}
}

// ageFromDOB computes the age in years from an extracted date-of-birth
// string. ok is false when the date does not parse.
func ageFromDOB(dob string) (int, bool) {
	if dob == "" {
		return 0, false
	}
	d, err := doccheck.ParseDate(dob)
	if err != nil {
		return 0, false
	}
	years := int(time.Since(d).Hours() / 24 / 365.25)
	return years, true
}
