package scoring

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"assurdoc/internal/domain"
)

// Input bundles the extracted fields one coherence pass runs over.
type Input struct {
	Personal domain.PersonalInfo
	Sante    domain.HealthQuestionnaire
}

// Finding is the outcome of one triggered rule: an incoherence, optionally
// escalated to a fraud signal.
type Finding struct {
	Incoherence domain.Incoherence
	Fraude      *domain.FraudSignal
}

// CoherenceRule checks one specific contradiction pattern. Rules are
// independent: only the textual order of the output depends on evaluation
// order, never the score.
type CoherenceRule struct {
	Key     string
	Penalty float64
	Check   func(Input) *Finding
}

// CoherenceResult is the outcome of a full coherence pass.
type CoherenceResult struct {
	Score         float64
	Incoherences  []domain.Incoherence
	SignauxFraude []domain.FraudSignal
}

var emailShape = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
var dobShape = regexp.MustCompile(`^\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}$`)

var maladiesSpecifiques = []struct{ cle, label string }{
	{"hypertension", "Hypertension"},
	{"diabete", "Diabète"},
	{"maladie_cardiaque", "Maladie cardiaque"},
	{"asthme", "Asthme"},
	{"cancer", "Cancer"},
}

func oui(section map[string]string, cle string) bool { return section[cle] == "Oui" }
func non(section map[string]string, cle string) bool { return section[cle] == "Non" }

// CoherenceRules returns the fixed, ordered rule list. Each triggered rule
// appends a human-readable incoherence, optionally a fraud signal, and
// subtracts a fixed point value from the running score.
func CoherenceRules() []CoherenceRule {
	return []CoherenceRule{
		{
			Key: "coh.aucune_maladie.contradiction", Penalty: 20,
			Check: func(in Input) *Finding {
				if !oui(in.Sante.AntecedentsMedicaux, "aucune_maladie") {
					return nil
				}
				for _, m := range maladiesSpecifiques {
					if oui(in.Sante.AntecedentsMedicaux, m.cle) {
						return &Finding{
							Incoherence: domain.Incoherence{
								Champ:       m.cle,
								Description: fmt.Sprintf(`"Aucune maladie" et "%s" cochée`, m.label),
								Valeur1:     "Aucune maladie: Oui",
								Valeur2:     m.label + ": Oui",
								Severite:    domain.SeverityWarning,
							},
							Fraude: &domain.FraudSignal{
								Champ:       m.cle,
								Description: fmt.Sprintf("Déclaration contradictoire : aucune maladie déclarée mais %s cochée", strings.ToLower(m.label)),
							},
						}
					}
				}
				return nil
			},
		},
		{
			Key: "coh.malade.sans_symptomes", Penalty: 10,
			Check: func(in Input) *Finding {
				if !oui(in.Sante.SanteActuelle, "actuellement_malade") || in.Sante.SanteActuelle["symptomes"] != "" {
					return nil
				}
				return &Finding{
					Incoherence: domain.Incoherence{
						Champ:       "symptomes",
						Description: "Actuellement malade sans aucun symptôme déclaré",
						Valeur1:     "Actuellement malade: Oui",
						Valeur2:     "Symptômes: (vide)",
						Severite:    domain.SeverityWarning,
					},
				}
			},
		},
		{
			Key: "coh.traitement.sans_maladie", Penalty: 15,
			Check: func(in Input) *Finding {
				if !oui(in.Sante.SanteActuelle, "traitement_en_cours") {
					return nil
				}
				if in.Sante.SanteActuelle["type_traitement"] != "" {
					return nil
				}
				for _, m := range maladiesSpecifiques {
					if oui(in.Sante.AntecedentsMedicaux, m.cle) {
						return nil
					}
				}
				return &Finding{
					Incoherence: domain.Incoherence{
						Champ:       "traitement_en_cours",
						Description: "Traitement en cours sans maladie déclarée ni type de traitement",
						Valeur1:     "Traitement en cours: Oui",
						Valeur2:     "Maladies/type de traitement: (vide)",
						Severite:    domain.SeverityWarning,
					},
				}
			},
		},
		{
			Key: "coh.fumeur.zero_cigarettes", Penalty: 5,
			Check: func(in Input) *Finding {
				if !oui(in.Sante.ModeVie, "fumeur") || in.Sante.ModeVie["nb_cigarettes"] != "0" {
					return nil
				}
				return &Finding{
					Incoherence: domain.Incoherence{
						Champ:       "nb_cigarettes",
						Description: "Fumeur déclaré avec zéro cigarette par jour",
						Valeur1:     "Fumeur: Oui",
						Valeur2:     "Cigarettes: 0",
						Severite:    domain.SeverityWarning,
					},
				}
			},
		},
		{
			Key: "coh.non_fumeur.avec_cigarettes", Penalty: 10,
			Check: func(in Input) *Finding {
				if !non(in.Sante.ModeVie, "fumeur") {
					return nil
				}
				n, err := strconv.Atoi(in.Sante.ModeVie["nb_cigarettes"])
				if err != nil || n <= 0 {
					return nil
				}
				return &Finding{
					Incoherence: domain.Incoherence{
						Champ:       "fumeur",
						Description: "Non-fumeur déclaré avec une consommation de cigarettes",
						Valeur1:     "Fumeur: Non",
						Valeur2:     fmt.Sprintf("Cigarettes: %d", n),
						Severite:    domain.SeverityWarning,
					},
					Fraude: &domain.FraudSignal{
						Champ:       "fumeur",
						Description: "Consommation de tabac déclarée malgré un statut non-fumeur",
					},
				}
			},
		},
		{
			Key: "coh.alcool.sans_frequence", Penalty: 5,
			Check: func(in Input) *Finding {
				if !oui(in.Sante.ModeVie, "alcool") || in.Sante.ModeVie["frequence_alcool"] != "" {
					return nil
				}
				return &Finding{
					Incoherence: domain.Incoherence{
						Champ:       "frequence_alcool",
						Description: "Consommation d'alcool déclarée sans fréquence",
						Valeur1:     "Alcool: Oui",
						Valeur2:     "Fréquence: (vide)",
						Severite:    domain.SeverityWarning,
					},
				}
			},
		},
		{
			Key: "coh.hospitalisation.aucune_maladie", Penalty: 15,
			Check: func(in Input) *Finding {
				if !oui(in.Sante.AntecedentsMedicaux, "hospitalisation_recente") || !oui(in.Sante.AntecedentsMedicaux, "aucune_maladie") {
					return nil
				}
				return &Finding{
					Incoherence: domain.Incoherence{
						Champ:       "hospitalisation_recente",
						Description: "Hospitalisation récente avec aucune maladie déclarée",
						Valeur1:     "Hospitalisation récente: Oui",
						Valeur2:     "Aucune maladie: Oui",
						Severite:    domain.SeverityWarning,
					},
					Fraude: &domain.FraudSignal{
						Champ:       "hospitalisation_recente",
						Description: "Hospitalisation récente incompatible avec l'absence de maladie déclarée",
					},
				}
			},
		},
		{
			Key: "coh.suivi_psy.sans_trouble", Penalty: 5,
			Check: func(in Input) *Finding {
				if !oui(in.Sante.SanteMentale, "suivi_psychologique") {
					return nil
				}
				if oui(in.Sante.SanteMentale, "depression") || oui(in.Sante.SanteMentale, "anxiete") {
					return nil
				}
				return &Finding{
					Incoherence: domain.Incoherence{
						Champ:       "suivi_psychologique",
						Description: "Suivi psychologique déclaré sans trouble associé",
						Valeur1:     "Suivi psychologique: Oui",
						Valeur2:     "Dépression/anxiété: Non",
						Severite:    domain.SeverityWarning,
					},
				}
			},
		},
		{
			Key: "coh.email.format", Penalty: 5,
			Check: func(in Input) *Finding {
				if in.Personal.Email == "" || emailShape.MatchString(in.Personal.Email) {
					return nil
				}
				return &Finding{
					Incoherence: domain.Incoherence{
						Champ:       "email",
						Description: "Adresse email au format invalide",
						Valeur1:     in.Personal.Email,
						Severite:    domain.SeverityWarning,
					},
				}
			},
		},
		{
			Key: "coh.telephone.format", Penalty: 5,
			Check: func(in Input) *Finding {
				if in.Personal.Telephone == "" {
					return nil
				}
				digits := 0
				for _, r := range in.Personal.Telephone {
					if r >= '0' && r <= '9' {
						digits++
					}
				}
				if digits >= 8 && digits <= 15 {
					return nil
				}
				return &Finding{
					Incoherence: domain.Incoherence{
						Champ:       "telephone",
						Description: "Numéro de téléphone au format invalide",
						Valeur1:     in.Personal.Telephone,
						Severite:    domain.SeverityWarning,
					},
				}
			},
		},
		{
			Key: "coh.date_naissance.format", Penalty: 10,
			Check: func(in Input) *Finding {
				if in.Personal.DateNaissance == "" || dobShape.MatchString(in.Personal.DateNaissance) {
					return nil
				}
				return &Finding{
					Incoherence: domain.Incoherence{
						Champ:       "date_naissance",
						Description: "Date de naissance au format invalide",
						Valeur1:     in.Personal.DateNaissance,
						Severite:    domain.SeverityWarning,
					},
				}
			},
		},
		{
			Key: "coh.date_naissance.incoherente", Penalty: 15,
			Check: func(in Input) *Finding {
				age, ok := ageFromDOB(in.Personal.DateNaissance)
				if !ok || (age >= 0 && age <= 120) {
					return nil
				}
				return &Finding{
					Incoherence: domain.Incoherence{
						Champ:       "date_naissance",
						Description: fmt.Sprintf("Date de naissance incohérente (âge calculé : %d ans)", age),
						Valeur1:     in.Personal.DateNaissance,
						Severite:    domain.SeverityWarning,
					},
					Fraude: &domain.FraudSignal{
						Champ:       "date_naissance",
						Description: "Date de naissance implausible",
					},
				}
			},
		},
		{
			Key: "coh.sexe.valeur", Penalty: 5,
			Check: func(in Input) *Finding {
				if in.Personal.Sexe == "" {
					return nil
				}
				switch strings.ToUpper(strings.TrimSpace(in.Personal.Sexe)) {
				case "M", "F", "MASCULIN", "FÉMININ", "FEMININ", "HOMME", "FEMME", "MALE", "FEMALE":
					return nil
				}
				return &Finding{
					Incoherence: domain.Incoherence{
						Champ:       "sexe",
						Description: "Valeur de sexe non reconnue",
						Valeur1:     in.Personal.Sexe,
						Severite:    domain.SeverityWarning,
					},
				}
			},
		},
	}
}

// EvaluateCoherence applies the rule checks in order. The score starts at
// 100, each triggered rule subtracts its penalty, and the result is clamped
// to [0,100]. Findings accumulate and are never deduplicated here.
func EvaluateCoherence(in Input) CoherenceResult {
	res := CoherenceResult{Score: 100}
	for _, rule := range CoherenceRules() {
		f := rule.Check(in)
		if f == nil {
			continue
		}
		res.Score -= rule.Penalty
		res.Incoherences = append(res.Incoherences, f.Incoherence)
		if f.Fraude != nil {
			res.SignauxFraude = append(res.SignauxFraude, *f.Fraude)
		}
	}
	res.Score = clamp100(res.Score)
	return res
}
