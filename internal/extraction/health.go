package extraction

import (
	"regexp"
	"strings"

	"assurdoc/internal/domain"
)

// healthRule binds one questionnaire answer to its section and ordered
// pattern list. Boolean answers are normalized to "Oui"/"Non"; value answers
// keep the cleaned capture.
type healthRule struct {
	section  func(*domain.HealthQuestionnaire) map[string]string
	cle      string
	boolean  bool
	patterns []*regexp.Regexp
}

func antecedents(q *domain.HealthQuestionnaire) map[string]string   { return q.AntecedentsMedicaux }
func santeActuelle(q *domain.HealthQuestionnaire) map[string]string { return q.SanteActuelle }
func modeVie(q *domain.HealthQuestionnaire) map[string]string       { return q.ModeVie }
func allergies(q *domain.HealthQuestionnaire) map[string]string    { return q.Allergies }
func santeMentale(q *domain.HealthQuestionnaire) map[string]string { return q.SanteMentale }
func voyage(q *domain.HealthQuestionnaire) map[string]string       { return q.Voyage }

var healthRules = []healthRule{
	// Antécédents médicaux
	{antecedents, "aucune_maladie", true, compile(
		`(?im)^\s*aucune\s+maladie\s*[:\-]?\s*` + yesNoValue,
		`(?im)^\s*maladies?(?:\s+connues?)?\s*[:\-]\s*(aucune)\b`,
		`(?im)^\s*ant[ée]c[ée]dents?(?:\s+m[ée]dicaux)?\s*[:\-]\s*(aucune?)\b`,
	)},
	{antecedents, "hypertension", true, compile(
		`(?i)hypertension(?:\s+art[ée]rielle)?\s*[:\-]?\s*` + yesNoValue,
		`(?i)tension\s+[ée]lev[ée]e\s*[:\-]?\s*` + yesNoValue,
	)},
	{antecedents, "diabete", true, compile(
		`(?i)diab[eè]te\s*(?:de\s+type\s+[12])?\s*[:\-]?\s*` + yesNoValue,
	)},
	{antecedents, "maladie_cardiaque", true, compile(
		`(?i)maladies?\s+cardiaques?\s*[:\-]?\s*` + yesNoValue,
		`(?i)probl[eè]mes?\s+cardiaques?\s*[:\-]?\s*` + yesNoValue,
		`(?i)cardiopathie\s*[:\-]?\s*` + yesNoValue,
	)},
	{antecedents, "asthme", true, compile(
		`(?i)asthme\s*[:\-]?\s*` + yesNoValue,
	)},
	{antecedents, "cancer", true, compile(
		`(?i)cancer\s*[:\-]?\s*` + yesNoValue,
	)},
	{antecedents, "hospitalisation_recente", true, compile(
		`(?i)hospitalisations?(?:\s+r[ée]centes?|\s+(?:ces\s+)?derni[eè]res?\s+\d+\s+mois)?\s*[:\-]?\s*` + yesNoValue,
	)},

	// Santé actuelle
	{santeActuelle, "actuellement_malade", true, compile(
		`(?i)actuellement\s+malade\s*[:\-]?\s*` + yesNoValue,
		`(?i)[eê]tes[\s\-]vous\s+malade\s*\??\s*[:\-]?\s*` + yesNoValue,
	)},
	{santeActuelle, "symptomes", false, compile(
		`(?im)^\s*sympt[oô]mes?\s*[:\-]\s*` + lineValue,
	)},
	{santeActuelle, "traitement_en_cours", true, compile(
		`(?i)traitement\s+en\s+cours\s*[:\-]?\s*` + yesNoValue,
		`(?i)m[ée]dicaments?\s+actuels?\s*[:\-]?\s*` + yesNoValue,
		`(?i)sous\s+traitement\s*[:\-]?\s*` + yesNoValue,
	)},
	{santeActuelle, "type_traitement", false, compile(
		`(?im)^\s*type\s+de\s+traitement\s*[:\-]\s*` + lineValue,
		`(?im)^\s*nom\s+du\s+m[ée]dicament\s*[:\-]\s*` + lineValue,
	)},

	// Mode de vie
	{modeVie, "fumeur", true, compile(
		`(?i)fumeur(?:\s*\(se\))?\s*\??\s*[:\-]?\s*` + yesNoValue,
		`(?i)fumez[\s\-]vous\s*\??\s*[:\-]?\s*` + yesNoValue,
		`(?i)tabac\s*[:\-]?\s*` + yesNoValue,
	)},
	{modeVie, "nb_cigarettes", false, compile(
		`(?i)cigarettes?(?:\s+par\s+jour)?\s*[:\-]?\s*(\d{1,3})\b`,
		`(?i)(\d{1,3})\s*cigarettes?\s*(?:par\s+jour|/\s*jour)?`,
	)},
	{modeVie, "alcool", true, compile(
		`(?i)(?:consommation\s+d')?alcool\s*\??\s*[:\-]?\s*` + yesNoValue,
		`(?i)buvez[\s\-]vous\s*\??\s*[:\-]?\s*` + yesNoValue,
	)},
	{modeVie, "frequence_alcool", false, compile(
		`(?i)fr[ée]quence(?:\s+de\s+consommation)?(?:\s+d'alcool)?\s*[:\-]\s*(quotidienne?|tous\s+les\s+jours|hebdomadaire|occasionnelle?|rare(?:ment)?)`,
		`(?im)^\s*alcool\s*[:\-]\s*(quotidienne?|hebdomadaire|occasionnelle?|rare(?:ment)?)`,
	)},
	{modeVie, "activite_physique", true, compile(
		`(?i)activit[ée]s?\s+physiques?(?:\s+r[ée]guli[eè]res?)?\s*\??\s*[:\-]?\s*` + yesNoValue,
		`(?i)sport\s*[:\-]?\s*` + yesNoValue,
	)},

	// Allergies
	{allergies, "allergies_alimentaires", true, compile(
		`(?i)allergies?\s+alimentaires?\s*[:\-]?\s*` + yesNoValue,
	)},
	{allergies, "allergies_medicamenteuses", true, compile(
		`(?i)allergies?\s+(?:m[ée]dicamenteuses?|aux\s+m[ée]dicaments?)\s*[:\-]?\s*` + yesNoValue,
	)},
	{allergies, "autres_allergies", false, compile(
		`(?im)^\s*autres?\s+allergies?\s*[:\-]\s*` + lineValue,
	)},

	// Santé mentale
	{santeMentale, "depression", true, compile(
		`(?i)d[ée]pression\s*[:\-]?\s*` + yesNoValue,
	)},
	{santeMentale, "anxiete", true, compile(
		`(?i)anxi[ée]t[ée]\s*[:\-]?\s*` + yesNoValue,
		`(?i)troubles?\s+anxieux\s*[:\-]?\s*` + yesNoValue,
	)},
	{santeMentale, "suivi_psychologique", true, compile(
		`(?i)suivi\s+psy(?:chologique|chiatrique)?\s*[:\-]?\s*` + yesNoValue,
	)},

	// Voyage (request-level section)
	{voyage, "destination", false, compile(
		`(?im)^\s*destination(?:\s+du\s+voyage)?\s*[:\-]\s*` + lineValue,
	)},
	{voyage, "duree", false, compile(
		`(?i)dur[ée]e\s+(?:du\s+)?(?:s[ée]jour|voyage)\s*[:\-]\s*` + lineValue,
	)},
	{voyage, "motif", false, compile(
		`(?i)motif\s+(?:du\s+)?voyage\s*[:\-]\s*` + lineValue,
	)},
}

// ExtractHealthQuestionnaire maps raw OCR text to the fixed questionnaire
// sections. The first matching pattern per answer wins. Boolean answers are
// normalized to "Oui"/"Non"; tokens that are neither affirmative nor negative
// leave the answer unset.
func ExtractHealthQuestionnaire(text string) domain.HealthQuestionnaire {
	q := domain.NewHealthQuestionnaire()
	for _, rule := range healthRules {
		section := rule.section(&q)
		if _, done := section[rule.cle]; done {
			continue
		}
		v := firstMatch(text, rule.patterns)
		if v == "" {
			continue
		}
		if rule.boolean {
			lv := strings.ToLower(v)
			switch {
			case rule.cle == "aucune_maladie" && (lv == "aucune" || lv == "aucun"):
				// "Maladies: Aucune" is an affirmative answer to aucune_maladie.
				section[rule.cle] = "Oui"
			case isAffirmative(v):
				section[rule.cle] = "Oui"
			case isNegative(v):
				section[rule.cle] = "Non"
			}
			continue
		}
		section[rule.cle] = v
	}
	return q
}
