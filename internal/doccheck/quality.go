package doccheck

import (
	"fmt"
	"strings"
	"unicode"

	"assurdoc/internal/domain"
)

// Quality tripwires. Any one of them forces a new file upload.
const (
	minOCRConfidence = 0.5
	minTextLength    = 100
	maxNonAlnumRatio = 0.5
)

// CheckQuality judges document legibility by three independent tripwires:
// OCR confidence, extracted text length, and the non-alphanumeric character
// ratio. The message names every tripped wire.
func CheckQuality(confidence float64, text string) (qualiteOK, besoinNouveauFichier bool, message string) {
	var problems []string

	if confidence < minOCRConfidence {
		problems = append(problems, fmt.Sprintf("confiance OCR trop faible (%.2f < %.2f)", confidence, minOCRConfidence))
	}
	if n := len([]rune(text)); n < minTextLength {
		problems = append(problems, fmt.Sprintf("texte extrait trop court (%d < %d caractères)", n, minTextLength))
	}
	if ratio := nonAlnumRatio(text); ratio > maxNonAlnumRatio {
		problems = append(problems, fmt.Sprintf("trop de caractères illisibles (ratio %.2f)", ratio))
	}

	if len(problems) > 0 {
		return false, true, "Qualité insuffisante : " + strings.Join(problems, " ; ")
	}
	return true, false, ""
}

// nonAlnumRatio is the share of non-letter, non-digit characters in the
// text, whitespace excluded.
func nonAlnumRatio(text string) float64 {
	var total, nonAlnum int
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			nonAlnum++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(nonAlnum) / float64(total)
}

// Key questionnaire answers counted toward completeness.
var keyQuestionnaireAnswers = []struct {
	section func(domain.HealthQuestionnaire) map[string]string
	cle     string
}{
	{func(q domain.HealthQuestionnaire) map[string]string { return q.AntecedentsMedicaux }, "aucune_maladie"},
	{func(q domain.HealthQuestionnaire) map[string]string { return q.AntecedentsMedicaux }, "hypertension"},
	{func(q domain.HealthQuestionnaire) map[string]string { return q.AntecedentsMedicaux }, "diabete"},
	{func(q domain.HealthQuestionnaire) map[string]string { return q.AntecedentsMedicaux }, "maladie_cardiaque"},
	{func(q domain.HealthQuestionnaire) map[string]string { return q.SanteActuelle }, "actuellement_malade"},
	{func(q domain.HealthQuestionnaire) map[string]string { return q.ModeVie }, "fumeur"},
	{func(q domain.HealthQuestionnaire) map[string]string { return q.ModeVie }, "alcool"},
}

// CheckCompleteness requires at least 2 of 3 core identity fields and at
// least 2 of 7 key questionnaire answers. Partial presence of only one
// category yields a targeted "verify" flag naming the missing category.
func CheckCompleteness(info domain.PersonalInfo, q domain.HealthQuestionnaire) (estComplet, doitVerifier bool, message string) {
	var persCount int
	for _, v := range []string{info.Nom, info.Prenom, info.DateNaissance} {
		if v != "" {
			persCount++
		}
	}
	persOK := persCount >= 2

	var santeCount int
	for _, key := range keyQuestionnaireAnswers {
		if key.section(q)[key.cle] != "" {
			santeCount++
		}
	}
	santeOK := santeCount >= 2

	switch {
	case persOK && santeOK:
		return true, false, ""
	case persOK:
		return false, true, "Questionnaire de santé incomplet : vérification manuelle requise"
	case santeOK:
		return false, true, "Informations personnelles incomplètes : vérification manuelle requise"
	default:
		return false, false, "Document incomplet : informations personnelles et questionnaire de santé manquants"
	}
}
