package doccheck

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assurdoc/internal/domain"
)

func TestDetectType_Priority(t *testing.T) {
	// Passport keywords win over attestation keywords present in the same text.
	got := DetectType("PASSEPORT — République Française — attestation jointe", "scan.pdf")
	assert.Equal(t, domain.DocTypePasseport, got)
}

func TestDetectType_FilenameFallback(t *testing.T) {
	assert.Equal(t, domain.DocTypePermisConduire, DetectType("texte illisible", "permis_jean.pdf"))
	assert.Equal(t, domain.DocTypeInconnu, DetectType("texte illisible", "scan001.pdf"))
}

func TestExtractDates(t *testing.T) {
	text := "Date de délivrance : 01/02/2020\nDate d'expiration : 01/02/2030\n"
	issue, expiry := ExtractDates(text)
	assert.Equal(t, "01/02/2020", issue)
	assert.Equal(t, "01/02/2030", expiry)
}

func TestCheckExpiry_Past(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	estExpire, msg := CheckExpiry("15/05/2026", now)

	assert.True(t, estExpire)
	assert.Contains(t, msg, "expiré")
	assert.Contains(t, msg, "fraude")
}

func TestCheckExpiry_SoonIsSoftWarning(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	estExpire, msg := CheckExpiry("20/06/2026", now)

	assert.False(t, estExpire)
	assert.Contains(t, msg, "proche de l'expiration")
}

func TestCheckExpiry_ValidOrMissing(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	estExpire, msg := CheckExpiry("20/06/2030", now)
	assert.False(t, estExpire)
	assert.Empty(t, msg)

	estExpire, msg = CheckExpiry("", now)
	assert.False(t, estExpire)
	assert.Empty(t, msg)
}

func TestCheckQuality_NamesAllTrippedWires(t *testing.T) {
	// OCR confidence 0.2 and 30 characters of text: the message must name
	// both the confidence and the length tripwires.
	text := strings.Repeat("a", 30)
	qualiteOK, besoinNouveau, msg := CheckQuality(0.2, text)

	assert.False(t, qualiteOK)
	assert.True(t, besoinNouveau)
	assert.Contains(t, msg, "confiance OCR")
	assert.Contains(t, msg, "trop court")
}

func TestCheckQuality_NonAlnumRatio(t *testing.T) {
	text := strings.Repeat("#@!%", 50)
	qualiteOK, besoinNouveau, msg := CheckQuality(0.9, text)

	assert.False(t, qualiteOK)
	assert.True(t, besoinNouveau)
	assert.Contains(t, msg, "illisibles")
}

func TestCheckQuality_OK(t *testing.T) {
	text := strings.Repeat("lisible123 ", 20)
	qualiteOK, besoinNouveau, msg := CheckQuality(0.9, text)

	assert.True(t, qualiteOK)
	assert.False(t, besoinNouveau)
	assert.Empty(t, msg)
}

func TestCheckCompleteness(t *testing.T) {
	fullInfo := domain.PersonalInfo{Nom: "DUPONT", Prenom: "Jean", DateNaissance: "15/03/1985"}
	fullQ := domain.NewHealthQuestionnaire()
	fullQ.AntecedentsMedicaux["diabete"] = "Non"
	fullQ.ModeVie["fumeur"] = "Oui"

	estComplet, doitVerifier, _ := CheckCompleteness(fullInfo, fullQ)
	assert.True(t, estComplet)
	assert.False(t, doitVerifier)

	// Personal info present, questionnaire missing: targeted message.
	estComplet, doitVerifier, msg := CheckCompleteness(fullInfo, domain.NewHealthQuestionnaire())
	assert.False(t, estComplet)
	assert.True(t, doitVerifier)
	assert.Contains(t, msg, "Questionnaire de santé")

	// Questionnaire present, personal info missing.
	estComplet, doitVerifier, msg = CheckCompleteness(domain.PersonalInfo{}, fullQ)
	assert.False(t, estComplet)
	assert.True(t, doitVerifier)
	assert.Contains(t, msg, "Informations personnelles")

	// Neither present.
	estComplet, doitVerifier, _ = CheckCompleteness(domain.PersonalInfo{}, domain.NewHealthQuestionnaire())
	assert.False(t, estComplet)
	assert.False(t, doitVerifier)
}

func TestChecker_Check(t *testing.T) {
	expiry := time.Now().AddDate(2, 0, 0).Format("02/01/2006")
	text := fmt.Sprintf("PASSEPORT\nNom : DUPONT\nDate d'expiration : %s\n%s", expiry, strings.Repeat("texte lisible ", 20))

	doc := domain.RawDocument{Filename: "passeport.pdf", Texte: text, ConfianceOCR: 0.9}
	v := NewChecker().Check(doc, domain.PersonalInfo{Nom: "DUPONT"}, domain.NewHealthQuestionnaire())

	require.Equal(t, domain.DocTypePasseport, v.TypeDocument)
	assert.Equal(t, expiry, v.DateExpiration)
	assert.False(t, v.EstExpire)
	assert.True(t, v.QualiteOK)
	assert.False(t, v.EstComplet)
}
