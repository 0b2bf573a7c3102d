package extraction

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleText = `
Nom : DUPONT
Prénom : Jean
Date de naissance : 15/03/1985
Sexe : M
Téléphone : 06 12 34 56 78
Email : jean.dupont@example.fr
Adresse : 12 rue de la Paix
Ville : Lyon
Pays : France
Destination du voyage : Thaïlande

QUESTIONNAIRE DE SANTÉ
Aucune maladie : Non
Hypertension : Oui
Diabète : Non
Maladie cardiaque : Non
Actuellement malade : Non
Fumeur : Oui
Cigarettes par jour : 10
Alcool : Non
Activité physique régulière : Oui
`

func TestExtractPersonalInfo(t *testing.T) {
	info := ExtractPersonalInfo(sampleText)

	assert.Equal(t, "DUPONT", info.Nom)
	assert.Equal(t, "Jean", info.Prenom)
	assert.Equal(t, "15/03/1985", info.DateNaissance)
	assert.Equal(t, "M", info.Sexe)
	assert.Equal(t, "06 12 34 56 78", info.Telephone)
	assert.Equal(t, "jean.dupont@example.fr", info.Email)
	assert.Equal(t, "12 rue de la Paix", info.Adresse)
	assert.Equal(t, "Lyon", info.Ville)
	assert.Equal(t, "France", info.Pays)
	assert.Equal(t, "Thaïlande", info.DestinationVoyage)
}

func TestExtractPersonalInfo_EmptyText(t *testing.T) {
	info := ExtractPersonalInfo("")

	// Absence of a match is a normal state: fields stay empty, never nil.
	assert.Equal(t, "", info.Nom)
	assert.Equal(t, "", info.Email)
	assert.Equal(t, "", info.DateNaissance)
}

func TestExtractPersonalInfo_ValueClipping(t *testing.T) {
	long := "Adresse : " + strings.Repeat("a", 400) + "\n"
	info := ExtractPersonalInfo(long)

	require.NotEmpty(t, info.Adresse)
	assert.LessOrEqual(t, len([]rune(info.Adresse)), 200)
}

func TestExtractHealthQuestionnaire(t *testing.T) {
	q := ExtractHealthQuestionnaire(sampleText)

	assert.Equal(t, "Non", q.AntecedentsMedicaux["aucune_maladie"])
	assert.Equal(t, "Oui", q.AntecedentsMedicaux["hypertension"])
	assert.Equal(t, "Non", q.AntecedentsMedicaux["diabete"])
	assert.Equal(t, "Oui", q.ModeVie["fumeur"])
	assert.Equal(t, "10", q.ModeVie["nb_cigarettes"])
	assert.Equal(t, "Non", q.ModeVie["alcool"])
	assert.Equal(t, "Oui", q.ModeVie["activite_physique"])
}

func TestExtractHealthQuestionnaire_OCRMisreads(t *testing.T) {
	// "Qui" and "0ui" are common OCR misreads of "Oui".
	q := ExtractHealthQuestionnaire("Diabète : Qui\nHypertension : 0ui\nAsthme : X\n")

	assert.Equal(t, "Oui", q.AntecedentsMedicaux["diabete"])
	assert.Equal(t, "Oui", q.AntecedentsMedicaux["hypertension"])
	assert.Equal(t, "Oui", q.AntecedentsMedicaux["asthme"])
}

func TestExtractHealthQuestionnaire_AucuneAsAnswer(t *testing.T) {
	q := ExtractHealthQuestionnaire("Maladies connues : Aucune\n")

	assert.Equal(t, "Oui", q.AntecedentsMedicaux["aucune_maladie"])
}

func TestExtractHealthQuestionnaire_MissingSectionsNotNil(t *testing.T) {
	q := ExtractHealthQuestionnaire("rien d'utile ici")

	require.NotNil(t, q.AntecedentsMedicaux)
	require.NotNil(t, q.SanteActuelle)
	require.NotNil(t, q.ModeVie)
	require.NotNil(t, q.Allergies)
	require.NotNil(t, q.SanteMentale)
	require.NotNil(t, q.Voyage)
	assert.Empty(t, q.AntecedentsMedicaux)
}

func TestExtraction_Deterministic(t *testing.T) {
	first := ExtractPersonalInfo(sampleText)
	second := ExtractPersonalInfo(sampleText)
	assert.Equal(t, first, second)

	q1 := ExtractHealthQuestionnaire(sampleText)
	q2 := ExtractHealthQuestionnaire(sampleText)
	assert.Equal(t, q1, q2)
}
