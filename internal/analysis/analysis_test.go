package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assurdoc/internal/domain"
)

const questionnaireText = `
Nom : DUPONT
Prénom : Jean
Date de naissance : 15/03/1985
Sexe : M
Téléphone : 06 12 34 56 78
Email : jean.dupont@example.fr

QUESTIONNAIRE DE SANTÉ
Aucune maladie : Non
Hypertension : Oui
Fumeur : Oui
Cigarettes par jour : 10
Activité physique régulière : Oui
`

func docAnalysisWith(filename string, p domain.PersonalInfo) domain.DocumentAnalysis {
	return domain.DocumentAnalysis{
		Document: domain.RawDocument{Filename: filename},
		Personal: p,
		Sante:    domain.NewHealthQuestionnaire(),
	}
}

func TestCheckConsistency_NormalizationAbsorbsFormatting(t *testing.T) {
	analyses := []domain.DocumentAnalysis{
		docAnalysisWith("passeport.pdf", domain.PersonalInfo{
			Nom: "DUPONT", DateNaissance: "12/05/1980", Sexe: "M",
		}),
		docAnalysisWith("questionnaire.pdf", domain.PersonalInfo{
			Nom: "  Dupont ", DateNaissance: "12-05-1980", Sexe: "Masculin",
		}),
	}

	assert.Empty(t, CheckConsistency(analyses))
}

func TestCheckConsistency_MissingFieldIsNeverAMismatch(t *testing.T) {
	analyses := []domain.DocumentAnalysis{
		docAnalysisWith("passeport.pdf", domain.PersonalInfo{Nom: "DUPONT"}),
		docAnalysisWith("questionnaire.pdf", domain.PersonalInfo{Prenom: "Jean"}),
	}

	assert.Empty(t, CheckConsistency(analyses))
}

func TestCheckConsistency_CriticalMismatch(t *testing.T) {
	analyses := []domain.DocumentAnalysis{
		docAnalysisWith("passeport.pdf", domain.PersonalInfo{Nom: "DUPONT"}),
		docAnalysisWith("questionnaire.pdf", domain.PersonalInfo{Nom: "MARTIN"}),
	}

	incs := CheckConsistency(analyses)
	require.Len(t, incs, 1)
	assert.Equal(t, "nom", incs[0].Champ)
	assert.Equal(t, domain.SeverityCritical, incs[0].Severite)
	assert.Equal(t, "DUPONT", incs[0].Valeur1)
	assert.Equal(t, "MARTIN", incs[0].Valeur2)
	assert.Contains(t, incs[0].Description, "passeport.pdf")
	assert.Contains(t, incs[0].Description, "questionnaire.pdf")
}

func TestAnalyzeDemande_NoDocuments(t *testing.T) {
	_, err := NewPipeline().AnalyzeDemande("d-1", nil)
	assert.ErrorIs(t, err, domain.ErrNoDocuments)
}

func TestAnalyzeDemande_SingleDocument(t *testing.T) {
	res, err := NewPipeline().AnalyzeDemande("", []domain.RawDocument{{
		Filename:     "questionnaire.pdf",
		Texte:        questionnaireText,
		ConfianceOCR: 0.92,
	}})
	require.NoError(t, err)

	assert.NotEmpty(t, res.DemandeID)
	require.Len(t, res.Documents, 1)
	assert.Equal(t, "DUPONT", res.Personal.Nom)
	assert.Equal(t, "Oui", res.Sante.AntecedentsMedicaux["hypertension"])

	// Hypertension 0.15 + fumeur (10/jour) 0.20 - activité physique 0.10.
	assert.InDelta(t, 0.25, res.Scores.ScoreRisque, 0.001)
	assert.InDelta(t, 0.75, res.Scores.ProbabiliteAcceptation, 0.001)
	assert.InDelta(t, 0.10, res.Scores.ProbabiliteFraude, 0.001)
	assert.Equal(t, domain.AvisFavorable, res.Avis)
	assert.NotEmpty(t, res.Justification)
	assert.False(t, res.CreatedAt.IsZero())
}

func TestAnalyzeDemande_CrossDocMismatchDegradesScores(t *testing.T) {
	docs := []domain.RawDocument{
		{Filename: "passeport.pdf", Texte: "Nom : DUPONT\n", ConfianceOCR: 0.9},
		{Filename: "questionnaire.pdf", Texte: "Nom : MARTIN\n", ConfianceOCR: 0.9},
	}

	res, err := NewPipeline().AnalyzeDemande("d-42", docs)
	require.NoError(t, err)

	// Both documents alone are clean: fraud 0.10, acceptation 1.0,
	// coherence 100. One critical mismatch then applies +0.3 / -0.2 / -20.
	assert.InDelta(t, 0.40, res.Scores.ProbabiliteFraude, 0.001)
	assert.InDelta(t, 0.80, res.Scores.ProbabiliteAcceptation, 0.001)
	assert.InDelta(t, 80, res.Scores.ScoreCoherence, 0.001)
	assert.Equal(t, domain.AvisReserve, res.Avis)

	require.Len(t, res.Incoherences, 1)
	assert.Equal(t, domain.SeverityCritical, res.Incoherences[0].Severite)
	require.Len(t, res.SignauxFraude, 1)
	assert.Equal(t, "nom", res.SignauxFraude[0].Champ)

	for _, d := range res.Documents {
		assert.False(t, d.Verification.CoherenceInterDocs)
		assert.NotEmpty(t, d.Verification.MessageCoherence)
	}
}

func TestAnalyzeDemande_MergeKeepsFirstNonEmpty(t *testing.T) {
	docs := []domain.RawDocument{
		{Filename: "a.pdf", Texte: "Nom : DUPONT\n", ConfianceOCR: 0.9},
		{Filename: "b.pdf", Texte: "Nom : MARTIN\nPrénom : Jean\n", ConfianceOCR: 0.9},
	}

	res, err := NewPipeline().AnalyzeDemande("d-7", docs)
	require.NoError(t, err)

	assert.Equal(t, "DUPONT", res.Personal.Nom)
	assert.Equal(t, "Jean", res.Personal.Prenom)
}

func TestAnalyzeDemande_ExpiredDocumentFloorSurvivesAveraging(t *testing.T) {
	docs := []domain.RawDocument{
		{
			Filename:     "passeport.pdf",
			Texte:        "PASSEPORT\nNom : DUPONT\nDate d'expiration : 01/01/2020\n",
			ConfianceOCR: 0.9,
		},
		{Filename: "questionnaire.pdf", Texte: questionnaireText, ConfianceOCR: 0.9},
	}

	res, err := NewPipeline().AnalyzeDemande("d-9", docs)
	require.NoError(t, err)

	// The clean second document must not average the fraud floor away.
	assert.GreaterOrEqual(t, res.Scores.ProbabiliteFraude, 0.8)
	assert.Equal(t, domain.NiveauFraudeTresEleve, res.Scores.NiveauFraude)
}

func TestAnalyzeDocument_ExpiredDocumentRaisesFraud(t *testing.T) {
	a := NewPipeline().AnalyzeDocument(domain.RawDocument{
		Filename:     "passeport.pdf",
		Texte:        "PASSEPORT\nNom : DUPONT\nDate d'expiration : 01/01/2020\n",
		ConfianceOCR: 0.9,
	})

	assert.True(t, a.Verification.EstExpire)
	assert.GreaterOrEqual(t, a.Scores.ProbabiliteFraude, 0.8)

	var found bool
	for _, s := range a.SignauxFraude {
		if s.Champ == "date_expiration" {
			found = true
		}
	}
	assert.True(t, found)
}
