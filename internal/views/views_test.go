package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assurdoc/internal/domain"
)

func sampleAnalysis() *domain.DemandeAnalysis {
	sante := domain.NewHealthQuestionnaire()
	sante.AntecedentsMedicaux["hypertension"] = "Oui"
	sante.ModeVie["fumeur"] = "Oui"

	return &domain.DemandeAnalysis{
		DemandeID: "d-1",
		Personal:  domain.PersonalInfo{Nom: "DUPONT", Prenom: "Jean"},
		Sante:     sante,
		Documents: []domain.DocumentAnalysis{{
			Document: domain.RawDocument{Filename: "passeport.pdf", ConfianceOCR: 0.9},
			Verification: domain.DocumentVerification{
				TypeDocument: domain.DocTypePasseport,
				EstExpire:    true,
				QualiteOK:    true,
				EstComplet:   true,
			},
		}},
		Scores: domain.ScoreSet{
			ScoreConfiance:               90,
			ScoreCoherence:               80,
			ScoreRisque:                  0.3,
			ProbabiliteAcceptation:       0.7,
			ProbabiliteFraude:            0.2,
			ProbabiliteConfianceAssureur: 0.9,
			NiveauRisque:                 domain.NiveauModere,
			NiveauFraude:                 domain.NiveauFraudeFaible,
		},
		Avis:              domain.AvisReserve,
		ActionRecommandee: "Accepter la demande avec surprime",
		Justification:     "Avis réservé",
		Incoherences:      []domain.Incoherence{{Champ: "email", Description: "format invalide"}},
		SignauxFraude:     []domain.FraudSignal{{Champ: "nom", Description: "divergence"}},
	}
}

func TestFor_UnknownRole(t *testing.T) {
	_, err := For(domain.UserRole("direction"))
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestAssureurView_ExcludesQuestionnaire(t *testing.T) {
	f, err := For(domain.RoleAssureur)
	require.NoError(t, err)

	v, ok := f.Project(sampleAnalysis()).(AssureurView)
	require.True(t, ok)

	assert.Equal(t, "d-1", v.DemandeID)
	assert.Equal(t, domain.AvisReserve, v.Avis)
	assert.Len(t, v.SignauxFraude, 1)
	// The assureur view type has no questionnaire field at all; spot-check
	// the rest of the payload it does carry.
	assert.Equal(t, "DUPONT", v.Personal.Nom)
	assert.Equal(t, 0.2, v.Scores.ProbabiliteFraude)
}

func TestMedecinView_NoFraudMachinery(t *testing.T) {
	f, err := For(domain.RoleMedecin)
	require.NoError(t, err)

	v, ok := f.Project(sampleAnalysis()).(MedecinView)
	require.True(t, ok)

	assert.Equal(t, "Oui", v.Sante.AntecedentsMedicaux["hypertension"])
	assert.Equal(t, 0.3, v.ScoreRisque)
	assert.Contains(t, v.FacteursRisque, "Hypertension")
}

func TestTechnicienView_DocumentsOnly(t *testing.T) {
	f, err := For(domain.RoleTechnicien)
	require.NoError(t, err)

	v, ok := f.Project(sampleAnalysis()).(TechnicienView)
	require.True(t, ok)

	require.Len(t, v.Documents, 1)
	assert.Equal(t, "passeport.pdf", v.Documents[0].Filename)
	assert.True(t, v.Documents[0].Verification.EstExpire)
}

func TestAgentView_GlobalScoreAndChecklist(t *testing.T) {
	f, err := For(domain.RoleAgent)
	require.NoError(t, err)

	a := sampleAnalysis()
	v, ok := f.Project(a).(AgentView)
	require.True(t, ok)

	// 40*0.7 + 30*0.8 + 20*0.9 (confiance assureur) - 10*0.2 = 68.
	assert.InDelta(t, 68, v.ScoreGlobal, 0.001)

	require.NotEmpty(t, v.Checklist)
	assert.Contains(t, v.Checklist[0], "en cours de validité")
	assert.Equal(t, a.ActionRecommandee, v.Checklist[len(v.Checklist)-1])
}

func TestScoreGlobal_Clamped(t *testing.T) {
	assert.Equal(t, 0.0, ScoreGlobal(domain.ScoreSet{ProbabiliteFraude: 1}))
	assert.Equal(t, 100.0, ScoreGlobal(domain.ScoreSet{
		ScoreCoherence:               100,
		ProbabiliteAcceptation:       1.5,
		ProbabiliteConfianceAssureur: 1,
	}))
}

func TestScoreGlobal_UsesInsurerConfidenceNotOCR(t *testing.T) {
	// A perfect OCR read contributes nothing on its own; the 20% term is
	// the insurer confidence.
	assert.Equal(t, 0.0, ScoreGlobal(domain.ScoreSet{ScoreConfiance: 100}))
	assert.Equal(t, 20.0, ScoreGlobal(domain.ScoreSet{ProbabiliteConfianceAssureur: 1}))
}
