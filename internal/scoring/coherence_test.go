package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assurdoc/internal/domain"
)

func inputWith(build func(*Input)) Input {
	in := Input{Sante: domain.NewHealthQuestionnaire()}
	build(&in)
	return in
}

func TestEvaluateCoherence_CleanInput(t *testing.T) {
	in := inputWith(func(in *Input) {
		in.Personal = domain.PersonalInfo{
			Nom: "DUPONT", Email: "jean@example.fr",
			Telephone: "0612345678", DateNaissance: "15/03/1985", Sexe: "M",
		}
		in.Sante.AntecedentsMedicaux["aucune_maladie"] = "Oui"
		in.Sante.ModeVie["fumeur"] = "Non"
	})

	res := EvaluateCoherence(in)
	assert.Equal(t, 100.0, res.Score)
	assert.Empty(t, res.Incoherences)
	assert.Empty(t, res.SignauxFraude)
}

func TestEvaluateCoherence_AucuneMaladieEtDiabete(t *testing.T) {
	in := inputWith(func(in *Input) {
		in.Sante.AntecedentsMedicaux["aucune_maladie"] = "Oui"
		in.Sante.AntecedentsMedicaux["diabete"] = "Oui"
	})

	res := EvaluateCoherence(in)

	require.NotEmpty(t, res.Incoherences)
	assert.Equal(t, `"Aucune maladie" et "Diabète" cochée`, res.Incoherences[0].Description)
	assert.NotEmpty(t, res.SignauxFraude)
	assert.LessOrEqual(t, res.Score, 80.0)
}

func TestEvaluateCoherence_MaladeSansSymptomes(t *testing.T) {
	in := inputWith(func(in *Input) {
		in.Sante.SanteActuelle["actuellement_malade"] = "Oui"
	})

	res := EvaluateCoherence(in)
	require.Len(t, res.Incoherences, 1)
	assert.Equal(t, "symptomes", res.Incoherences[0].Champ)
	assert.Equal(t, 90.0, res.Score)
}

func TestEvaluateCoherence_NonFumeurAvecCigarettes(t *testing.T) {
	in := inputWith(func(in *Input) {
		in.Sante.ModeVie["fumeur"] = "Non"
		in.Sante.ModeVie["nb_cigarettes"] = "15"
	})

	res := EvaluateCoherence(in)
	require.Len(t, res.Incoherences, 1)
	assert.Len(t, res.SignauxFraude, 1)
}

func TestEvaluateCoherence_InvalidShapes(t *testing.T) {
	in := inputWith(func(in *Input) {
		in.Personal.Email = "pas-un-email"
		in.Personal.Telephone = "12"
		in.Personal.DateNaissance = "hier"
		in.Personal.Sexe = "autre chose"
	})

	res := EvaluateCoherence(in)
	assert.Len(t, res.Incoherences, 4)
	assert.Equal(t, 75.0, res.Score)
}

func TestEvaluateCoherence_ClampedUnderAdversarialInput(t *testing.T) {
	// Trigger every rule at once: the score must stay within [0,100].
	in := inputWith(func(in *Input) {
		in.Personal = domain.PersonalInfo{
			Email: "invalide", Telephone: "1", DateNaissance: "01/01/1500", Sexe: "???",
		}
		in.Sante.AntecedentsMedicaux["aucune_maladie"] = "Oui"
		in.Sante.AntecedentsMedicaux["diabete"] = "Oui"
		in.Sante.AntecedentsMedicaux["hospitalisation_recente"] = "Oui"
		in.Sante.SanteActuelle["actuellement_malade"] = "Oui"
		in.Sante.SanteActuelle["traitement_en_cours"] = "Oui"
		in.Sante.ModeVie["fumeur"] = "Oui"
		in.Sante.ModeVie["nb_cigarettes"] = "0"
		in.Sante.ModeVie["alcool"] = "Oui"
		in.Sante.SanteMentale["suivi_psychologique"] = "Oui"
	})

	res := EvaluateCoherence(in)
	assert.GreaterOrEqual(t, res.Score, 0.0)
	assert.LessOrEqual(t, res.Score, 100.0)
	assert.Greater(t, len(res.Incoherences), 5)
}

func TestEvaluateCoherence_Monotonicity(t *testing.T) {
	// Adding one more triggered rule never increases the score.
	base := inputWith(func(in *Input) {
		in.Sante.SanteActuelle["actuellement_malade"] = "Oui"
	})
	more := inputWith(func(in *Input) {
		in.Sante.SanteActuelle["actuellement_malade"] = "Oui"
		in.Sante.ModeVie["alcool"] = "Oui"
	})

	assert.LessOrEqual(t, EvaluateCoherence(more).Score, EvaluateCoherence(base).Score)
}

func TestEvaluateCoherence_RuleOrderIndependentScore(t *testing.T) {
	in := inputWith(func(in *Input) {
		in.Sante.AntecedentsMedicaux["aucune_maladie"] = "Oui"
		in.Sante.AntecedentsMedicaux["hypertension"] = "Oui"
		in.Sante.ModeVie["alcool"] = "Oui"
	})

	first := EvaluateCoherence(in)
	second := EvaluateCoherence(in)
	assert.Equal(t, first, second)
}
