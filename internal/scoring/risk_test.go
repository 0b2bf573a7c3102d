package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"assurdoc/internal/domain"
)

func TestEvaluateRisk_Healthy(t *testing.T) {
	in := inputWith(func(in *Input) {
		in.Sante.AntecedentsMedicaux["aucune_maladie"] = "Oui"
		in.Sante.ModeVie["activite_physique"] = "Oui"
	})

	res := EvaluateRisk(in)
	assert.Equal(t, 0.0, res.ScoreRisque)
	assert.Equal(t, 1.0, res.ProbabiliteAcceptation)
	assert.Equal(t, domain.NiveauFaible, res.NiveauRisque)
	assert.Empty(t, res.Facteurs)
}

func TestEvaluateRisk_Accumulates(t *testing.T) {
	in := inputWith(func(in *Input) {
		in.Sante.AntecedentsMedicaux["hypertension"] = "Oui"
		in.Sante.AntecedentsMedicaux["diabete"] = "Oui"
	})

	res := EvaluateRisk(in)
	assert.InDelta(t, 0.30, res.ScoreRisque, 1e-9)
	assert.InDelta(t, 0.70, res.ProbabiliteAcceptation, 1e-9)
	assert.Equal(t, domain.NiveauModere, res.NiveauRisque)
	assert.ElementsMatch(t, []string{"Hypertension", "Diabète"}, res.Facteurs)
}

func TestEvaluateRisk_SmokingScaledByCount(t *testing.T) {
	base := inputWith(func(in *Input) { in.Sante.ModeVie["fumeur"] = "Oui" })
	heavy := inputWith(func(in *Input) {
		in.Sante.ModeVie["fumeur"] = "Oui"
		in.Sante.ModeVie["nb_cigarettes"] = "25"
	})

	assert.InDelta(t, 0.10, EvaluateRisk(base).ScoreRisque, 1e-9)
	assert.InDelta(t, 0.25, EvaluateRisk(heavy).ScoreRisque, 1e-9)
}

func TestEvaluateRisk_AlcoholScaledByFrequency(t *testing.T) {
	daily := inputWith(func(in *Input) {
		in.Sante.ModeVie["alcool"] = "Oui"
		in.Sante.ModeVie["frequence_alcool"] = "quotidienne"
	})
	occasional := inputWith(func(in *Input) {
		in.Sante.ModeVie["alcool"] = "Oui"
		in.Sante.ModeVie["frequence_alcool"] = "occasionnelle"
	})

	assert.Greater(t, EvaluateRisk(daily).ScoreRisque, EvaluateRisk(occasional).ScoreRisque)
}

func TestEvaluateRisk_PhysicalActivityReduces(t *testing.T) {
	sick := inputWith(func(in *Input) {
		in.Sante.AntecedentsMedicaux["hypertension"] = "Oui"
	})
	active := inputWith(func(in *Input) {
		in.Sante.AntecedentsMedicaux["hypertension"] = "Oui"
		in.Sante.ModeVie["activite_physique"] = "Oui"
	})

	assert.Less(t, EvaluateRisk(active).ScoreRisque, EvaluateRisk(sick).ScoreRisque)
}

func TestEvaluateRisk_ClampedUnderAdversarialInput(t *testing.T) {
	in := inputWith(func(in *Input) {
		for _, cle := range []string{"hypertension", "diabete", "maladie_cardiaque", "hospitalisation_recente"} {
			in.Sante.AntecedentsMedicaux[cle] = "Oui"
		}
		in.Sante.SanteActuelle["actuellement_malade"] = "Oui"
		in.Sante.SanteActuelle["symptomes"] = "fièvre persistante"
		in.Sante.ModeVie["fumeur"] = "Oui"
		in.Sante.ModeVie["nb_cigarettes"] = "40"
		in.Sante.ModeVie["alcool"] = "Oui"
		in.Sante.ModeVie["frequence_alcool"] = "quotidienne"
		in.Sante.SanteMentale["depression"] = "Oui"
	})

	res := EvaluateRisk(in)
	assert.Equal(t, 1.0, res.ScoreRisque)
	assert.Equal(t, 0.0, res.ProbabiliteAcceptation)
	assert.Equal(t, domain.NiveauTresEleve, res.NiveauRisque)
}
