package scoring

import (
	"math"

	"assurdoc/internal/domain"
)

// clamp01 bounds a probability to [0,1].
func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// clamp100 bounds a score to [0,100].
func clamp100(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}

// round2 rounds to two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// NiveauRisque buckets the risk score at the 0.3/0.5/0.7 thresholds.
func NiveauRisque(risque float64) string {
	switch {
	case risque < 0.3:
		return domain.NiveauFaible
	case risque < 0.5:
		return domain.NiveauModere
	case risque < 0.7:
		return domain.NiveauEleve
	default:
		return domain.NiveauTresEleve
	}
}

// NiveauFraude buckets the fraud probability.
func NiveauFraude(fraude float64) string {
	switch {
	case fraude < 0.3:
		return domain.NiveauFraudeFaible
	case fraude < 0.5:
		return domain.NiveauFraudeModere
	case fraude < 0.8:
		return domain.NiveauFraudeEleve
	default:
		return domain.NiveauFraudeTresEleve
	}
}

// NiveauConfiance buckets the insurer confidence probability.
func NiveauConfiance(confiance float64) string {
	switch {
	case confiance >= 0.7:
		return domain.NiveauEleve
	case confiance >= 0.4:
		return domain.NiveauModere
	default:
		return domain.NiveauFaible
	}
}
