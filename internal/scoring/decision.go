package scoring

import (
	"fmt"
	"math"
	"strings"

	"assurdoc/internal/domain"
)

// DecisionInput bundles everything the synthesizer combines.
type DecisionInput struct {
	Coherence    CoherenceResult
	Risk         RiskResult
	ConfianceOCR float64
	EstExpire    bool
}

// Decision is the synthesized underwriting outcome.
type Decision struct {
	Scores            domain.ScoreSet
	Avis              domain.Avis
	ActionRecommandee string
	Justification     string
}

// maxFindingsListed caps each finding list in the rationale text.
const maxFindingsListed = 5

// FraudProbability combines, additively and then clamped to [0,1]: a
// coherence-band contribution, 0.15 per fraud signal, a bonus for piled-up
// incoherences, and a penalty for low OCR confidence. An expired document
// forces the result to at least 0.8 regardless of the additive total.
func FraudProbability(coherence float64, fraudSignals, incoherences int, confianceOCR float64, estExpire bool) float64 {
	var p float64
	switch {
	case coherence >= 80:
		p = 0.10
	case coherence >= 60:
		p = 0.20
	case coherence >= 40:
		p = 0.30
	default:
		p = 0.40
	}

	p += 0.15 * float64(fraudSignals)

	switch {
	case incoherences >= 5:
		p += 0.20
	case incoherences >= 3:
		p += 0.10
	}

	if confianceOCR < 0.5 {
		p += 0.15
	}

	p = clamp01(p)
	if estExpire {
		p = math.Max(p, 0.8)
	}
	return round2(p)
}

// ConfianceAssureur computes the insurer confidence probability from the
// other scores, clamped to [0,1].
func ConfianceAssureur(acceptation, coherence, confianceOCR, fraude float64) float64 {
	return round2(clamp01(0.40*acceptation + 0.30*(coherence/100) + 0.20*confianceOCR - 0.10*fraude))
}

// Decide applies the fixed decision priority order and returns the avis with
// its recommended action.
func Decide(acceptation, fraude float64) (domain.Avis, string) {
	switch {
	case fraude >= 0.5:
		return domain.AvisRejetFraude, "Rejeter la demande et signaler le dossier pour suspicion de fraude"
	case acceptation >= 0.7 && fraude < 0.3:
		return domain.AvisFavorable, "Accepter la demande aux conditions standard"
	case acceptation >= 0.5:
		return domain.AvisReserve, "Accepter la demande avec surprime ou exclusions, après examen complémentaire"
	default:
		return domain.AvisDefavorable, "Refuser la demande ou exiger un examen médical approfondi"
	}
}

// Synthesize combines OCR confidence, coherence, risk and fraud signals into
// the final score set, decision and deterministic rationale.
func Synthesize(in DecisionInput) Decision {
	fraude := FraudProbability(
		in.Coherence.Score,
		len(in.Coherence.SignauxFraude),
		len(in.Coherence.Incoherences),
		in.ConfianceOCR,
		in.EstExpire,
	)

	acceptation := in.Risk.ProbabiliteAcceptation
	confiance := ConfianceAssureur(acceptation, in.Coherence.Score, in.ConfianceOCR, fraude)

	scores := domain.ScoreSet{
		ScoreConfiance:               math.Round(in.ConfianceOCR * 100),
		ScoreCoherence:               in.Coherence.Score,
		ScoreRisque:                  in.Risk.ScoreRisque,
		ProbabiliteAcceptation:       acceptation,
		ProbabiliteFraude:            fraude,
		ProbabiliteConfianceAssureur: confiance,
		NiveauRisque:                 in.Risk.NiveauRisque,
		NiveauFraude:                 NiveauFraude(fraude),
		NiveauConfiance:              NiveauConfiance(confiance),
	}

	avis, action := Decide(acceptation, fraude)

	return Decision{
		Scores:            scores,
		Avis:              avis,
		ActionRecommandee: action,
		Justification:     Rationale(avis, scores, in.Risk.Facteurs, in.Coherence.Incoherences, in.Coherence.SignauxFraude, in.EstExpire),
	}
}

// Rationale produces the free-text justification from the same inputs as
// the decision. It is fully deterministic: same inputs, same text.
func Rationale(avis domain.Avis, scores domain.ScoreSet, facteurs []string, incoherences []domain.Incoherence, signaux []domain.FraudSignal, estExpire bool) string {
	var b strings.Builder

	switch avis {
	case domain.AvisFavorable:
		b.WriteString("Avis favorable : profil de risque acceptable et dossier cohérent.")
	case domain.AvisReserve:
		b.WriteString("Avis réservé : le dossier présente des points nécessitant un examen complémentaire.")
	case domain.AvisDefavorable:
		b.WriteString("Avis défavorable : niveau de risque trop élevé pour une acceptation standard.")
	case domain.AvisRejetFraude:
		b.WriteString("Rejet pour suspicion de fraude : des signaux de fraude dominent l'analyse.")
	}

	b.WriteString(fmt.Sprintf(" Risque %.2f (%s), acceptation %.2f, cohérence %.0f/100, fraude %.2f (%s).",
		scores.ScoreRisque, scores.NiveauRisque, scores.ProbabiliteAcceptation,
		scores.ScoreCoherence, scores.ProbabiliteFraude, scores.NiveauFraude))

	if estExpire {
		b.WriteString(" Document d'identité expiré.")
	}

	writeFindingList(&b, "Facteurs de risque", facteurs)

	descs := make([]string, 0, len(incoherences))
	for _, inc := range incoherences {
		descs = append(descs, inc.Description)
	}
	writeFindingList(&b, "Incohérences", descs)

	sigs := make([]string, 0, len(signaux))
	for _, s := range signaux {
		sigs = append(sigs, s.Description)
	}
	writeFindingList(&b, "Signaux de fraude", sigs)

	return b.String()
}

// writeFindingList appends up to maxFindingsListed items with an
// "et N autres" suffix when truncated.
func writeFindingList(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	listed := items
	var extra int
	if len(items) > maxFindingsListed {
		listed = items[:maxFindingsListed]
		extra = len(items) - maxFindingsListed
	}
	b.WriteString(" " + label + " : " + strings.Join(listed, " ; "))
	if extra > 0 {
		b.WriteString(fmt.Sprintf(" (et %d autres)", extra))
	}
	b.WriteString(".")
}
