package analysis

import (
	"math"
	"time"

	"github.com/google/uuid"

	"assurdoc/internal/doccheck"
	"assurdoc/internal/domain"
	"assurdoc/internal/extraction"
	"assurdoc/internal/scoring"
)

// Pipeline runs the full analysis chain for one demande: per-document
// extraction, verification and scoring, then cross-document consistency
// and the aggregate decision.
type Pipeline struct {
	checker *doccheck.Checker
}

func NewPipeline() *Pipeline {
	return &Pipeline{checker: doccheck.NewChecker()}
}

// AnalyzeDocument analyzes a single document in isolation. Cross-document
// findings are added later by AnalyzeDemande.
func (p *Pipeline) AnalyzeDocument(doc domain.RawDocument) domain.DocumentAnalysis {
	personal := extraction.ExtractPersonalInfo(doc.Texte)
	sante := extraction.ExtractHealthQuestionnaire(doc.Texte)
	verification := p.checker.Check(doc, personal, sante)

	coherence := scoring.EvaluateCoherence(scoring.Input{Personal: personal, Sante: sante})
	risk := scoring.EvaluateRisk(scoring.Input{Personal: personal, Sante: sante})

	signaux := coherence.SignauxFraude
	if verification.EstExpire {
		signaux = append(signaux, domain.FraudSignal{
			Champ:       "date_expiration",
			Description: verification.MessageExpiration,
		})
	}

	decision := scoring.Synthesize(scoring.DecisionInput{
		Coherence:    coherence,
		Risk:         risk,
		ConfianceOCR: doc.ConfianceOCR,
		EstExpire:    verification.EstExpire,
	})

	return domain.DocumentAnalysis{
		ID:            uuid.New(),
		Document:      doc,
		Personal:      personal,
		Sante:         sante,
		Verification:  verification,
		Scores:        decision.Scores,
		Incoherences:  coherence.Incoherences,
		SignauxFraude: signaux,
	}
}

// AnalyzeDemande analyzes every document of a demande and synthesizes the
// aggregate result. At least one document is required.
func (p *Pipeline) AnalyzeDemande(demandeID string, docs []domain.RawDocument) (*domain.DemandeAnalysis, error) {
	if len(docs) == 0 {
		return nil, domain.ErrNoDocuments
	}
	if demandeID == "" {
		demandeID = uuid.NewString()
	}

	analyses := make([]domain.DocumentAnalysis, 0, len(docs))
	for _, doc := range docs {
		analyses = append(analyses, p.AnalyzeDocument(doc))
	}

	personal := mergePersonal(analyses)
	sante := mergeSante(analyses)
	scores := meanScores(analyses)

	incoherences := make([]domain.Incoherence, 0)
	signaux := make([]domain.FraudSignal, 0)
	estExpire := false
	for _, a := range analyses {
		incoherences = append(incoherences, a.Incoherences...)
		signaux = append(signaux, a.SignauxFraude...)
		if a.Verification.EstExpire {
			estExpire = true
		}
	}

	crossdoc := CheckConsistency(analyses)
	markInconsistent(analyses, crossdoc)
	for _, inc := range crossdoc {
		incoherences = append(incoherences, inc)
		signaux = append(signaux, domain.FraudSignal{Champ: inc.Champ, Description: inc.Description})
		scores.ProbabiliteFraude = clamp01(scores.ProbabiliteFraude + 0.3)
		scores.ProbabiliteAcceptation = clamp01(scores.ProbabiliteAcceptation - 0.2)
		scores.ScoreCoherence = math.Max(0, scores.ScoreCoherence-20)
	}

	// An expired document keeps its fraud floor at the demande level too;
	// averaging across documents must not dilute it.
	if estExpire {
		scores.ProbabiliteFraude = math.Max(scores.ProbabiliteFraude, 0.8)
	}

	scores.ScoreRisque = round2(scores.ScoreRisque)
	scores.ProbabiliteAcceptation = round2(scores.ProbabiliteAcceptation)
	scores.ProbabiliteFraude = round2(scores.ProbabiliteFraude)
	scores.ProbabiliteConfianceAssureur = scoring.ConfianceAssureur(
		scores.ProbabiliteAcceptation,
		scores.ScoreCoherence,
		scores.ScoreConfiance/100,
		scores.ProbabiliteFraude,
	)
	scores.NiveauRisque = scoring.NiveauRisque(scores.ScoreRisque)
	scores.NiveauFraude = scoring.NiveauFraude(scores.ProbabiliteFraude)
	scores.NiveauConfiance = scoring.NiveauConfiance(scores.ProbabiliteConfianceAssureur)

	avis, action := scoring.Decide(scores.ProbabiliteAcceptation, scores.ProbabiliteFraude)

	// Risk factors are recomputed on the merged questionnaire so the
	// rationale names each factor once, not once per document.
	facteurs := scoring.EvaluateRisk(scoring.Input{Personal: personal, Sante: sante}).Facteurs

	return &domain.DemandeAnalysis{
		DemandeID:         demandeID,
		Documents:         analyses,
		Personal:          personal,
		Sante:             sante,
		Scores:            scores,
		Avis:              avis,
		ActionRecommandee: action,
		Justification:     scoring.Rationale(avis, scores, facteurs, incoherences, signaux, estExpire),
		Incoherences:      incoherences,
		SignauxFraude:     signaux,
		CreatedAt:         time.Now().UTC(),
	}, nil
}

// mergePersonal keeps, per field, the first non-empty value in document
// order.
func mergePersonal(analyses []domain.DocumentAnalysis) domain.PersonalInfo {
	var out domain.PersonalInfo
	fields := []struct {
		dst *string
		src func(domain.PersonalInfo) string
	}{
		{&out.Nom, func(p domain.PersonalInfo) string { return p.Nom }},
		{&out.Prenom, func(p domain.PersonalInfo) string { return p.Prenom }},
		{&out.DateNaissance, func(p domain.PersonalInfo) string { return p.DateNaissance }},
		{&out.Sexe, func(p domain.PersonalInfo) string { return p.Sexe }},
		{&out.Telephone, func(p domain.PersonalInfo) string { return p.Telephone }},
		{&out.Email, func(p domain.PersonalInfo) string { return p.Email }},
		{&out.Adresse, func(p domain.PersonalInfo) string { return p.Adresse }},
		{&out.Ville, func(p domain.PersonalInfo) string { return p.Ville }},
		{&out.Pays, func(p domain.PersonalInfo) string { return p.Pays }},
		{&out.DestinationVoyage, func(p domain.PersonalInfo) string { return p.DestinationVoyage }},
		{&out.FrequenceVoyage, func(p domain.PersonalInfo) string { return p.FrequenceVoyage }},
	}
	for _, a := range analyses {
		for _, f := range fields {
			if *f.dst == "" {
				*f.dst = f.src(a.Personal)
			}
		}
	}
	return out
}

// mergeSante keeps, per key, the first non-empty answer in document order.
func mergeSante(analyses []domain.DocumentAnalysis) domain.HealthQuestionnaire {
	out := domain.NewHealthQuestionnaire()
	sections := func(q domain.HealthQuestionnaire) []map[string]string {
		return []map[string]string{
			q.AntecedentsMedicaux, q.SanteActuelle, q.ModeVie,
			q.Allergies, q.SanteMentale, q.Voyage,
		}
	}
	dst := sections(out)
	for _, a := range analyses {
		for i, src := range sections(a.Sante) {
			for k, v := range src {
				if v == "" {
					continue
				}
				if _, ok := dst[i][k]; !ok {
					dst[i][k] = v
				}
			}
		}
	}
	return out
}

// meanScores averages the numeric scores across documents. Level labels
// and the insurer confidence are recomputed by the caller after the
// cross-document adjustments.
func meanScores(analyses []domain.DocumentAnalysis) domain.ScoreSet {
	var out domain.ScoreSet
	n := float64(len(analyses))
	for _, a := range analyses {
		out.ScoreConfiance += a.Scores.ScoreConfiance
		out.ScoreCoherence += a.Scores.ScoreCoherence
		out.ScoreRisque += a.Scores.ScoreRisque
		out.ProbabiliteAcceptation += a.Scores.ProbabiliteAcceptation
		out.ProbabiliteFraude += a.Scores.ProbabiliteFraude
	}
	out.ScoreConfiance = math.Round(out.ScoreConfiance / n)
	out.ScoreCoherence = math.Round(out.ScoreCoherence / n)
	out.ScoreRisque /= n
	out.ProbabiliteAcceptation /= n
	out.ProbabiliteFraude /= n
	return out
}

// markInconsistent flags the verification block of every document named by
// a cross-document incoherence.
func markInconsistent(analyses []domain.DocumentAnalysis, crossdoc []domain.Incoherence) {
	if len(crossdoc) == 0 {
		return
	}
	for i := range analyses {
		analyses[i].Verification.CoherenceInterDocs = false
		analyses[i].Verification.MessageCoherence = "Incohérences détectées entre les documents de la demande"
	}
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
