package noop

import (
	"context"
	"log"

	"assurdoc/internal/domain"
	"assurdoc/internal/port"
)

type noopNotifier struct{}

// NewNoopNotifier creates a no-op AnalysisNotifier that logs instead of
// sending. Used in development and tests.
func NewNoopNotifier() port.AnalysisNotifier {
	return &noopNotifier{}
}

func (noopNotifier) NotifyInsurer(_ context.Context, insurer domain.Insurer, analysis *domain.DemandeAnalysis) error {
	log.Printf("[NOOP NOTIFY] insurer %s (%s): demande %s, avis %s",
		insurer.Nom, insurer.Email, analysis.DemandeID, analysis.Avis)
	return nil
}
