package port

import (
	"context"

	"assurdoc/internal/domain"
)

// AnalysisNotifier delivers a finished analysis to one concerned insurer.
// Delivery failures are reported back so the notification record can be
// marked failed; they never fail the analysis itself.
type AnalysisNotifier interface {
	NotifyInsurer(ctx context.Context, insurer domain.Insurer, analysis *domain.DemandeAnalysis) error
}
