package ses

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"assurdoc/internal/domain"
	"assurdoc/internal/port"
)

type sesNotifier struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESNotifier creates an SES-backed AnalysisNotifier.
func NewSESNotifier(region, fromAddress, fromName string) (port.AnalysisNotifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesNotifier{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesNotifier) NotifyInsurer(ctx context.Context, insurer domain.Insurer, analysis *domain.DemandeAnalysis) error {
	if insurer.Email == "" {
		return fmt.Errorf("insurer %s has no notification address", insurer.Nom)
	}

	subject := fmt.Sprintf("Nouvelle analyse de demande %s : avis %s", analysis.DemandeID, analysis.Avis)
	textBody := buildNotificationText(insurer, analysis)
	htmlBody := buildNotificationHTML(insurer, analysis)
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{insurer.Email},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildNotificationText(insurer domain.Insurer, a *domain.DemandeAnalysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Bonjour %s,\n\n", insurer.Nom)
	fmt.Fprintf(&b, "Une nouvelle demande vous concerne.\n\n")
	fmt.Fprintf(&b, "Demande : %s\n", a.DemandeID)
	fmt.Fprintf(&b, "Avis : %s\n", a.Avis)
	fmt.Fprintf(&b, "Probabilité d'acceptation : %.2f\n", a.Scores.ProbabiliteAcceptation)
	fmt.Fprintf(&b, "Probabilité de fraude : %.2f (%s)\n", a.Scores.ProbabiliteFraude, a.Scores.NiveauFraude)
	fmt.Fprintf(&b, "Action recommandée : %s\n\n", a.ActionRecommandee)
	fmt.Fprintf(&b, "%s\n\nAssurDoc", a.Justification)
	return b.String()
}

func buildNotificationHTML(insurer domain.Insurer, a *domain.DemandeAnalysis) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Nouvelle analyse de demande</h2>
  <p>Bonjour %s,</p>
  <p>Une nouvelle demande vous concerne.</p>
  <table style="border-collapse: collapse; width: 100%%;">
    <tr><td style="padding: 6px; color: #666;">Demande</td><td style="padding: 6px;">%s</td></tr>
    <tr><td style="padding: 6px; color: #666;">Avis</td><td style="padding: 6px;"><strong>%s</strong></td></tr>
    <tr><td style="padding: 6px; color: #666;">Acceptation</td><td style="padding: 6px;">%.2f</td></tr>
    <tr><td style="padding: 6px; color: #666;">Fraude</td><td style="padding: 6px;">%.2f (%s)</td></tr>
  </table>
  <p>%s</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">AssurDoc - Analyse documentaire d'assurance</p>
</body>
</html>`, insurer.Nom, a.DemandeID, a.Avis,
		a.Scores.ProbabiliteAcceptation, a.Scores.ProbabiliteFraude, a.Scores.NiveauFraude,
		a.Justification)
}
