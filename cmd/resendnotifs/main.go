// Command resendnotifs retries insurer notifications that failed to deliver.
// Usage: go run ./cmd/resendnotifs
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"assurdoc/internal/config"
	"assurdoc/internal/domain"
	"assurdoc/internal/email/noop"
	"assurdoc/internal/email/ses"
	"assurdoc/internal/port"
	"assurdoc/internal/repository/postgres"
)

const batchSize = 100

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	analysisRepo := postgres.NewAnalysisRepo(db)
	insurerRepo := postgres.NewInsurerRepo(db)
	notifRepo := postgres.NewNotificationRepo(db)

	var notifier port.AnalysisNotifier
	switch cfg.Email.Provider {
	case "ses":
		notifier, err = ses.NewSESNotifier(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("initializing SES notifier: %w", err)
		}
	default:
		notifier = noop.NewNoopNotifier()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	failed, err := notifRepo.ListByStatus(ctx, domain.NotificationFailed, batchSize)
	if err != nil {
		return fmt.Errorf("listing failed notifications: %w", err)
	}
	if len(failed) == 0 {
		log.Println("No failed notifications to retry")
		return nil
	}

	var sent, stillFailed int
	for i := range failed {
		n := &failed[i]

		insurer, err := insurerRepo.GetByID(ctx, n.InsurerID)
		if err != nil {
			log.Printf("notification %s: insurer %s: %v", n.ID, n.InsurerID, err)
			stillFailed++
			continue
		}
		analysis, err := analysisRepo.GetByDemandeID(ctx, n.DemandeID)
		if err != nil {
			log.Printf("notification %s: demande %s: %v", n.ID, n.DemandeID, err)
			stillFailed++
			continue
		}

		if err := notifier.NotifyInsurer(ctx, *insurer, analysis); err != nil {
			log.Printf("notification %s: delivery to %s failed again: %v", n.ID, insurer.Nom, err)
			stillFailed++
			continue
		}

		if err := notifRepo.UpdateStatus(ctx, n.ID, domain.NotificationSent); err != nil {
			log.Printf("notification %s: updating status: %v", n.ID, err)
		}
		sent++
	}

	log.Printf("Retried %d notifications: %d sent, %d still failing", len(failed), sent, stillFailed)
	return nil
}
