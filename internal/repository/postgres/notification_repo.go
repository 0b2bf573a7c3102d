package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"assurdoc/internal/domain"
	"assurdoc/internal/port"
)

type notificationRepo struct {
	db *sqlx.DB
}

// NewNotificationRepo creates a new PostgreSQL-backed NotificationRepository.
func NewNotificationRepo(db *sqlx.DB) port.NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *domain.InsurerNotification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	now := time.Now().UTC()
	n.CreatedAt = now
	n.UpdatedAt = now
	if n.Status == "" {
		n.Status = domain.NotificationPending
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO insurer_notifications (id, demande_id, insurer_id, nom, status, method, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, n.DemandeID, n.InsurerID, n.Nom, n.Status, n.Method, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("notificationRepo.Create: %w", err)
	}
	return nil
}

func (r *notificationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.NotificationStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE insurer_notifications SET status = $1, updated_at = NOW() WHERE id = $2",
		status, id)
	if err != nil {
		return fmt.Errorf("notificationRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *notificationRepo) ListByDemande(ctx context.Context, demandeID string) ([]domain.InsurerNotification, error) {
	var out []domain.InsurerNotification
	err := r.db.SelectContext(ctx, &out,
		"SELECT * FROM insurer_notifications WHERE demande_id = $1 ORDER BY created_at",
		demandeID)
	if err != nil {
		return nil, fmt.Errorf("notificationRepo.ListByDemande: %w", err)
	}
	return out, nil
}

func (r *notificationRepo) ListByStatus(ctx context.Context, status domain.NotificationStatus, limit int) ([]domain.InsurerNotification, error) {
	var out []domain.InsurerNotification
	err := r.db.SelectContext(ctx, &out,
		"SELECT * FROM insurer_notifications WHERE status = $1 ORDER BY created_at LIMIT $2",
		status, limit)
	if err != nil {
		return nil, fmt.Errorf("notificationRepo.ListByStatus: %w", err)
	}
	return out, nil
}
