package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"assurdoc/internal/domain"
)

// AnalysisRepository defines the contract for analysis persistence.
type AnalysisRepository interface {
	Save(ctx context.Context, a *domain.DemandeAnalysis) error
	GetByDemandeID(ctx context.Context, demandeID string) (*domain.DemandeAnalysis, error)
	ListByInsurer(ctx context.Context, insurerID uuid.UUID, avis string, offset, limit int) ([]domain.DemandeAnalysis, int, error)
	ListSince(ctx context.Context, since time.Time, offset, limit int) ([]domain.DemandeAnalysis, int, error)
	Delete(ctx context.Context, demandeID string) error
}

// InsurerRepository defines the contract for insurer reference data.
type InsurerRepository interface {
	Create(ctx context.Context, insurer *domain.Insurer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Insurer, error)
	List(ctx context.Context) ([]domain.Insurer, error)
}

// NotificationRepository tracks routing notifications per insurer.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.InsurerNotification) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.NotificationStatus) error
	ListByDemande(ctx context.Context, demandeID string) ([]domain.InsurerNotification, error)
	ListByStatus(ctx context.Context, status domain.NotificationStatus, limit int) ([]domain.InsurerNotification, error)
}

// UserRepository defines the contract for back-office user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
}

// StatsRepository provides aggregate statistics queries.
type StatsRepository interface {
	GetInsurerStats(ctx context.Context, insurerID uuid.UUID) (*domain.InsurerStats, error)
}
