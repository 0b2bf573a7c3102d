package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"assurdoc/internal/domain"
	"assurdoc/internal/port"
)

// StatsService serves aggregate statistics and data exports.
type StatsService interface {
	InsurerStats(ctx context.Context, insurerID uuid.UUID) (*domain.InsurerStats, error)
	RecentAnalyses(ctx context.Context, since time.Time, offset, limit int) ([]domain.DemandeAnalysis, int, error)
}

type statsService struct {
	statsRepo    port.StatsRepository
	analysisRepo port.AnalysisRepository
	insurerRepo  port.InsurerRepository
}

// NewStatsService creates a new StatsService implementation.
func NewStatsService(statsRepo port.StatsRepository, analysisRepo port.AnalysisRepository, insurerRepo port.InsurerRepository) StatsService {
	return &statsService{
		statsRepo:    statsRepo,
		analysisRepo: analysisRepo,
		insurerRepo:  insurerRepo,
	}
}

func (s *statsService) InsurerStats(ctx context.Context, insurerID uuid.UUID) (*domain.InsurerStats, error) {
	// Validate existence first so a typoed ID is a 404, not empty stats.
	if _, err := s.insurerRepo.GetByID(ctx, insurerID); err != nil {
		return nil, err
	}
	return s.statsRepo.GetInsurerStats(ctx, insurerID)
}

func (s *statsService) RecentAnalyses(ctx context.Context, since time.Time, offset, limit int) ([]domain.DemandeAnalysis, int, error) {
	return s.analysisRepo.ListSince(ctx, since, offset, limit)
}
