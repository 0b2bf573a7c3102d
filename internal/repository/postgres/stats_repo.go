package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"assurdoc/internal/domain"
	"assurdoc/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

func (r *statsRepo) GetInsurerStats(ctx context.Context, insurerID uuid.UUID) (*domain.InsurerStats, error) {
	query := `SELECT
			$1::uuid AS insurer_id,
			COUNT(*) AS total_analyses,
			COUNT(*) FILTER (WHERE a.avis = 'favorable') AS avis_favorable,
			COUNT(*) FILTER (WHERE a.avis = 'reserve') AS avis_reserve,
			COUNT(*) FILTER (WHERE a.avis = 'defavorable') AS avis_defavorable,
			COUNT(*) FILTER (WHERE a.avis = 'rejet_fraude') AS avis_rejet_fraude,
			COUNT(*) FILTER (WHERE a.created_at >= CURRENT_DATE) AS analyses_aujourdhui,
			COALESCE(AVG(a.probabilite_acceptation), 0) AS taux_acceptation_moy,
			COALESCE(AVG(a.probabilite_fraude), 0) AS taux_fraude_moy
		FROM analyses a
		JOIN analysis_insurers ai ON ai.demande_id = a.demande_id
		WHERE ai.insurer_id = $1`

	var stats domain.InsurerStats
	if err := r.db.GetContext(ctx, &stats, query, insurerID); err != nil {
		return nil, fmt.Errorf("statsRepo.GetInsurerStats: %w", err)
	}
	return &stats, nil
}
