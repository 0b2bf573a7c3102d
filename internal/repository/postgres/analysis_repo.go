package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"assurdoc/internal/domain"
	"assurdoc/internal/port"
)

// analysisRow is the flat projection stored per analysis. The full result
// lives in the payload column; the indexed columns exist for filtering.
type analysisRow struct {
	DemandeID              string    `db:"demande_id"`
	Avis                   string    `db:"avis"`
	ProbabiliteAcceptation float64   `db:"probabilite_acceptation"`
	ProbabiliteFraude      float64   `db:"probabilite_fraude"`
	Payload                []byte    `db:"payload"`
	CreatedAt              time.Time `db:"created_at"`
}

type analysisRepo struct {
	db *sqlx.DB
}

// NewAnalysisRepo creates a new PostgreSQL-backed AnalysisRepository.
func NewAnalysisRepo(db *sqlx.DB) port.AnalysisRepository {
	return &analysisRepo{db: db}
}

func (r *analysisRepo) Save(ctx context.Context, a *domain.DemandeAnalysis) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("analysisRepo.Save marshal: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("analysisRepo.Save begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO analyses (demande_id, avis, probabilite_acceptation, probabilite_fraude, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (demande_id) DO UPDATE SET
			avis = EXCLUDED.avis,
			probabilite_acceptation = EXCLUDED.probabilite_acceptation,
			probabilite_fraude = EXCLUDED.probabilite_fraude,
			payload = EXCLUDED.payload`,
		a.DemandeID, a.Avis, a.Scores.ProbabiliteAcceptation, a.Scores.ProbabiliteFraude,
		payload, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("analysisRepo.Save: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"DELETE FROM analysis_insurers WHERE demande_id = $1", a.DemandeID)
	if err != nil {
		return fmt.Errorf("analysisRepo.Save clear insurers: %w", err)
	}
	for _, insurerID := range a.AssureurIDs {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO analysis_insurers (demande_id, insurer_id) VALUES ($1, $2)",
			a.DemandeID, insurerID)
		if err != nil {
			return fmt.Errorf("analysisRepo.Save insurer link: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("analysisRepo.Save commit: %w", err)
	}
	return nil
}

func (r *analysisRepo) GetByDemandeID(ctx context.Context, demandeID string) (*domain.DemandeAnalysis, error) {
	var row analysisRow
	err := r.db.GetContext(ctx, &row,
		"SELECT * FROM analyses WHERE demande_id = $1", demandeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("analysisRepo.GetByDemandeID: %w", err)
	}
	return unmarshalAnalysis(row.Payload)
}

func (r *analysisRepo) ListByInsurer(ctx context.Context, insurerID uuid.UUID, avis string, offset, limit int) ([]domain.DemandeAnalysis, int, error) {
	countQuery := `SELECT COUNT(*) FROM analyses a
		JOIN analysis_insurers ai ON ai.demande_id = a.demande_id
		WHERE ai.insurer_id = $1 AND ($2 = '' OR a.avis = $2)`

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, insurerID, avis); err != nil {
		return nil, 0, fmt.Errorf("analysisRepo.ListByInsurer count: %w", err)
	}

	query := `SELECT a.* FROM analyses a
		JOIN analysis_insurers ai ON ai.demande_id = a.demande_id
		WHERE ai.insurer_id = $1 AND ($2 = '' OR a.avis = $2)
		ORDER BY a.created_at DESC LIMIT $3 OFFSET $4`

	var rows []analysisRow
	if err := r.db.SelectContext(ctx, &rows, query, insurerID, avis, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("analysisRepo.ListByInsurer: %w", err)
	}
	out, err := unmarshalAnalyses(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *analysisRepo) ListSince(ctx context.Context, since time.Time, offset, limit int) ([]domain.DemandeAnalysis, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM analyses WHERE created_at >= $1", since)
	if err != nil {
		return nil, 0, fmt.Errorf("analysisRepo.ListSince count: %w", err)
	}

	var rows []analysisRow
	err = r.db.SelectContext(ctx, &rows,
		"SELECT * FROM analyses WHERE created_at >= $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		since, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("analysisRepo.ListSince: %w", err)
	}
	out, err := unmarshalAnalyses(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *analysisRepo) Delete(ctx context.Context, demandeID string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM analyses WHERE demande_id = $1", demandeID)
	if err != nil {
		return fmt.Errorf("analysisRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrAnalysisNotFound
	}
	return nil
}

func unmarshalAnalysis(payload []byte) (*domain.DemandeAnalysis, error) {
	var a domain.DemandeAnalysis
	if err := json.Unmarshal(payload, &a); err != nil {
		return nil, fmt.Errorf("analysisRepo payload unmarshal: %w", err)
	}
	return &a, nil
}

func unmarshalAnalyses(rows []analysisRow) ([]domain.DemandeAnalysis, error) {
	out := make([]domain.DemandeAnalysis, 0, len(rows))
	for _, row := range rows {
		a, err := unmarshalAnalysis(row.Payload)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, nil
}
