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

// insurerRow stores coverage lists as JSON so the driver needs no array
// support.
type insurerRow struct {
	ID            uuid.UUID `db:"id"`
	Nom           string    `db:"nom"`
	Email         string    `db:"email"`
	Zones         []byte    `db:"zones"`
	Pays          []byte    `db:"pays"`
	International bool      `db:"international"`
	CreatedAt     time.Time `db:"created_at"`
}

func (row insurerRow) toDomain() (domain.Insurer, error) {
	ins := domain.Insurer{
		ID:            row.ID,
		Nom:           row.Nom,
		Email:         row.Email,
		International: row.International,
		CreatedAt:     row.CreatedAt,
	}
	if len(row.Zones) > 0 {
		if err := json.Unmarshal(row.Zones, &ins.Zones); err != nil {
			return ins, fmt.Errorf("insurerRepo zones unmarshal: %w", err)
		}
	}
	if len(row.Pays) > 0 {
		if err := json.Unmarshal(row.Pays, &ins.Pays); err != nil {
			return ins, fmt.Errorf("insurerRepo pays unmarshal: %w", err)
		}
	}
	return ins, nil
}

type insurerRepo struct {
	db *sqlx.DB
}

// NewInsurerRepo creates a new PostgreSQL-backed InsurerRepository.
func NewInsurerRepo(db *sqlx.DB) port.InsurerRepository {
	return &insurerRepo{db: db}
}

func (r *insurerRepo) Create(ctx context.Context, insurer *domain.Insurer) error {
	if insurer.ID == uuid.Nil {
		insurer.ID = uuid.New()
	}
	if insurer.CreatedAt.IsZero() {
		insurer.CreatedAt = time.Now().UTC()
	}

	zones, err := json.Marshal(insurer.Zones)
	if err != nil {
		return fmt.Errorf("insurerRepo.Create zones marshal: %w", err)
	}
	pays, err := json.Marshal(insurer.Pays)
	if err != nil {
		return fmt.Errorf("insurerRepo.Create pays marshal: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO insurers (id, nom, email, zones, pays, international, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (nom) DO UPDATE SET
			email = EXCLUDED.email,
			zones = EXCLUDED.zones,
			pays = EXCLUDED.pays,
			international = EXCLUDED.international`,
		insurer.ID, insurer.Nom, insurer.Email, zones, pays, insurer.International, insurer.CreatedAt)
	if err != nil {
		return fmt.Errorf("insurerRepo.Create: %w", err)
	}
	return nil
}

func (r *insurerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Insurer, error) {
	var row insurerRow
	err := r.db.GetContext(ctx, &row,
		"SELECT * FROM insurers WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInsurerNotFound
		}
		return nil, fmt.Errorf("insurerRepo.GetByID: %w", err)
	}
	ins, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &ins, nil
}

func (r *insurerRepo) List(ctx context.Context) ([]domain.Insurer, error) {
	var rows []insurerRow
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM insurers ORDER BY nom")
	if err != nil {
		return nil, fmt.Errorf("insurerRepo.List: %w", err)
	}

	out := make([]domain.Insurer, 0, len(rows))
	for _, row := range rows {
		ins, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, ins)
	}
	return out, nil
}
