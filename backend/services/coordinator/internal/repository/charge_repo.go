package repository

import (
	"context"
	"database/sql"

	"gamecafe/backend/services/coordinator/internal/models"
)

// ChargeRepository archives completed charges to Postgres for durable
// reporting across restarts.
type ChargeRepository struct {
	db *sql.DB
}

// NewChargeRepository returns the repository.
func NewChargeRepository(db *sql.DB) *ChargeRepository {
	return &ChargeRepository{db: db}
}

// Insert stores one charge row.
func (r *ChargeRepository) Insert(ctx context.Context, charge models.Charge) error {
	const query = `
		INSERT INTO charges (session_id, station_id, game_name, amount, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		charge.SessionID,
		charge.StationID,
		charge.GameName,
		charge.Amount,
		charge.RecordedAt,
	)
	return err
}

// ListRecent returns the latest archived charges.
func (r *ChargeRepository) ListRecent(ctx context.Context, limit int) ([]models.Charge, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
		SELECT session_id, station_id, game_name, amount, recorded_at
		FROM charges
		ORDER BY recorded_at DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var charges []models.Charge
	for rows.Next() {
		var charge models.Charge
		if err := rows.Scan(
			&charge.SessionID,
			&charge.StationID,
			&charge.GameName,
			&charge.Amount,
			&charge.RecordedAt,
		); err != nil {
			return nil, err
		}
		charges = append(charges, charge)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return charges, nil
}
