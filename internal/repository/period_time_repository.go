package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-remedial-api/internal/models"
)

// PeriodTimeRepository stores the display time range of each period.
type PeriodTimeRepository struct {
	db *sqlx.DB
}

// NewPeriodTimeRepository constructs the repository.
func NewPeriodTimeRepository(db *sqlx.DB) *PeriodTimeRepository {
	return &PeriodTimeRepository{db: db}
}

// List returns stored period times ordered by period.
func (r *PeriodTimeRepository) List(ctx context.Context) ([]models.PeriodTime, error) {
	var times []models.PeriodTime
	if err := r.db.SelectContext(ctx, &times, `SELECT period, label FROM period_times ORDER BY period ASC`); err != nil {
		return nil, fmt.Errorf("list period times: %w", err)
	}
	return times, nil
}

// ReplaceAll swaps the stored period times inside one transaction.
func (r *PeriodTimeRepository) ReplaceAll(ctx context.Context, times []models.PeriodTime) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin period times replace: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM period_times`); err != nil {
		return fmt.Errorf("clear period times: %w", err)
	}
	for _, t := range times {
		if _, err = tx.ExecContext(ctx, `INSERT INTO period_times (period, label) VALUES ($1, $2)`, t.Period, t.Label); err != nil {
			return fmt.Errorf("insert period time %d: %w", t.Period, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit period times replace: %w", err)
	}
	return nil
}
