package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-remedial-api/internal/models"
)

// TimetableSlotRepository persists the master timetable. A unique index on
// (week, day, period, subject_id) backs the in-memory duplicate check.
type TimetableSlotRepository struct {
	db *sqlx.DB
}

// NewTimetableSlotRepository builds repository.
func NewTimetableSlotRepository(db *sqlx.DB) *TimetableSlotRepository {
	return &TimetableSlotRepository{db: db}
}

// List returns every slot in insertion order.
func (r *TimetableSlotRepository) List(ctx context.Context) ([]models.TimetableSlot, error) {
	const query = `SELECT id, week, date_label, day, period, subject_id, created_at FROM timetable_slots ORDER BY seq ASC`
	var slots []models.TimetableSlot
	if err := r.db.SelectContext(ctx, &slots, query); err != nil {
		return nil, fmt.Errorf("list timetable slots: %w", err)
	}
	return slots, nil
}

// Insert stores a slot. A key collision yields ErrDuplicateKey.
func (r *TimetableSlotRepository) Insert(ctx context.Context, slot *models.TimetableSlot) error {
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	if slot.CreatedAt.IsZero() {
		slot.CreatedAt = time.Now().UTC()
	}
	const query = `
INSERT INTO timetable_slots (id, week, date_label, day, period, subject_id, created_at)
VALUES (:id, :week, :date_label, :day, :period, :subject_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, slot); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert timetable slot %s: %w", slot.Key(), ErrDuplicateKey)
		}
		return fmt.Errorf("insert timetable slot: %w", err)
	}
	return nil
}

// DeleteByKey removes every slot matching key regardless of its date label.
func (r *TimetableSlotRepository) DeleteByKey(ctx context.Context, key models.SlotKey) (int64, error) {
	const query = `DELETE FROM timetable_slots WHERE week = $1 AND day = $2 AND period = $3 AND subject_id = $4`
	res, err := r.db.ExecContext(ctx, query, key.Week, string(key.Day), key.Period, key.SubjectID)
	if err != nil {
		return 0, fmt.Errorf("delete timetable slot: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete timetable slot rows: %w", err)
	}
	return affected, nil
}
