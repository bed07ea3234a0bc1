package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/sma-remedial-api/internal/models"
)

// StudentRepository persists the normalized roster. The roster is only ever
// replaced wholesale on import.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs the repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

type studentRow struct {
	models.Student
	Position int            `db:"position"`
	Subjects pq.StringArray `db:"required_subjects"`
}

// List returns the roster in import order.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	const query = `SELECT position, id, name, grade, section, number, required_subjects, exempt, note FROM students ORDER BY position ASC`
	var rows []studentRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	students := make([]models.Student, 0, len(rows))
	for _, row := range rows {
		s := row.Student
		s.RequiredSubjects = []string(row.Subjects)
		students = append(students, s)
	}
	return students, nil
}

// ReplaceAll swaps the stored roster for students inside one transaction.
func (r *StudentRepository) ReplaceAll(ctx context.Context, students []models.Student) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin roster replace: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM students`); err != nil {
		return fmt.Errorf("clear students: %w", err)
	}

	const insert = `
INSERT INTO students (position, id, name, grade, section, number, required_subjects, exempt, note)
VALUES (:position, :id, :name, :grade, :section, :number, :required_subjects, :exempt, :note)`
	for i, s := range students {
		row := studentRow{Student: s, Position: i, Subjects: pq.StringArray(s.RequiredSubjects)}
		if row.Subjects == nil {
			row.Subjects = pq.StringArray{}
		}
		if _, err = tx.NamedExecContext(ctx, insert, row); err != nil {
			return fmt.Errorf("insert student %s: %w", s.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit roster replace: %w", err)
	}
	return nil
}
