package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/sma-remedial-api/internal/models"
)

// TeacherAssignmentRepository manages teacher to subject/class assignments.
// Rows are returned in insertion order, which decides first-match resolution.
type TeacherAssignmentRepository struct {
	db *sqlx.DB
}

// NewTeacherAssignmentRepository creates a new repository instance.
func NewTeacherAssignmentRepository(db *sqlx.DB) *TeacherAssignmentRepository {
	return &TeacherAssignmentRepository{db: db}
}

type assignmentRow struct {
	models.TeacherAssignment
	ClassList pq.StringArray `db:"classes"`
}

// List returns every assignment in insertion order.
func (r *TeacherAssignmentRepository) List(ctx context.Context) ([]models.TeacherAssignment, error) {
	const query = `SELECT id, subject_id, teacher_name, classes, room, created_at FROM teacher_assignments ORDER BY seq ASC`
	var rows []assignmentRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list teacher assignments: %w", err)
	}
	out := make([]models.TeacherAssignment, 0, len(rows))
	for _, row := range rows {
		a := row.TeacherAssignment
		a.Classes = []string(row.ClassList)
		out = append(out, a)
	}
	return out, nil
}

// Create appends an assignment.
func (r *TeacherAssignmentRepository) Create(ctx context.Context, assignment *models.TeacherAssignment) error {
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = time.Now().UTC()
	}
	classes := pq.StringArray(assignment.Classes)
	if classes == nil {
		classes = pq.StringArray{}
	}
	const query = `INSERT INTO teacher_assignments (id, subject_id, teacher_name, classes, room, created_at) VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.ExecContext(ctx, query, assignment.ID, assignment.SubjectID, assignment.TeacherName, classes, assignment.Room, assignment.CreatedAt); err != nil {
		return fmt.Errorf("create teacher assignment: %w", err)
	}
	return nil
}

// Delete removes an assignment; it reports whether a row was removed.
func (r *TeacherAssignmentRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM teacher_assignments WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete teacher assignment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete teacher assignment rows: %w", err)
	}
	return affected > 0, nil
}
