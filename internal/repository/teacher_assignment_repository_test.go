package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-remedial-api/internal/models"
)

func TestTeacherAssignmentRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherAssignmentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "subject_id", "teacher_name", "classes", "room", "created_at"}).
		AddRow("assign-1", "Math_4", "Kim", "{1-1,1-2}", "101", time.Now()).
		AddRow("assign-2", "Math_4", "Lee", "{1-3}", "", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, subject_id, teacher_name, classes, room, created_at FROM teacher_assignments ORDER BY seq ASC")).
		WillReturnRows(rows)

	assignments, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, assignments, 2)
	assert.Equal(t, []string{"1-1", "1-2"}, assignments[0].Classes)
	assert.Equal(t, "Lee", assignments[1].TeacherName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherAssignmentRepositoryCreateDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherAssignmentRepository(db)

	mock.ExpectExec("INSERT INTO teacher_assignments").
		WithArgs(sqlmock.AnyArg(), "Math_4", "Kim", sqlmock.AnyArg(), "101", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assignment := &models.TeacherAssignment{SubjectID: "Math_4", TeacherName: "Kim", Classes: []string{"1-1"}, Room: "101"}
	require.NoError(t, repo.Create(context.Background(), assignment))
	assert.NotEmpty(t, assignment.ID)
	assert.False(t, assignment.CreatedAt.IsZero())

	mock.ExpectExec("DELETE FROM teacher_assignments").
		WithArgs("assign-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM teacher_assignments").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	removed, err := repo.Delete(context.Background(), "assign-1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
