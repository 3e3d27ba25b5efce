package repository

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grigorev-dev/timetable-api/internal/models"
	appErrors "github.com/grigorev-dev/timetable-api/pkg/errors"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

func samplePayload(t *testing.T) []byte {
	t.Helper()
	payload, err := json.Marshal([]models.Lesson{
		{ID: 1, GroupID: 1, SubjectID: 1, Teacher: "Petrov", SubjectName: "Algebra", Day: 0, TimeSlot: 0},
		{ID: 2, GroupID: 1, SubjectID: 2, Teacher: "Sidorova", SubjectName: "History", Day: 1, TimeSlot: 2},
	})
	require.NoError(t, err)
	return payload
}

func TestSavedScheduleSave(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSavedScheduleRepository(db)

	mock.ExpectExec("INSERT INTO saved_schedules").WillReturnResult(sqlmock.NewResult(1, 1))

	record, err := repo.Save(context.Background(), 1, "draft week", []models.Lesson{
		{ID: 1, GroupID: 1, SubjectID: 1, Teacher: "Petrov", SubjectName: "Algebra"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "draft week", record.Name)
	assert.Equal(t, 1, record.LessonCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSavedScheduleList(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSavedScheduleRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "group_id", "name", "payload", "created_at"}).
		AddRow("sched-1", int64(1), "draft week", samplePayload(t), now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, group_id, name, payload, created_at FROM saved_schedules WHERE group_id = $1 ORDER BY created_at DESC")).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	list, err := repo.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].LessonCount)
	assert.Empty(t, list[0].Lessons)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSavedScheduleGet(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSavedScheduleRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "group_id", "name", "payload", "created_at"}).
		AddRow("sched-1", int64(1), "draft week", samplePayload(t), now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, group_id, name, payload, created_at FROM saved_schedules WHERE id = $1 LIMIT 1")).
		WithArgs("sched-1").
		WillReturnRows(rows)

	record, err := repo.Get(context.Background(), "sched-1")
	require.NoError(t, err)
	require.Len(t, record.Lessons, 2)
	assert.Equal(t, "Algebra", record.Lessons[0].SubjectName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSavedScheduleGetMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSavedScheduleRepository(db)

	mock.ExpectQuery("SELECT id, group_id, name, payload, created_at FROM saved_schedules").
		WillReturnRows(sqlmock.NewRows([]string{"id", "group_id", "name", "payload", "created_at"}))

	_, err := repo.Get(context.Background(), "missing")
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestSavedScheduleDeleteMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSavedScheduleRepository(db)

	mock.ExpectExec("DELETE FROM saved_schedules").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
