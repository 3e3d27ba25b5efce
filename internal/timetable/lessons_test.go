package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/grigorev-dev/timetable-api/internal/models"
	appErrors "github.com/grigorev-dev/timetable-api/pkg/errors"
)

func remainingHours(t *testing.T, s *Store, groupID, subjectID int64) int {
	t.Helper()
	subjects, err := s.ListSubjects(groupID)
	require.NoError(t, err)
	for _, subj := range subjects {
		if subj.ID == subjectID {
			return subj.RemainingHours
		}
	}
	t.Fatalf("subject %d not found in group %d", subjectID, groupID)
	return 0
}

func TestAddLessonConsumesPair(t *testing.T) {
	s := newTestStore(t)
	subj := addSubject(t, s, models.DefaultGroupID, "Petrov", "Algebra", 4)

	lesson, err := s.AddLesson(models.DefaultGroupID, 0, 0, subj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Petrov", lesson.Teacher)
	assert.Equal(t, "Algebra", lesson.SubjectName)
	assert.Equal(t, 2, remainingHours(t, s, models.DefaultGroupID, subj.ID))
}

func TestAddLessonRejectsOccupiedCell(t *testing.T) {
	s := newTestStore(t)
	subjA := addSubject(t, s, models.DefaultGroupID, "Petrov", "Algebra", 4)
	subjB := addSubject(t, s, models.DefaultGroupID, "Sidorova", "History", 4)

	_, err := s.AddLesson(models.DefaultGroupID, 0, 0, subjA.ID)
	require.NoError(t, err)

	_, err = s.AddLesson(models.DefaultGroupID, 0, 0, subjB.ID)
	assert.True(t, appErrors.Is(err, appErrors.ErrSlotOccupied))
	// Hours stay untouched on a failed placement.
	assert.Equal(t, 4, remainingHours(t, s, models.DefaultGroupID, subjB.ID))
}

func TestAddLessonRejectsExhaustedSubject(t *testing.T) {
	s := newTestStore(t)
	subj := addSubject(t, s, models.DefaultGroupID, "Petrov", "Algebra", 2)

	_, err := s.AddLesson(models.DefaultGroupID, 0, 0, subj.ID)
	require.NoError(t, err)

	_, err = s.AddLesson(models.DefaultGroupID, 0, 1, subj.ID)
	assert.True(t, appErrors.Is(err, appErrors.ErrSubjectExhausted))
}

func TestAddLessonHonoursFilter(t *testing.T) {
	s := newTestStore(t)
	subj := addSubject(t, s, models.DefaultGroupID, "Petrov", "Algebra", 8)

	_, err := s.SetFilter(models.DefaultGroupID, "Petrov", []int{2}, []int{0})
	require.NoError(t, err)

	_, err = s.AddLesson(models.DefaultGroupID, 2, 1, subj.ID)
	assert.True(t, appErrors.Is(err, appErrors.ErrTeacherUnavailable))

	_, err = s.AddLesson(models.DefaultGroupID, 1, 0, subj.ID)
	assert.True(t, appErrors.Is(err, appErrors.ErrTeacherUnavailable))

	_, err = s.AddLesson(models.DefaultGroupID, 1, 1, subj.ID)
	assert.NoError(t, err)
}

func TestAddLessonEnforcesDailyLimit(t *testing.T) {
	s := newTestStore(t)
	subj, err := s.CreateSubject(models.DefaultGroupID, SubjectParams{
		Teacher: "Petrov", Name: "Algebra", TotalHours: 8, MaxPerDay: 1, MaxPerWeek: 10,
	})
	require.NoError(t, err)

	_, err = s.AddLesson(models.DefaultGroupID, 0, 0, subj.ID)
	require.NoError(t, err)

	_, err = s.AddLesson(models.DefaultGroupID, 0, 1, subj.ID)
	assert.True(t, appErrors.Is(err, appErrors.ErrTeacherUnavailable))
}

func TestAddLessonCrossGroupConflict(t *testing.T) {
	s := newTestStore(t)
	other, err := s.CreateGroup("Group 2")
	require.NoError(t, err)

	subjA := addSubject(t, s, models.DefaultGroupID, "Petrov", "Algebra", 4)
	subjB := addSubject(t, s, other.ID, "Petrov", "Geometry", 4)

	_, err = s.AddLesson(models.DefaultGroupID, 0, 0, subjA.ID)
	require.NoError(t, err)

	_, err = s.AddLesson(other.ID, 0, 0, subjB.ID)
	assert.True(t, appErrors.Is(err, appErrors.ErrTeacherUnavailable))

	_, err = s.AddLesson(other.ID, 0, 1, subjB.ID)
	assert.NoError(t, err)
}

func TestAddLessonCrossGroupConflictDisabled(t *testing.T) {
	s := NewStore(Options{CrossGroupExclusive: false}, zap.NewNop())
	other, err := s.CreateGroup("Group 2")
	require.NoError(t, err)

	subjA := addSubject(t, s, models.DefaultGroupID, "Petrov", "Algebra", 4)
	subjB := addSubject(t, s, other.ID, "Petrov", "Geometry", 4)

	_, err = s.AddLesson(models.DefaultGroupID, 0, 0, subjA.ID)
	require.NoError(t, err)

	_, err = s.AddLesson(other.ID, 0, 0, subjB.ID)
	assert.NoError(t, err)
}

func TestAddLessonWeekendCells(t *testing.T) {
	s := newTestStore(t)
	subj := addSubject(t, s, models.DefaultGroupID, "Petrov", "Algebra", 4)

	// Manual edits may use all seven days.
	_, err := s.AddLesson(models.DefaultGroupID, 6, 3, subj.ID)
	assert.NoError(t, err)

	_, err = s.AddLesson(models.DefaultGroupID, 7, 0, subj.ID)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	_, err = s.AddLesson(models.DefaultGroupID, 0, 4, subj.ID)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestDeleteLessonRestoresPair(t *testing.T) {
	s := newTestStore(t)
	subj := addSubject(t, s, models.DefaultGroupID, "Petrov", "Algebra", 4)

	_, err := s.AddLesson(models.DefaultGroupID, 0, 0, subj.ID)
	require.NoError(t, err)
	require.NoError(t, s.DeleteLesson(models.DefaultGroupID, 0, 0))

	assert.Equal(t, 4, remainingHours(t, s, models.DefaultGroupID, subj.ID))

	err = s.DeleteLesson(models.DefaultGroupID, 0, 0)
	assert.True(t, appErrors.Is(err, appErrors.ErrSlotEmpty))
}

func TestReplaceLessonSwapsAtomically(t *testing.T) {
	s := newTestStore(t)
	subjA := addSubject(t, s, models.DefaultGroupID, "Petrov", "Algebra", 4)
	subjB := addSubject(t, s, models.DefaultGroupID, "Sidorova", "History", 4)

	original, err := s.AddLesson(models.DefaultGroupID, 0, 0, subjA.ID)
	require.NoError(t, err)

	replaced, err := s.ReplaceLesson(models.DefaultGroupID, 0, 0, subjB.ID)
	require.NoError(t, err)
	assert.Equal(t, original.ID, replaced.ID)
	assert.Equal(t, "Sidorova", replaced.Teacher)
	assert.Equal(t, 4, remainingHours(t, s, models.DefaultGroupID, subjA.ID))
	assert.Equal(t, 2, remainingHours(t, s, models.DefaultGroupID, subjB.ID))
}

func TestReplaceLessonFailureLeavesCellIntact(t *testing.T) {
	s := newTestStore(t)
	subjA := addSubject(t, s, models.DefaultGroupID, "Petrov", "Algebra", 4)
	subjB := addSubject(t, s, models.DefaultGroupID, "Sidorova", "History", 2)

	_, err := s.AddLesson(models.DefaultGroupID, 0, 0, subjA.ID)
	require.NoError(t, err)
	_, err = s.AddLesson(models.DefaultGroupID, 1, 0, subjB.ID)
	require.NoError(t, err)

	// subjB has no pairs left, the swap must fail without touching hours.
	_, err = s.ReplaceLesson(models.DefaultGroupID, 0, 0, subjB.ID)
	assert.True(t, appErrors.Is(err, appErrors.ErrSubjectExhausted))
	assert.Equal(t, 2, remainingHours(t, s, models.DefaultGroupID, subjA.ID))
	assert.Equal(t, 0, remainingHours(t, s, models.DefaultGroupID, subjB.ID))

	lessons, err := s.ListLessons(models.DefaultGroupID)
	require.NoError(t, err)
	require.Len(t, lessons, 2)
	assert.Equal(t, "Algebra", lessons[0].SubjectName)
}

func TestReplaceLessonOnEmptyCellActsAsAdd(t *testing.T) {
	s := newTestStore(t)
	subj := addSubject(t, s, models.DefaultGroupID, "Petrov", "Algebra", 4)

	lesson, err := s.ReplaceLesson(models.DefaultGroupID, 3, 2, subj.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, lesson.Day)
	assert.Equal(t, 2, lesson.TimeSlot)
	assert.Equal(t, 2, remainingHours(t, s, models.DefaultGroupID, subj.ID))
}

func TestReplaceLessonSameSubjectIsNoop(t *testing.T) {
	s := newTestStore(t)
	subj := addSubject(t, s, models.DefaultGroupID, "Petrov", "Algebra", 4)

	_, err := s.AddLesson(models.DefaultGroupID, 0, 0, subj.ID)
	require.NoError(t, err)

	lesson, err := s.ReplaceLesson(models.DefaultGroupID, 0, 0, subj.ID)
	require.NoError(t, err)
	assert.Equal(t, subj.ID, lesson.SubjectID)
	assert.Equal(t, 2, remainingHours(t, s, models.DefaultGroupID, subj.ID))
}

func TestCheckAvailabilityReportsReason(t *testing.T) {
	s := newTestStore(t)
	subj := addSubject(t, s, models.DefaultGroupID, "Petrov", "Algebra", 4)

	_, err := s.AddLesson(models.DefaultGroupID, 0, 0, subj.ID)
	require.NoError(t, err)

	verdict, err := s.CheckAvailability(models.DefaultGroupID, "Sidorova", 0, 0, nil)
	require.NoError(t, err)
	assert.False(t, verdict.Available)
	assert.NotEmpty(t, verdict.Reason)

	verdict, err = s.CheckAvailability(models.DefaultGroupID, "Sidorova", 0, 1, nil)
	require.NoError(t, err)
	assert.True(t, verdict.Available)
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	s := newTestStore(t)
	subjA := addSubject(t, s, models.DefaultGroupID, "Petrov", "Algebra", 8)
	subjB := addSubject(t, s, models.DefaultGroupID, "Sidorova", "History", 4)

	_, err := s.AddLesson(models.DefaultGroupID, 0, 0, subjA.ID)
	require.NoError(t, err)
	_, err = s.AddLesson(models.DefaultGroupID, 1, 2, subjB.ID)
	require.NoError(t, err)

	snapshot, err := s.Snapshot(models.DefaultGroupID)
	require.NoError(t, err)
	require.Len(t, snapshot, 2)

	// Diverge from the snapshot, then restore.
	require.NoError(t, s.DeleteLesson(models.DefaultGroupID, 0, 0))
	_, err = s.AddLesson(models.DefaultGroupID, 4, 3, subjA.ID)
	require.NoError(t, err)

	applied, err := s.RestoreSnapshot(models.DefaultGroupID, snapshot)
	require.NoError(t, err)
	assert.Len(t, applied, 2)

	lessons, err := s.ListLessons(models.DefaultGroupID)
	require.NoError(t, err)
	require.Len(t, lessons, 2)
	assert.Equal(t, "Algebra", lessons[0].SubjectName)
	assert.Equal(t, "History", lessons[1].SubjectName)
	assert.Equal(t, 6, remainingHours(t, s, models.DefaultGroupID, subjA.ID))
}

func TestRestoreSnapshotSkipsMissingSubjects(t *testing.T) {
	s := newTestStore(t)
	subjA := addSubject(t, s, models.DefaultGroupID, "Petrov", "Algebra", 4)
	subjB := addSubject(t, s, models.DefaultGroupID, "Sidorova", "History", 4)

	_, err := s.AddLesson(models.DefaultGroupID, 0, 0, subjA.ID)
	require.NoError(t, err)
	_, err = s.AddLesson(models.DefaultGroupID, 1, 1, subjB.ID)
	require.NoError(t, err)

	snapshot, err := s.Snapshot(models.DefaultGroupID)
	require.NoError(t, err)

	_, err = s.DeleteSubject(subjB.ID)
	require.NoError(t, err)

	applied, err := s.RestoreSnapshot(models.DefaultGroupID, snapshot)
	require.NoError(t, err)
	require.Len(t, applied, 1)
	assert.Equal(t, "Algebra", applied[0].SubjectName)
}
