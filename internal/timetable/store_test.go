package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/grigorev-dev/timetable-api/internal/models"
	appErrors "github.com/grigorev-dev/timetable-api/pkg/errors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(Options{CrossGroupExclusive: true}, zap.NewNop())
}

func addSubject(t *testing.T, s *Store, groupID int64, teacher, name string, hours int) *models.Subject {
	t.Helper()
	subj, err := s.CreateSubject(groupID, SubjectParams{
		Teacher:    teacher,
		Name:       name,
		TotalHours: hours,
		MaxPerDay:  2,
		MaxPerWeek: 10,
	})
	require.NoError(t, err)
	return subj
}

func TestStoreSeedsProtectedGroup(t *testing.T) {
	s := newTestStore(t)

	groups := s.ListGroups()
	require.Len(t, groups, 1)
	assert.Equal(t, models.DefaultGroupID, groups[0].ID)

	err := s.DeleteGroup(models.DefaultGroupID)
	assert.True(t, appErrors.Is(err, appErrors.ErrProtectedGroup))
}

func TestStoreCreateTeacherRejectsDuplicateName(t *testing.T) {
	s := newTestStore(t)

	first, err := s.CreateTeacher("Ivanov")
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	_, err = s.CreateTeacher("Ivanov")
	assert.True(t, appErrors.Is(err, appErrors.ErrDuplicateName))
}

func TestStoreCreateSubjectRegistersTeacher(t *testing.T) {
	s := newTestStore(t)

	subj := addSubject(t, s, models.DefaultGroupID, "Petrov", "Algebra", 8)
	assert.Equal(t, 8, subj.RemainingHours)
	assert.Equal(t, 4, subj.RemainingPairs)

	teachers := s.ListTeachers()
	require.Len(t, teachers, 1)
	assert.Equal(t, "Petrov", teachers[0].Name)
}

func TestStoreDeleteTeacherCascades(t *testing.T) {
	s := newTestStore(t)
	other, err := s.CreateGroup("Group 2")
	require.NoError(t, err)

	subjA := addSubject(t, s, models.DefaultGroupID, "Petrov", "Algebra", 8)
	addSubject(t, s, other.ID, "Petrov", "Geometry", 4)
	addSubject(t, s, models.DefaultGroupID, "Sidorova", "History", 4)

	_, err = s.AddLesson(models.DefaultGroupID, 0, 0, subjA.ID)
	require.NoError(t, err)

	_, err = s.SetFilter(other.ID, "Petrov", []int{4}, nil)
	require.NoError(t, err)

	teachers := s.ListTeachers()
	var petrovID int64
	for _, teacher := range teachers {
		if teacher.Name == "Petrov" {
			petrovID = teacher.ID
		}
	}
	require.NotZero(t, petrovID)

	summary, err := s.DeleteTeacher(petrovID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.SubjectsRemoved)
	assert.Equal(t, 1, summary.LessonsRemoved)
	assert.Equal(t, 1, summary.FiltersRemoved)

	subjects, err := s.ListSubjects(models.DefaultGroupID)
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, "Sidorova", subjects[0].Teacher)

	lessons, err := s.ListLessons(models.DefaultGroupID)
	require.NoError(t, err)
	assert.Empty(t, lessons)
}

func TestStoreDeleteGroupRemovesState(t *testing.T) {
	s := newTestStore(t)
	g, err := s.CreateGroup("Group 2")
	require.NoError(t, err)

	addSubject(t, s, g.ID, "Petrov", "Algebra", 4)

	require.NoError(t, s.DeleteGroup(g.ID))
	_, err = s.ListSubjects(g.ID)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestStoreRenameGroup(t *testing.T) {
	s := newTestStore(t)
	g, err := s.CreateGroup("Group 2")
	require.NoError(t, err)

	renamed, err := s.RenameGroup(g.ID, "Group 2B")
	require.NoError(t, err)
	assert.Equal(t, "Group 2B", renamed.Name)
}

func TestStoreStatisticsAggregates(t *testing.T) {
	s := newTestStore(t)
	subjA := addSubject(t, s, models.DefaultGroupID, "Petrov", "Algebra", 8)
	addSubject(t, s, models.DefaultGroupID, "Petrov", "Geometry", 4)
	addSubject(t, s, models.DefaultGroupID, "Sidorova", "History", 4)

	// Roster teachers count even without subjects in this group.
	_, err := s.CreateTeacher("Ivanova")
	require.NoError(t, err)

	_, err = s.AddLesson(models.DefaultGroupID, 0, 0, subjA.ID)
	require.NoError(t, err)

	stats, err := s.Statistics(models.DefaultGroupID)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalSubjects)
	assert.Equal(t, 3, stats.TotalTeachers)
	assert.Equal(t, 1, stats.ScheduledPairs)
	assert.Equal(t, 16, stats.TotalHours)
	assert.Equal(t, 14, stats.RemainingHours)
	assert.Equal(t, 7, stats.RemainingPairs)
}
