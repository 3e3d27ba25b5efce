package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grigorev-dev/timetable-api/internal/models"
	appErrors "github.com/grigorev-dev/timetable-api/pkg/errors"
)

func TestCreateSubjectQuotaValidation(t *testing.T) {
	s := newTestStore(t)

	cases := []struct {
		name   string
		params SubjectParams
	}{
		{"odd hours", SubjectParams{Teacher: "Petrov", Name: "Algebra", TotalHours: 7, MaxPerDay: 2}},
		{"zero hours", SubjectParams{Teacher: "Petrov", Name: "Algebra", TotalHours: 0, MaxPerDay: 2}},
		{"max_per_day too low", SubjectParams{Teacher: "Petrov", Name: "Algebra", TotalHours: 4, MaxPerDay: 0}},
		{"max_per_day too high", SubjectParams{Teacher: "Petrov", Name: "Algebra", TotalHours: 4, MaxPerDay: 5}},
		{"max_per_week over cap", SubjectParams{Teacher: "Petrov", Name: "Algebra", TotalHours: 4, MaxPerDay: 2, MaxPerWeek: 21}},
		{"min above max", SubjectParams{Teacher: "Petrov", Name: "Algebra", TotalHours: 4, MaxPerDay: 2, MinPerWeek: 3, MaxPerWeek: 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.CreateSubject(models.DefaultGroupID, tc.params)
			assert.True(t, appErrors.Is(err, appErrors.ErrInvalidQuota))
		})
	}
}

func TestCreateSubjectRequiresNames(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateSubject(models.DefaultGroupID, SubjectParams{Teacher: "  ", Name: "Algebra", TotalHours: 4, MaxPerDay: 2})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestCreateSubjectRejectsDuplicateTriple(t *testing.T) {
	s := newTestStore(t)
	addSubject(t, s, models.DefaultGroupID, "Petrov", "Algebra", 8)

	_, err := s.CreateSubject(models.DefaultGroupID, SubjectParams{
		Teacher: "Petrov", Name: "Algebra", TotalHours: 4, MaxPerDay: 1,
	})
	assert.True(t, appErrors.Is(err, appErrors.ErrDuplicateSubject))

	// Same pair in another group is a distinct subject.
	other, err := s.CreateGroup("Group 2")
	require.NoError(t, err)
	_, err = s.CreateSubject(other.ID, SubjectParams{
		Teacher: "Petrov", Name: "Algebra", TotalHours: 4, MaxPerDay: 1,
	})
	assert.NoError(t, err)
}

func TestDeleteSubjectRemovesLessons(t *testing.T) {
	s := newTestStore(t)
	subj := addSubject(t, s, models.DefaultGroupID, "Petrov", "Algebra", 8)

	_, err := s.AddLesson(models.DefaultGroupID, 0, 0, subj.ID)
	require.NoError(t, err)
	_, err = s.AddLesson(models.DefaultGroupID, 1, 0, subj.ID)
	require.NoError(t, err)

	summary, err := s.DeleteSubject(subj.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.SubjectsRemoved)
	assert.Equal(t, 2, summary.LessonsRemoved)

	lessons, err := s.ListLessons(models.DefaultGroupID)
	require.NoError(t, err)
	assert.Empty(t, lessons)
}

func TestDeleteSubjectUnknown(t *testing.T) {
	s := newTestStore(t)

	_, err := s.DeleteSubject(404)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}
