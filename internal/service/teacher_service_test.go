package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grigorev-dev/timetable-api/internal/dto"
	"github.com/grigorev-dev/timetable-api/internal/models"
	appErrors "github.com/grigorev-dev/timetable-api/pkg/errors"
)

func TestTeacherServiceCreateValidation(t *testing.T) {
	store := newStoreFixture(t)
	service := NewTeacherService(store, nil, nil, nil)

	_, err := service.Create(context.Background(), dto.CreateTeacherRequest{Name: ""})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestTeacherServiceDeleteFlushesStats(t *testing.T) {
	store := newStoreFixture(t)
	subj := seedSubject(t, store, models.DefaultGroupID, "Petrov", "Algebra", 4)
	stats := &invalidatorStub{}
	service := NewTeacherService(store, stats, nil, nil)

	summary, err := service.Delete(context.Background(), subj.TeacherID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.SubjectsRemoved)
	assert.Equal(t, 1, stats.flushed)
}

func TestGroupServiceProtectedGroup(t *testing.T) {
	store := newStoreFixture(t)
	service := NewGroupService(store, nil, nil, nil, nil)

	err := service.Delete(context.Background(), models.DefaultGroupID)
	assert.True(t, appErrors.Is(err, appErrors.ErrProtectedGroup))
}

func TestSubjectServiceCreateMapsQuota(t *testing.T) {
	store := newStoreFixture(t)
	stats := &invalidatorStub{}
	service := NewSubjectService(store, stats, nil, nil)

	subj, err := service.Create(context.Background(), models.DefaultGroupID, dto.CreateSubjectRequest{
		Teacher:     "Petrov",
		SubjectName: "Algebra",
		TotalHours:  8,
		Priority:    3,
		MaxPerDay:   2,
		MinPerWeek:  1,
		MaxPerWeek:  4,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, subj.RemainingPairs)
	assert.Equal(t, 3, subj.Priority)
	assert.Equal(t, 1, stats.flushed)
}

func TestSubjectServiceCreateRejectsOddHours(t *testing.T) {
	store := newStoreFixture(t)
	service := NewSubjectService(store, nil, nil, nil)

	_, err := service.Create(context.Background(), models.DefaultGroupID, dto.CreateSubjectRequest{
		Teacher:     "Petrov",
		SubjectName: "Algebra",
		TotalHours:  7,
		MaxPerDay:   2,
	})
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidQuota))
}
