package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/grigorev-dev/timetable-api/internal/dto"
	"github.com/grigorev-dev/timetable-api/internal/models"
	"github.com/grigorev-dev/timetable-api/internal/timetable"
	appErrors "github.com/grigorev-dev/timetable-api/pkg/errors"
)

type scheduleStore interface {
	ListLessons(groupID int64) ([]models.Lesson, error)
	AddLesson(groupID int64, day, slot int, subjectID int64) (*models.Lesson, error)
	DeleteLesson(groupID int64, day, slot int) error
	ReplaceLesson(groupID int64, day, slot int, newSubjectID int64) (*models.Lesson, error)
	CheckAvailability(groupID int64, teacher string, day, slot int, exclude *timetable.Cell) (models.Availability, error)
	Generate(groupID int64) (*models.GenerationResult, error)
}

// ScheduleService exposes the weekly grid: listing, generation and manual
// edits. Every mutation invalidates the group's cached statistics.
type ScheduleService struct {
	store     scheduleStore
	stats     statsInvalidator
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewScheduleService constructs a ScheduleService.
func NewScheduleService(store scheduleStore, stats statsInvalidator, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{store: store, stats: stats, validator: validate, logger: logger, now: time.Now}
}

// List returns the group's lessons in grid order with past markers resolved
// against the current wall clock.
func (s *ScheduleService) List(ctx context.Context, groupID int64) ([]models.Lesson, error) {
	lessons, err := s.store.ListLessons(groupID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range lessons {
		lessons[i].IsPast = lessonIsPast(lessons[i], now)
	}
	return lessons, nil
}

// lessonIsPast reports whether the lesson's window has closed this week.
// Weeks start on Monday.
func lessonIsPast(lesson models.Lesson, now time.Time) bool {
	weekday := (int(now.Weekday()) + 6) % 7
	if lesson.Day != weekday {
		return lesson.Day < weekday
	}
	end := models.SlotWindows[lesson.TimeSlot].End
	endOfSlot, err := time.ParseInLocation("15:04", end, now.Location())
	if err != nil {
		return false
	}
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), endOfSlot.Hour(), endOfSlot.Minute(), 0, 0, now.Location())
	return now.After(cutoff)
}

// Generate rebuilds the group's week from its subject quotas.
func (s *ScheduleService) Generate(ctx context.Context, groupID int64) (*models.GenerationResult, error) {
	result, err := s.store.Generate(groupID)
	if err != nil {
		return nil, err
	}
	if s.stats != nil {
		s.stats.Invalidate(ctx, groupID)
	}
	return result, nil
}

// AddLesson places a subject at an empty cell.
func (s *ScheduleService) AddLesson(ctx context.Context, groupID int64, req dto.AddLessonRequest) (*models.Lesson, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lesson payload")
	}
	lesson, err := s.store.AddLesson(groupID, req.Day, req.TimeSlot, req.SubjectID)
	if err != nil {
		return nil, err
	}
	if s.stats != nil {
		s.stats.Invalidate(ctx, groupID)
	}
	return lesson, nil
}

// DeleteLesson clears a cell, handing the pair back to the subject.
func (s *ScheduleService) DeleteLesson(ctx context.Context, groupID int64, day, slot int) error {
	if err := s.store.DeleteLesson(groupID, day, slot); err != nil {
		return err
	}
	if s.stats != nil {
		s.stats.Invalidate(ctx, groupID)
	}
	return nil
}

// ReplaceLesson swaps the subject occupying a cell in one step.
func (s *ScheduleService) ReplaceLesson(ctx context.Context, groupID int64, req dto.ReplaceLessonRequest) (*models.Lesson, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lesson payload")
	}
	lesson, err := s.store.ReplaceLesson(groupID, req.Day, req.TimeSlot, req.SubjectID)
	if err != nil {
		return nil, err
	}
	if s.stats != nil {
		s.stats.Invalidate(ctx, groupID)
	}
	return lesson, nil
}

// CheckAvailability reports whether the teacher may take the cell, without
// side effects.
func (s *ScheduleService) CheckAvailability(ctx context.Context, groupID int64, query dto.AvailabilityQuery) (models.Availability, error) {
	if err := s.validator.Struct(query); err != nil {
		return models.Availability{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability query")
	}
	return s.store.CheckAvailability(groupID, query.Teacher, query.Day, query.TimeSlot, nil)
}
