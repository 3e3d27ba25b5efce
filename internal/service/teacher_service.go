package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/grigorev-dev/timetable-api/internal/dto"
	"github.com/grigorev-dev/timetable-api/internal/models"
	appErrors "github.com/grigorev-dev/timetable-api/pkg/errors"
)

type teacherStore interface {
	ListTeachers() []models.Teacher
	CreateTeacher(name string) (*models.Teacher, error)
	DeleteTeacher(teacherID int64) (models.CascadeSummary, error)
}

type statsInvalidator interface {
	Invalidate(ctx context.Context, groupID int64)
	InvalidateAll(ctx context.Context)
}

// TeacherService manages the global teacher roster.
type TeacherService struct {
	store     teacherStore
	stats     statsInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(store teacherStore, stats statsInvalidator, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{store: store, stats: stats, validator: validate, logger: logger}
}

// List returns the roster ordered by name.
func (s *TeacherService) List(ctx context.Context) []models.Teacher {
	return s.store.ListTeachers()
}

// Create registers a teacher; names are unique case-insensitively.
func (s *TeacherService) Create(ctx context.Context, req dto.CreateTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}
	return s.store.CreateTeacher(req.Name)
}

// Delete removes a teacher and cascades over subjects, lessons and filters in
// every group.
func (s *TeacherService) Delete(ctx context.Context, teacherID int64) (models.CascadeSummary, error) {
	summary, err := s.store.DeleteTeacher(teacherID)
	if err != nil {
		return models.CascadeSummary{}, err
	}
	if s.stats != nil {
		s.stats.InvalidateAll(ctx)
	}
	s.logger.Info("teacher deleted",
		zap.Int64("teacher_id", teacherID),
		zap.Int("subjects_removed", summary.SubjectsRemoved),
		zap.Int("lessons_removed", summary.LessonsRemoved),
	)
	return summary, nil
}
