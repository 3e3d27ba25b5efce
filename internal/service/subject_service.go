package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/grigorev-dev/timetable-api/internal/dto"
	"github.com/grigorev-dev/timetable-api/internal/models"
	"github.com/grigorev-dev/timetable-api/internal/timetable"
	appErrors "github.com/grigorev-dev/timetable-api/pkg/errors"
)

type subjectStore interface {
	ListSubjects(groupID int64) ([]models.Subject, error)
	CreateSubject(groupID int64, p timetable.SubjectParams) (*models.Subject, error)
	DeleteSubject(subjectID int64) (models.CascadeSummary, error)
}

// SubjectService manages a group's subject quotas.
type SubjectService struct {
	store     subjectStore
	stats     statsInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectService constructs a SubjectService.
func NewSubjectService(store subjectStore, stats statsInvalidator, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{store: store, stats: stats, validator: validate, logger: logger}
}

// List returns the group's subjects ordered by teacher then name.
func (s *SubjectService) List(ctx context.Context, groupID int64) ([]models.Subject, error) {
	return s.store.ListSubjects(groupID)
}

// Create attaches a subject to a group, registering the teacher on the
// roster when needed.
func (s *SubjectService) Create(ctx context.Context, groupID int64, req dto.CreateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}
	subj, err := s.store.CreateSubject(groupID, timetable.SubjectParams{
		Teacher:    req.Teacher,
		Name:       req.SubjectName,
		TotalHours: req.TotalHours,
		Priority:   req.Priority,
		MaxPerDay:  req.MaxPerDay,
		MinPerWeek: req.MinPerWeek,
		MaxPerWeek: req.MaxPerWeek,
	})
	if err != nil {
		return nil, err
	}
	if s.stats != nil {
		s.stats.InvalidateAll(ctx)
	}
	return subj, nil
}

// Delete removes a subject and its scheduled lessons.
func (s *SubjectService) Delete(ctx context.Context, subjectID int64) (models.CascadeSummary, error) {
	summary, err := s.store.DeleteSubject(subjectID)
	if err != nil {
		return models.CascadeSummary{}, err
	}
	if s.stats != nil {
		s.stats.InvalidateAll(ctx)
	}
	return summary, nil
}
