package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/grigorev-dev/timetable-api/internal/dto"
	"github.com/grigorev-dev/timetable-api/internal/models"
	appErrors "github.com/grigorev-dev/timetable-api/pkg/errors"
)

type filterStore interface {
	ListFilters(groupID int64) ([]models.NegativeFilter, error)
	SetFilter(groupID int64, teacher string, days, slots []int) (*models.NegativeFilter, error)
	RemoveFilter(groupID int64, teacher string) error
}

// FilterService manages per-group teacher availability restrictions.
type FilterService struct {
	store     filterStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFilterService constructs a FilterService.
func NewFilterService(store filterStore, validate *validator.Validate, logger *zap.Logger) *FilterService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FilterService{store: store, validator: validate, logger: logger}
}

// List returns the group's filters ordered by teacher.
func (s *FilterService) List(ctx context.Context, groupID int64) ([]models.NegativeFilter, error) {
	return s.store.ListFilters(groupID)
}

// Set creates or replaces the teacher's filter within a group.
func (s *FilterService) Set(ctx context.Context, groupID int64, req dto.SetFilterRequest) (*models.NegativeFilter, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid filter payload")
	}
	return s.store.SetFilter(groupID, req.Teacher, req.RestrictedDays, req.RestrictedSlots)
}

// Remove drops the teacher's filter within a group.
func (s *FilterService) Remove(ctx context.Context, groupID int64, teacher string) error {
	return s.store.RemoveFilter(groupID, teacher)
}
