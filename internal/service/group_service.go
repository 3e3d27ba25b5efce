package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/grigorev-dev/timetable-api/internal/dto"
	"github.com/grigorev-dev/timetable-api/internal/models"
	appErrors "github.com/grigorev-dev/timetable-api/pkg/errors"
)

type groupStore interface {
	ListGroups() []models.Group
	CreateGroup(name string) (*models.Group, error)
	RenameGroup(groupID int64, name string) (*models.Group, error)
	DeleteGroup(groupID int64) error
}

type savedScheduleCleaner interface {
	DeleteByGroup(ctx context.Context, groupID int64) error
}

// GroupService manages study groups. Group 1 is seeded and cannot be removed.
type GroupService struct {
	store     groupStore
	saved     savedScheduleCleaner
	stats     statsInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGroupService constructs a GroupService.
func NewGroupService(store groupStore, saved savedScheduleCleaner, stats statsInvalidator, validate *validator.Validate, logger *zap.Logger) *GroupService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GroupService{store: store, saved: saved, stats: stats, validator: validate, logger: logger}
}

// List returns groups ordered by id.
func (s *GroupService) List(ctx context.Context) []models.Group {
	return s.store.ListGroups()
}

// Create adds a group.
func (s *GroupService) Create(ctx context.Context, req dto.CreateGroupRequest) (*models.Group, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid group payload")
	}
	return s.store.CreateGroup(req.Name)
}

// Rename changes a group's name.
func (s *GroupService) Rename(ctx context.Context, groupID int64, req dto.RenameGroupRequest) (*models.Group, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid group payload")
	}
	return s.store.RenameGroup(groupID, req.Name)
}

// Delete removes a group with its subjects, lessons, filters and snapshots.
func (s *GroupService) Delete(ctx context.Context, groupID int64) error {
	if err := s.store.DeleteGroup(groupID); err != nil {
		return err
	}
	if s.saved != nil {
		if err := s.saved.DeleteByGroup(ctx, groupID); err != nil {
			// The live state is already gone; orphan snapshots are logged,
			// not surfaced.
			s.logger.Warn("failed to drop saved schedules", zap.Int64("group_id", groupID), zap.Error(err))
		}
	}
	if s.stats != nil {
		s.stats.InvalidateAll(ctx)
	}
	s.logger.Info("group deleted", zap.Int64("group_id", groupID))
	return nil
}
