package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/grigorev-dev/timetable-api/internal/dto"
	"github.com/grigorev-dev/timetable-api/internal/models"
	appErrors "github.com/grigorev-dev/timetable-api/pkg/errors"
)

type snapshotStore interface {
	GroupExists(groupID int64) bool
	Snapshot(groupID int64) ([]models.Lesson, error)
	RestoreSnapshot(groupID int64, lessons []models.Lesson) ([]models.Lesson, error)
}

type savedScheduleRepo interface {
	Save(ctx context.Context, groupID int64, name string, lessons []models.Lesson) (*models.SavedSchedule, error)
	List(ctx context.Context, groupID int64) ([]models.SavedSchedule, error)
	Get(ctx context.Context, id string) (*models.SavedSchedule, error)
	Delete(ctx context.Context, id string) error
}

// SavedScheduleService snapshots the live grid into named, immutable records
// and restores them later. Restoring skips snapshot entries that no longer
// fit the current subjects and filters.
type SavedScheduleService struct {
	store     snapshotStore
	repo      savedScheduleRepo
	stats     statsInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSavedScheduleService constructs a SavedScheduleService.
func NewSavedScheduleService(store snapshotStore, repo savedScheduleRepo, stats statsInvalidator, validate *validator.Validate, logger *zap.Logger) *SavedScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SavedScheduleService{store: store, repo: repo, stats: stats, validator: validate, logger: logger}
}

// Save names and persists the group's current grid. An empty grid cannot be
// saved.
func (s *SavedScheduleService) Save(ctx context.Context, groupID int64, req dto.SaveScheduleRequest) (*models.SavedSchedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid save payload")
	}
	lessons, err := s.store.Snapshot(groupID)
	if err != nil {
		return nil, err
	}
	if len(lessons) == 0 {
		return nil, appErrors.Clone(appErrors.ErrEmptySchedule, "")
	}
	record, err := s.repo.Save(ctx, groupID, req.Name, lessons)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save schedule")
	}
	s.logger.Info("schedule saved",
		zap.Int64("group_id", groupID),
		zap.String("schedule_id", record.ID),
		zap.Int("lessons", record.LessonCount),
	)
	return record, nil
}

// List returns the group's snapshots, newest first.
func (s *SavedScheduleService) List(ctx context.Context, groupID int64) ([]models.SavedSchedule, error) {
	if !s.store.GroupExists(groupID) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "group not found")
	}
	list, err := s.repo.List(ctx, groupID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list saved schedules")
	}
	return list, nil
}

// Get returns one snapshot with its lessons.
func (s *SavedScheduleService) Get(ctx context.Context, id string) (*models.SavedSchedule, error) {
	return s.repo.Get(ctx, id)
}

// Restore replaces the group's live grid with a snapshot. The snapshot must
// belong to the group; entries that cannot legally apply anymore are dropped.
func (s *SavedScheduleService) Restore(ctx context.Context, groupID int64, id string) ([]models.Lesson, error) {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.GroupID != groupID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "saved schedule not found for this group")
	}
	applied, err := s.store.RestoreSnapshot(groupID, record.Lessons)
	if err != nil {
		return nil, err
	}
	if s.stats != nil {
		s.stats.Invalidate(ctx, groupID)
	}
	if len(applied) < len(record.Lessons) {
		s.logger.Warn("snapshot partially restored",
			zap.Int64("group_id", groupID),
			zap.String("schedule_id", id),
			zap.Int("applied", len(applied)),
			zap.Int("saved", len(record.Lessons)),
		)
	}
	return applied, nil
}

// Delete removes a snapshot.
func (s *SavedScheduleService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
