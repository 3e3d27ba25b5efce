package timetable

import (
	"github.com/grigorev-dev/timetable-api/internal/models"
	appErrors "github.com/grigorev-dev/timetable-api/pkg/errors"
)

// Statistics aggregates the group's scheduling state. Teacher count is the
// size of the global roster, since teachers are shared across groups.
func (s *Store) Statistics(groupID int64) (*models.Statistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.groups[groupID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "group not found")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	stats := &models.Statistics{
		TotalSubjects:  len(g.subjects),
		TotalTeachers:  len(s.teachers),
		ScheduledPairs: len(g.lessons),
	}
	for _, subj := range g.subjects {
		stats.TotalHours += subj.TotalHours
		stats.RemainingHours += subj.RemainingHours
		stats.RemainingPairs += subj.RemainingPairs
	}
	return stats, nil
}
