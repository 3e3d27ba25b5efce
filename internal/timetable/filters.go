package timetable

import (
	"sort"

	"github.com/grigorev-dev/timetable-api/internal/models"
	appErrors "github.com/grigorev-dev/timetable-api/pkg/errors"
)

// ListFilters returns the group's negative filters ordered by teacher name.
func (s *Store) ListFilters(groupID int64) ([]models.NegativeFilter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.groups[groupID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "group not found")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	result := make([]models.NegativeFilter, 0, len(g.filters))
	for _, f := range g.filters {
		result = append(result, *f)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Teacher < result[j].Teacher })
	return result, nil
}

// SetFilter creates or replaces the negative filter for a teacher within a
// group. The teacher must exist on the roster.
func (s *Store) SetFilter(groupID int64, teacher string, days, slots []int) (*models.NegativeFilter, error) {
	for _, d := range days {
		if d < 0 || d >= models.NumDays {
			return nil, appErrors.Clone(appErrors.ErrValidation, "restricted_days entries must be between 0 and 6")
		}
	}
	for _, slot := range slots {
		if slot < 0 || slot >= models.SlotsPerDay {
			return nil, appErrors.Clone(appErrors.ErrValidation, "restricted_slots entries must be between 0 and 3")
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, known := s.teacherNames[teacher]; !known {
		return nil, appErrors.Clone(appErrors.ErrNoTeacher, "")
	}
	g, ok := s.groups[groupID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "group not found")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	f := &models.NegativeFilter{
		GroupID:         groupID,
		Teacher:         teacher,
		RestrictedDays:  uniqueSorted(days),
		RestrictedSlots: uniqueSorted(slots),
	}
	g.filters[teacher] = f
	out := *f
	return &out, nil
}

// RemoveFilter deletes the teacher's filter from a group.
func (s *Store) RemoveFilter(groupID int64, teacher string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.groups[groupID]
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "group not found")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.filters[teacher]; !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "no filter exists for this teacher")
	}
	delete(g.filters, teacher)
	return nil
}

func uniqueSorted(values []int) []int {
	seen := make(map[int]struct{}, len(values))
	result := make([]int, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	sort.Ints(result)
	return result
}
