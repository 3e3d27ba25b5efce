package timetable

import (
	"sort"
	"strings"

	"github.com/grigorev-dev/timetable-api/internal/models"
	appErrors "github.com/grigorev-dev/timetable-api/pkg/errors"
)

// SubjectParams carries the caller-supplied fields of a new subject.
type SubjectParams struct {
	Teacher    string
	Name       string
	TotalHours int
	Priority   int
	MaxPerDay  int
	MinPerWeek int
	MaxPerWeek int
}

func validateQuota(p SubjectParams) error {
	if p.TotalHours <= 0 || p.TotalHours%models.HoursPerPair != 0 {
		return appErrors.Clone(appErrors.ErrInvalidQuota, "total_hours must be a positive even number")
	}
	if p.MaxPerDay < models.MaxPerDayMin || p.MaxPerDay > models.MaxPerDayMax {
		return appErrors.Clone(appErrors.ErrInvalidQuota, "max_per_day must be between 1 and 4")
	}
	if p.MaxPerWeek < 0 || p.MaxPerWeek > models.MaxPerWeekCap {
		return appErrors.Clone(appErrors.ErrInvalidQuota, "max_per_week must be between 0 and 20")
	}
	if p.MinPerWeek < 0 || p.MinPerWeek > p.MaxPerWeek {
		return appErrors.Clone(appErrors.ErrInvalidQuota, "min_per_week must not exceed max_per_week")
	}
	return nil
}

// ListSubjects returns the group's subjects ordered by teacher then name.
func (s *Store) ListSubjects(groupID int64) ([]models.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.groups[groupID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "group not found")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	result := make([]models.Subject, 0, len(g.subjects))
	for _, subj := range g.subjects {
		result = append(result, *subj)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Teacher == result[j].Teacher {
			return result[i].Name < result[j].Name
		}
		return result[i].Teacher < result[j].Teacher
	})
	return result, nil
}

// CreateSubject adds a subject to a group. The (teacher, name, group) triple
// is unique; a duplicate is rejected, not merged. Unknown teachers are added
// to the roster on demand.
func (s *Store) CreateSubject(groupID int64, p SubjectParams) (*models.Subject, error) {
	p.Teacher = strings.TrimSpace(p.Teacher)
	p.Name = strings.TrimSpace(p.Name)
	if p.Teacher == "" || p.Name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacher and subject_name are required")
	}
	if err := validateQuota(p); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.groups[groupID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "group not found")
	}

	teacherID, known := s.teacherNames[p.Teacher]
	if !known {
		teacherID = s.addTeacherLocked(p.Teacher).ID
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for _, existing := range g.subjects {
		if existing.TeacherID == teacherID && existing.Name == p.Name {
			return nil, appErrors.Clone(appErrors.ErrDuplicateSubject, "")
		}
	}

	s.nextSubjectID++
	subj := &models.Subject{
		ID:             s.nextSubjectID,
		GroupID:        groupID,
		TeacherID:      teacherID,
		Teacher:        p.Teacher,
		Name:           p.Name,
		TotalHours:     p.TotalHours,
		RemainingHours: p.TotalHours,
		RemainingPairs: p.TotalHours / models.HoursPerPair,
		Priority:       p.Priority,
		MaxPerDay:      p.MaxPerDay,
		MinPerWeek:     p.MinPerWeek,
		MaxPerWeek:     p.MaxPerWeek,
	}
	g.subjects[subj.ID] = subj
	out := *subj
	return &out, nil
}

// DeleteSubject removes a subject and every lesson referencing it.
func (s *Store) DeleteSubject(subjectID int64) (models.CascadeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for id, g := range s.groups {
		g.mu.Lock()
		if _, ok := g.subjects[subjectID]; ok {
			removed := g.removeLessonsOfSubject(subjectID)
			delete(g.subjects, subjectID)
			g.mu.Unlock()
			return models.CascadeSummary{
				SubjectsRemoved: 1,
				LessonsRemoved:  removed,
				GroupsAffected:  []int64{id},
			}, nil
		}
		g.mu.Unlock()
	}
	return models.CascadeSummary{}, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
}

// findSubject resolves a subject within a group; caller holds the group lock.
func (g *groupState) findSubject(subjectID int64) (*models.Subject, bool) {
	subj, ok := g.subjects[subjectID]
	return subj, ok
}

// findSubjectByName resolves a subject by teacher and name; caller holds the
// group lock.
func (g *groupState) findSubjectByName(teacher, name string) (*models.Subject, bool) {
	for _, subj := range g.subjects {
		if subj.Teacher == teacher && subj.Name == name {
			return subj, true
		}
	}
	return nil, false
}

// consumePair transfers one pair from quota to the grid; caller holds the
// group lock and has verified RemainingPairs > 0.
func consumePair(subj *models.Subject) {
	subj.RemainingHours -= models.HoursPerPair
	subj.RemainingPairs = subj.RemainingHours / models.HoursPerPair
}

// restorePair is the exact inverse of consumePair.
func restorePair(subj *models.Subject) {
	subj.RemainingHours += models.HoursPerPair
	if subj.RemainingHours > subj.TotalHours {
		subj.RemainingHours = subj.TotalHours
	}
	subj.RemainingPairs = subj.RemainingHours / models.HoursPerPair
}
