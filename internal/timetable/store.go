package timetable

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/grigorev-dev/timetable-api/internal/models"
	appErrors "github.com/grigorev-dev/timetable-api/pkg/errors"
)

// Options tunes store behaviour.
type Options struct {
	// CrossGroupExclusive treats teacher time as globally exclusive: a
	// teacher occupying a cell in one group blocks the same cell in every
	// other group.
	CrossGroupExclusive bool
	// DefaultGroupName names the seeded, protected group.
	DefaultGroupName string
	// Strategy plans generated weeks; nil selects the greedy strategy.
	Strategy Strategy
}

// Store is the canonical in-memory state of the scheduling core: the global
// teacher roster, the groups and, per group, subjects, lessons and negative
// filters. Every mutation validates first and commits under lock, so callers
// never observe partial effects.
type Store struct {
	opts     Options
	logger   *zap.Logger
	strategy Strategy

	// mu guards the registries (groups map, teacher roster, id counters).
	// Each group guards its own contents; group locks are always taken in
	// ascending group id order.
	mu           sync.RWMutex
	groups       map[int64]*groupState
	teachers     map[int64]*models.Teacher
	teacherNames map[string]int64

	nextTeacherID int64
	nextGroupID   int64
	nextSubjectID int64
	nextLessonID  int64
}

type Cell struct {
	Day  int
	Slot int
}

type groupState struct {
	mu       sync.Mutex
	group    models.Group
	subjects map[int64]*models.Subject
	lessons  map[Cell]*models.Lesson
	filters  map[string]*models.NegativeFilter
}

// NewStore builds a store seeded with the protected default group.
func NewStore(opts Options, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.DefaultGroupName == "" {
		opts.DefaultGroupName = "Group 1"
	}
	if opts.Strategy == nil {
		opts.Strategy = NewGreedyStrategy()
	}
	s := &Store{
		opts:         opts,
		logger:       logger,
		strategy:     opts.Strategy,
		groups:       make(map[int64]*groupState),
		teachers:     make(map[int64]*models.Teacher),
		teacherNames: make(map[string]int64),
		nextGroupID:  models.DefaultGroupID,
	}
	s.groups[models.DefaultGroupID] = newGroupState(models.Group{
		ID:        models.DefaultGroupID,
		Name:      opts.DefaultGroupName,
		CreatedAt: time.Now().UTC(),
	})
	s.nextGroupID = models.DefaultGroupID + 1
	return s
}

func newGroupState(g models.Group) *groupState {
	return &groupState{
		group:    g,
		subjects: make(map[int64]*models.Subject),
		lessons:  make(map[Cell]*models.Lesson),
		filters:  make(map[string]*models.NegativeFilter),
	}
}

// lockGroups acquires the given group locks in ascending id order and returns
// a release callback.
func (s *Store) lockGroups(ids []int64) func() {
	sorted := make([]int64, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	locked := make([]*groupState, 0, len(sorted))
	for _, id := range sorted {
		if g, ok := s.groups[id]; ok {
			g.mu.Lock()
			locked = append(locked, g)
		}
	}
	return func() {
		for i := len(locked) - 1; i >= 0; i-- {
			locked[i].mu.Unlock()
		}
	}
}

// affectedGroups returns the lock set for a mutation rooted at groupID. Under
// cross-group exclusivity every group participates in availability checks.
func (s *Store) affectedGroups(groupID int64) []int64 {
	if !s.opts.CrossGroupExclusive {
		return []int64{groupID}
	}
	ids := make([]int64, 0, len(s.groups))
	for id := range s.groups {
		ids = append(ids, id)
	}
	return ids
}

func (s *Store) nextLesson() int64 {
	return atomic.AddInt64(&s.nextLessonID, 1)
}

func (s *Store) allGroupIDs() []int64 {
	ids := make([]int64, 0, len(s.groups))
	for id := range s.groups {
		ids = append(ids, id)
	}
	return ids
}

// --- Teachers ---

// ListTeachers returns the global roster ordered by name.
func (s *Store) ListTeachers() []models.Teacher {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Teacher, 0, len(s.teachers))
	for _, t := range s.teachers {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// CreateTeacher adds a teacher to the global roster. Names are unique.
func (s *Store) CreateTeacher(name string) (*models.Teacher, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacher name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.teacherNames[name]; exists {
		return nil, appErrors.Clone(appErrors.ErrDuplicateName, "a teacher with this name already exists")
	}
	t := s.addTeacherLocked(name)
	return &t, nil
}

// addTeacherLocked inserts a roster entry; caller holds s.mu.
func (s *Store) addTeacherLocked(name string) models.Teacher {
	s.nextTeacherID++
	t := &models.Teacher{
		ID:        s.nextTeacherID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	s.teachers[t.ID] = t
	s.teacherNames[t.Name] = t.ID
	return *t
}

// DeleteTeacher removes a teacher and cascades: every subject taught by the
// teacher in every group, every lesson referencing those subjects and every
// negative filter for the teacher. The cascade commits as one unit.
func (s *Store) DeleteTeacher(teacherID int64) (models.CascadeSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	teacher, ok := s.teachers[teacherID]
	if !ok {
		return models.CascadeSummary{}, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}

	release := s.lockGroups(s.allGroupIDs())
	defer release()

	summary := models.CascadeSummary{}
	for id, g := range s.groups {
		affected := false
		for sid, subj := range g.subjects {
			if subj.TeacherID != teacherID {
				continue
			}
			summary.LessonsRemoved += g.removeLessonsOfSubject(sid)
			delete(g.subjects, sid)
			summary.SubjectsRemoved++
			affected = true
		}
		if _, hasFilter := g.filters[teacher.Name]; hasFilter {
			delete(g.filters, teacher.Name)
			summary.FiltersRemoved++
			affected = true
		}
		if affected {
			summary.GroupsAffected = append(summary.GroupsAffected, id)
		}
	}
	sort.Slice(summary.GroupsAffected, func(i, j int) bool {
		return summary.GroupsAffected[i] < summary.GroupsAffected[j]
	})

	delete(s.teacherNames, teacher.Name)
	delete(s.teachers, teacherID)

	s.logger.Info("teacher deleted",
		zap.Int64("teacher_id", teacherID),
		zap.Int("subjects_removed", summary.SubjectsRemoved),
		zap.Int("lessons_removed", summary.LessonsRemoved),
	)
	return summary, nil
}

// removeLessonsOfSubject drops all lessons tied to a subject; caller holds the
// group lock. Hours are not restored because the subject itself is going away.
func (g *groupState) removeLessonsOfSubject(subjectID int64) int {
	removed := 0
	for key, lesson := range g.lessons {
		if lesson.SubjectID == subjectID {
			delete(g.lessons, key)
			removed++
		}
	}
	return removed
}

// --- Groups ---

// ListGroups returns groups ordered by id.
func (s *Store) ListGroups() []models.Group {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Group, 0, len(s.groups))
	for _, g := range s.groups {
		result = append(result, g.group)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// CreateGroup adds a group with a unique name.
func (s *Store) CreateGroup(name string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "group name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.groups {
		if g.group.Name == name {
			return nil, appErrors.Clone(appErrors.ErrDuplicateName, "a group with this name already exists")
		}
	}

	group := models.Group{
		ID:        s.nextGroupID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	s.nextGroupID++
	s.groups[group.ID] = newGroupState(group)
	return &group, nil
}

// RenameGroup changes a group's name. The default group is immutable.
func (s *Store) RenameGroup(groupID int64, name string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "group name is required")
	}
	if groupID == models.DefaultGroupID {
		return nil, appErrors.Clone(appErrors.ErrProtectedGroup, "the default group cannot be renamed")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.groups[groupID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "group not found")
	}
	for id, other := range s.groups {
		if id != groupID && other.group.Name == name {
			return nil, appErrors.Clone(appErrors.ErrDuplicateName, "a group with this name already exists")
		}
	}

	g.mu.Lock()
	g.group.Name = name
	renamed := g.group
	g.mu.Unlock()
	return &renamed, nil
}

// DeleteGroup removes a group and everything scoped to it.
func (s *Store) DeleteGroup(groupID int64) error {
	if groupID == models.DefaultGroupID {
		return appErrors.Clone(appErrors.ErrProtectedGroup, "the default group cannot be deleted")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[groupID]; !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "group not found")
	}
	delete(s.groups, groupID)
	s.logger.Info("group deleted", zap.Int64("group_id", groupID))
	return nil
}

// GroupExists reports whether a group id is known.
func (s *Store) GroupExists(groupID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.groups[groupID]
	return ok
}
