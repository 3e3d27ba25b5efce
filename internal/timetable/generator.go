package timetable

import (
	"sort"

	"go.uber.org/zap"

	"github.com/grigorev-dev/timetable-api/internal/models"
	appErrors "github.com/grigorev-dev/timetable-api/pkg/errors"
)

// Placement is a single cell assignment produced by a planning strategy.
type Placement struct {
	SubjectID int64
	Day       int
	Slot      int
}

// PlanInput carries everything a strategy needs to fill one group's week.
// Subjects are copies; mutating them does not touch the store. TeacherBusy
// probes other groups for a clash and is nil when cross-group exclusivity
// is disabled.
type PlanInput struct {
	Subjects    []models.Subject
	Filters     map[string]*models.NegativeFilter
	TeacherBusy func(teacher string, day, slot int) bool
}

// Strategy plans lesson placements for an empty weekly grid. Implementations
// must only use days 0 through 4.
type Strategy interface {
	Plan(in PlanInput) []Placement
}

// GreedyStrategy fills the grid in a single pass over the schedulable days
// and slots, placing at each cell the best subject that still qualifies.
// Subjects are ranked by priority, then remaining pairs, then id; there is
// no backtracking, so a week can end under-filled even when a different
// order would have fit more pairs.
type GreedyStrategy struct{}

// NewGreedyStrategy returns the default planning strategy.
func NewGreedyStrategy() *GreedyStrategy {
	return &GreedyStrategy{}
}

type planCandidate struct {
	subj      models.Subject
	pairsLeft int
	perDay    [models.SchedulableDay]int
	placed    int
}

func (st *GreedyStrategy) Plan(in PlanInput) []Placement {
	candidates := make([]*planCandidate, 0, len(in.Subjects))
	for _, subj := range in.Subjects {
		if subj.RemainingPairs <= 0 {
			continue
		}
		candidates = append(candidates, &planCandidate{subj: subj, pairsLeft: subj.RemainingPairs})
	}
	if len(candidates) == 0 {
		return nil
	}

	var placements []Placement
	for day := 0; day < models.SchedulableDay; day++ {
		for slot := 0; slot < models.SlotsPerDay; slot++ {
			best := st.pick(candidates, in, day, slot)
			if best == nil {
				continue
			}
			placements = append(placements, Placement{SubjectID: best.subj.ID, Day: day, Slot: slot})
			best.pairsLeft--
			best.perDay[day]++
			best.placed++
		}
	}
	return placements
}

// pick returns the highest-ranked candidate that may take the cell, or nil
// when the cell has to stay empty.
func (st *GreedyStrategy) pick(candidates []*planCandidate, in PlanInput, day, slot int) *planCandidate {
	var best *planCandidate
	for _, c := range candidates {
		if !st.fits(c, in, day, slot) {
			continue
		}
		if best == nil || rankHigher(c, best) {
			best = c
		}
	}
	return best
}

func (st *GreedyStrategy) fits(c *planCandidate, in PlanInput, day, slot int) bool {
	if c.pairsLeft <= 0 {
		return false
	}
	if c.perDay[day] >= c.subj.MaxPerDay {
		return false
	}
	if c.subj.MaxPerWeek > 0 && c.placed >= c.subj.MaxPerWeek {
		return false
	}
	if f := in.Filters[c.subj.Teacher]; f != nil {
		if f.BlocksDay(day) || f.BlocksSlot(slot) {
			return false
		}
	}
	if in.TeacherBusy != nil && in.TeacherBusy(c.subj.Teacher, day, slot) {
		return false
	}
	return true
}

func rankHigher(a, b *planCandidate) bool {
	if a.subj.Priority != b.subj.Priority {
		return a.subj.Priority > b.subj.Priority
	}
	if a.pairsLeft != b.pairsLeft {
		return a.pairsLeft > b.pairsLeft
	}
	return a.subj.ID < b.subj.ID
}

// Generate rebuilds the group's week from scratch. The existing grid is
// cleared with every pair handed back, the strategy plans the new week, and
// the plan is committed with full hour bookkeeping. Returns ErrNoSubjects
// when the group has nothing left to schedule.
func (s *Store) Generate(groupID int64) (*models.GenerationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.groups[groupID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "group not found")
	}

	release := s.lockGroups(s.affectedGroups(groupID))
	defer release()

	g.clearLessonsLocked()

	in := PlanInput{
		Subjects: make([]models.Subject, 0, len(g.subjects)),
		Filters:  g.filters,
	}
	for _, subj := range g.subjects {
		in.Subjects = append(in.Subjects, *subj)
	}
	if s.opts.CrossGroupExclusive {
		in.TeacherBusy = func(teacher string, day, slot int) bool {
			_, busy := s.teacherBusyElsewhereLocked(groupID, teacher, day, slot)
			return busy
		}
	}

	hasPairs := false
	for _, subj := range in.Subjects {
		if subj.RemainingPairs > 0 {
			hasPairs = true
			break
		}
	}
	if !hasPairs {
		return nil, appErrors.Clone(appErrors.ErrNoSubjects, "")
	}

	placements := s.strategy.Plan(in)

	placedBySubject := make(map[int64]int, len(g.subjects))
	result := &models.GenerationResult{Lessons: make([]models.Lesson, 0, len(placements))}
	for _, p := range placements {
		subj, found := g.findSubject(p.SubjectID)
		if !found || subj.RemainingPairs <= 0 {
			continue
		}
		key := Cell{Day: p.Day, Slot: p.Slot}
		if _, taken := g.lessons[key]; taken {
			continue
		}
		lesson := &models.Lesson{
			ID:          s.nextLesson(),
			GroupID:     groupID,
			SubjectID:   subj.ID,
			Teacher:     subj.Teacher,
			SubjectName: subj.Name,
			Day:         p.Day,
			TimeSlot:    p.Slot,
		}
		g.lessons[key] = lesson
		consumePair(subj)
		placedBySubject[subj.ID]++
		result.Lessons = append(result.Lessons, *lesson)
	}

	sort.Slice(result.Lessons, func(i, j int) bool {
		if result.Lessons[i].Day != result.Lessons[j].Day {
			return result.Lessons[i].Day < result.Lessons[j].Day
		}
		return result.Lessons[i].TimeSlot < result.Lessons[j].TimeSlot
	})
	result.PlacedCount = len(result.Lessons)

	for _, subj := range in.Subjects {
		if subj.MinPerWeek > 0 && placedBySubject[subj.ID] < subj.MinPerWeek {
			result.UnderScheduled = append(result.UnderScheduled, subj.ID)
		}
	}
	sort.Slice(result.UnderScheduled, func(i, j int) bool {
		return result.UnderScheduled[i] < result.UnderScheduled[j]
	})

	s.logger.Info("schedule generated",
		zap.Int64("group_id", groupID),
		zap.Int("placed", result.PlacedCount),
		zap.Int("under_scheduled", len(result.UnderScheduled)),
	)
	return result, nil
}
