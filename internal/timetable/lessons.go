package timetable

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/grigorev-dev/timetable-api/internal/models"
	appErrors "github.com/grigorev-dev/timetable-api/pkg/errors"
)

func validateCell(day, slot int) error {
	if day < 0 || day >= models.NumDays {
		return appErrors.Clone(appErrors.ErrValidation, "day must be between 0 and 6")
	}
	if slot < 0 || slot >= models.SlotsPerDay {
		return appErrors.Clone(appErrors.ErrValidation, "time_slot must be between 0 and 3")
	}
	return nil
}

// ListLessons returns the group's lessons ordered by day then slot.
func (s *Store) ListLessons(groupID int64) ([]models.Lesson, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.groups[groupID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "group not found")
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sortedLessons(), nil
}

// sortedLessons copies lessons out in grid order; caller holds the group lock.
func (g *groupState) sortedLessons() []models.Lesson {
	result := make([]models.Lesson, 0, len(g.lessons))
	for _, lesson := range g.lessons {
		result = append(result, *lesson)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Day == result[j].Day {
			return result[i].TimeSlot < result[j].TimeSlot
		}
		return result[i].Day < result[j].Day
	})
	return result
}

// CheckAvailability decides whether placing the teacher at the cell would be
// legal. It has no side effects.
func (s *Store) CheckAvailability(groupID int64, teacher string, day, slot int, exclude *Cell) (models.Availability, error) {
	if err := validateCell(day, slot); err != nil {
		return models.Availability{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.groups[groupID]
	if !ok {
		return models.Availability{}, appErrors.Clone(appErrors.ErrNotFound, "group not found")
	}

	release := s.lockGroups(s.affectedGroups(groupID))
	defer release()

	return s.availabilityLocked(g, teacher, day, slot, exclude), nil
}

// availabilityLocked evaluates the placement rules; caller holds the group
// lock plus, under cross-group exclusivity, every other group lock.
func (s *Store) availabilityLocked(g *groupState, teacher string, day, slot int, exclude *Cell) models.Availability {
	key := Cell{Day: day, Slot: slot}
	if _, occupied := g.lessons[key]; occupied {
		if exclude == nil || *exclude != key {
			return models.Availability{Reason: "the slot is already occupied"}
		}
	}

	if f := g.filters[teacher]; f != nil {
		if f.BlocksDay(day) {
			return models.Availability{Reason: "teacher is restricted on this day"}
		}
		if f.BlocksSlot(slot) {
			return models.Availability{Reason: "teacher is restricted at this time slot"}
		}
	}

	if s.opts.CrossGroupExclusive {
		if otherID, busy := s.teacherBusyElsewhereLocked(g.group.ID, teacher, day, slot); busy {
			return models.Availability{Reason: fmt.Sprintf("teacher already has a lesson in group %d at this time", otherID)}
		}
	}

	return models.Availability{Available: true}
}

// teacherBusyElsewhereLocked scans the other groups for a lesson by the same
// teacher at the same cell; caller holds all group locks.
func (s *Store) teacherBusyElsewhereLocked(groupID int64, teacher string, day, slot int) (int64, bool) {
	key := Cell{Day: day, Slot: slot}
	for id, other := range s.groups {
		if id == groupID {
			continue
		}
		if lesson, ok := other.lessons[key]; ok && lesson.Teacher == teacher {
			return id, true
		}
	}
	return 0, false
}

// subjectDayCount counts the subject's lessons on a day, skipping the
// excluded cell; caller holds the group lock.
func (g *groupState) subjectDayCount(subjectID int64, day int, exclude *Cell) int {
	count := 0
	for key, lesson := range g.lessons {
		if lesson.SubjectID != subjectID || lesson.Day != day {
			continue
		}
		if exclude != nil && *exclude == key {
			continue
		}
		count++
	}
	return count
}

// AddLesson places a subject at a free cell, consuming one pair.
func (s *Store) AddLesson(groupID int64, day, slot int, subjectID int64) (*models.Lesson, error) {
	if err := validateCell(day, slot); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.groups[groupID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "group not found")
	}

	release := s.lockGroups(s.affectedGroups(groupID))
	defer release()

	return s.addLessonLocked(g, day, slot, subjectID)
}

// addLessonLocked validates and commits a placement; caller holds the group
// lock plus, under cross-group exclusivity, every other group lock.
func (s *Store) addLessonLocked(g *groupState, day, slot int, subjectID int64) (*models.Lesson, error) {
	subj, ok := g.findSubject(subjectID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found in this group")
	}

	key := Cell{Day: day, Slot: slot}
	if _, occupied := g.lessons[key]; occupied {
		return nil, appErrors.Clone(appErrors.ErrSlotOccupied, "")
	}
	if subj.RemainingPairs <= 0 {
		return nil, appErrors.Clone(appErrors.ErrSubjectExhausted, "")
	}
	if verdict := s.availabilityLocked(g, subj.Teacher, day, slot, nil); !verdict.Available {
		return nil, appErrors.Clone(appErrors.ErrTeacherUnavailable, verdict.Reason)
	}
	if g.subjectDayCount(subjectID, day, nil) >= subj.MaxPerDay {
		return nil, appErrors.Clone(appErrors.ErrTeacherUnavailable,
			fmt.Sprintf("daily limit of %d reached for this subject", subj.MaxPerDay))
	}

	lesson := &models.Lesson{
		ID:          s.nextLesson(),
		GroupID:     g.group.ID,
		SubjectID:   subjectID,
		Teacher:     subj.Teacher,
		SubjectName: subj.Name,
		Day:         day,
		TimeSlot:    slot,
	}
	g.lessons[key] = lesson
	consumePair(subj)

	s.logger.Debug("lesson added",
		zap.Int64("group_id", g.group.ID),
		zap.Int64("subject_id", subjectID),
		zap.Int("day", day),
		zap.Int("slot", slot),
	)
	out := *lesson
	return &out, nil
}

// DeleteLesson removes the lesson at a cell, restoring one pair to its
// subject. Deletion is the exact inverse of placement.
func (s *Store) DeleteLesson(groupID int64, day, slot int) error {
	if err := validateCell(day, slot); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.groups[groupID]
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "group not found")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	key := Cell{Day: day, Slot: slot}
	lesson, ok := g.lessons[key]
	if !ok {
		return appErrors.Clone(appErrors.ErrSlotEmpty, "")
	}
	if subj, exists := g.findSubject(lesson.SubjectID); exists {
		restorePair(subj)
	}
	delete(g.lessons, key)
	return nil
}

// ReplaceLesson swaps the subject occupying a cell in one atomic step: the
// outgoing subject's pair is restored and the incoming subject's consumed
// only when the incoming placement is legal. On an empty cell it behaves as
// an add.
func (s *Store) ReplaceLesson(groupID int64, day, slot int, newSubjectID int64) (*models.Lesson, error) {
	if err := validateCell(day, slot); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.groups[groupID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "group not found")
	}

	release := s.lockGroups(s.affectedGroups(groupID))
	defer release()

	key := Cell{Day: day, Slot: slot}
	current, occupied := g.lessons[key]
	if !occupied {
		return s.addLessonLocked(g, day, slot, newSubjectID)
	}
	if current.SubjectID == newSubjectID {
		out := *current
		return &out, nil
	}

	incoming, ok := g.findSubject(newSubjectID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found in this group")
	}
	if incoming.RemainingPairs <= 0 {
		return nil, appErrors.Clone(appErrors.ErrSubjectExhausted, "")
	}
	// The occupant must not count as a conflict against its own cell.
	if verdict := s.availabilityLocked(g, incoming.Teacher, day, slot, &key); !verdict.Available {
		return nil, appErrors.Clone(appErrors.ErrTeacherUnavailable, verdict.Reason)
	}
	if g.subjectDayCount(newSubjectID, day, &key) >= incoming.MaxPerDay {
		return nil, appErrors.Clone(appErrors.ErrTeacherUnavailable,
			fmt.Sprintf("daily limit of %d reached for this subject", incoming.MaxPerDay))
	}

	if outgoing, exists := g.findSubject(current.SubjectID); exists {
		restorePair(outgoing)
	}
	consumePair(incoming)

	current.SubjectID = incoming.ID
	current.Teacher = incoming.Teacher
	current.SubjectName = incoming.Name

	out := *current
	return &out, nil
}

// Snapshot returns the group's lessons in grid order for persistence.
func (s *Store) Snapshot(groupID int64) ([]models.Lesson, error) {
	return s.ListLessons(groupID)
}

// RestoreSnapshot replaces the live grid with a saved lesson set. Snapshot
// entries whose subject no longer exists, is exhausted, or whose cell cannot
// legally hold them are skipped; the applied lessons are returned.
func (s *Store) RestoreSnapshot(groupID int64, lessons []models.Lesson) ([]models.Lesson, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.groups[groupID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "group not found")
	}

	release := s.lockGroups(s.affectedGroups(groupID))
	defer release()

	g.clearLessonsLocked()

	applied := make([]models.Lesson, 0, len(lessons))
	for _, snap := range lessons {
		if validateCell(snap.Day, snap.TimeSlot) != nil {
			continue
		}
		subj, found := g.findSubjectByName(snap.Teacher, snap.SubjectName)
		if !found || subj.RemainingPairs <= 0 {
			continue
		}
		key := Cell{Day: snap.Day, Slot: snap.TimeSlot}
		if _, taken := g.lessons[key]; taken {
			continue
		}
		if verdict := s.availabilityLocked(g, subj.Teacher, snap.Day, snap.TimeSlot, nil); !verdict.Available {
			continue
		}
		lesson := &models.Lesson{
			ID:          s.nextLesson(),
			GroupID:     groupID,
			SubjectID:   subj.ID,
			Teacher:     subj.Teacher,
			SubjectName: subj.Name,
			Day:         snap.Day,
			TimeSlot:    snap.TimeSlot,
		}
		g.lessons[key] = lesson
		consumePair(subj)
		applied = append(applied, *lesson)
	}
	return applied, nil
}

// clearLessonsLocked wipes the grid and hands every consumed pair back to its
// subject; caller holds the group lock.
func (g *groupState) clearLessonsLocked() {
	for key, lesson := range g.lessons {
		if subj, ok := g.subjects[lesson.SubjectID]; ok {
			restorePair(subj)
		}
		delete(g.lessons, key)
	}
}
