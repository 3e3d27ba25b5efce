package models

// NegativeFilter excludes a teacher from days and slots within one group.
// Absence of a filter means no restriction.
type NegativeFilter struct {
	GroupID         int64  `json:"group_id"`
	Teacher         string `json:"teacher"`
	RestrictedDays  []int  `json:"restricted_days"`
	RestrictedSlots []int  `json:"restricted_slots"`
}

// BlocksDay reports whether the filter excludes the given day.
func (f *NegativeFilter) BlocksDay(day int) bool {
	if f == nil {
		return false
	}
	for _, d := range f.RestrictedDays {
		if d == day {
			return true
		}
	}
	return false
}

// BlocksSlot reports whether the filter excludes the given time slot.
func (f *NegativeFilter) BlocksSlot(slot int) bool {
	if f == nil {
		return false
	}
	for _, s := range f.RestrictedSlots {
		if s == slot {
			return true
		}
	}
	return false
}
