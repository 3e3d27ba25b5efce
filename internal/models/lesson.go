package models

// Grid dimensions. Days 0-6 are Monday-Sunday; only days 0-4 are targeted by
// generation, weekend cells are reachable through manual edits only.
const (
	NumDays        = 7
	SchedulableDay = 5
	SlotsPerDay    = 4
)

// Lesson occupies exactly one grid cell of its group.
type Lesson struct {
	ID          int64  `json:"id"`
	GroupID     int64  `json:"group_id"`
	SubjectID   int64  `json:"subject_id"`
	Teacher     string `json:"teacher"`
	SubjectName string `json:"subject_name"`
	Day         int    `json:"day"`
	TimeSlot    int    `json:"time_slot"`
	IsPast      bool   `json:"is_past"`
}

// SlotWindow is display metadata for one of the four daily teaching windows.
type SlotWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SlotWindows lists the fixed wall-clock boundaries per slot index.
var SlotWindows = [SlotsPerDay]SlotWindow{
	{Start: "09:00", End: "10:30"},
	{Start: "10:40", End: "12:10"},
	{Start: "12:40", End: "14:10"},
	{Start: "14:20", End: "15:50"},
}

// DayNames maps day indices to English labels, Monday first.
var DayNames = [NumDays]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Availability is the verdict of an availability check.
type Availability struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// GenerationResult is the outcome of one full generation pass.
type GenerationResult struct {
	Lessons        []Lesson `json:"lessons"`
	PlacedCount    int      `json:"placed_count"`
	UnderScheduled []int64  `json:"under_scheduled,omitempty"`
}
