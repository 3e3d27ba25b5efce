package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/grigorev-dev/timetable-api/internal/models"
	appErrors "github.com/grigorev-dev/timetable-api/pkg/errors"
	"github.com/grigorev-dev/timetable-api/pkg/export"
)

type exportStore interface {
	ListLessons(groupID int64) ([]models.Lesson, error)
	ListGroups() []models.Group
}

type exportSavedSource interface {
	Get(ctx context.Context, id string) (*models.SavedSchedule, error)
}

// ExportFormat selects the rendered output type.
type ExportFormat string

// Supported export formats.
const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

// ExportResult carries rendered bytes with their content type and a filename
// suggestion.
type ExportResult struct {
	ContentType string
	Filename    string
	Data        []byte
}

// ExportService renders a group's schedule as a downloadable table: one row
// per time slot, one column per day, cells as "Subject (Teacher)".
type ExportService struct {
	store  exportStore
	saved  exportSavedSource
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewExportService constructs an ExportService. saved may be nil when no
// snapshot persistence is configured.
func NewExportService(store exportStore, saved exportSavedSource, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		store:  store,
		saved:  saved,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// Export renders the group's current schedule. An empty schedule cannot be
// exported.
func (s *ExportService) Export(ctx context.Context, groupID int64, format ExportFormat) (*ExportResult, error) {
	lessons, err := s.store.ListLessons(groupID)
	if err != nil {
		return nil, err
	}
	if len(lessons) == 0 {
		return nil, appErrors.Clone(appErrors.ErrEmptySchedule, "")
	}

	grid := buildGrid(s.groupName(groupID), lessons)
	return s.render(grid, format, fmt.Sprintf("schedule_group_%d", groupID))
}

// ExportSaved renders a persisted snapshot instead of the live grid.
func (s *ExportService) ExportSaved(ctx context.Context, scheduleID string, format ExportFormat) (*ExportResult, error) {
	if s.saved == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "saved schedule not found")
	}
	record, err := s.saved.Get(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if len(record.Lessons) == 0 {
		return nil, appErrors.Clone(appErrors.ErrEmptySchedule, "")
	}

	grid := buildGrid(record.Name, record.Lessons)
	return s.render(grid, format, fmt.Sprintf("schedule_%s", scheduleID))
}

func (s *ExportService) render(grid export.Grid, format ExportFormat, baseName string) (*ExportResult, error) {
	switch format {
	case FormatCSV:
		data, err := s.csv.Render(grid)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{
			ContentType: "text/csv",
			Filename:    baseName + ".csv",
			Data:        data,
		}, nil
	case FormatPDF:
		data, err := s.pdf.Render(grid)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{
			ContentType: "application/pdf",
			Filename:    baseName + ".pdf",
			Data:        data,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}

func (s *ExportService) groupName(groupID int64) string {
	for _, g := range s.store.ListGroups() {
		if g.ID == groupID {
			return g.Name
		}
	}
	return fmt.Sprintf("Group %d", groupID)
}

// buildGrid lays lessons out with one row per slot window and one column per
// day that carries at least one lesson on any row. Weekdays always show;
// weekend columns appear only when used.
func buildGrid(title string, lessons []models.Lesson) export.Grid {
	byCell := make(map[timetableCell]models.Lesson, len(lessons))
	usedDays := make(map[int]bool)
	for _, lesson := range lessons {
		byCell[timetableCell{lesson.Day, lesson.TimeSlot}] = lesson
		usedDays[lesson.Day] = true
	}

	days := make([]int, 0, models.NumDays)
	for day := 0; day < models.NumDays; day++ {
		if day < models.SchedulableDay || usedDays[day] {
			days = append(days, day)
		}
	}

	grid := export.Grid{
		Title:   title,
		Headers: make([]string, 0, len(days)+1),
	}
	grid.Headers = append(grid.Headers, "Time")
	for _, day := range days {
		grid.Headers = append(grid.Headers, models.DayNames[day])
	}

	for slot := 0; slot < models.SlotsPerDay; slot++ {
		window := models.SlotWindows[slot]
		row := make([]string, 0, len(days)+1)
		row = append(row, fmt.Sprintf("%s - %s", window.Start, window.End))
		for _, day := range days {
			if lesson, ok := byCell[timetableCell{day, slot}]; ok {
				row = append(row, fmt.Sprintf("%s (%s)", lesson.SubjectName, lesson.Teacher))
			} else {
				row = append(row, "")
			}
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid
}

type timetableCell struct {
	day  int
	slot int
}
