package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/grigorev-dev/timetable-api/internal/dto"
	"github.com/grigorev-dev/timetable-api/internal/models"
	"github.com/grigorev-dev/timetable-api/internal/service"
	"github.com/grigorev-dev/timetable-api/internal/timetable"
	"github.com/grigorev-dev/timetable-api/pkg/response"
)

func newRouterFixture(t *testing.T) (*gin.Engine, *timetable.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := timetable.NewStore(timetable.Options{CrossGroupExclusive: true}, zap.NewNop())
	schedules := service.NewScheduleService(store, nil, nil, nil)
	teachers := service.NewTeacherService(store, nil, nil, nil)
	groups := service.NewGroupService(store, nil, nil, nil, nil)
	subjects := service.NewSubjectService(store, nil, nil, nil)
	filters := service.NewFilterService(store, nil, nil)
	stats := service.NewStatisticsService(store, nil, 0, nil)
	exports := service.NewExportService(store, nil, nil)

	r := gin.New()
	RegisterRoutes(r, "/api", Handlers{
		Teachers:   NewTeacherHandler(teachers),
		Groups:     NewGroupHandler(groups),
		Subjects:   NewSubjectHandler(subjects),
		Schedules:  NewScheduleHandler(schedules, nil),
		Filters:    NewFilterHandler(filters),
		Statistics: NewStatisticsHandler(stats),
		Exports:    NewExportHandler(exports),
	}, nil)
	return r, store
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestScheduleHandlerGenerateFlow(t *testing.T) {
	r, _ := newRouterFixture(t)

	w := doJSON(t, r, http.MethodPost, "/api/groups/1/subjects", dto.CreateSubjectRequest{
		Teacher:     "Petrov",
		SubjectName: "Algebra",
		TotalHours:  8,
		MaxPerDay:   2,
		MaxPerWeek:  10,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/groups/1/schedule/generate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data models.GenerationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 4, envelope.Data.PlacedCount)

	w = doJSON(t, r, http.MethodGet, "/api/groups/1/schedule", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestScheduleHandlerGenerateWithoutSubjects(t *testing.T) {
	r, _ := newRouterFixture(t)

	w := doJSON(t, r, http.MethodPost, "/api/groups/1/schedule/generate", nil)
	require.Equal(t, http.StatusConflict, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "NO_SUBJECTS_AVAILABLE", envelope.Error.Code)
}

func TestScheduleHandlerManualEdits(t *testing.T) {
	r, store := newRouterFixture(t)

	subj, err := store.CreateSubject(models.DefaultGroupID, timetable.SubjectParams{
		Teacher: "Petrov", Name: "Algebra", TotalHours: 4, MaxPerDay: 2, MaxPerWeek: 10,
	})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/api/groups/1/schedule/lessons", dto.AddLessonRequest{
		SubjectID: subj.ID, Day: 0, TimeSlot: 0,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Occupied cell conflicts.
	w = doJSON(t, r, http.MethodPost, "/api/groups/1/schedule/lessons", dto.AddLessonRequest{
		SubjectID: subj.ID, Day: 0, TimeSlot: 0,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/groups/1/schedule/lessons?day=0&time_slot=0", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/groups/1/schedule/lessons?day=0&time_slot=0", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestScheduleHandlerAvailability(t *testing.T) {
	r, store := newRouterFixture(t)

	subj, err := store.CreateSubject(models.DefaultGroupID, timetable.SubjectParams{
		Teacher: "Petrov", Name: "Algebra", TotalHours: 4, MaxPerDay: 2, MaxPerWeek: 10,
	})
	require.NoError(t, err)
	_, err = store.AddLesson(models.DefaultGroupID, 0, 0, subj.ID)
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/api/groups/1/schedule/availability?teacher=Sidorova&day=0&time_slot=0", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data models.Availability `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.False(t, envelope.Data.Available)
}

func TestGroupHandlerProtectedGroup(t *testing.T) {
	r, _ := newRouterFixture(t)

	w := doJSON(t, r, http.MethodDelete, "/api/groups/1", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTeacherHandlerRoundTrip(t *testing.T) {
	r, _ := newRouterFixture(t)

	w := doJSON(t, r, http.MethodPost, "/api/teachers", dto.CreateTeacherRequest{Name: "Petrov"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/teachers", dto.CreateTeacherRequest{Name: "Petrov"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/teachers", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestExportHandlerCSVDownload(t *testing.T) {
	r, store := newRouterFixture(t)

	subj, err := store.CreateSubject(models.DefaultGroupID, timetable.SubjectParams{
		Teacher: "Petrov", Name: "Algebra", TotalHours: 4, MaxPerDay: 2, MaxPerWeek: 10,
	})
	require.NoError(t, err)
	_, err = store.AddLesson(models.DefaultGroupID, 0, 0, subj.ID)
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/api/groups/1/schedule/export?format=csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Body.String(), "Algebra (Petrov)")
}
