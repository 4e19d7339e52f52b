package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/alessiogreco/weekblocks/internal/adapters/handler/http"
	"github.com/alessiogreco/weekblocks/internal/adapters/repository"
	"github.com/alessiogreco/weekblocks/internal/core/domain"
	"github.com/alessiogreco/weekblocks/internal/core/services"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type syncSaver struct {
	store domain.TrackerStore
}

func (s syncSaver) Enqueue(snapshot *domain.TrackerState) {
	_ = s.store.Save(context.Background(), snapshot)
}

func setupRouter(t *testing.T, clock *fixedClock) (*gin.Engine, *services.TrackerService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewInMemoryTrackerStore()
	svc := services.NewTrackerService(store, clock, syncSaver{store: store})
	svc.Load(context.Background())

	countdown := services.NewCountdownService(
		time.Date(1995, 1, 1, 0, 0, 0, 0, time.UTC), 80, clock)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		TrackerHandler:   adapterHTTP.NewTrackerHandler(svc),
		CountdownHandler: adapterHTTP.NewCountdownHandler(countdown),
		StartTime:        time.Now(),
	})
	return router, svc
}

func doRequest(router *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		reader = bytes.NewBuffer(body)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestTrackerHandler_GetState(t *testing.T) {
	router, _ := setupRouter(t, &fixedClock{now: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)})

	w := doRequest(router, http.MethodGet, "/api/v1/tracker", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var state domain.TrackerState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Equal(t, "2024-03-04", state.WeekStartISO)
	assert.NotEmpty(t, state.Goals)
	for _, g := range state.Goals {
		assert.Len(t, g.Days, domain.DaysPerWeek)
	}
}

func TestTrackerHandler_ToggleTask(t *testing.T) {
	router, svc := setupRouter(t, &fixedClock{now: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)})
	goal := svc.State().Goals[0]
	task := goal.Tasks[0]

	t.Run("Toggles a task on", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/goals/%s/days/0/tasks/%s/toggle", goal.ID, task.ID)
		w := doRequest(router, http.MethodPost, path, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var updated domain.Goal
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.True(t, updated.Days[0].Has(task.ID))
	})

	t.Run("Unknown goal is 404", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/v1/goals/nope/days/0/tasks/x/toggle", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Day index out of range is 400", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/goals/%s/days/7/tasks/%s/toggle", goal.ID, task.ID)
		w := doRequest(router, http.MethodPost, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		path = fmt.Sprintf("/api/v1/goals/%s/days/abc/tasks/%s/toggle", goal.ID, task.ID)
		w = doRequest(router, http.MethodPost, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTrackerHandler_SetNote(t *testing.T) {
	router, svc := setupRouter(t, &fixedClock{now: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)})
	goalID := svc.State().Goals[0].ID

	path := fmt.Sprintf("/api/v1/goals/%s/days/2/note", goalID)
	w := doRequest(router, http.MethodPut, path, []byte(`{"text":"solid session"}`))
	require.Equal(t, http.StatusOK, w.Code)

	var updated domain.Goal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "solid session", updated.Days[2].Note)

	w = doRequest(router, http.MethodPut, "/api/v1/goals/nope/days/2/note", []byte(`{"text":"x"}`))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTrackerHandler_AddGoal(t *testing.T) {
	router, svc := setupRouter(t, &fixedClock{now: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)})
	before := len(svc.State().Goals)

	t.Run("Creates a goal", func(t *testing.T) {
		payload := `{
			"label": "Running",
			"section": "Personal Life",
			"tasks": [{"label": "5k run"}, {"id": "stretch", "label": "Stretch"}]
		}`
		w := doRequest(router, http.MethodPost, "/api/v1/goals", []byte(payload))
		require.Equal(t, http.StatusCreated, w.Code)

		var created domain.Goal
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.NotEmpty(t, created.ID)
		assert.Len(t, created.Days, domain.DaysPerWeek)

		assert.Len(t, svc.State().Goals, before+1)
	})

	t.Run("Invalid section is 400", func(t *testing.T) {
		payload := `{"label": "X", "section": "Chores", "tasks": [{"label": "t"}]}`
		w := doRequest(router, http.MethodPost, "/api/v1/goals", []byte(payload))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Missing label is 400", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/v1/goals", []byte(`{"section":"Studies"}`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTrackerHandler_Overview(t *testing.T) {
	clock := &fixedClock{now: time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC)}
	router, svc := setupRouter(t, clock)

	// Week started on load day (2024-03-06 per the clock).
	goal := svc.State().Goals[0]
	path := fmt.Sprintf("/api/v1/goals/%s/days/0/tasks/%s/toggle", goal.ID, goal.Tasks[0].ID)
	require.Equal(t, http.StatusOK, doRequest(router, http.MethodPost, path, nil).Code)

	w := doRequest(router, http.MethodGet, "/api/v1/tracker/overview", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var ov domain.Overview
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ov))

	assert.False(t, ov.WeekFinished)
	assert.NotEmpty(t, ov.Quote)
	require.Len(t, ov.Series.Real, domain.DaysPerWeek)
	assert.Equal(t, 1, ov.Series.Real[0])
	assert.Equal(t, 1.0, ov.Series.Projected[0])
	require.NotEmpty(t, ov.Goals)
	assert.GreaterOrEqual(t, ov.Goals[0].Tint, 0)
}

func TestTrackerHandler_RolloverFlow(t *testing.T) {
	clock := &fixedClock{now: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)}
	router, svc := setupRouter(t, clock)
	goal := svc.State().Goals[0]

	path := fmt.Sprintf("/api/v1/goals/%s/days/0/tasks/%s/toggle", goal.ID, goal.Tasks[0].ID)
	require.Equal(t, http.StatusOK, doRequest(router, http.MethodPost, path, nil).Code)

	t.Run("Rollover during an active week is 409", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/v1/tracker/rollover", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Week status flips after seven days", func(t *testing.T) {
		clock.now = clock.now.AddDate(0, 0, 7)

		w := doRequest(router, http.MethodGet, "/api/v1/tracker/week", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var status services.WeekStatus
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		assert.Equal(t, services.WeekStateFinished, status.State)
	})

	t.Run("Rollover archives the week", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/v1/tracker/rollover", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var summary domain.WeekSummary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
		assert.Equal(t, "2024-03-04", summary.ID)
		assert.Equal(t, 1, summary.TotalCompleted)

		h := doRequest(router, http.MethodGet, "/api/v1/tracker/history", nil)
		require.Equal(t, http.StatusOK, h.Code)

		var body struct {
			History []domain.WeekSummary `json:"history"`
		}
		require.NoError(t, json.Unmarshal(h.Body.Bytes(), &body))
		require.Len(t, body.History, 1)
		assert.Equal(t, "2024-03-04", body.History[0].ID)
	})
}

func TestCountdownHandler(t *testing.T) {
	router, _ := setupRouter(t, &fixedClock{now: time.Date(2035, 1, 1, 0, 0, 0, 0, time.UTC)})

	w := doRequest(router, http.MethodGet, "/api/v1/countdown", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cd services.Countdown
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cd))
	assert.Equal(t, 40, cd.YearsLeft)
	assert.Greater(t, cd.WeeksLived, 0)
	assert.Greater(t, cd.TotalWeeks, cd.WeeksLived)
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupRouter(t, &fixedClock{now: time.Now()})

	w := doRequest(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "disabled")
}
