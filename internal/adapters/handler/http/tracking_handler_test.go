package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	adapterHTTP "github.com/habitualhq/habitual/internal/adapters/handler/http"
	"github.com/habitualhq/habitual/internal/adapters/repository"
	"github.com/habitualhq/habitual/internal/core/domain"
	"github.com/habitualhq/habitual/internal/core/services"
)

func setupTrackingRouter() (*gin.Engine, *repository.InMemoryHabitRepository, *repository.InMemoryGamificationRepository) {
	gin.SetMode(gin.TestMode)

	repo := repository.NewInMemoryHabitRepository()
	gamRepo := repository.NewInMemoryGamificationRepository()
	gam := services.NewGamificationService(gamRepo, zap.NewNop(), services.DefaultHighlightTTL)
	svc := services.NewTrackingService(repo, gam, nil)
	handler := adapterHTTP.NewTrackingHandler(svc, gam)

	r := gin.New()
	group := r.Group("/api/v1")
	group.Use(fakeAuth(testUserID))
	handler.RegisterRoutes(group)
	return r, repo, gamRepo
}

type mutationResponse struct {
	Habit         domain.Habit `json:"habit"`
	JustCompleted bool         `json:"just_completed"`
}

func TestTrackingHandler_Toggle(t *testing.T) {
	t.Run("Success: completes the day and reports the highlight", func(t *testing.T) {
		router, repo, gamRepo := setupTrackingRouter()
		h := seedStoredHabit(t, repo, testUserID, "Floss", domain.TimeAnytime, 0)

		w := doJSON(router, "POST", fmt.Sprintf("/api/v1/habits/%s/toggle?date=2025-06-02", h.ID), "")

		require.Equal(t, http.StatusOK, w.Code)

		var resp mutationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Habit.IsCompletedOn("2025-06-02"))
		assert.True(t, resp.JustCompleted)

		state, err := gamRepo.Get(context.Background(), testUserID)
		require.NoError(t, err)
		assert.Equal(t, 10, state.Points)
	})

	t.Run("Success: un-toggling clears the completion", func(t *testing.T) {
		router, repo, gamRepo := setupTrackingRouter()
		h := seedStoredHabit(t, repo, testUserID, "Floss", domain.TimeAnytime, 0)

		doJSON(router, "POST", fmt.Sprintf("/api/v1/habits/%s/toggle?date=2025-06-02", h.ID), "")
		w := doJSON(router, "POST", fmt.Sprintf("/api/v1/habits/%s/toggle?date=2025-06-02", h.ID), "")

		require.Equal(t, http.StatusOK, w.Code)

		var resp mutationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Habit.IsCompletedOn("2025-06-02"))

		state, err := gamRepo.Get(context.Background(), testUserID)
		require.NoError(t, err)
		assert.Equal(t, 0, state.Points)
	})

	t.Run("Error: 400 on malformed date", func(t *testing.T) {
		router, repo, _ := setupTrackingRouter()
		h := seedStoredHabit(t, repo, testUserID, "Floss", domain.TimeAnytime, 0)

		w := doJSON(router, "POST", fmt.Sprintf("/api/v1/habits/%s/toggle?date=junk", h.ID), "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error: 404 for a foreign habit", func(t *testing.T) {
		router, repo, _ := setupTrackingRouter()
		foreign := seedStoredHabit(t, repo, "someone-else", "Secret", domain.TimeAnytime, 0)

		w := doJSON(router, "POST", fmt.Sprintf("/api/v1/habits/%s/toggle", foreign.ID), "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTrackingHandler_Progress(t *testing.T) {
	setupQuantitative := func(t *testing.T, repo *repository.InMemoryHabitRepository) *domain.Habit {
		t.Helper()
		h, err := domain.NewHabit("Pushups", testUserID)
		require.NoError(t, err)
		goal := 3.0
		require.NoError(t, h.Configure(domain.HabitConfig{
			Name:         "Pushups",
			Priority:     domain.PriorityMedium,
			TimeOfDay:    domain.TimeMorning,
			Frequency:    domain.FreqDaily,
			TrackingType: domain.TrackingQuantitative,
			GoalValue:    &goal,
			GoalUnit:     "reps",
		}))
		require.NoError(t, repo.Create(context.Background(), h))
		return h
	}

	t.Run("SetProgress writes the value", func(t *testing.T) {
		router, repo, _ := setupTrackingRouter()
		h := setupQuantitative(t, repo)

		w := doJSON(router, "PUT", fmt.Sprintf("/api/v1/habits/%s/progress?date=2025-06-02", h.ID), `{"value": 2.5}`)

		require.Equal(t, http.StatusOK, w.Code)

		var resp mutationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.EqualValues(t, 2.5, resp.Habit.Completed.On("2025-06-02").Numeric())
		assert.False(t, resp.JustCompleted)
	})

	t.Run("Increment across the goal lights the highlight", func(t *testing.T) {
		router, repo, _ := setupTrackingRouter()
		h := setupQuantitative(t, repo)

		doJSON(router, "PUT", fmt.Sprintf("/api/v1/habits/%s/progress?date=2025-06-02", h.ID), `{"value": 2}`)
		w := doJSON(router, "POST", fmt.Sprintf("/api/v1/habits/%s/increment?date=2025-06-02", h.ID), "")

		require.Equal(t, http.StatusOK, w.Code)

		var resp mutationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Habit.IsCompletedOn("2025-06-02"))
		assert.True(t, resp.JustCompleted)
	})

	t.Run("Decrement floors at zero", func(t *testing.T) {
		router, repo, _ := setupTrackingRouter()
		h := setupQuantitative(t, repo)

		w := doJSON(router, "POST", fmt.Sprintf("/api/v1/habits/%s/decrement?date=2025-06-02", h.ID), "")

		require.Equal(t, http.StatusOK, w.Code)

		var resp mutationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.EqualValues(t, 0, resp.Habit.Completed.On("2025-06-02").Numeric())
	})
}

func TestTrackingHandler_MicroHabits(t *testing.T) {
	router, repo, _ := setupTrackingRouter()

	h, err := domain.NewHabit("Morning routine", testUserID)
	require.NoError(t, err)
	require.NoError(t, h.Configure(domain.HabitConfig{
		Name:         "Morning routine",
		Priority:     domain.PriorityMedium,
		TimeOfDay:    domain.TimeMorning,
		Frequency:    domain.FreqDaily,
		TrackingType: domain.TrackingCheckbox,
		MicroHabits: []domain.MicroHabit{
			{ID: "m1", Name: "Make bed"},
			{ID: "m2", Name: "Open window"},
		},
	}))
	require.NoError(t, repo.Create(context.Background(), h))

	w := doJSON(router, "PUT", fmt.Sprintf("/api/v1/habits/%s/micro-habits/m1?date=2025-06-02", h.ID), `{"done": true}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp mutationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Habit.IsCompletedOn("2025-06-02"), "one of two sub-tasks")
	assert.False(t, resp.JustCompleted)

	w = doJSON(router, "PUT", fmt.Sprintf("/api/v1/habits/%s/micro-habits/m2?date=2025-06-02", h.ID), `{"done": true}`)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Habit.IsCompletedOn("2025-06-02"))
	assert.True(t, resp.JustCompleted)
}

func TestTrackingHandler_DefaultsToToday(t *testing.T) {
	router, repo, _ := setupTrackingRouter()
	h := seedStoredHabit(t, repo, testUserID, "Floss", domain.TimeAnytime, 0)

	w := doJSON(router, "POST", fmt.Sprintf("/api/v1/habits/%s/toggle", h.ID), "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp mutationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Habit.IsCompletedOn(domain.DateKey(time.Now().UTC())))
}
