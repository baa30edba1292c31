package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/habitualhq/habitual/internal/adapters/handler/http"
	"github.com/habitualhq/habitual/internal/adapters/repository"
	"github.com/habitualhq/habitual/internal/core/domain"
	"github.com/habitualhq/habitual/internal/core/services"
)

func setupStatsRouter() (*gin.Engine, *repository.InMemoryHabitRepository) {
	gin.SetMode(gin.TestMode)

	repo := repository.NewInMemoryHabitRepository()
	svc := services.NewProgressService(repo)
	handler := adapterHTTP.NewStatsHandler(svc)

	r := gin.New()
	group := r.Group("/api/v1")
	group.Use(fakeAuth(testUserID))
	handler.RegisterRoutes(group)
	return r, repo
}

func mustParse(t *testing.T, key string) time.Time {
	t.Helper()
	d, err := domain.ParseDateKey(key)
	require.NoError(t, err)
	return d
}

func completeOn(t *testing.T, repo *repository.InMemoryHabitRepository, id string, dateKeys ...string) {
	t.Helper()
	h, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	for _, k := range dateKeys {
		h.SetProgress(k, 1)
	}
	require.NoError(t, repo.Update(context.Background(), h))
}

func TestStatsHandler_Daily(t *testing.T) {
	router, repo := setupStatsRouter()

	a := seedStoredHabit(t, repo, testUserID, "A", domain.TimeMorning, 0)
	seedStoredHabit(t, repo, testUserID, "B", domain.TimeMorning, 1)
	completeOn(t, repo, a.ID, "2024-01-03")

	w := doJSON(router, "GET", "/api/v1/stats/daily?date=2024-01-03", "")
	require.Equal(t, http.StatusOK, w.Code)

	var progress domain.DailyProgress
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &progress))

	assert.Equal(t, "2024-01-03", progress.Date)
	assert.Equal(t, 2, progress.Total)
	assert.Equal(t, 1, progress.Completed)
	assert.InDelta(t, 50.0, progress.Ratio, 0.001)
	assert.False(t, progress.AllDone)
}

func TestStatsHandler_Daily_BadDate(t *testing.T) {
	router, _ := setupStatsRouter()

	w := doJSON(router, "GET", "/api/v1/stats/daily?date=03-01-2024", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatsHandler_Weekly(t *testing.T) {
	router, repo := setupStatsRouter()

	a := seedStoredHabit(t, repo, testUserID, "A", domain.TimeMorning, 0)
	completeOn(t, repo, a.ID, "2024-01-03", "2024-01-06")

	w := doJSON(router, "GET", "/api/v1/stats/weekly?date=2024-01-07", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Days []domain.DayCount `json:"days"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Days, 7)
	assert.Equal(t, "2024-01-01", resp.Days[0].Date)
	assert.Equal(t, "2024-01-07", resp.Days[6].Date)

	counts := make([]int, 0, 7)
	for _, d := range resp.Days {
		counts = append(counts, d.Completed)
	}
	assert.Equal(t, []int{0, 0, 1, 0, 0, 1, 0}, counts)
}

func TestStatsHandler_Trends(t *testing.T) {
	router, repo := setupStatsRouter()

	a := seedStoredHabit(t, repo, testUserID, "Steady", domain.TimeMorning, 0)

	keys := make([]string, 0, 25)
	for i := 0; i < 25; i++ {
		keys = append(keys, domain.DateKey(mustParse(t, "2025-06-30").AddDate(0, 0, -i)))
	}
	completeOn(t, repo, a.ID, keys...)

	w := doJSON(router, "GET", "/api/v1/stats/trends?date=2025-06-30", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Trends []domain.HabitTrend `json:"trends"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Trends, 1)
	assert.Equal(t, domain.TrendAccelerating, resp.Trends[0].Trend)
	assert.Equal(t, "Steady", resp.Trends[0].Name)
}

func TestStatsHandler_Due(t *testing.T) {
	router, repo := setupStatsRouter()

	seedStoredHabit(t, repo, testUserID, "Anytime", domain.TimeAnytime, 0)
	seedStoredHabit(t, repo, testUserID, "Morning", domain.TimeMorning, 0)

	w := doJSON(router, "GET", "/api/v1/habits/due?date=2024-01-01", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Habits []domain.Habit `json:"habits"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Habits, 2)
	assert.Equal(t, "Morning", resp.Habits[0].Name, "morning bucket renders first")
	assert.Equal(t, "Anytime", resp.Habits[1].Name)
}
