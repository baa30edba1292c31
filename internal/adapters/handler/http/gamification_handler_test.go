package http_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	adapterHTTP "github.com/habitualhq/habitual/internal/adapters/handler/http"
	"github.com/habitualhq/habitual/internal/adapters/repository"
	"github.com/habitualhq/habitual/internal/core/domain"
	"github.com/habitualhq/habitual/internal/core/services"
)

func TestGamificationHandler_GetState(t *testing.T) {
	gin.SetMode(gin.TestMode)

	gamRepo := repository.NewInMemoryGamificationRepository()
	svc := services.NewGamificationService(gamRepo, zap.NewNop(), services.DefaultHighlightTTL)
	defer svc.Stop()
	handler := adapterHTTP.NewGamificationHandler(svc)

	r := gin.New()
	group := r.Group("/api/v1")
	group.Use(fakeAuth(testUserID))
	handler.RegisterRoutes(group)

	w := doJSON(r, "GET", "/api/v1/gamification", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		State             domain.GamificationState `json:"state"`
		PointsToNextLevel int                      `json:"points_to_next_level"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, testUserID, resp.State.UserID)
	assert.Equal(t, 1, resp.State.Level, "fresh users start at level 1")
	assert.Equal(t, 0, resp.State.Points)
	assert.Equal(t, 100, resp.PointsToNextLevel)
}
