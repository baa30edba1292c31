package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/habitualhq/habitual/internal/adapters/handler/http/middleware"
	"github.com/habitualhq/habitual/internal/core/domain"
	"github.com/habitualhq/habitual/internal/core/services"
)

type GamificationHandler struct {
	svc *services.GamificationService
}

func NewGamificationHandler(svc *services.GamificationService) *GamificationHandler {
	return &GamificationHandler{svc: svc}
}

func (h *GamificationHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/gamification", h.GetState)
}

func (h *GamificationHandler) GetState(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	state, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load gamification state"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state":                state,
		"points_to_next_level": domain.PointsForLevel(state.Level),
	})
}
