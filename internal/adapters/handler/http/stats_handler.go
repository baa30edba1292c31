package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/habitualhq/habitual/internal/adapters/handler/http/middleware"
	"github.com/habitualhq/habitual/internal/core/services"
)

type StatsHandler struct {
	svc *services.ProgressService
}

func NewStatsHandler(svc *services.ProgressService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats/daily", h.GetDailyProgress)
	r.GET("/stats/weekly", h.GetWeeklyOverview)
	r.GET("/stats/trends", h.GetTrends)
	r.GET("/habits/due", h.GetDueHabits)
}

func (h *StatsHandler) GetDailyProgress(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	date, ok := parseDateQuery(c)
	if !ok {
		return
	}

	progress, err := h.svc.DailyProgress(c.Request.Context(), userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute daily progress"})
		return
	}

	c.JSON(http.StatusOK, progress)
}

func (h *StatsHandler) GetWeeklyOverview(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	date, ok := parseDateQuery(c)
	if !ok {
		return
	}

	overview, err := h.svc.WeeklyOverview(c.Request.Context(), userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute weekly overview"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": overview})
}

func (h *StatsHandler) GetTrends(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	date, ok := parseDateQuery(c)
	if !ok {
		return
	}

	trends, err := h.svc.TrendsForUser(c.Request.Context(), userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute trends"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"trends": trends})
}

func (h *StatsHandler) GetDueHabits(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	date, ok := parseDateQuery(c)
	if !ok {
		return
	}

	due, err := h.svc.DueOn(c.Request.Context(), userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list due habits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"habits": due})
}
