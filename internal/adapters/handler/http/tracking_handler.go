package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/habitualhq/habitual/internal/adapters/handler/http/middleware"
	"github.com/habitualhq/habitual/internal/core/domain"
	"github.com/habitualhq/habitual/internal/core/services"
)

type TrackingHandler struct {
	svc          *services.TrackingService
	gamification *services.GamificationService
}

func NewTrackingHandler(svc *services.TrackingService, gamification *services.GamificationService) *TrackingHandler {
	return &TrackingHandler{
		svc:          svc,
		gamification: gamification,
	}
}

type setProgressRequest struct {
	Value float64 `json:"value"`
}

type setMicroHabitRequest struct {
	Done bool `json:"done"`
}

func (h *TrackingHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("/:id/toggle", h.Toggle)
		habits.PUT("/:id/progress", h.SetProgress)
		habits.POST("/:id/increment", h.Increment)
		habits.POST("/:id/decrement", h.Decrement)
		habits.PUT("/:id/micro-habits/:microId", h.SetMicroHabit)
	}
}

func (h *TrackingHandler) Toggle(c *gin.Context) {
	h.mutate(c, "toggle", func(habitID, userID string, date time.Time) (*domain.Habit, error) {
		return h.svc.Toggle(c.Request.Context(), habitID, userID, date)
	})
}

func (h *TrackingHandler) SetProgress(c *gin.Context) {
	var req setProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.mutate(c, "set", func(habitID, userID string, date time.Time) (*domain.Habit, error) {
		return h.svc.SetProgress(c.Request.Context(), habitID, userID, date, req.Value)
	})
}

func (h *TrackingHandler) Increment(c *gin.Context) {
	h.mutate(c, "increment", func(habitID, userID string, date time.Time) (*domain.Habit, error) {
		return h.svc.Increment(c.Request.Context(), habitID, userID, date)
	})
}

func (h *TrackingHandler) Decrement(c *gin.Context) {
	h.mutate(c, "decrement", func(habitID, userID string, date time.Time) (*domain.Habit, error) {
		return h.svc.Decrement(c.Request.Context(), habitID, userID, date)
	})
}

func (h *TrackingHandler) SetMicroHabit(c *gin.Context) {
	var req setMicroHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	microID := c.Param("microId")

	h.mutate(c, "micro", func(habitID, userID string, date time.Time) (*domain.Habit, error) {
		return h.svc.SetMicroHabit(c.Request.Context(), habitID, userID, date, microID, req.Done)
	})
}

// mutate runs a ledger mutation and answers with the updated habit plus
// whether the tap just completed it (drives the celebratory highlight).
func (h *TrackingHandler) mutate(c *gin.Context, kind string, fn func(habitID, userID string, date time.Time) (*domain.Habit, error)) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	date, ok := parseDateQuery(c)
	if !ok {
		return
	}

	habitID := c.Param("id")

	habit, err := fn(habitID, userID, date)
	if err != nil {
		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	middleware.RecordCompletionEvent(kind)

	justCompleted := false
	if h.gamification != nil {
		justCompleted = h.gamification.JustCompleted(habitID)
	}

	c.JSON(http.StatusOK, gin.H{
		"habit":          habit,
		"just_completed": justCompleted,
	})
}

// parseDateQuery reads the optional ?date=YYYY-MM-DD parameter,
// defaulting to the current UTC day. A false return means the response
// has already been written.
func parseDateQuery(c *gin.Context) (time.Time, bool) {
	dateStr := c.Query("date")
	if dateStr == "" {
		return time.Now().UTC(), true
	}

	date, err := time.Parse(domain.DateKeyLayout, dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return date, true
}
