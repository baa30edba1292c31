package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/habitualhq/habitual/internal/adapters/handler/http/middleware"
	"github.com/habitualhq/habitual/internal/core/domain"
	"github.com/habitualhq/habitual/internal/core/services"
)

type HabitHandler struct {
	svc   *services.HabitService
	order *services.OrderService
}

func NewHabitHandler(svc *services.HabitService, order *services.OrderService) *HabitHandler {
	return &HabitHandler{
		svc:   svc,
		order: order,
	}
}

type createHabitRequest struct {
	Name         string              `json:"name" binding:"required"`
	Priority     string              `json:"priority"`
	TimeOfDay    string              `json:"time_of_day"`
	Category     string              `json:"category"`
	Frequency    string              `json:"frequency"`
	Days         []string            `json:"days"`
	TimesPerWeek int                 `json:"times_per_week"`
	Interval     int                 `json:"interval"`
	TrackingType string              `json:"tracking_type"`
	GoalValue    *float64            `json:"goal_value"`
	GoalUnit     string              `json:"goal_unit"`
	MicroHabits  []domain.MicroHabit `json:"micro_habits"`
}

type updateHabitRequest struct {
	Name         string              `json:"name"`
	Priority     string              `json:"priority"`
	TimeOfDay    string              `json:"time_of_day"`
	Category     string              `json:"category"`
	Frequency    string              `json:"frequency"`
	Days         []string            `json:"days"`
	TimesPerWeek int                 `json:"times_per_week"`
	Interval     int                 `json:"interval"`
	TrackingType string              `json:"tracking_type"`
	GoalValue    *float64            `json:"goal_value"`
	GoalUnit     string              `json:"goal_unit"`
	MicroHabits  []domain.MicroHabit `json:"micro_habits"`
	Version      int                 `json:"version"`
}

type reorderRequest struct {
	TimeOfDay string   `json:"time_of_day" binding:"required"`
	HabitIDs  []string `json:"habit_ids" binding:"required"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.GET("/:id", h.Get)
		habits.PUT("/:id", h.Update)
		habits.DELETE("/:id", h.Delete)
		habits.PUT("/reorder", h.Reorder)
	}
}

func (h *HabitHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.CreateHabitInput{
		UserID:       userID,
		Name:         req.Name,
		Priority:     req.Priority,
		TimeOfDay:    req.TimeOfDay,
		Category:     req.Category,
		Frequency:    req.Frequency,
		Days:         req.Days,
		TimesPerWeek: req.TimesPerWeek,
		Interval:     req.Interval,
		TrackingType: req.TrackingType,
		GoalValue:    req.GoalValue,
		GoalUnit:     req.GoalUnit,
		MicroHabits:  req.MicroHabits,
	}

	habit, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, habit)
}

func (h *HabitHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	list, err := h.svc.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *HabitHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	habit, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req updateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.UpdateHabitInput{
		ID:           c.Param("id"),
		UserID:       userID,
		Name:         req.Name,
		Priority:     req.Priority,
		TimeOfDay:    req.TimeOfDay,
		Category:     req.Category,
		Frequency:    req.Frequency,
		Days:         req.Days,
		TimesPerWeek: req.TimesPerWeek,
		Interval:     req.Interval,
		TrackingType: req.TrackingType,
		GoalValue:    req.GoalValue,
		GoalUnit:     req.GoalUnit,
		MicroHabits:  req.MicroHabits,
		Version:      req.Version,
	}

	habit, err := h.svc.Update(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrHabitConflict) {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "version conflict",
				"message": "Habit has been modified elsewhere. Please refresh.",
			})
			return
		}
		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HabitHandler) Reorder(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.order.Reorder(c.Request.Context(), userID, req.TimeOfDay, req.HabitIDs)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrHabitNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
		case errors.Is(err, services.ErrCrossBucketMove),
			errors.Is(err, services.ErrBucketMismatch),
			errors.Is(err, services.ErrUnknownBucket):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.Status(http.StatusOK)
}

func isValidationError(err error) bool {
	for _, target := range []error{
		domain.ErrHabitNameEmpty,
		domain.ErrHabitNameTooLong,
		domain.ErrInvalidPriority,
		domain.ErrInvalidTimeOfDay,
		domain.ErrInvalidFrequency,
		domain.ErrInvalidTracking,
		domain.ErrDaysRequired,
		domain.ErrInvalidWeekday,
		domain.ErrTimesPerWeekRange,
		domain.ErrIntervalTooSmall,
		domain.ErrGoalRequired,
		domain.ErrMicroHabitNoName,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
