package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/habitualhq/habitual/internal/adapters/handler/http/middleware"
	"github.com/habitualhq/habitual/internal/core/services"
)

type JournalHandler struct {
	svc *services.JournalService
}

func NewJournalHandler(svc *services.JournalService) *JournalHandler {
	return &JournalHandler{svc: svc}
}

type saveJournalRequest struct {
	Content string `json:"content"`
}

func (h *JournalHandler) RegisterRoutes(router *gin.RouterGroup) {
	journal := router.Group("/journal")
	{
		journal.GET("", h.Get)
		journal.PUT("", h.Save)
	}
}

func (h *JournalHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	date, ok := parseDateQuery(c)
	if !ok {
		return
	}

	entry, err := h.svc.EntryFor(c.Request.Context(), userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

func (h *JournalHandler) Save(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	date, ok := parseDateQuery(c)
	if !ok {
		return
	}

	var req saveJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.svc.Save(c.Request.Context(), userID, date, req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": entry})
}
