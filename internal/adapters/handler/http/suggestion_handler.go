package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/habitualhq/habitual/internal/adapters/handler/http/middleware"
	"github.com/habitualhq/habitual/internal/core/services"
)

type SuggestionHandler struct {
	svc *services.SuggestionService
}

func NewSuggestionHandler(svc *services.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{svc: svc}
}

type suggestionsRequest struct {
	Interests         string `json:"interests"`
	Goals             string `json:"goals"`
	RecentlyCompleted string `json:"recently_completed"`
}

type packSuggestionRequest struct {
	Theme string `json:"theme" binding:"required"`
}

func (h *SuggestionHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/suggestions", h.Suggest)
	r.POST("/suggestions/pack", h.SuggestPack)
}

func (h *SuggestionHandler) Suggest(c *gin.Context) {
	if _, ok := middleware.GetUserID(c); !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req suggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	groups := h.svc.Suggest(c.Request.Context(), req.Interests, req.Goals, req.RecentlyCompleted)

	c.JSON(http.StatusOK, gin.H{"suggestions": groups})
}

func (h *SuggestionHandler) SuggestPack(c *gin.Context) {
	if _, ok := middleware.GetUserID(c); !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req packSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pack := h.svc.SuggestPack(c.Request.Context(), req.Theme)
	if pack == nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "suggestion service unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pack": pack})
}
