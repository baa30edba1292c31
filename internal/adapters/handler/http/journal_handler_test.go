package http_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	adapterHTTP "github.com/habitualhq/habitual/internal/adapters/handler/http"
	"github.com/habitualhq/habitual/internal/adapters/repository"
	"github.com/habitualhq/habitual/internal/core/services"
)

func setupJournalRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	repo := repository.NewInMemoryJournalRepository()
	handler := adapterHTTP.NewJournalHandler(services.NewJournalService(repo))

	r := gin.New()
	group := r.Group("/api/v1")
	group.Use(fakeAuth(testUserID))
	handler.RegisterRoutes(group)
	return r
}

func TestJournalHandler_Get(t *testing.T) {
	t.Run("Success: unwritten day comes back empty", func(t *testing.T) {
		router := setupJournalRouter()

		w := doJSON(router, "GET", "/api/v1/journal?date=2024-03-15", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"date":"2024-03-15"`)
		assert.Contains(t, w.Body.String(), `"content":""`)
	})

	t.Run("Error: 400 on malformed date", func(t *testing.T) {
		router := setupJournalRouter()

		w := doJSON(router, "GET", "/api/v1/journal?date=15-03-2024", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestJournalHandler_Save(t *testing.T) {
	t.Run("Success: save then read back the same day", func(t *testing.T) {
		router := setupJournalRouter()

		w := doJSON(router, "PUT", "/api/v1/journal?date=2024-03-15", `{"content": "kept the streak alive"}`)
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(router, "GET", "/api/v1/journal?date=2024-03-15", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"content":"kept the streak alive"`)
	})

	t.Run("Saving again replaces the entry", func(t *testing.T) {
		router := setupJournalRouter()

		doJSON(router, "PUT", "/api/v1/journal?date=2024-03-15", `{"content": "draft"}`)
		doJSON(router, "PUT", "/api/v1/journal?date=2024-03-15", `{"content": "final"}`)

		w := doJSON(router, "GET", "/api/v1/journal?date=2024-03-15", "")
		assert.Contains(t, w.Body.String(), `"content":"final"`)
		assert.NotContains(t, w.Body.String(), "draft")
	})

	t.Run("Entries are scoped per day", func(t *testing.T) {
		router := setupJournalRouter()

		doJSON(router, "PUT", "/api/v1/journal?date=2024-03-15", `{"content": "friday"}`)

		w := doJSON(router, "GET", "/api/v1/journal?date=2024-03-16", "")
		assert.Contains(t, w.Body.String(), `"content":""`)
	})

	t.Run("Error: 400 on malformed body", func(t *testing.T) {
		router := setupJournalRouter()

		w := doJSON(router, "PUT", "/api/v1/journal?date=2024-03-15", `{"content": 7`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
