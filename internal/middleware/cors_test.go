package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupCORSRouter(handlers ...gin.HandlerFunc) (*gin.Engine, *bool) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	reached := false
	chain := append([]gin.HandlerFunc{CORS()}, handlers...)
	chain = append(chain, func(c *gin.Context) {
		reached = true
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	router.Any("/resource", chain...)
	return router, &reached
}

func TestCORS_ReflectsOrigin(t *testing.T) {
	router, reached := setupCORSRouter()

	req := httptest.NewRequest("GET", "/resource", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, *reached)
	assert.Equal(t, "http://example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, PUT, DELETE", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization", w.Header().Get("Access-Control-Allow-Headers"))
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	router, reached := setupCORSRouter()

	req := httptest.NewRequest("OPTIONS", "/resource", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.False(t, *reached, "preflight must not reach the handler")
}

func TestCORS_PreflightBypassesAuth(t *testing.T) {
	mockSessions := new(MockSessionService)
	router, reached := setupCORSRouter(SessionAuth(mockSessions))

	req := httptest.NewRequest("OPTIONS", "/resource", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, *reached)
	mockSessions.AssertNotCalled(t, "Resolve", mock.Anything)
}
