package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func corsRequest(t *testing.T, origins []string, method, origin string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(New(origins))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, "/ping", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestPinnedOriginGetsCredentials(t *testing.T) {
	w := corsRequest(t, []string{"https://portal.example.edu"}, http.MethodGet, "https://portal.example.edu")

	assert.Equal(t, "https://portal.example.edu", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestWildcardNeverCarriesCredentials(t *testing.T) {
	w := corsRequest(t, nil, http.MethodGet, "https://anywhere.example.com")

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestUnknownOriginGetsNoAllowOrigin(t *testing.T) {
	w := corsRequest(t, []string{"https://portal.example.edu"}, http.MethodGet, "https://evil.example.com")

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestExposesStatementDownloadHeaders(t *testing.T) {
	w := corsRequest(t, nil, http.MethodGet, "https://portal.example.edu")

	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
	assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
}

func TestPreflightShortCircuits(t *testing.T) {
	w := corsRequest(t, nil, http.MethodOptions, "https://portal.example.edu")

	assert.Equal(t, http.StatusNoContent, w.Code)
}
