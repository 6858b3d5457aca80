package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elementhub/internal/elements"
	"elementhub/internal/live"
	"elementhub/internal/requestlog"
	"elementhub/pkg/catalog"
	"elementhub/pkg/utils"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("ELEMENTHUB_CONFIG", "")
	svc, err := elements.NewService(catalog.Default(), elements.Options{CacheSize: 4})
	require.NoError(t, err)
	cfg, err := utils.LoadConfig("")
	require.NoError(t, err)
	return newRouter(svc, live.NewHub(svc), "embedded", cfg)
}

func TestHealthAndReady(t *testing.T) {
	r := testRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(requestlog.HeaderRequestID))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var ready map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ready))
	assert.Equal(t, "ready", ready["status"])
	assert.EqualValues(t, 29, ready["elements"])
	assert.EqualValues(t, 28, ready["placed"])
	assert.EqualValues(t, 92, ready["cutoff"])
	assert.EqualValues(t, 0, ready["tcp_clients"])
}

func TestAPIMounted(t *testing.T) {
	w := httptest.NewRecorder()
	testRouter(t).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/elements/8", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"symbol":"O"`)
}
