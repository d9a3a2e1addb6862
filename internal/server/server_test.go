package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/brisa-edu/brisa-client/internal/config"
	"github.com/brisa-edu/brisa-client/internal/mockapi"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	api, err := mockapi.NewAPI(mockapi.Config{BcryptCost: bcrypt.MinCost, Logger: zap.NewNop()})
	require.NoError(t, err)
	cfg := &config.Config{CORSOrigins: []string{"http://localhost:5173"}}
	srv := httptest.NewServer(NewServer(cfg, api, zap.NewNop()).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestMountsAPIUnderPrefix(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestMetricsCountByRoute(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/api/health", "/api/estudiantes/1"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
	}

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `brisa_mock_http_requests_total{method="GET",route="/api/health",status="200"} 1`)
	assert.Contains(t, string(body), `route="/api/estudiantes/{id}",status="401"`)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/auth/login", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}
