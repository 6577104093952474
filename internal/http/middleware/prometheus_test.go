package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMeasuredApp(t *testing.T) (*fiber.App, *PrometheusMiddleware, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	pm, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(pm.Handler())
	app.Get("/documents/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Post("/runs/:id/retry", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusConflict, "not retryable")
	})
	app.Delete("/documents", func(c *fiber.Ctx) error { return errors.New("db down") })
	app.Get("/metrics", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	return app, pm, reg
}

func TestPrometheusMiddleware_CountsByRoutePattern(t *testing.T) {
	app, pm, _ := newMeasuredApp(t)

	for _, id := range []string{"a1", "b2", "c3"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/documents/"+id, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	assert.Equal(t, float64(3), testutil.ToFloat64(pm.requestCount.WithLabelValues("GET", "/documents/:id", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(pm.requestDuration))
}

func TestPrometheusMiddleware_ErrorStatus(t *testing.T) {
	app, pm, _ := newMeasuredApp(t)

	_, err := app.Test(httptest.NewRequest(http.MethodPost, "/runs/r1/retry", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest(http.MethodDelete, "/documents", nil))
	require.NoError(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(pm.requestCount.WithLabelValues("POST", "/runs/:id/retry", "409")))
	assert.Equal(t, float64(1), testutil.ToFloat64(pm.requestCount.WithLabelValues("DELETE", "/documents", "500")))
}

func TestPrometheusMiddleware_LabelsSurviveLaterRequests(t *testing.T) {
	// A bare app reuses request buffers, so labels must not alias them.
	app, _, reg := newMeasuredApp(t)

	requests := []struct{ method, target string }{
		{http.MethodPost, "/runs/r1/retry"},
		{http.MethodDelete, "/documents"},
		{http.MethodGet, "/documents/abc"},
		{http.MethodPost, "/runs/r2/retry"},
	}
	for _, r := range requests {
		_, err := app.Test(httptest.NewRequest(r.method, r.target, nil))
		require.NoError(t, err)
	}

	expected := `
# HELP http_requests_total Total number of HTTP requests processed.
# TYPE http_requests_total counter
http_requests_total{method="DELETE",path="/documents",status="500"} 1
http_requests_total{method="GET",path="/documents/:id",status="200"} 1
http_requests_total{method="POST",path="/runs/:id/retry",status="409"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "http_requests_total"))
}

func TestPrometheusMiddleware_SkipsScrapeAndProbe(t *testing.T) {
	app, _, reg := newMeasuredApp(t)

	_, _ = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	_, _ = app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	_, _ = app.Test(httptest.NewRequest(http.MethodGet, "/documents/x", nil))

	expected := `
# HELP http_requests_total Total number of HTTP requests processed.
# TYPE http_requests_total counter
http_requests_total{method="GET",path="/documents/:id",status="200"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "http_requests_total"))
}

func TestNewPrometheusMiddleware_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	_, err = NewPrometheusMiddleware(reg)
	assert.Error(t, err)
}
