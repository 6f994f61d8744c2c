package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Counters(t *testing.T) {
	m := NewRegistry()

	m.ObserveWrite("list_change", nil)
	m.ObserveWrite("list_change", nil)
	m.ObserveWrite("list_change", errors.New("rejected"))
	m.ObserveCatalogReload(nil)
	m.ObserveExternal("alphavantage", errors.New("timeout"))
	m.ObserveRanking(5*time.Millisecond, 12)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Writes.WithLabelValues("list_change", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Writes.WithLabelValues("list_change", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogReloads.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExternalCalls.WithLabelValues("alphavantage", "error")))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.RankedSecurities))
}

func TestRegistry_NilIsNoop(t *testing.T) {
	var m *Registry
	assert.NotPanics(t, func() {
		m.ObserveHTTP("GET", "/health", "200", time.Millisecond)
		m.ObserveWrite("security", nil)
		m.ObserveRanking(time.Millisecond, 1)
		m.ObserveCatalogReload(nil)
		m.ObserveExternal("alphavantage", nil)
	})
}

func TestRegistry_Handler(t *testing.T) {
	m := NewRegistry()
	m.ObserveHTTP("GET", "/points/weighted", "200", 20*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `preflists_http_requests_total{method="GET",route="/points/weighted",status="200"} 1`))
	assert.Contains(t, body, "go_goroutines")
}
