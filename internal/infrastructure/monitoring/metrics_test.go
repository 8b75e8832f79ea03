package monitoring

import (
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestMetricsCollector_KitchenCounters(t *testing.T) {
	m := NewMetricsCollector(NewRegistry(), zaptest.NewLogger(t))

	m.ListGenerated(3, 1)
	m.ListGenerated(0, 2)
	m.ListEmpty()
	m.ReferencesSkipped("recipe", 2)
	m.ReferencesSkipped("item", 0)
	m.StockAdjusted("shopping_list", 4)
	m.StockAdjusted("plan", 1)
	m.LockWait(0.02)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.listsGenerated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.listsEmpty))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.referencesSkipped.WithLabelValues("recipe")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.referencesSkipped), "zero counts are not recorded")
	assert.Equal(t, 4.0, testutil.ToFloat64(m.stockAdjustments.WithLabelValues("shopping_list")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.stockAdjustments.WithLabelValues("plan")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.lockWait))
}

func TestMetricsCollector_DBConnections(t *testing.T) {
	m := NewMetricsCollector(NewRegistry(), zaptest.NewLogger(t))

	m.UpdateDBConnections(sql.DBStats{OpenConnections: 5, InUse: 2, Idle: 3})

	assert.Equal(t, 5.0, testutil.ToFloat64(m.dbConnectionsOpen))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.dbConnectionsInUse))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.dbConnectionsIdle))
}

func TestMetricsCollector_HTTPMiddlewareAndHandler(t *testing.T) {
	m := NewMetricsCollector(NewRegistry(), zaptest.NewLogger(t))

	r := chi.NewRouter()
	r.Use(m.HTTPMiddleware())
	r.Get("/lists/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Handle("/metrics", m.Handler())

	for i := 0; i < 2; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/lists/abc", nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues(http.MethodGet, "/lists/{id}", "404")))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `pantry_http_requests_total{method="GET",route="/lists/{id}",status_code="404"} 2`))
	assert.Contains(t, string(body), "go_goroutines")
}
