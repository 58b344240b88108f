package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsAreNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordReserve(3)
		m.RecordRelease(3)
		m.RecordRejection()
		m.RecordOrder("create")
		m.RecordSale()
		m.RecordRelay("ok", 2)
		m.SetOutboxPending(1)
		m.RecordHTTPRequest("GET", "/produtos/", 200, time.Millisecond)
	})
}

func TestStockMovementCounters(t *testing.T) {
	m := New("stock")
	m.RecordReserve(5)
	m.RecordReserve(2)
	m.RecordRelease(4)
	m.RecordRejection()

	assert.InDelta(t, 7, testutil.ToFloat64(m.StockMovements.WithLabelValues("reserve")), 0.001)
	assert.InDelta(t, 4, testutil.ToFloat64(m.StockMovements.WithLabelValues("release")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(m.StockRejections), 0.001)
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New("stock")
	m.RecordSale()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "talkstoque_stock_sales_total 1")
}
