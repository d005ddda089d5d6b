package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_OrderCounters(t *testing.T) {
	m := New()

	m.OrderPlaced()
	m.OrderPlaced()
	m.OrderFailed("FAILED_PRECONDITION")
	m.OrderEventFailed()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.OrdersPlacedTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.OrderFailedTotal.WithLabelValues("FAILED_PRECONDITION")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.OrderEventErrors))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.OrderPlaced()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "storefront_orders_placed_total 1")
}
