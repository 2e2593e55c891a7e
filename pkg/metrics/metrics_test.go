package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsObserve(t *testing.T) {
	m := New(nil)
	m.ObserveHTTP(http.MethodGet, "/booking", 200, 10*time.Millisecond)
	m.ObserveUpstream("get_courts", "ok", time.Second)
	m.ObserveTransition("court", "time")
	m.ObservePayment("ZELLE", true)
	m.ObservePayment("ZELLE", false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("court", "time")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.payments.WithLabelValues("ZELLE", "failed")))
}

func TestMetricsHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.ObserveTransition("time", "details")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `padel_wizard_transitions_total{from="time",to="details"} 1`)
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveHTTP(http.MethodGet, "/", 200, time.Millisecond)
	m.ObserveUpstream("op", "ok", time.Millisecond)
	m.ObserveTransition("a", "b")
	m.ObservePayment("ZELLE", true)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
