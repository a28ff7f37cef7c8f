package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultationService/pkg/metrics"
)

func TestMetricsMiddleware_RecordsRequest(t *testing.T) {
	m := metrics.New("test")

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m, "test"))
	r.HandleFunc("/api/v1/services/{serviceId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/services/42", nil)
	rec := httptest.NewRecorder()

	// Оба вектора метрик должны принимать свои наборы label values без паники
	require.NotPanics(t, func() { r.ServeHTTP(rec, req) })

	assert.Equal(t, http.StatusOK, rec.Code)
	// Маршрут записывается шаблоном, а не конкретным путем
	counter := m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/services/{serviceId}", "200")
	assert.Equal(t, float64(1), testutil.ToFloat64(counter))
	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestDuration))
}
