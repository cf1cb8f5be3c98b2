package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FreshRegistries(t *testing.T) {
	a := New(prometheus.NewRegistry())
	b := New(prometheus.NewRegistry())

	a.OffersTotal.WithLabelValues("added").Add(3)

	assert.Equal(t, float64(3), testutil.ToFloat64(a.OffersTotal.WithLabelValues("added")))
	assert.Equal(t, float64(0), testutil.ToFloat64(b.OffersTotal.WithLabelValues("added")))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.RunsTotal.WithLabelValues("manual", "success").Inc()
	m.ExpiredDeleted.Add(2)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `etl_runs_total{status="success",trigger="manual"} 1`)
	assert.Contains(t, string(body), "etl_expired_deleted_total 2")
}
