package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistry(t *testing.T) {
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
	assert.Same(t, registry, InitRegistry())
}

func TestRecordRaceScored(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(RacesScoredTotal.WithLabelValues("success"))

	RecordRaceScored("success", 0.004)

	assert.Equal(t, before+1, testutil.ToFloat64(RacesScoredTotal.WithLabelValues("success")))
}

func TestRecordMark(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(MarksAssignedTotal.WithLabelValues("primary", "S"))

	RecordMark("primary", "S")
	RecordMark("primary", "S")

	assert.Equal(t, before+2, testutil.ToFloat64(MarksAssignedTotal.WithLabelValues("primary", "S")))
}

func TestRecordEntrant(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(UndefinedFeaturesTotal)

	assert.NotPanics(t, func() {
		RecordEntrant("fair", 0.3, 4)
	})
	assert.Equal(t, before+4, testutil.ToFloat64(UndefinedFeaturesTotal))
}

func TestRecordHistoryCacheLookup(t *testing.T) {
	InitRegistry()
	hits := testutil.ToFloat64(HistoryCacheLookupsTotal.WithLabelValues("hit"))
	misses := testutil.ToFloat64(HistoryCacheLookupsTotal.WithLabelValues("miss"))

	RecordHistoryCacheLookup(true)
	RecordHistoryCacheLookup(false)
	RecordHistoryCacheLookup(false)

	assert.Equal(t, hits+1, testutil.ToFloat64(HistoryCacheLookupsTotal.WithLabelValues("hit")))
	assert.Equal(t, misses+2, testutil.ToFloat64(HistoryCacheLookupsTotal.WithLabelValues("miss")))
}

func TestRecordStatsRefresh(t *testing.T) {
	tests := []struct {
		name    string
		success bool
		entries int
	}{
		{name: "successful refresh", success: true, entries: 1200},
		{name: "failed refresh keeps gauge", success: false, entries: 0},
	}

	InitRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RecordStatsRefresh(tt.success, tt.entries, 1700000000)
			assert.Equal(t, float64(1200), testutil.ToFloat64(StatsSnapshotEntries))
		})
	}
}

func TestHandlerServesMetrics(t *testing.T) {
	RecordMark("secondary", "A")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "racemarks_marks_assigned_total")
}
