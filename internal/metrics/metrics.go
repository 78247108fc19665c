// Package metrics provides the centralized Prometheus metrics registry.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "racemarks"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	RacesScoredTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "races_scored_total",
		Help:      "Total number of races scored by outcome",
	}, []string{"outcome"})
	MarksAssignedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "marks_assigned_total",
		Help:      "Total number of marks assigned by mark and confidence tier",
	}, []string{"mark", "tier"})
	DivergenceClassificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "divergence_classifications_total",
		Help:      "Total number of entrants per divergence classification",
	}, []string{"classification"})
	UndefinedFeaturesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "undefined_features_total",
		Help:      "Total number of optional features left undefined during extraction",
	})
	HistoryCacheLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "history_cache_lookups_total",
		Help:      "History cache lookups by result",
	}, []string{"result"})
	StatsRefreshesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stats_refreshes_total",
		Help:      "Aggregate statistics refreshes by outcome",
	}, []string{"outcome"})
)

// Gauge metrics
var (
	StatsSnapshotEntries = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "stats_snapshot_entries",
		Help:      "Number of entries in the active aggregate statistics snapshot",
	})
	StatsSnapshotAgeSeconds = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "stats_snapshot_built_timestamp_seconds",
		Help:      "Unix time the active aggregate statistics snapshot was built",
	})
)

// Histogram metrics
var (
	ScoringDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "scoring_duration_seconds",
		Help:      "Duration of one race scoring pass including history lookups",
		Buckets:   prometheus.DefBuckets,
	})
	EstimatedProbability = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "estimated_probability",
		Help:      "Distribution of estimated win probabilities",
		Buckets:   []float64{0.02, 0.05, 0.08, 0.1, 0.15, 0.2, 0.3, 0.4, 0.6, 0.95},
	})
	BacktestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backtest_duration_seconds",
		Help:      "Duration of backtest runs in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 300, 600, 1800},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(RacesScoredTotal)
		registry.MustRegister(MarksAssignedTotal)
		registry.MustRegister(DivergenceClassificationsTotal)
		registry.MustRegister(UndefinedFeaturesTotal)
		registry.MustRegister(HistoryCacheLookupsTotal)
		registry.MustRegister(StatsRefreshesTotal)

		registry.MustRegister(StatsSnapshotEntries)
		registry.MustRegister(StatsSnapshotAgeSeconds)

		registry.MustRegister(ScoringDuration)
		registry.MustRegister(EstimatedProbability)
		registry.MustRegister(BacktestDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordRaceScored records a scoring pass and its duration.
func RecordRaceScored(outcome string, durationSeconds float64) {
	RacesScoredTotal.WithLabelValues(outcome).Inc()
	ScoringDuration.Observe(durationSeconds)
}

// RecordEntrant records one scored entrant.
func RecordEntrant(classification string, probability float64, undefinedFeatures int) {
	DivergenceClassificationsTotal.WithLabelValues(classification).Inc()
	EstimatedProbability.Observe(probability)
	UndefinedFeaturesTotal.Add(float64(undefinedFeatures))
}

// RecordMark records an assigned mark.
func RecordMark(mark, tier string) {
	MarksAssignedTotal.WithLabelValues(mark, tier).Inc()
}

// RecordHistoryCacheLookup records a history cache hit or miss.
func RecordHistoryCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	HistoryCacheLookupsTotal.WithLabelValues(result).Inc()
}

// RecordStatsRefresh records a refresh attempt.
func RecordStatsRefresh(success bool, entries int, builtAtUnix float64) {
	if !success {
		StatsRefreshesTotal.WithLabelValues("failure").Inc()
		return
	}
	StatsRefreshesTotal.WithLabelValues("success").Inc()
	StatsSnapshotEntries.Set(float64(entries))
	StatsSnapshotAgeSeconds.Set(builtAtUnix)
}

// RecordBacktestDuration records backtest duration.
func RecordBacktestDuration(durationSeconds float64) {
	BacktestDuration.Observe(durationSeconds)
}
