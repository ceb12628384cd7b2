package compare

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// comparisonDuration tracks end-to-end comparison latency.
	comparisonDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "comparison_duration_seconds",
		Help:    "Time taken to assemble a price comparison",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	})

	// quoteDuration tracks individual oracle call latency.
	quoteDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "comparison_quote_duration_seconds",
		Help:    "Time taken for a single oracle quote",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})

	// quoteFailures counts oracle calls degraded to "no quote".
	quoteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "comparison_quote_failures_total",
		Help: "Oracle calls that failed or timed out, by store",
	}, []string{"store"})

	// itemCount tracks the distribution of items per request.
	itemCount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "comparison_items_count",
		Help:    "Number of items in comparison requests",
		Buckets: []float64{1, 2, 5, 10, 20, 50},
	})

	// rankedCount tracks how many stores survive filtering and get ranked.
	rankedCount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "comparison_ranked_stores_count",
		Help:    "Number of stores ranked per location-aware request",
		Buckets: []float64{0, 1, 2, 4, 6, 8, 12},
	})

	// filteredOut counts stores removed by the distance filter.
	filteredOut = promauto.NewCounter(prometheus.CounterOpts{
		Name: "comparison_stores_filtered_total",
		Help: "Stores removed by the distance filter",
	})
)

// MetricsRecorder provides methods to record comparison engine metrics.
type MetricsRecorder struct{}

// NewMetricsRecorder creates a new metrics recorder.
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{}
}

// RecordComparison records the duration of a full comparison.
func (m *MetricsRecorder) RecordComparison(d time.Duration) {
	comparisonDuration.Observe(d.Seconds())
}

// RecordQuote records the duration of one oracle call.
func (m *MetricsRecorder) RecordQuote(d time.Duration) {
	quoteDuration.Observe(d.Seconds())
}

// RecordQuoteFailure records an oracle call degraded to "no quote".
func (m *MetricsRecorder) RecordQuoteFailure(store string) {
	quoteFailures.WithLabelValues(store).Inc()
}

// RecordItemCount records the number of items in a request.
func (m *MetricsRecorder) RecordItemCount(n int) {
	itemCount.Observe(float64(n))
}

// RecordRankedCount records the number of ranked stores.
func (m *MetricsRecorder) RecordRankedCount(n int) {
	rankedCount.Observe(float64(n))
}

// RecordFilteredOut records stores dropped by the distance filter.
func (m *MetricsRecorder) RecordFilteredOut(n int) {
	filteredOut.Add(float64(n))
}
