package observability

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce sync.Once

	pollTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "owctl",
			Subsystem: "watch",
			Name:      "polls_total",
			Help:      "Total property polls.",
		},
		[]string{"path", "outcome"},
	)
	pollDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "owctl",
			Subsystem: "watch",
			Name:      "poll_duration_seconds",
			Help:      "Property poll duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"path"},
	)
	sinkErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "owctl",
			Subsystem: "watch",
			Name:      "sink_errors_total",
			Help:      "Failed reading deliveries per sink.",
		},
		[]string{"sink"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(pollTotal, pollDuration, sinkErrors)
	})
}

func RecordPoll(path string, duration time.Duration, err error) {
	RegisterMetrics()
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	pollTotal.WithLabelValues(path, outcome).Inc()
	pollDuration.WithLabelValues(path).Observe(duration.Seconds())
}

func RecordSinkError(sink string) {
	RegisterMetrics()
	sinkErrors.WithLabelValues(sink).Inc()
}

// Handler serves the metrics endpoint.
func Handler() http.Handler {
	RegisterMetrics()
	return promhttp.Handler()
}
