package analysis

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	checksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_checks_total",
			Help: "Total number of content checks run",
		},
		[]string{"check", "status"},
	)

	checkDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analysis_check_duration_seconds",
			Help:    "Content check duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"check"},
	)

	misspellingsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "spelling_misspellings_total",
			Help: "Total number of misspellings reported",
		},
	)
)

func recordCheck(check string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	checksTotal.WithLabelValues(check, status).Inc()
	checkDuration.WithLabelValues(check).Observe(duration.Seconds())
}
