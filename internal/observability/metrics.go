package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tracksync",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"app", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tracksync",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"app", "method", "path", "status"},
	)
	syncFrames = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tracksync",
			Subsystem: "sync",
			Name:      "frames_total",
			Help:      "Editor command frames received, by command.",
		},
		[]string{"command"},
	)
	syncKeysApplied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tracksync",
			Subsystem: "sync",
			Name:      "keys_applied_total",
			Help:      "Keyframe mutations applied, by kind.",
		},
		[]string{"kind"},
	)
	syncRowsSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tracksync",
			Subsystem: "sync",
			Name:      "rows_sent_total",
			Help:      "Outbound set_row frames sent.",
		},
	)
	syncDisconnects = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tracksync",
			Subsystem: "sync",
			Name:      "disconnects_total",
			Help:      "Editor connections torn down on error or close.",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration,
			syncFrames, syncKeysApplied, syncRowsSent, syncDisconnects)
	})
}

func RecordHTTPRequest(app, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(app, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(app, method, path, statusLabel).Observe(duration.Seconds())
}

func RecordFrame(command string) {
	RegisterMetrics()
	syncFrames.WithLabelValues(command).Inc()
}

func RecordKeyApplied(kind string) {
	RegisterMetrics()
	syncKeysApplied.WithLabelValues(kind).Inc()
}

func RecordRowSent() {
	RegisterMetrics()
	syncRowsSent.Inc()
}

func RecordDisconnect() {
	RegisterMetrics()
	syncDisconnects.Inc()
}
