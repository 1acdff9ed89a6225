package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "fdc_core_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	lockOpsTotal   *prometheus.CounterVec
	unlockOpsTotal *prometheus.CounterVec

	syncPushTotal *prometheus.CounterVec

	bulkUpdateRows prometheus.Histogram
)

// Init registers the application metrics with the default registry.
func Init() {
	registerOnce.Do(func() {
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_latency_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		)

		lockOpsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "workpaper_lock_total",
				Help: "Total workpaper lock operations by result",
			},
			[]string{"result"},
		)
		unlockOpsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "workpaper_unlock_total",
				Help: "Total workpaper unlock operations by result",
			},
			[]string{"result"},
		)

		syncPushTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "myfdc_sync_total",
				Help: "Total MyFDC sync pushes by operation and outcome",
			},
			[]string{"operation", "outcome"},
		)

		bulkUpdateRows = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "bulk_update_rows",
				Help:    "Number of rows touched per bulk update",
				Buckets: []float64{1, 5, 10, 50, 100, 500, 1000},
			},
		)

		prometheus.MustRegister(
			httpRequests,
			httpLatency,
			lockOpsTotal,
			unlockOpsTotal,
			syncPushTotal,
			bulkUpdateRows,
		)
	})
}

// ObserveHTTPRequest records one completed HTTP request.
func ObserveHTTPRequest(method, route, status string, latency time.Duration) {
	if httpRequests == nil {
		return
	}
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpLatency.WithLabelValues(method, route).Observe(latency.Seconds())
}

// ObserveLock records a workpaper lock operation outcome.
func ObserveLock(err error) {
	observeResult(lockOpsTotal, err)
}

// ObserveUnlock records an unlock operation outcome.
func ObserveUnlock(err error) {
	observeResult(unlockOpsTotal, err)
}

// ObserveSyncPush records one inbound MyFDC push. Outcome is "applied",
// "rejected" or "error".
func ObserveSyncPush(operation, outcome string) {
	if syncPushTotal == nil {
		return
	}
	syncPushTotal.WithLabelValues(operation, outcome).Inc()
}

// ObserveBulkUpdate records the row count of a completed bulk update.
func ObserveBulkUpdate(rows int) {
	if bulkUpdateRows == nil {
		return
	}
	bulkUpdateRows.Observe(float64(rows))
}

func observeResult(vec *prometheus.CounterVec, err error) {
	if vec == nil {
		return
	}
	result := resultSuccess
	if err != nil {
		result = resultError
	}
	vec.WithLabelValues(result).Inc()
}
