package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	upstreamLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "presencia_gateway",
		Subsystem: "upstream",
		Name:      "request_duration_seconds",
		Help:      "Latency of requests to the ESP32 API by endpoint and outcome.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint", "outcome"})

	refreshCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "presencia_gateway",
		Subsystem: "dashboard",
		Name:      "refresh_total",
		Help:      "Dashboard refreshes by outcome (applied, stale, failed, invalid).",
	}, []string{"outcome"})

	clockCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "presencia_gateway",
		Subsystem: "clock",
		Name:      "actions_total",
		Help:      "Clock actions forwarded upstream by action type and outcome.",
	}, []string{"action", "outcome"})

	lastRefreshGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "presencia_gateway",
		Subsystem: "dashboard",
		Name:      "last_applied_refresh_timestamp_seconds",
		Help:      "Unix timestamp of the most recent dashboard refresh applied.",
	})
)

func init() {
	prometheus.MustRegister(upstreamLatency, refreshCounter, clockCounter, lastRefreshGauge)
}

// ObserveUpstream records the duration of one upstream call.
func ObserveUpstream(endpoint string, started time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	upstreamLatency.WithLabelValues(endpoint, outcome).Observe(time.Since(started).Seconds())
}

// Refresh outcomes.
const (
	RefreshApplied = "applied"
	RefreshStale   = "stale"
	RefreshFailed  = "failed"
	RefreshInvalid = "invalid"
)

func RecordRefresh(outcome string) {
	refreshCounter.WithLabelValues(outcome).Inc()
	if outcome == RefreshApplied {
		lastRefreshGauge.Set(float64(time.Now().Unix()))
	}
}

func RecordClock(action, outcome string) {
	clockCounter.WithLabelValues(action, outcome).Inc()
}
