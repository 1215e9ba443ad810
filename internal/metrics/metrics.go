// Package metrics provides Prometheus collectors for the dashboard's
// container actions and engine round trips.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Action results used as the "result" label.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultRefused = "refused"
)

var (
	promActions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dockwatch_container_actions_total",
			Help: "Container start/stop/restart requests by result",
		},
		[]string{"action", "result"},
	)
	promSelfGuard = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dockwatch_self_guard_refusals_total",
			Help: "Mutations refused because they targeted the dashboard's own container",
		},
	)
	promListDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dockwatch_engine_list_seconds",
			Help:    "Duration of container list calls against the engine",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)
)

func init() {
	prometheus.MustRegister(
		promActions,
		promSelfGuard,
		promListDuration,
	)
}

// RecordAction counts one finished container action.
func RecordAction(action string, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	promActions.WithLabelValues(action, result).Inc()
}

// RecordSelfGuardRefusal counts a mutation refused by the self guard.
func RecordSelfGuardRefusal(action string) {
	promActions.WithLabelValues(action, ResultRefused).Inc()
	promSelfGuard.Inc()
}

// ObserveList records the duration of one engine list call.
func ObserveList(d time.Duration) {
	promListDuration.Observe(d.Seconds())
}

// PromHandler returns an HTTP handler that exposes Prometheus metrics.
func PromHandler() http.Handler { return promhttp.Handler() }
