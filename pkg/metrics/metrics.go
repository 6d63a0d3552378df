package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Route check outcomes
const (
	OutcomeOK        = "ok"
	OutcomeAmbiguous = "ambiguous"
	OutcomeESIError  = "esi_error"
	OutcomeIntegrity = "integrity_error"
	OutcomeError     = "error"
)

var (
	esiRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waypoint_esi_requests_total",
			Help: "Total ESI requests by endpoint and response status",
		},
		[]string{"endpoint", "status"},
	)

	esiDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "waypoint_esi_request_duration_seconds",
			Help:    "ESI request latency by endpoint",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	routeChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waypoint_route_checks_total",
			Help: "Total route checks by outcome",
		},
		[]string{"outcome"},
	)

	registerOnce sync.Once
)

// Init registers the collectors with the default registry.
// Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(esiRequests, esiDuration, routeChecks)
	})
}

// Collectors returns every collector owned by this package, for custom registries
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{esiRequests, esiDuration, routeChecks}
}

// ObserveESIRequest records one ESI round trip. status 0 means the request never got a response.
func ObserveESIRequest(endpoint string, status int, elapsed time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	esiRequests.WithLabelValues(endpoint, label).Inc()
	esiDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// RecordRouteCheck counts one finished route check
func RecordRouteCheck(outcome string) {
	routeChecks.WithLabelValues(outcome).Inc()
}
