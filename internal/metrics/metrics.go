package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "homepanel_"

	ResultSuccess = "success"
	ResultError   = "error"
	ResultRefused = "refused"

	ProbeOnline  = "online"
	ProbeOffline = "offline"
)

var (
	registerOnce sync.Once

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	deviceCommands       *prometheus.CounterVec
	deviceCommandLatency *prometheus.HistogramVec

	statusProbes *prometheus.CounterVec
	uptimeFetch  *prometheus.CounterVec
)

// Init registers the service metrics with the default registry. Safe to
// call more than once.
func Init() {
	registerOnce.Do(func() {
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by method, route and status code",
			},
			[]string{"method", "route", "code"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		)
		deviceCommands = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "device_commands_total",
				Help: "Total device commands by kind and result",
			},
			[]string{"kind", "result"},
		)
		deviceCommandLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "device_command_latency_seconds",
				Help:    "Device command latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		)
		statusProbes = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "status_probes_total",
				Help: "Total status and reachability probes by kind and outcome",
			},
			[]string{"kind", "outcome"},
		)
		uptimeFetch = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "uptime_fetch_total",
				Help: "Total StatusCake period fetches by result",
			},
			[]string{"result"},
		)

		prometheus.MustRegister(
			httpRequests,
			httpLatency,
			deviceCommands,
			deviceCommandLatency,
			statusProbes,
			uptimeFetch,
		)
	})
}

// ObserveHTTP records one served request. route is the matched pattern,
// not the raw path.
func ObserveHTTP(method, route string, code int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	if httpRequests != nil {
		httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	}
	if httpLatency != nil {
		httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
	}
}

// ObserveCommand records one relayed device command.
func ObserveCommand(kind, result string, duration time.Duration) {
	if result == "" {
		result = ResultSuccess
	}
	if deviceCommands != nil {
		deviceCommands.WithLabelValues(kind, result).Inc()
	}
	if deviceCommandLatency != nil {
		deviceCommandLatency.WithLabelValues(kind).Observe(duration.Seconds())
	}
}

// IncProbe counts a status or reachability probe outcome.
func IncProbe(kind string, online bool) {
	outcome := ProbeOffline
	if online {
		outcome = ProbeOnline
	}
	if statusProbes != nil {
		statusProbes.WithLabelValues(kind, outcome).Inc()
	}
}

// IncUptimeFetch counts a StatusCake fetch.
func IncUptimeFetch(result string) {
	if uptimeFetch != nil {
		uptimeFetch.WithLabelValues(result).Inc()
	}
}
