package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	buildInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fxparams_build_info",
			Help: "Build information for the fxparams server",
		},
		[]string{"date", "sha", "version"},
	)

	definitionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fxparams_parameter_definitions_total",
			Help: "Total number of parameter definitions handed to the host",
		},
	)

	samplesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fxparams_random_samples_total",
			Help: "Total number of random parameter samples by outcome",
		},
		[]string{"outcome"},
	)

	hostErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fxparams_host_errors_total",
			Help: "Total number of errors returned by the host by operation",
		},
		[]string{"op"},
	)

	updatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fxparams_updates_total",
			Help: "Total number of params:update emissions by outcome",
		},
		[]string{"outcome"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fxparams_http_request_duration_seconds",
			Help:    "HTTP request duration by route and status",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "status"},
	)
)

// Register registers every fxparams metric.
func Register(r prometheus.Registerer) {
	r.MustRegister(buildInfo, definitionsTotal, samplesTotal, hostErrorsTotal, updatesTotal, requestDuration)
}

// SetBuildInfo sets the build info metric.
func SetBuildInfo(version, sha, date string) {
	buildInfo.WithLabelValues(date, sha, version).Set(1)
}

// RecordDefinitions counts definitions handed to the host.
func RecordDefinitions(n int) { definitionsTotal.Add(float64(n)) }

// RecordSample counts one SampleRandomParameters call.
func RecordSample(success bool) {
	samplesTotal.WithLabelValues(outcome(success, "success", "error")).Inc()
}

// RecordHostError counts a host failure for op.
func RecordHostError(op string) { hostErrorsTotal.WithLabelValues(op).Inc() }

// RecordUpdate counts one params:update emission.
func RecordUpdate(optIn bool) {
	updatesTotal.WithLabelValues(outcome(optIn, "applied", "rejected")).Inc()
}

// ObserveRequest records an HTTP request duration.
func ObserveRequest(route, status string, d time.Duration) {
	requestDuration.WithLabelValues(route, status).Observe(d.Seconds())
}

func outcome(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}
