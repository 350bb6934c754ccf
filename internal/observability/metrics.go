package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	registry = prometheus.NewRegistry()

	decodeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bitsctl",
			Subsystem: "decode",
			Name:      "total",
			Help:      "Transmissions decoded, by result.",
		},
		[]string{"result"},
	)
	decodeErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bitsctl",
			Subsystem: "decode",
			Name:      "errors_total",
			Help:      "Decode failures, by error kind.",
		},
		[]string{"kind"},
	)
	decodePackets = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "bitsctl",
			Subsystem: "decode",
			Name:      "packets",
			Help:      "Packets per decoded transmission.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
	decodeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "bitsctl",
			Subsystem: "decode",
			Name:      "duration_seconds",
			Help:      "Decode and evaluate duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

// Registry returns the registry holding the decoder metrics.
func Registry() *prometheus.Registry {
	RegisterMetrics()
	return registry
}

func RegisterMetrics() {
	registerOnce.Do(func() {
		registry.MustRegister(decodeTotal, decodeErrors, decodePackets, decodeDuration)
	})
}

// RecordDecode records a successful decode of a tree with packets nodes.
func RecordDecode(packets int, duration time.Duration) {
	RegisterMetrics()
	decodeTotal.WithLabelValues("ok").Inc()
	decodePackets.Observe(float64(packets))
	decodeDuration.Observe(duration.Seconds())
}

// RecordDecodeError records a failed decode classified as kind.
func RecordDecodeError(kind string, duration time.Duration) {
	RegisterMetrics()
	decodeTotal.WithLabelValues("error").Inc()
	decodeErrors.WithLabelValues(kind).Inc()
	decodeDuration.Observe(duration.Seconds())
}

// WriteTextfile writes the decoder metrics in the text exposition format,
// for collection by a node exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry())
}
