package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics tracks what the original service counted: total requests by
// outcome, images processed, and per-path processing time.
type metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	imagesProcessed prometheus.Counter
	processingTime  *prometheus.HistogramVec
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &metrics{
		registry: reg,
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gpuresize_requests_total",
			Help: "Resize requests by result.",
		}, []string{"result"}),
		imagesProcessed: factory.NewCounter(prometheus.CounterOpts{
			Name: "gpuresize_images_processed_total",
			Help: "Successfully resized images.",
		}),
		processingTime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gpuresize_processing_seconds",
			Help:    "Resize processing time by execution path.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path"}),
	}
}
