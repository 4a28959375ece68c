package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the classify-and-recommend HTTP handler
	PredictionLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "prediction_latency_seconds",
		Help:    "Latency of the user recommendation handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of prediction requests served
	PredictionRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "prediction_requests_total",
		Help: "Total number of prediction requests",
	})
)

func Init() {
	prometheus.MustRegister(
		PredictionLatency,
		PredictionRequests,
	)
}
