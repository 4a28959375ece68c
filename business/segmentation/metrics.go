package segmentation

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	PredictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "segmentation_predictions_total",
			Help: "Count of completed classifications by assigned cluster.",
		},
		[]string{"cluster"},
	)

	PredictionLogFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "segmentation_prediction_log_failures_total",
			Help: "Prediction log writes that failed and were suppressed.",
		},
	)
)

func init() {
	prometheus.MustRegister(PredictionsTotal, PredictionLogFailures)
}
