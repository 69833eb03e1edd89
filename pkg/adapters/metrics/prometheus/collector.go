package prometheus

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector implements MetricsCollector using Prometheus
type Collector struct {
	requestsTotal     *prometheus.CounterVec
	predictionsTotal  prometheus.Counter
	predictionLatency prometheus.Histogram
	artifactLoadTime  prometheus.Histogram
	artifactInfo      *prometheus.GaugeVec
}

// NewCollector creates a new Prometheus metrics collector
func NewCollector() *Collector {
	return &Collector{
		requestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tagserve_http_requests_total",
				Help: "Total number of HTTP requests served",
			},
			[]string{"endpoint", "status"},
		),
		predictionsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "tagserve_predictions_total",
				Help: "Total number of predictions returned",
			},
		),
		predictionLatency: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tagserve_prediction_duration_seconds",
				Help:    "Prediction service call duration in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
			},
		),
		artifactLoadTime: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tagserve_artifact_load_duration_seconds",
				Help:    "Artifact bundle load duration in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
		),
		artifactInfo: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tagserve_artifact_info",
				Help: "Information about the loaded artifact bundle",
			},
			[]string{"run_id"},
		),
	}
}

// RecordRequest records one served HTTP request
func (c *Collector) RecordRequest(endpoint string, status int) {
	c.requestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
}

// RecordPredictions records a completed prediction service call
func (c *Collector) RecordPredictions(count int, duration time.Duration) {
	c.predictionsTotal.Add(float64(count))
	c.predictionLatency.Observe(duration.Seconds())
}

// RecordArtifactLoad records the startup artifact load
func (c *Collector) RecordArtifactLoad(runID string, duration time.Duration) {
	c.artifactLoadTime.Observe(duration.Seconds())
	c.artifactInfo.WithLabelValues(runID).Set(1)
}
