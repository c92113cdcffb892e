package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	DetectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bhashik_detections_total",
		Help: "Total language detections by resolution method",
	}, []string{"method"})

	DetectionsFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bhashik_detections_failed_total",
		Help: "Total detection requests that were rejected or errored",
	})

	DetectionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "bhashik_detection_seconds",
		Help:    "Histogram of detection durations in seconds",
		Buckets: prometheus.DefBuckets,
	})

	AnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "bhashik_analysis_seconds",
		Help:    "Histogram of full analysis durations in seconds",
		Buckets: prometheus.DefBuckets,
	})

	CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bhashik_cache_hits_total",
		Help: "Total analysis cache hits",
	})

	CacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bhashik_cache_misses_total",
		Help: "Total analysis cache misses",
	})

	FeedbackReceived = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bhashik_feedback_received_total",
		Help: "Total feedback submissions",
	})
)

func RegisterMetrics() {
	prometheus.MustRegister(DetectionsTotal)
	prometheus.MustRegister(DetectionsFailed)
	prometheus.MustRegister(DetectionDuration)
	prometheus.MustRegister(AnalysisDuration)
	prometheus.MustRegister(CacheHits)
	prometheus.MustRegister(CacheMisses)
	prometheus.MustRegister(FeedbackReceived)
}
