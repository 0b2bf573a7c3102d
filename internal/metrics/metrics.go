// Package metrics exposes the engine's Prometheus instrumentation.
package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// AnalysesTotal counts finished analyses by decision bucket.
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "assurdoc_analyses_total",
		Help: "Finished analyses by avis.",
	}, []string{"avis"})

	// AnalysisDuration observes the wall time of one full demande analysis.
	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "assurdoc_analysis_duration_seconds",
		Help:    "Duration of a full demande analysis.",
		Buckets: prometheus.DefBuckets,
	})

	// QueueTasksTotal counts queue task outcomes.
	QueueTasksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "assurdoc_queue_tasks_total",
		Help: "Queue tasks by terminal status.",
	}, []string{"status"})

	// CacheRequestsTotal counts analysis cache lookups.
	CacheRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "assurdoc_cache_requests_total",
		Help: "Analysis cache lookups by result.",
	}, []string{"result"})

	// NotificationsTotal counts insurer notification deliveries.
	NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "assurdoc_insurer_notifications_total",
		Help: "Insurer notifications by delivery status.",
	}, []string{"status"})

	// FraudSignalsTotal counts fraud signals emitted by finished analyses.
	FraudSignalsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "assurdoc_fraud_signals_total",
		Help: "Fraud signals emitted by finished analyses.",
	})
)

// Handler returns the Prometheus scrape endpoint as a Gin handler.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
