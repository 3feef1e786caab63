// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	ScoreCalculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobseeker_score_calculations_total",
			Help: "Score calculations by operation and resulting tier",
		},
		[]string{"operation", "tier"},
	)

	ScoreValue = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobseeker_score_value",
			Help:    "Distribution of calculated total scores",
			Buckets: []float64{20, 40, 60, 75, 85, 100},
		},
		[]string{"operation"},
	)

	EligibilityDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobseeker_eligibility_decisions_total",
			Help: "Eligibility decisions by outcome and score source",
		},
		[]string{"outcome", "source"},
	)

	CollaboratorUnavailable = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobseeker_collaborator_unavailable_total",
			Help: "Lookups that fell back to zero because a collaborator source was unavailable",
		},
		[]string{"source"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobseeker_score_notifications_total",
			Help: "Score change notifications by channel and status",
		},
		[]string{"channel", "status"},
	)
)

// ObserveJob records the outcome of one worker job. errorCode is empty on success.
func ObserveJob(taskType string, seconds float64, errorCode string) {
	WorkerJobDuration.WithLabelValues(taskType).Observe(seconds)
	if errorCode == "" {
		WorkerJobsCompleted.WithLabelValues(taskType).Inc()
		return
	}
	WorkerJobsFailed.WithLabelValues(taskType, errorCode).Inc()
}

// ObserveScore records one produced score.
func ObserveScore(operation, tier string, total float64) {
	ScoreCalculations.WithLabelValues(operation, tier).Inc()
	ScoreValue.WithLabelValues(operation).Observe(total)
}
