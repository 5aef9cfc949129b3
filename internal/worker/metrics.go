package worker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tasksStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meal_server_worker_tasks_started_total",
			Help: "Total number of background generation tasks started.",
		},
		[]string{"task"},
	)
	tasksFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meal_server_worker_tasks_failed_total",
			Help: "Total number of background generation tasks that recorded an error on the draft.",
		},
		[]string{"task", "reason"},
	)
	taskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "meal_server_worker_task_duration_seconds",
			Help:    "Histogram of background task processing durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"task"},
	)
)

// MetricsIncrementTaskStarted counts one started background task.
func MetricsIncrementTaskStarted(task string) {
	tasksStarted.WithLabelValues(task).Inc()
}

// MetricsIncrementTaskFailed counts one background task that ended in a
// draft error, by failure reason.
func MetricsIncrementTaskFailed(task, reason string) {
	tasksFailed.WithLabelValues(task, reason).Inc()
}

// MetricsRecordTaskDuration records the total processing time of one task.
func MetricsRecordTaskDuration(task string, d time.Duration) {
	taskDuration.WithLabelValues(task).Observe(d.Seconds())
}
