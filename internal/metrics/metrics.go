package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kanso_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	CheckInsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kanso_check_ins_total",
			Help: "Total number of check-ins by resulting completion status",
		},
		[]string{"status"},
	)

	MilestonesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kanso_milestones_total",
			Help: "Total number of milestones reported to users",
		},
		[]string{"milestone"},
	)

	StreakJobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kanso_streak_jobs_total",
			Help: "Streak recalculation jobs by outcome",
		},
		[]string{"result"}, // result: updated, unchanged, dropped, failed
	)

	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kanso_cache_requests_total",
			Help: "Redis cache lookups by cache name and outcome",
		},
		[]string{"cache", "result"}, // result: hit, miss, error
	)
)

func RecordCheckIn(status string) {
	CheckInsTotal.WithLabelValues(status).Inc()
}

func RecordMilestone(key string) {
	MilestonesTotal.WithLabelValues(key).Inc()
}

func RecordStreakJob(result string) {
	StreakJobsTotal.WithLabelValues(result).Inc()
}

func RecordCache(cache, result string) {
	CacheRequestsTotal.WithLabelValues(cache, result).Inc()
}
