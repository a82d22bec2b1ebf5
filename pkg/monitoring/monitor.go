package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"method", "endpoint"},
	)

	QuestionsAdded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lms_questions_added_total",
			Help: "Questions committed to an authoring session, by question type",
		},
		[]string{"type"},
	)

	AssessmentsSaved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lms_assessments_saved_total",
			Help: "Assessment saves, by resulting status",
		},
		[]string{"status"},
	)

	PreviewTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lms_preview_transitions_total",
			Help: "Learner preview state transitions, by target state",
		},
		[]string{"state"},
	)

	SubmissionsScored = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lms_submissions_scored_total",
			Help: "Instructor scoring actions applied to submissions",
		},
	)

	AttendanceMarked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lms_attendance_marked_total",
			Help: "Attendance records written, by status",
		},
		[]string{"status"},
	)
)

var registerOnce sync.Once

// Init 注册全部指标，重复调用是安全的
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			QuestionsAdded,
			AssessmentsSaved,
			PreviewTransitions,
			SubmissionsScored,
			AttendanceMarked,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
