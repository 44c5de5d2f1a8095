package observability

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"route", "method"},
	)

	AIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_requests_total",
			Help: "Total number of AI requests by provider and operation",
		},
		[]string{"provider", "operation"},
	)
	AIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_request_duration_seconds",
			Help:    "AI request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"provider", "operation"},
	)
	// AIParseOutcomes tracks how each AI response resolved: parsed as-is,
	// repaired via brace extraction, replaced by the heuristic scorer, or
	// replaced by the fixed default feedback.
	AIParseOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_parse_outcomes_total",
			Help: "AI response parse outcomes by operation",
		},
		[]string{"operation", "outcome"},
	)

	AnswersSubmittedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "answers_submitted_total",
			Help: "Total number of interview answers submitted",
		},
	)
	// Answer outcome distributions
	AnswerRatingHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "answer_content_rating",
			Help:    "Distribution of content feedback ratings ([1,10])",
			Buckets: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		},
	)
	BehavioralScoreHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "answer_behavioral_score",
			Help:    "Distribution of overall behavioral scores ([1,10])",
			Buckets: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		},
	)
)

func InitMetrics() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(AIRequestsTotal)
	prometheus.MustRegister(AIRequestDuration)
	prometheus.MustRegister(AIParseOutcomes)
	prometheus.MustRegister(AnswersSubmittedTotal)
	prometheus.MustRegister(AnswerRatingHistogram)
	prometheus.MustRegister(BehavioralScoreHistogram)
}

// HTTPMetricsMiddleware records Prometheus metrics for each request.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		dur := time.Since(start).Seconds()
		// Route pattern may be unavailable outside chi router; guard nil
		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			route = r.URL.Path
		}
		method := r.Method
		status := ww.Status()
		HTTPRequestsTotal.WithLabelValues(route, method, http.StatusText(status)).Inc()
		HTTPRequestDuration.WithLabelValues(route, method).Observe(dur)
	})
}

// ObserveAIRequest records one AI call with its duration.
func ObserveAIRequest(provider, operation string, dur time.Duration) {
	AIRequestsTotal.WithLabelValues(provider, operation).Inc()
	AIRequestDuration.WithLabelValues(provider, operation).Observe(dur.Seconds())
}

// RecordParseOutcome counts how an AI response was resolved.
func RecordParseOutcome(operation, outcome string) {
	AIParseOutcomes.WithLabelValues(operation, outcome).Inc()
}
