package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry and the collectors the app reports to.
// All methods are safe on a nil receiver so callers may run without metrics.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	Findings     *prometheus.CounterVec
	Answers      *prometheus.CounterVec
	LLMRequests  *prometheus.CounterVec
	LLMTokens    *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordiz_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wordiz_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15},
			},
			[]string{"method", "endpoint"},
		),
		Findings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordiz_validation_findings_total",
				Help: "Content validation findings by question kind and severity",
			},
			[]string{"kind", "severity"},
		),
		Answers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordiz_answers_total",
				Help: "Checked learner answers by question kind and result",
			},
			[]string{"kind", "result"},
		),
		LLMRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordiz_llm_requests_total",
				Help: "LLM requests by purpose and outcome",
			},
			[]string{"purpose", "outcome"},
		),
		LLMTokens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordiz_llm_tokens_total",
				Help: "LLM tokens consumed by direction",
			},
			[]string{"direction"},
		),
	}

	m.Registry.MustRegister(
		m.HTTPRequests, m.HTTPDuration, m.Findings, m.Answers, m.LLMRequests, m.LLMTokens,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveFindings counts blocking and cosmetic findings for one question.
func (m *Metrics) ObserveFindings(kind string, errors, warnings int) {
	if m == nil {
		return
	}
	if errors > 0 {
		m.Findings.WithLabelValues(kind, "error").Add(float64(errors))
	}
	if warnings > 0 {
		m.Findings.WithLabelValues(kind, "warning").Add(float64(warnings))
	}
}

// ObserveAnswer counts a checked answer.
func (m *Metrics) ObserveAnswer(kind string, correct bool) {
	if m == nil {
		return
	}
	result := "incorrect"
	if correct {
		result = "correct"
	}
	m.Answers.WithLabelValues(kind, result).Inc()
}

// ObserveLLM counts one provider call and its token usage.
func (m *Metrics) ObserveLLM(purpose string, ok bool, inputTokens, outputTokens int) {
	if m == nil {
		return
	}
	outcome := "error"
	if ok {
		outcome = "success"
	}
	m.LLMRequests.WithLabelValues(purpose, outcome).Inc()
	m.LLMTokens.WithLabelValues("input").Add(float64(inputTokens))
	m.LLMTokens.WithLabelValues("output").Add(float64(outputTokens))
}

// GinMiddleware records request counts and latencies per route.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.HTTPDuration.WithLabelValues(c.Request.Method, endpoint).
			Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
