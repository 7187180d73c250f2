package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveFindings(t *testing.T) {
	m := New()
	m.ObserveFindings("arrange_words", 2, 1)
	m.ObserveFindings("arrange_words", 0, 3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Findings.WithLabelValues("arrange_words", "error")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.Findings.WithLabelValues("arrange_words", "warning")))
}

func TestObserveAnswerAndLLM(t *testing.T) {
	m := New()
	m.ObserveAnswer("fill_blanks", true)
	m.ObserveAnswer("fill_blanks", false)
	m.ObserveAnswer("fill_blanks", true)
	m.ObserveLLM("exercise-gen", true, 120, 40)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Answers.WithLabelValues("fill_blanks", "correct")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LLMRequests.WithLabelValues("exercise-gen", "success")))
	assert.Equal(t, 120.0, testutil.ToFloat64(m.LLMTokens.WithLabelValues("input")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveFindings("x", 1, 1)
	m.ObserveAnswer("x", true)
	m.ObserveLLM("x", false, 1, 1)
}

func TestGinMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(m.GinMiddleware())
	r.GET("/api/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", m.Handler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/health", "200")))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "wordiz_http_requests_total"))
}
