package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics stores application metrics in a private registry.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal      *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	RequestsInProgress prometheus.Gauge
	AnalysesTotal      *prometheus.CounterVec
	AnalysisDuration   *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	start := time.Now()
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "venture",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "venture",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		RequestsInProgress: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "venture",
			Name:      "http_requests_in_progress",
			Help:      "Requests currently being served.",
		}),
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "venture",
			Name:      "analyses_total",
			Help:      "Analysis runs by capability and outcome.",
		}, []string{"capability", "outcome"}),
		AnalysisDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "venture",
			Name:      "analysis_duration_seconds",
			Help:      "End-to-end analysis latency, fallback delay included.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"capability"}),
	}

	m.registry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.RequestsInProgress,
		m.AnalysesTotal,
		m.AnalysisDuration,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "venture",
			Name:      "uptime_seconds",
			Help:      "Seconds since the process started.",
		}, func() float64 { return time.Since(start).Seconds() }),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveAnalysis records one pipeline run.
func (m *Metrics) ObserveAnalysis(capability, outcome string, d time.Duration) {
	m.AnalysesTotal.WithLabelValues(capability, outcome).Inc()
	m.AnalysisDuration.WithLabelValues(capability).Observe(d.Seconds())
}

// Middleware tracks request metrics. Routes are labelled by their chi
// pattern so path parameters do not explode cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.RequestsInProgress.Inc()
		defer m.RequestsInProgress.Dec()

		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
