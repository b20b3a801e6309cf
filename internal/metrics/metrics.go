package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics держит собственный реестр, чтобы несколько экземпляров
// (например, в тестах) не конфликтовали в глобальном реестре.
// Все методы безопасны для nil-получателя.
type Metrics struct {
	registry *prometheus.Registry

	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	httpRequests     *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "newsdesk",
			Name:      "upstream_requests_total",
			Help:      "Upstream API calls by upstream and outcome.",
		}, []string{"upstream", "outcome"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "newsdesk",
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of upstream API calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"upstream"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "newsdesk",
			Name:      "http_requests_total",
			Help:      "Served HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		m.upstreamRequests,
		m.upstreamDuration,
		m.httpRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveUpstream учитывает один запрос к внешнему API.
func (m *Metrics) ObserveUpstream(upstream, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(upstream, outcome).Inc()
	m.upstreamDuration.WithLabelValues(upstream).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveHTTP(method, route string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func (m *Metrics) UpstreamCount(upstream, outcome string) prometheus.Counter {
	return m.upstreamRequests.WithLabelValues(upstream, outcome)
}

func (m *Metrics) HTTPCount(method, route string, status int) prometheus.Counter {
	return m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status))
}

// Handler отдаёт метрики в формате Prometheus.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
