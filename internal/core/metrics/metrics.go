package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultNamespace 默认指标命名空间
const DefaultNamespace = "larek"

// 请求结果标签
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
	OutcomeCache = "cache"
)

// Metrics 进程内指标集合
type Metrics struct {
	registry *prometheus.Registry

	eventsPublished *prometheus.CounterVec
	handlerPanics   *prometheus.CounterVec
	apiRequests     *prometheus.CounterVec
	apiDuration     *prometheus.HistogramVec
}

// New 创建指标集合并注册到新的 Registry
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		eventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "eventbus",
			Name:      "events_published_total",
			Help:      "Number of events published on the bus.",
		}, []string{"event"}),
		handlerPanics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "eventbus",
			Name:      "handler_panics_total",
			Help:      "Number of event handlers that panicked.",
		}, []string{"event"}),
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Number of shop API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		apiDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Shop API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}

	m.registry.MustRegister(
		m.eventsPublished,
		m.handlerPanics,
		m.apiRequests,
		m.apiDuration,
		collectors.NewGoCollector(),
	)
	return m
}

// Registry 返回底层 Registry
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler 返回 /metrics 的 HTTP 处理器
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// EventPublished 记录一次事件发布
func (m *Metrics) EventPublished(event string) {
	if m == nil {
		return
	}
	m.eventsPublished.WithLabelValues(event).Inc()
}

// HandlerPanic 记录一次处理器 panic
func (m *Metrics) HandlerPanic(event string) {
	if m == nil {
		return
	}
	m.handlerPanics.WithLabelValues(event).Inc()
}

// ObserveRequest 记录一次接口请求
//
// 命中缓存的请求只计数，不记录耗时。
func (m *Metrics) ObserveRequest(endpoint, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(endpoint, outcome).Inc()
	if outcome != OutcomeCache {
		m.apiDuration.WithLabelValues(endpoint).Observe(d.Seconds())
	}
}
