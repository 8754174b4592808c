package observability

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	promOnce  sync.Once
	promHooks *PrometheusHooks
)

// PrometheusHooks implements every hook interface on top of Prometheus
// collectors registered in the default registry.
//
// Metrics:
//   - toldot_stage_duration_seconds{stage,status}
//   - toldot_stage_total{stage,status}
//   - toldot_dataset_people / toldot_dataset_periods
//   - toldot_filter_ratio
//   - toldot_cache_requests_total{stage,result}
//   - toldot_cache_bytes_written_total{stage}
//   - toldot_http_requests_total{host,code}
//   - toldot_http_request_duration_seconds{host}
type PrometheusHooks struct {
	StageDuration *prometheus.HistogramVec
	StageTotal    *prometheus.CounterVec
	People        prometheus.Gauge
	Periods       prometheus.Gauge
	FilterRatio   prometheus.Gauge
	CacheRequests *prometheus.CounterVec
	CacheBytes    *prometheus.CounterVec
	HTTPRequests  *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
}

// NewPrometheusHooks returns the process-wide collectors, registering them
// on first use.
func NewPrometheusHooks() *PrometheusHooks {
	promOnce.Do(func() {
		promHooks = &PrometheusHooks{
			StageDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "toldot_stage_duration_seconds",
				Help:    "Duration of pipeline stages in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
			}, []string{"stage", "status"}),
			StageTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "toldot_stage_total",
				Help: "Pipeline stage executions",
			}, []string{"stage", "status"}),
			People: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "toldot_dataset_people",
				Help: "Persons in the most recently loaded dataset",
			}),
			Periods: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "toldot_dataset_periods",
				Help: "Periods in the most recently loaded dataset",
			}),
			FilterRatio: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "toldot_filter_ratio",
				Help: "Share of persons kept by the last filter",
			}),
			CacheRequests: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "toldot_cache_requests_total",
				Help: "Cache lookups by stage and result",
			}, []string{"stage", "result"}),
			CacheBytes: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "toldot_cache_bytes_written_total",
				Help: "Bytes written to the cache",
			}, []string{"stage"}),
			HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "toldot_http_requests_total",
				Help: "Upstream HTTP requests by host and status code",
			}, []string{"host", "code"}),
			HTTPDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "toldot_http_request_duration_seconds",
				Help:    "Upstream HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			}, []string{"host"}),
		}
	})
	return promHooks
}

// Register installs h for all hook categories.
func (h *PrometheusHooks) Register() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *PrometheusHooks) observe(stage string, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	h.StageDuration.WithLabelValues(stage, status).Observe(d.Seconds())
	h.StageTotal.WithLabelValues(stage, status).Inc()
}

func (h *PrometheusHooks) OnLoadStart(context.Context, string) {}

func (h *PrometheusHooks) OnLoadComplete(_ context.Context, _ string, people, periods int, d time.Duration, err error) {
	h.observe("load", d, err)
	if err == nil {
		h.People.Set(float64(people))
		h.Periods.Set(float64(periods))
	}
}

func (h *PrometheusHooks) OnFilter(_ context.Context, before, after int) {
	if before > 0 {
		h.FilterRatio.Set(float64(after) / float64(before))
	}
}

func (h *PrometheusHooks) OnLayoutStart(context.Context, int) {}

func (h *PrometheusHooks) OnLayoutComplete(_ context.Context, _ int, d time.Duration, err error) {
	h.observe("layout", d, err)
}

func (h *PrometheusHooks) OnRenderStart(context.Context, []string) {}

func (h *PrometheusHooks) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	h.observe("render", d, err)
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.CacheRequests.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.CacheRequests.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.CacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (h *PrometheusHooks) OnRequest(context.Context, string, string, string) {}

func (h *PrometheusHooks) OnResponse(_ context.Context, _, host, _ string, code int, d time.Duration) {
	h.HTTPRequests.WithLabelValues(host, strconv.Itoa(code)).Inc()
	h.HTTPDuration.WithLabelValues(host).Observe(d.Seconds())
}

func (h *PrometheusHooks) OnError(_ context.Context, _, host, _ string, _ error) {
	h.HTTPRequests.WithLabelValues(host, "error").Inc()
}

var (
	_ PipelineHooks = (*PrometheusHooks)(nil)
	_ CacheHooks    = (*PrometheusHooks)(nil)
	_ HTTPHooks     = (*PrometheusHooks)(nil)
)
