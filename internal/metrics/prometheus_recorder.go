package metrics

import (
	"net/http"
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry        *prom.Registry
	composeDuration *prom.HistogramVec
	indexDuration   prom.Histogram
	indexRecords    prom.Gauge
	searchQueries   *prom.CounterVec
	treeExpansions  prom.Counter
	httpRequests    *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the docserve metrics on reg
// (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}

	pr.composeDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: "docserve",
		Name:      "compose_duration_seconds",
		Help:      "Duration of document composition requests",
		Buckets:   prom.DefBuckets,
	}, []string{"result"})
	pr.indexDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: "docserve",
		Name:      "index_build_duration_seconds",
		Help:      "Duration of full search index rebuilds",
		Buckets:   prom.DefBuckets,
	})
	pr.indexRecords = prom.NewGauge(prom.GaugeOpts{
		Namespace: "docserve",
		Name:      "index_records",
		Help:      "Number of records in the current search index",
	})
	pr.searchQueries = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "docserve",
		Name:      "search_queries_total",
		Help:      "Search queries by whether they matched anything",
	}, []string{"matched"})
	pr.treeExpansions = prom.NewCounter(prom.CounterOpts{
		Namespace: "docserve",
		Name:      "tree_expansions_total",
		Help:      "Lazy navigation tree expansion requests",
	})
	pr.httpRequests = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "docserve",
		Name:      "http_requests_total",
		Help:      "HTTP requests by status code",
	}, []string{"code"})

	reg.MustRegister(pr.composeDuration, pr.indexDuration, pr.indexRecords,
		pr.searchQueries, pr.treeExpansions, pr.httpRequests)
	return pr
}

// Handler returns the /metrics endpoint for this recorder's registry.
func (pr *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(pr.registry, promhttp.HandlerOpts{})
}

func (pr *PrometheusRecorder) ObserveComposeDuration(d time.Duration, success bool) {
	pr.composeDuration.WithLabelValues(resultLabel(success)).Observe(d.Seconds())
}

func (pr *PrometheusRecorder) ObserveIndexBuildDuration(d time.Duration) {
	pr.indexDuration.Observe(d.Seconds())
}

func (pr *PrometheusRecorder) SetIndexRecords(n int) {
	pr.indexRecords.Set(float64(n))
}

func (pr *PrometheusRecorder) IncSearchQuery(matched bool) {
	pr.searchQueries.WithLabelValues(strconv.FormatBool(matched)).Inc()
}

func (pr *PrometheusRecorder) IncTreeExpansion() {
	pr.treeExpansions.Inc()
}

func (pr *PrometheusRecorder) IncHTTPRequest(code int) {
	pr.httpRequests.WithLabelValues(strconv.Itoa(code)).Inc()
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
