// Package prometheus instruments the API server and upstream fetches with
// Prometheus metrics.
package prometheus

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/fwojciec/normdoc"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "normdoc"

// Metrics holds the collectors for API requests and upstream fetches.
type Metrics struct {
	// API request metrics
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	// Upstream fetch metrics
	FetchesTotal  *prometheus.CounterVec
	FetchDuration prometheus.Histogram
	FetchBytes    prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "http_requests_total",
				Help:      "Total number of API requests",
			},
			[]string{"route", "code"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of API requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "http_requests_in_flight",
				Help:      "Number of API requests currently being processed",
			},
		),
		FetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "upstream_fetches_total",
				Help:      "Total number of upstream page fetches",
			},
			[]string{"status"},
		),
		FetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "upstream_fetch_duration_seconds",
				Help:      "Duration of upstream page fetches in seconds, retries included",
				Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
		),
		FetchBytes: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "upstream_fetch_bytes_total",
				Help:      "Total bytes of decoded upstream page bodies",
			},
		),
	}
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Middleware records request count, duration and in-flight requests.
// Requests are labeled by the ServeMux pattern that matched them, so next
// must be the mux itself or pass the request through unchanged.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.RequestsInFlight.Inc()
		defer m.RequestsInFlight.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.RequestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		m.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// Ensure InstrumentedFetcher implements normdoc.Fetcher at compile time.
var _ normdoc.Fetcher = (*InstrumentedFetcher)(nil)

// InstrumentedFetcher wraps a Fetcher and records every call.
type InstrumentedFetcher struct {
	next    normdoc.Fetcher
	metrics *Metrics
}

// NewInstrumentedFetcher creates a new InstrumentedFetcher.
func NewInstrumentedFetcher(next normdoc.Fetcher, m *Metrics) *InstrumentedFetcher {
	return &InstrumentedFetcher{next: next, metrics: m}
}

// Fetch delegates to the wrapped fetcher.
func (f *InstrumentedFetcher) Fetch(ctx context.Context, url string) (string, error) {
	start := time.Now()
	html, err := f.next.Fetch(ctx, url)
	f.metrics.FetchDuration.Observe(time.Since(start).Seconds())

	status := "success"
	if err != nil {
		status = "error"
	}
	f.metrics.FetchesTotal.WithLabelValues(status).Inc()
	f.metrics.FetchBytes.Add(float64(len(html)))

	return html, err
}

// Close delegates to the wrapped fetcher.
func (f *InstrumentedFetcher) Close() error {
	return f.next.Close()
}
