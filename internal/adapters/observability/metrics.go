package observability

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	APIRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "atlas", Name: "api_requests_total", Help: "Outbound agency API requests."},
		[]string{"endpoint", "method", "status"},
	)
	APILatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "atlas", Name: "api_request_duration_seconds",
			Help:    "Outbound agency API request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)
	FlowSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "atlas", Name: "flow_submissions_total", Help: "Form flow submissions."},
		[]string{"flow", "outcome"}, // outcome: ok|rejected|error
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "atlas", Name: "cache_events_total", Help: "Catalog cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
	StubRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "atlas", Name: "stub_requests_total", Help: "Stub API requests."},
		[]string{"route", "method", "status"},
	)
)

// Serve starts the standalone metrics listener when METRICS_ADDR is set.
func Serve() {
	addr := os.Getenv("METRICS_ADDR")
	if addr == "" {
		return // disabled
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(InitRegistry()))

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(APIRequests, APILatency, FlowSubmissions, CacheEvents, StubRequests)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveAPI(endpoint, method string, status int, dur time.Duration) {
	APIRequests.WithLabelValues(endpoint, method, strconv.Itoa(status)).Inc()
	APILatency.WithLabelValues(endpoint, method).Observe(dur.Seconds())
}

func ObserveFlow(flow, outcome string) {
	FlowSubmissions.WithLabelValues(flow, outcome).Inc()
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObserveStub(route, method string, status int) {
	StubRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
}
