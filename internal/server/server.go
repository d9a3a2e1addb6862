package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/brisa-edu/brisa-client/internal/config"
	"github.com/brisa-edu/brisa-client/internal/mockapi"
)

type Server struct {
	cfg      *config.Config
	api      *mockapi.API
	log      *zap.Logger
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewServer(cfg *config.Config, api *mockapi.API, log *zap.Logger) *Server {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Server{
		cfg:      cfg,
		api:      api,
		log:      log,
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "brisa_mock",
			Name:      "http_requests_total",
			Help:      "Requests served by the mock backend",
		}, []string{"method", "route", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "brisa_mock",
			Name:      "http_request_duration_seconds",
			Help:      "Request latency of the mock backend",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Handler is the full router: the mock API under /api plus /metrics.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(s.instrument)

	r.Mount("/api", s.api.Routes())
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

func (s *Server) NewHTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.MockAddr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
}

// instrument counts and logs every request by its route pattern, so ids in
// the path do not explode the label set.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		s.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		s.duration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Duration("duration", elapsed),
		)
	})
}
