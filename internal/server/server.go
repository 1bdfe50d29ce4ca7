// Package server exposes the audit engine over HTTP: a JSON API for
// analysis, chat and history, plus the rendered dashboard views.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/auditpro/auditpro/internal/config"
	"github.com/auditpro/auditpro/internal/metrics"
	"github.com/auditpro/auditpro/internal/models"
	"github.com/auditpro/auditpro/pkg/analyzer"
	"github.com/auditpro/auditpro/pkg/history"
	"github.com/auditpro/auditpro/pkg/reporter"
)

// Analyzer runs one audit request end to end.
type Analyzer interface {
	Analyze(ctx context.Context, req analyzer.Request) (*models.AuditResult, error)
}

// Chatter answers a follow-up question grounded in a completed audit.
type Chatter interface {
	Ask(ctx context.Context, hist []models.ChatMessage, newMessage string, result *models.AuditResult) (string, error)
}

// Server wires the HTTP surface over the audit engine. Completed results
// are cached in memory, bounded FIFO; the history store persists only the
// condensed summaries.
type Server struct {
	cfg      config.ServerConfig
	log      *zap.Logger
	analyzer Analyzer
	chat     Chatter
	history  *history.Store
	reporter *reporter.Reporter
	limiter  *rate.Limiter

	mu      sync.Mutex
	results map[string]*models.AuditResult
	order   []string // insertion order, oldest first
}

// New constructs a Server. chat may be nil when no chat backend is
// configured; the chat endpoint then returns the fallback reply.
func New(cfg config.ServerConfig, log *zap.Logger, a Analyzer, c Chatter, hist *history.Store) *Server {
	perMinute := cfg.AnalyzePerMinute
	if perMinute <= 0 {
		perMinute = 6
	}
	if cfg.MaxCachedResults <= 0 {
		cfg.MaxCachedResults = 50
	}
	return &Server{
		cfg:      cfg,
		log:      log,
		analyzer: a,
		chat:     c,
		history:  hist,
		reporter: reporter.New(),
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
		results:  make(map[string]*models.AuditResult),
	}
}

// Router builds the route table.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/analyze", s.handleAnalyze).Methods("POST")
	api.HandleFunc("/chat", s.handleChat).Methods("POST")
	api.HandleFunc("/history", s.handleHistoryList).Methods("GET")
	api.HandleFunc("/history", s.handleHistoryClear).Methods("DELETE")
	api.HandleFunc("/results/{id}", s.handleResultGet).Methods("GET")
	api.HandleFunc("/results/{id}/export", s.handleExport).Methods("GET")

	r.HandleFunc("/", s.handleLanding).Methods("GET")
	r.HandleFunc("/dashboard/{id}", s.handleDashboard).Methods("GET")

	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(r)
}

// Start runs the server until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:      s.Router(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// storeResult caches a completed result, evicting the oldest entries when
// the cache is full.
func (s *Server) storeResult(res *models.AuditResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.results[res.ID]; !ok {
		s.order = append(s.order, res.ID)
	}
	s.results[res.ID] = res
	for len(s.order) > s.cfg.MaxCachedResults {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.results, oldest)
	}
}

func (s *Server) getResult(id string) (*models.AuditResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.results[id]
	return res, ok
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		metrics.HTTPRequestsTotal.WithLabelValues(route, fmt.Sprintf("%d", rec.status)).Inc()
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Error("panic recovered", zap.Any("panic", rec), zap.String("path", r.URL.Path))
				http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
