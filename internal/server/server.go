package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	exports "call-insights/config"
	"call-insights/internal/analysis"
	"call-insights/internal/config"
	"call-insights/internal/db"
	"call-insights/internal/handlers"
	"call-insights/internal/metrics"
	"call-insights/internal/repositories"
	"call-insights/internal/routes"
	"call-insights/internal/services"
	"call-insights/internal/workers"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Server owns the HTTP server and the resources behind it
type Server struct {
	HTTP *http.Server

	pool    *workers.WorkerPool
	closers []func()
	logger  *log.Logger
}

// corsMiddleware adds CORS headers to all responses
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// NewServer wires repositories, cache, services, workers and routes from cfg.
// Unreachable backing stores disable the features that need them instead of failing startup;
// only an invalid analyzer tuning file is an error.
func NewServer(cfg config.Config) (*Server, error) {
	logger := log.New(os.Stdout, "[SERVER] ", log.LstdFlags)
	s := &Server{logger: logger}

	analyzerConfig, err := config.LoadAnalyzerConfig(cfg.AnalyzerConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load analyzer config: %w", err)
	}
	if cfg.AnalyzerConfigFile != "" {
		logger.Printf("✅ Analyzer tuning loaded from %s", cfg.AnalyzerConfigFile)
	}
	analyzer := analysis.NewAnalyzer(analyzerConfig.AnalyzerOptions())

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	checks := make(map[string]handlers.HealthCheck)

	evaluations := s.initializeEvaluations(cfg, checks)
	cache := s.initializeCache(cfg, registry, checks)

	h := &routes.Handlers{
		Health:   handlers.NewHealthHandler(checks, logger),
		Home:     handlers.HomeHandler,
		Analysis: handlers.NewAnalysisHandler(analyzer, logger),
		Metrics:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
	}

	if evaluations != nil {
		analyticsLogger := log.New(os.Stdout, "[ANALYTICS] ", log.LstdFlags)
		analytics := services.NewAnalyticsService(evaluations, cache, analyzer, analyzerConfig.ReportOptions(), m, analyticsLogger)

		s.pool = workers.NewWorkerPool()
		s.pool.AddWorker(newReportWarmer(cfg, analytics))

		h.Analytics = handlers.NewAnalyticsHandler(analytics, cfg.WarmerWindowDays, logger)
		h.Workers = handlers.NewWorkersHandler(s.pool, logger)

		logger.Println("✅ Analytics services initialized successfully")
	} else {
		logger.Println("⚠️  Analytics services disabled - no evaluation source available")
		logger.Println("   /api/v1/analytics/* will not be registered")
		logger.Println("   /api/v1/analysis/* endpoints will continue to work")
	}

	router := mux.NewRouter()
	routes.RegisterRoutes(router, h)

	// Add Swagger endpoints
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	))

	s.HTTP = &http.Server{
		Addr:              cfg.Addr,
		Handler:           corsMiddleware(router),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Start launches background workers and serves HTTP until Shutdown
func (s *Server) Start(ctx context.Context) error {
	if s.pool != nil {
		if err := s.pool.StartAll(ctx); err != nil {
			s.logger.Printf("⚠️  Failed to start background workers: %v", err)
		} else {
			s.logger.Printf("✅ %d background worker(s) started", s.pool.Count())
		}
	}

	s.logger.Printf("Listening on %s", s.HTTP.Addr)
	if err := s.HTTP.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, stops workers and releases connections
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.HTTP.Shutdown(ctx)

	if s.pool != nil {
		if stopErr := s.pool.StopAll(ctx); stopErr != nil {
			s.logger.Printf("⚠️  Failed to stop workers cleanly: %v", stopErr)
		}
	}

	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	return err
}

// initializeEvaluations connects to Postgres, falling back to an offline export
func (s *Server) initializeEvaluations(cfg config.Config, checks map[string]handlers.HealthCheck) repositories.EvaluationRepository {
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Println("Connecting to Postgres")
		database, err := db.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			s.logger.Printf("❌ Postgres connection failed: %v", err)
		} else {
			s.logger.Println("✅ Postgres connected successfully")
			s.closers = append(s.closers, database.Close)
			checks["postgres"] = database.Ping

			if cfg.RunMigrations {
				if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
					s.logger.Printf("⚠️  Migrations failed: %v", err)
				} else {
					s.logger.Println("✅ Migrations applied")
				}
			}
			return repositories.NewPostgresEvaluationRepository(database.Pool)
		}
	}

	if cfg.EvaluationsFile != "" {
		records, err := exports.LoadFromFile(cfg.EvaluationsFile)
		if err != nil {
			s.logger.Printf("❌ Failed to load evaluations from %s: %v", cfg.EvaluationsFile, err)
			return nil
		}
		s.logger.Printf("✅ Loaded %d evaluations from %s", len(records), cfg.EvaluationsFile)
		return repositories.NewMemoryEvaluationRepository(records)
	}

	return nil
}

// initializeCache connects to Redis, falling back to an in-process cache
func (s *Server) initializeCache(cfg config.Config, registry prometheus.Registerer, checks map[string]handlers.HealthCheck) repositories.ReportCache {
	if cfg.RedisEnabled {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Printf("Connecting to Redis: %s:%d (DB: %d)", cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.DB)
		redisClient, err := db.NewRedisClient(cfg.Redis)
		if err != nil {
			s.logger.Printf("❌ Failed to create Redis client: %v", err)
		} else if err := redisClient.Ping(ctx); err != nil {
			s.logger.Printf("❌ Redis connection failed: %v", err)
			s.logger.Println("   Hint: Ensure Redis is running (docker run -d -p 6379:6379 redis:7-alpine)")
			redisClient.Close()
		} else {
			s.logger.Println("✅ Redis connected successfully")
			s.closers = append(s.closers, func() { redisClient.Close() })
			checks["redis"] = redisClient.Ping
			return repositories.NewRedisReportCache(redisClient, cfg.ReportCacheTTL)
		}
	}

	s.logger.Printf("Using in-memory report cache (ttl: %v)", cfg.ReportCacheTTL)
	cache := repositories.NewMemoryReportCache(cfg.ReportCacheTTL)
	s.closers = append(s.closers, cache.Close)
	registry.MustRegister(metrics.NewCacheCollector(cache))
	return cache
}

func newReportWarmer(cfg config.Config, source workers.ReportSource) *workers.ReportWarmer {
	workerConfig := workers.DefaultWorkerConfig("report-warmer")
	workerConfig.Interval = cfg.WarmerInterval

	workerLogger := log.New(os.Stdout, "[WORKER] ", log.LstdFlags)
	return workers.NewReportWarmer(workers.ReportWarmerConfig{
		WorkerConfig: workerConfig,
		Source:       source,
		Clients:      cfg.WarmerClients,
		WindowDays:   cfg.WarmerWindowDays,
		Logger:       &workers.StdLogger{Printf: workerLogger.Printf},
	})
}
