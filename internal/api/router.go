package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pitchproc/pitchproc/internal/api/handlers"
	mw "github.com/pitchproc/pitchproc/internal/api/middleware"
	"github.com/pitchproc/pitchproc/internal/config"
	"github.com/pitchproc/pitchproc/internal/policy"
	"github.com/pitchproc/pitchproc/internal/service"
	"github.com/pitchproc/pitchproc/internal/store"
	"go.uber.org/zap"
)

// App holds the router and request metrics for lifecycle management.
type App struct {
	Router       *chi.Mux
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

func NewApp(db *pgxpool.Pool, logger *zap.Logger) *App {
	// Stores
	matchStore := store.NewMatchStore(db)
	eventStore := store.NewEventStore(db)
	verdictStore := store.NewVerdictStore(db)
	possessionStore := store.NewPossessionStore(db)

	// Services
	matchSvc := service.NewMatchService(matchStore, eventStore, verdictStore, possessionStore, policy.DefaultConfig(), logger)
	propertySvc := service.NewPropertyService(logger)

	// Handlers
	matchHandler := handlers.NewMatchHandler(matchSvc)
	propertyHandler := handlers.NewPropertyHandler(propertySvc)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		startTime: time.Now(),
	}

	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	r.Get("/health", healthHandler(db))
	r.Get("/metrics", app.metricsHandler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/roles/{role}", func(r chi.Router) {
			r.Get("/properties", propertyHandler.Declarations)
		})

		r.Post("/evaluate", propertyHandler.Evaluate)

		r.Route("/matches", func(r chi.Router) {
			r.Post("/", matchHandler.Simulate)
			r.Get("/", matchHandler.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", matchHandler.GetByID)
				r.Get("/events", matchHandler.Events)
				r.Get("/verdicts", matchHandler.Verdicts)
				r.Get("/stats", matchHandler.Stats)
				r.Get("/possessions/{case}/similar", matchHandler.SimilarPossessions)
			})
		})
	})

	return app
}

// NewRouter returns just the chi.Mux.
func NewRouter(db *pgxpool.Pool, logger *zap.Logger) *chi.Mux {
	return NewApp(db, logger).Router
}

func healthHandler(db *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}
