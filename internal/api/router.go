package api

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/Harshitk-cp/gridmind/internal/api/handlers"
	mw "github.com/Harshitk-cp/gridmind/internal/api/middleware"
	"github.com/Harshitk-cp/gridmind/internal/buildconfig"
	"github.com/Harshitk-cp/gridmind/internal/domain"
	"github.com/Harshitk-cp/gridmind/internal/perception"
	"github.com/Harshitk-cp/gridmind/internal/service"
	"github.com/Harshitk-cp/gridmind/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Options configures NewApp. Zero values are not defaulted, except
// MaxGridCells which falls back to memorymap.MaxCells; cmd/server fills
// them from internal/config.
type Options struct {
	APIKey         string
	GridWidth      int
	GridHeight     int
	MaxGridCells   int
	RateLimitRPS   float64
	RateLimitBurst int
	Geometry       perception.Geometry
}

// App holds the router and services for lifecycle management.
type App struct {
	Router     *chi.Mux
	Agents     *service.AgentService
	Perception *service.PerceptionService
	Memory     *service.MemoryService

	metrics   *mw.MetricsCollector
	startTime time.Time
	cancel    context.CancelFunc
}

func NewApp(opts Options, logger *zap.Logger) *App {
	// Stores
	agentStore := store.NewAgentStore()
	gridStore := store.NewGridStore()

	// Services
	agentSvc := service.NewAgentService(agentStore, gridStore, service.GridLimits{
		DefaultWidth:  opts.GridWidth,
		DefaultHeight: opts.GridHeight,
		MaxCells:      opts.MaxGridCells,
	}, logger)
	perceptionSvc := service.NewPerceptionService(agentStore, gridStore, perception.NewUpdater(opts.Geometry), logger)
	memorySvc := service.NewMemoryService(gridStore, logger)

	// Handlers
	agentHandler := handlers.NewAgentHandler(agentSvc)
	perceptionHandler := handlers.NewPerceptionHandler(perceptionSvc)
	memoryHandler := handlers.NewMemoryHandler(memorySvc)

	ctx, cancel := context.WithCancel(context.Background())
	r := chi.NewRouter()

	app := &App{
		Router:     r,
		Agents:     agentSvc,
		Perception: perceptionSvc,
		Memory:     memorySvc,
		metrics:    mw.NewMetricsCollector(),
		startTime:  time.Now(),
		cancel:     cancel,
	}

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(app.metrics.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(ctx, opts.RateLimitRPS, opts.RateLimitBurst))

	// Health and metrics (no auth)
	r.Get("/health", healthHandler)
	r.Get("/metrics", app.metricsHandler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(opts.APIKey))

		r.Route("/agents", func(r chi.Router) {
			r.Post("/", agentHandler.Create)
			r.Get("/", agentHandler.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", agentHandler.GetByID)
				r.Post("/perceptions", perceptionHandler.Apply)
				r.Get("/tiles", memoryHandler.Tiles)
				r.Get("/tiles/{x}/{y}", memoryHandler.Tile)
				r.Get("/summary", memoryHandler.Summary)
				r.Get("/map", memoryHandler.Map)
				r.Delete("/memory", memoryHandler.Clear)
			})
		})
	})

	return app
}

// Close stops the background work started by NewApp.
func (app *App) Close() {
	app.cancel()
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)
		stats := app.Perception.Stats()

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.metrics.Requests(),
			"error_count":    app.metrics.Errors(),
			"cycles_applied": stats.Applied,
			"cycles_failed":  stats.Failed,
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb": float64(memStats.Alloc) / 1024 / 1024,
				"sys_mb":   float64(memStats.Sys) / 1024 / 1024,
				"num_gc":   memStats.NumGC,
			},
			"go_version": runtime.Version(),
			"build":      buildconfig.VersionInfo(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure stores satisfy interfaces at compile time.
var (
	_ domain.AgentStore = (*store.AgentStore)(nil)
	_ domain.GridStore  = (*store.GridStore)(nil)
)
