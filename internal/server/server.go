// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/farmsense/herdhub/api"
	"github.com/farmsense/herdhub/api/middleware"
	"github.com/farmsense/herdhub/internal/analytics"
	"github.com/farmsense/herdhub/internal/behavior"
	"github.com/farmsense/herdhub/internal/config"
	"github.com/farmsense/herdhub/internal/database"
	"github.com/farmsense/herdhub/internal/geofence"
	"github.com/farmsense/herdhub/internal/herdservice"
	"github.com/farmsense/herdhub/internal/history"
	"github.com/farmsense/herdhub/internal/monitoring"
	"github.com/farmsense/herdhub/internal/repository"
	"github.com/farmsense/herdhub/internal/repository/postgres"
	redisrepo "github.com/farmsense/herdhub/internal/repository/redis"
	"github.com/gorilla/handlers"
	nuts "github.com/vaudience/go-nuts"
)

// Server represents our HTTP server
type Server struct {
	config      *config.Config
	srv         *http.Server
	herdservice *herdservice.HerdService
	monitoring  *monitoring.Service
	sweepStop   chan struct{}
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	return &Server{
		config:    cfg,
		sweepStop: make(chan struct{}),
	}
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Initialize services
	s.herdservice = initializeHerdService(s.config)
	s.monitoring = monitoring.NewService(monitoring.Config{
		PrometheusEndpoint: s.config.Monitoring.PrometheusEndpoint,
		LokiEndpoint:       s.config.Monitoring.LokiEndpoint,
	})

	if err := s.herdservice.Validate(); err != nil {
		return err
	}
	if err := s.herdservice.LoadGeofences(context.Background()); err != nil {
		nuts.L.Warnf("[Server] Failed to load stored geofences: %v", err)
	}

	// Set up cleanup event handlers
	s.setupCleanupHandlers()

	router := api.NewRouter(s.herdservice,
		middleware.TokenConfig{APIToken: s.config.Auth.APIToken},
		s.handleHealth())

	cors := handlers.CORS(
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)

	s.srv = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port),
		Handler:      handlers.RecoveryHandler()(cors(handlers.CombinedLoggingHandler(os.Stdout, router))),
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
	}

	// Periodic behavior sweep; the tracking core itself is cadence-agnostic
	go s.runBehaviorSweeps()

	// Start server
	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	return s.waitForShutdown()
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")
	close(s.sweepStop)

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

// runBehaviorSweeps invokes the behavior classification for all tracked
// animals on the configured interval.
func (s *Server) runBehaviorSweeps() {
	ticker := time.NewTicker(s.config.Tracking.BehaviorSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			emitted := s.herdservice.RunBehaviorSweep(context.Background())
			if emitted > 0 {
				s.monitoring.RecordEvent("behavior_alerts", map[string]string{
					"count": fmt.Sprintf("%d", emitted),
				})
			}
		case <-s.sweepStop:
			return
		}
	}
}

// handleHealth returns a simple health check handler
func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","version":"` + nuts.GetVersion() + `"}`))
	}
}

func (s *Server) setupCleanupHandlers() {
	// Handle animal retirement events
	s.herdservice.Cleanup.OnCleanup("animal.deleted", func(id string) {
		nuts.L.Infof("[Cleanup] Animal %s and all associated data deleted", id)
		s.monitoring.RecordEvent("animal_retirement", map[string]string{
			"animal_id": id,
		})
	})

	// Handle history purge events
	s.herdservice.Cleanup.OnCleanup("history.deleted", func(id string) {
		nuts.L.Infof("[Cleanup] Location history for animal %s deleted", id)
		s.monitoring.RecordEvent("history_deletion", map[string]string{
			"animal_id": id,
		})
	})

	// Handle alert purge events
	s.herdservice.Cleanup.OnCleanup("alerts.deleted", func(id string) {
		nuts.L.Infof("[Cleanup] All alerts for animal %s deleted", id)
		s.monitoring.RecordEvent("alerts_deletion", map[string]string{
			"animal_id": id,
		})
	})
}

// initializeHerdService creates and configures the herd service
func initializeHerdService(cfg *config.Config) *herdservice.HerdService {
	// Initialize database connections
	appDB := initAppDB(cfg.Database.AppDB)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	redisClient, err := database.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to connect to Redis: %v", err)
	}

	// Tracking core
	retention := time.Duration(cfg.Tracking.RetentionWindowDays) * 24 * time.Hour
	historyStore := history.NewStore(retention)
	registry := geofence.NewRegistry()
	memberships := redisrepo.NewMembershipStore(redisClient)
	engine := analytics.NewEngine(historyStore, cfg.Tracking.HotspotGridCellDegrees, cfg.Tracking.HotspotTopK)
	detector := behavior.NewDetector(behavior.Thresholds{
		StationarySpeedMps:      cfg.Tracking.StationarySpeedThresholdMps,
		ExcessiveSpeedMps:       cfg.Tracking.ExcessiveSpeedThresholdMps,
		MinSamplesForStationary: cfg.Tracking.MinSamplesForStationaryAlert,
	})

	// Repositories and sinks
	animals := postgres.NewAnimalRepository(appDB)
	geofences := postgres.NewGeofenceRepository(appDB)
	alerts := postgres.NewAlertRepository(appDB)
	publisher := redisrepo.NewAlertPublisher(redisClient)

	return herdservice.New(herdservice.Deps{
		History:            historyStore,
		Registry:           registry,
		Memberships:        memberships,
		Analytics:          engine,
		Behavior:           detector,
		BehaviorWindowDays: cfg.Tracking.BehaviorWindowDays,
		Animals:            animals,
		Geofences:          geofences,
		Alerts:             alerts,
		Sinks:              []repository.AlertSink{publisher},
	})
}

func initAppDB(cfg config.PostgresConfig) database.DB {
	wrappedDB, err := database.NewPostgresDB(cfg)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to connect to AppDB: %v", err)
	}

	// Set up connection timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := wrappedDB.Ping(ctx); err != nil {
		nuts.L.Fatalf("[Server] Failed to ping database: %v", err)
	}
	return wrappedDB
}
