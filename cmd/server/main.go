/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the panchang calendar server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (.env + environment)
  2. Set up structured logging
  3. Open SQLite festival catalog and seed the built-in set
  4. Select the ephemeris source (local solver or remote service)
  5. Build the calendar facade and HTTP router
  6. Start server with graceful shutdown

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

ENVIRONMENT:
  PORT, ENV, DATABASE_PATH, LATITUDE, LONGITUDE, TIMEZONE, REGION,
  EPHEMERIS, EPHEMERIS_URL, EPHEMERIS_TIMEOUT, LOG_LEVEL, LOG_FORMAT.
  See config/config.go for defaults.

SEE ALSO:
  - api/server.go: Router configuration
  - calendar/facade.go: The operations the API fronts
  - store/sqlite/sqlite.go: Festival catalog
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/supernova/panchang-engine/api"
	"github.com/supernova/panchang-engine/calendar"
	"github.com/supernova/panchang-engine/config"
	"github.com/supernova/panchang-engine/ephemeris"
	"github.com/supernova/panchang-engine/logger"
	"github.com/supernova/panchang-engine/store/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log := logger.Setup(cfg)

	// Festival catalog
	store, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		log.Error("failed to open festival catalog", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.SeedDefaults(context.Background()); err != nil {
		log.Error("failed to seed festival defaults", "error", err)
		os.Exit(1)
	}

	// Ephemeris source
	var (
		longitudes ephemeris.LongitudeProvider
		riseSet    ephemeris.RiseSetProvider
	)
	switch cfg.Ephemeris {
	case config.EphemerisRemote:
		remote := ephemeris.NewRemote(cfg.EphemerisURL, &http.Client{Timeout: cfg.EphemerisTimeout})
		longitudes, riseSet = remote, remote
		log.Info("using remote ephemeris", "url", cfg.EphemerisURL, "timeout", cfg.EphemerisTimeout)
	default:
		local := &ephemeris.Local{}
		longitudes, riseSet = local, local
		log.Info("using local ephemeris")
	}

	cal := calendar.NewService(calendar.Deps{
		Longitudes: longitudes,
		RiseSet:    riseSet,
		Festivals:  store,
		Latitude:   cfg.Latitude,
		Longitude:  cfg.Longitude,
		Location:   cfg.Location(),
	})

	handler := api.NewHandler(cal, store, cfg.Region, log)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting",
			"port", cfg.Port,
			"env", cfg.Env,
			"timezone", cfg.Timezone,
			"region", cfg.Region,
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
