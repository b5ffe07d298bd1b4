/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the card cycle engine server.

STARTUP SEQUENCE:
  1. Load configuration from environment (.env supported)
  2. Build logger
  3. Open the SQLite holiday store (optional)
  4. Build handler, load the initial holiday snapshot
  5. Register the periodic holiday refresh job
  6. Start the HTTP server with graceful shutdown

CONFIGURATION (environment):
  PORT                  HTTP server port (default: 8080)
  DATABASE_PATH         SQLite holiday store path; empty disables it
  HOLIDAY_FILE          country,date CSV holiday file; empty disables it
  COUNTRY_MODE          "table" (generic) or "turkiye" (fixed country)
  LOG_LEVEL             debug | info | warn | error
  HOLIDAY_REFRESH_SPEC  cron spec for reloading the holiday snapshot

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, wait for active
  requests (30s), stop the cron runner, close the store.
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
	_ "time/tzdata"

	"github.com/robfig/cron/v3"

	"github.com/warp/cycle-engine/api"
	"github.com/warp/cycle-engine/config"
	"github.com/warp/cycle-engine/logger"
	"github.com/warp/cycle-engine/store/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.Pretty})
	log.Info().Str("mode", cfg.CountryMode).Msg("Starting card cycle engine")

	// Holiday store (optional)
	var store *sqlite.Store
	if cfg.DatabasePath != "" {
		store, err = sqlite.New(cfg.DatabasePath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open holiday store")
		}
		defer store.Close()
	}

	// Handler + initial holiday snapshot
	handler := api.NewHandler(store, log, api.ResolverMode(cfg.CountryMode), cfg.HolidayFile)
	if err := handler.ReloadHolidays(context.Background()); err != nil {
		log.Warn().Err(err).Msg("Initial holiday load failed")
	}

	// Periodic holiday refresh, keeping the load off the request path.
	runner := cron.New()
	if _, err := runner.AddFunc(cfg.RefreshSpec, func() {
		if err := handler.ReloadHolidays(context.Background()); err != nil {
			log.Error().Err(err).Msg("Holiday refresh failed")
		}
	}); err != nil {
		log.Fatal().Err(err).Str("spec", cfg.RefreshSpec).Msg("Invalid holiday refresh spec")
	}
	runner.Start()
	defer runner.Stop()

	// HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.NewRouter(handler),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Msg("Server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown")
	}

	log.Info().Msg("Server stopped")
}
