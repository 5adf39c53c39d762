package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"acme-ice-cream/flavors/internal/api"
	"acme-ice-cream/flavors/internal/config"
	"acme-ice-cream/flavors/internal/logging"
	"acme-ice-cream/flavors/internal/metrics"
	"acme-ice-cream/flavors/internal/routes"

	"golang.org/x/sync/errgroup"
)

// @title Acme Ice Cream API
// @version 1.0
// @description CRUD service for ice-cream flavors.
// @host localhost:3000
// @BasePath /
func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Flavors API starting up",
		"environment", cfg.AppEnv,
		"db_client", cfg.DBClient,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metricsReg := metrics.NewMetricsRegistry()

	// No traffic is accepted unless the database is reachable
	deps, err := api.InitDependencies(ctx, cfg, metricsReg)
	if err != nil {
		logging.Fatal("Failed to connect to database", "error", err.Error())
	}
	defer deps.Close()

	if cfg.ResetOnStart {
		logging.Warn("RESET_ON_START is enabled: dropping and reseeding the flavor table")
	}
	if err := deps.Services.Flavors.Init(ctx, cfg.ResetOnStart); err != nil {
		logging.Fatal("Failed to initialize schema", "error", err.Error())
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           routes.RegisterRoutes(deps),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.Info("Server starting", "port", cfg.Port, "environment", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logging.Info("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logging.Error("Server stopped with error", "error", err.Error())
		os.Exit(1)
	}
	logging.Info("Server stopped")
}
