package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"acme-ice-cream/flavors/internal/api"
	"acme-ice-cream/flavors/internal/config"
	"acme-ice-cream/flavors/internal/logging"
	"acme-ice-cream/flavors/internal/metrics"
)

// Drops, recreates and reseeds the flavor table without starting the
// server. Meant for deployments running with RESET_ON_START=false.
func main() {
	keep := flag.Bool("keep", false, "only create the table when missing, keep existing rows")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logging.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deps, err := api.InitDependencies(ctx, cfg, metrics.NewMetricsRegistry())
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer deps.Close()

	if err := deps.Services.Flavors.Init(ctx, !*keep); err != nil {
		log.Fatalf("reset: %v", err)
	}

	flavors, err := deps.Services.Flavors.ListFlavors(ctx)
	if err != nil {
		log.Fatalf("list: %v", err)
	}
	fmt.Printf("flavor table ready, %d rows\n", len(flavors))
}
