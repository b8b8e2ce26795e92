package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crestline/financing-service/internal/app/setup"
	"github.com/crestline/financing-service/internal/infrastructure/migrate"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}

	deps, err := setup.InitializeDependencies()
	if err != nil {
		log.Fatalf("failed to initialize dependencies: %v\n", err)
	}

	if deps.Config.FinancingDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(deps.DB, deps.Config.FinancingDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v\n", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := deps.TokenCache.Ping(ctx); err != nil {
		slog.Error("redis token cache unreachable", "error", err.Error())
	}
	cancel()

	// The checkout embeds this service in-process; the wiring is validated
	// here so a bad configuration fails at boot, not at first payment.
	if _, err := setup.InitializeUseCases(deps); err != nil {
		log.Fatalf("failed to initialize usecases: %v\n", err)
	}

	// Metrics and health endpoint
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	addr := fmt.Sprintf("%s:%s", deps.Config.MetricsServer.Host, deps.Config.MetricsServer.Port)
	log.Printf("financing service started, metrics on %s\n", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
