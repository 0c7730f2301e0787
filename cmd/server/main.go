package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"zkattest/internal/attest"
	"zkattest/internal/attest/age"
	"zkattest/internal/attest/credential"
	"zkattest/internal/attest/rangeproof"
	"zkattest/internal/attest/store"
	"zkattest/internal/network"
	"zkattest/internal/platform/config"
	"zkattest/internal/platform/health"
	"zkattest/internal/platform/httpserver"
	"zkattest/internal/platform/logger"
	"zkattest/internal/platform/metrics"
	httptransport "zkattest/internal/transport/http"
	"zkattest/pkg/platform/tracer"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Statement logic lives in the attest packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	mx := metrics.New()
	tr := tracer.NewOTel()

	log.Info("initializing zkattest",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"network_id", cfg.Network.NetworkID,
		"skip_network_check", cfg.Network.SkipNetworkCheck,
	)

	manager := network.NewManager(cfg.Network,
		network.WithLogger(log),
		network.WithMetrics(mx),
	)
	mode := manager.Initialize(context.Background())
	log.Info("proving network probed", "mode", string(mode))

	dispatcher := attest.NewDispatcher(log,
		age.New(manager, age.WithLogger(log), age.WithMetrics(mx), age.WithTracer(tr)),
		credential.New(manager, credential.WithLogger(log), credential.WithMetrics(mx), credential.WithTracer(tr)),
		rangeproof.New(manager, rangeproof.WithLogger(log), rangeproof.WithMetrics(mx), rangeproof.WithTracer(tr)),
	)
	proofStore := store.NewInMemory()

	checks := health.New(cfg.Environment, health.WithModeFunc(func() string {
		return string(manager.Current().Mode)
	}))
	checks.RegisterCheck("indexer", func() error {
		snap := manager.Current()
		if !snap.Connected {
			// Offline is a supported mode, not an unhealthy one.
			return nil
		}
		if snap.Providers == nil || snap.Providers.Indexer == nil {
			return fmt.Errorf("connected without an indexer provider")
		}
		return nil
	})

	handler := httptransport.NewHandler(dispatcher, proofStore, manager,
		httptransport.WithLogger(log),
		httptransport.WithMetrics(mx),
	)
	router := httptransport.NewRouter(handler, checks, log)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
