package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/talentflow/talentflow/internal/config"
	"github.com/talentflow/talentflow/internal/logger"
	"github.com/talentflow/talentflow/internal/seed"
	"github.com/talentflow/talentflow/internal/simulator"
)

// Standalone mock backend: serves generated fixtures from memory with
// configurable latency, fault injection and throttling. Nothing is
// persisted; every start is a fresh dataset.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	log := logger.Get()

	jobs, candidates, assessments := seed.Dataset(cfg.SeedJobs, cfg.SeedCandidates)
	log.Info().
		Int("jobs", len(jobs)).
		Int("candidates", len(candidates)).
		Int("assessments", len(assessments)).
		Msg("generated fixtures")

	sim := simulator.New(simulator.Config{
		LatencyMin:   cfg.LatencyMin,
		LatencyMax:   cfg.LatencyMax,
		ErrorRate:    cfg.ErrorRate,
		RateLimitRPS: cfg.RateLimitRPS,
		Logger:       log,
	}, jobs, candidates, assessments)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info().Msg("received shutdown signal")
		cancel()
	}()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: sim,
	}

	log.Info().Int("port", cfg.HTTPPort).Float64("error_rate", cfg.ErrorRate).Msg("simulator listening")
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = server.Shutdown(shutdownCtx)
	log.Info().Msg("shutdown complete")
}
