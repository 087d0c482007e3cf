package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/talentflow/talentflow/internal/api"
	"github.com/talentflow/talentflow/internal/config"
	"github.com/talentflow/talentflow/internal/database"
	"github.com/talentflow/talentflow/internal/events"
	"github.com/talentflow/talentflow/internal/logger"
	"github.com/talentflow/talentflow/internal/models"
	"github.com/talentflow/talentflow/internal/seed"
	"github.com/talentflow/talentflow/internal/store"
)

func main() {
	// 1. Load environment and config
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// 2. Initialize logger
	if err := logger.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	log := logger.Get()
	log.Info().Msg("starting talentflow api server")

	// 3. Setup context with graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("received shutdown signal")
		cancel()
	}()

	// 4. Open database
	db, err := database.Open(cfg.DatabasePath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	// 5. Build store and seed on first run
	st := store.New(db, log)
	if err := st.Bootstrap(ctx, func() ([]models.Job, []models.Candidate, []models.Assessment) {
		return seed.Dataset(cfg.SeedJobs, cfg.SeedCandidates)
	}); err != nil {
		log.Error().Err(err).Msg("seeding failed, starting with empty collections")
	}

	// 6. WebSocket hub for entity-change events
	hub := events.NewHub(log)
	go hub.Run()

	// 7. API server
	server := api.NewServer(
		&api.Config{
			Port:        cfg.HTTPPort,
			Title:       "TalentFlow API",
			Description: "Hiring pipeline: jobs, candidates, assessments",
			Version:     "dev",
		},
		&api.Dependencies{
			Jobs:        st.Jobs,
			Candidates:  st.Candidates,
			Assessments: st.Assessments,
			Notes:       st.Notes,
			Responses:   st.Responses,
			Settings:    st.Settings,
			Hub:         hub,
			Available:   st.Available,
		},
		log,
	)
	server.Mux().HandleFunc("/ws", hub.ServeWs)

	log.Info().Int("port", cfg.HTTPPort).Msg("listening")
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown complete")
}
