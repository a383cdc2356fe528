package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lbraga/millionaire/internal/api"
	"github.com/lbraga/millionaire/internal/config"
	"github.com/lbraga/millionaire/internal/db"
	"github.com/lbraga/millionaire/internal/game"
	"github.com/lbraga/millionaire/internal/jobs"
	"github.com/lbraga/millionaire/internal/logger"
	"github.com/lbraga/millionaire/internal/repository/sqlite"
	"github.com/lbraga/millionaire/internal/services"
	"github.com/lbraga/millionaire/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Millionaire Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("game_time_limit=%s", cfg.GameTimeLimit)
	log.Debug("import_worker_count=%d", cfg.ImportWorkerCount)
	log.Debug("import_queue_size=%d", cfg.ImportQueueSize)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Repositories
	playerRepo := sqlite.NewPlayerRepository(database.DB)
	questionRepo := sqlite.NewQuestionRepository(database.DB)
	gameRepo := sqlite.NewGameRepository(database.DB)

	// Game rules
	prizes := game.DefaultPrizeTable()
	aids := game.NewAidEngine(rand.NewSource(time.Now().UnixNano()))
	clock := services.NewSystemClock()

	// Services
	playerService := services.NewPlayerService(playerRepo)
	questionService := services.NewQuestionService(questionRepo, prizes.LastLevel())
	gameService := services.NewGameService(gameRepo, questionRepo, playerRepo, prizes, aids, clock, cfg.GameTimeLimit)
	statsService := services.NewStatsService(gameRepo, playerRepo, prizes.LastLevel(), cfg.GameTimeLimit)

	// Background import
	importPool := worker.NewPool(cfg.ImportWorkerCount, cfg.ImportQueueSize)
	jobQueue := jobs.NewWorkerQueue(importPool, questionService)

	srv := &api.Server{
		GameService:     gameService,
		PlayerService:   playerService,
		QuestionService: questionService,
		StatsService:    statsService,
		JobQueue:        jobQueue,
		DB:              database.DB,
	}

	ctx, cancel := context.WithCancel(context.Background())
	importPool.Start(ctx)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping worker pools")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping import pool")
	importPool.Stop()

	log.Info("===========================================")
	log.Info("Millionaire Server Stopped")
	log.Info("===========================================")
}
