// Package main provides the entry point for the arxium HTTP server.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/raphaelgruber/arxium/internal/arxiv"
	"github.com/raphaelgruber/arxium/internal/config"
	"github.com/raphaelgruber/arxium/internal/db"
	"github.com/raphaelgruber/arxium/internal/embedding"
	"github.com/raphaelgruber/arxium/internal/history"
	"github.com/raphaelgruber/arxium/internal/llm"
	"github.com/raphaelgruber/arxium/internal/metrics"
	"github.com/raphaelgruber/arxium/internal/server"
	"github.com/raphaelgruber/arxium/internal/service"
)

const version = "0.1.0"

func main() {
	wipeDB := flag.Bool("wipe", false, "wipe all data from database on startup (testing only)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()

	// Setup logger (dual output: stderr text + file JSON)
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()

	logger.Info("arxium starting",
		"version", version,
		"port", cfg.ServerPort,
		"llm_provider", cfg.LLMProvider,
		"llm_model", cfg.LLMModel,
		"embedding_model", cfg.EmbeddingModel,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Heuristic tables for author detection
	tables, err := config.LoadTables(cfg.TablesFile)
	if err != nil {
		logger.Error("failed to load heuristic tables", "file", cfg.TablesFile, "error", err)
		os.Exit(1)
	}

	// Embedder and generation model
	embedder, err := embedding.New(cfg)
	if err != nil {
		logger.Error("failed to create embedder", "error", err)
		os.Exit(1)
	}
	logger.Info("embedder initialized", "model", embedder.Model(), "dimension", embedder.Dimension())

	model, err := llm.NewModel(ctx, cfg)
	if err != nil {
		logger.Error("failed to create LLM model", "error", err)
		os.Exit(1)
	}
	logger.Info("LLM model initialized", "model", model.Model())

	// Semantic index and session store. Without SurrealDB the server runs
	// degraded: no index fallback, history held in memory.
	var index service.SemanticIndex
	var store service.HistoryStore = history.NewMemory()

	if cfg.IndexEnabled() {
		connectCtx, connectCancel := context.WithTimeout(ctx, 30*time.Second)
		dbClient, err := db.NewClient(connectCtx, db.Config{
			URL:                cfg.SurrealDBURL,
			Namespace:          cfg.SurrealDBNamespace,
			Database:           cfg.SurrealDBDatabase,
			Username:           cfg.SurrealDBUser,
			Password:           cfg.SurrealDBPass,
			AuthLevel:          cfg.SurrealDBAuthLevel,
			EmbeddingDimension: cfg.EmbeddingDimension,
		}, logger)
		connectCancel()
		if err != nil {
			logger.Warn("SurrealDB unavailable, running without semantic index", "error", err)
		} else {
			defer func() {
				logger.Info("closing database connection")
				_ = dbClient.Close(context.Background())
			}()

			if err := dbClient.InitSchema(ctx); err != nil {
				logger.Error("failed to initialize database schema", "error", err)
				os.Exit(1)
			}

			if *wipeDB || os.Getenv("ARXIUM_WIPE_DB") == "true" {
				if err := dbClient.WipeData(ctx); err != nil {
					logger.Error("failed to wipe database", "error", err)
					os.Exit(1)
				}
				logger.Info("database wiped")
			}

			index = dbClient
			store = dbClient
		}
	} else {
		logger.Info("semantic index disabled by configuration")
	}

	// Assemble the service
	searcher := arxiv.NewClient(cfg, tables, logger)
	runner := service.NewRunner(2, 32, logger)
	defer runner.Close()

	svc := service.New(searcher, embedder, model, index, store, runner,
		metrics.NewCollector(), cfg.ArxivMaxResults, logger)

	// Run server (blocks until shutdown signal)
	srv := server.New(svc, ":"+cfg.ServerPort, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}
