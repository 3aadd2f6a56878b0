// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	internal_encoder "github.com/rapidaai/capture/internal/audio/encoder"
	internal_journal "github.com/rapidaai/capture/internal/journal"
	internal_persistence "github.com/rapidaai/capture/internal/persistence"
	internal_telemetry "github.com/rapidaai/capture/internal/telemetry"
	capture_routers "github.com/rapidaai/capture/api/capture-api/router"
	"github.com/rapidaai/capture/config"
	"github.com/rapidaai/capture/pkg/commons"
	"github.com/rapidaai/capture/pkg/utils"
)

func main() {
	vConfig, err := config.InitConfig()
	if err != nil {
		log.Fatalf("config init failed: %v", err)
	}
	cfg, err := config.GetApplicationConfig(vConfig)
	if err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	logger, err := commons.NewApplicationLogger(
		commons.Name(cfg.Name),
		commons.Path(cfg.LogPath),
		commons.Level(cfg.LogLevel),
	)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	registry := prometheus.NewRegistry()
	metrics := internal_telemetry.NewMetrics(registry)

	journal, err := internal_journal.NewStore(cfg.JournalPath, logger)
	if err != nil {
		logger.Fatalf("journal init failed: %v", err)
	}

	persistence, err := internal_persistence.NewPersistence(cfg, logger, metrics)
	if err != nil {
		logger.Fatalf("persistence init failed: %v", err)
	}
	encoder := internal_encoder.NewFfmpegEncoder(logger, cfg.Audio.FfmpegPath)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.Default())

	capture_routers.HealthCheckRoutes(cfg, engine, logger, journal)
	capture_routers.CaptureApiRoute(cfg, engine, logger, metrics, journal, persistence, encoder)
	capture_routers.MetricsRoute(engine, registry)

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: engine,
	}

	utils.Go(context.Background(), func() {
		logger.Infof("%s v%s listening on %s", cfg.Name, cfg.Version, server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down, draining open capture sessions")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}
