// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package health_check_api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	internal_journal "github.com/rapidaai/capture/internal/journal"
	"github.com/rapidaai/capture/config"
	"github.com/rapidaai/capture/pkg/commons"
)

type HealthCheckApi struct {
	cfg     *config.AppConfig
	logger  commons.Logger
	journal internal_journal.Store
}

func New(cfg *config.AppConfig, logger commons.Logger, journal internal_journal.Store) *HealthCheckApi {
	return &HealthCheckApi{cfg: cfg, logger: logger, journal: journal}
}

// Healthz reports process liveness.
func (hcApi *HealthCheckApi) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"name":    hcApi.cfg.Name,
		"version": hcApi.cfg.Version,
	})
}

// Readiness additionally checks the session journal database.
func (hcApi *HealthCheckApi) Readiness(c *gin.Context) {
	if hcApi.journal != nil {
		if err := hcApi.journal.Ping(c.Request.Context()); err != nil {
			hcApi.logger.Errorf("readiness: journal unreachable: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "journal unreachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
