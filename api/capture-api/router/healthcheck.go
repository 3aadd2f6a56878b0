// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package capture_routers

import (
	"github.com/gin-gonic/gin"

	internal_journal "github.com/rapidaai/capture/internal/journal"
	healthCheckApi "github.com/rapidaai/capture/api/health-check-api"
	"github.com/rapidaai/capture/config"
	"github.com/rapidaai/capture/pkg/commons"
)

func HealthCheckRoutes(cfg *config.AppConfig, engine *gin.Engine, logger commons.Logger, journal internal_journal.Store) {
	logger.Info("Internal HealthCheckRoutes added to engine.")
	apiv1 := engine.Group("")
	hcApi := healthCheckApi.New(cfg, logger, journal)
	{
		apiv1.GET("/readiness/", hcApi.Readiness)
		apiv1.GET("/healthz/", hcApi.Healthz)
	}
}
