// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package capture_routers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	capture_api "github.com/rapidaai/capture/api/capture-api/capture"
	internal_encoder "github.com/rapidaai/capture/internal/audio/encoder"
	internal_journal "github.com/rapidaai/capture/internal/journal"
	internal_telemetry "github.com/rapidaai/capture/internal/telemetry"
	internal_type "github.com/rapidaai/capture/internal/type"
	"github.com/rapidaai/capture/config"
	"github.com/rapidaai/capture/pkg/commons"
)

func CaptureApiRoute(
	cfg *config.AppConfig, engine *gin.Engine, logger commons.Logger,
	metrics *internal_telemetry.Metrics,
	journal internal_journal.Store,
	persistence internal_type.Persistence,
	encoder internal_encoder.Encoder) {
	apiv1 := engine.Group("v1/capture")
	captureApi := capture_api.NewCaptureApi(cfg,
		logger,
		metrics,
		journal,
		persistence,
		encoder,
	)
	{
		apiv1.GET("", captureApi.CaptureConnect)
	}
}

func MetricsRoute(engine *gin.Engine, registry *prometheus.Registry) {
	engine.GET("/metrics", gin.WrapH(
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
}
