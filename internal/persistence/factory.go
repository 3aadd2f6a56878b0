// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_persistence

import (
	"fmt"
	"time"

	internal_telemetry "github.com/rapidaai/capture/internal/telemetry"
	internal_type "github.com/rapidaai/capture/internal/type"
	"github.com/rapidaai/capture/config"
	"github.com/rapidaai/capture/pkg/commons"
)

// NewPersistence selects the backend from configuration. Adding a backend
// means adding a case here and nothing anywhere else.
func NewPersistence(cfg *config.AppConfig, logger commons.Logger, metrics *internal_telemetry.Metrics) (internal_type.Persistence, error) {
	switch cfg.Persistence.Backend {
	case "webhook":
		if cfg.Persistence.WebhookURL == "" {
			return nil, fmt.Errorf("webhook backend requires persistence__webhook_url")
		}
		return NewWebhookPersistence(
			logger,
			metrics,
			cfg.Persistence.WebhookURL,
			cfg.Persistence.WebhookToken,
			time.Duration(cfg.Persistence.WebhookTimeoutS)*time.Second,
		), nil

	case "local":
		return NewLocalPersistence(logger, metrics, cfg.Persistence.LocalDir)

	default:
		return nil, fmt.Errorf("unknown persistence backend %q", cfg.Persistence.Backend)
	}
}
