// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	internal_telemetry "github.com/rapidaai/capture/internal/telemetry"
	internal_type "github.com/rapidaai/capture/internal/type"
	"github.com/rapidaai/capture/pkg/commons"
)

// localPersistence writes the structured payload and the optional audio as
// sibling files named by session timestamp. Used for local verification and
// offline testing; same true/false contract as the remote backend.
type localPersistence struct {
	logger  commons.Logger
	metrics *internal_telemetry.Metrics
	dir     string

	// clock is injectable for testing; defaults to time.Now.
	clock func() time.Time
}

// NewLocalPersistence builds the filesystem backend, creating the output
// directory if needed.
func NewLocalPersistence(logger commons.Logger, metrics *internal_telemetry.Metrics, dir string) (internal_type.Persistence, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", dir, err)
	}
	return &localPersistence{
		logger:  logger,
		metrics: metrics,
		dir:     dir,
		clock:   time.Now,
	}, nil
}

func (p *localPersistence) StoreConversation(ctx context.Context, record *internal_type.ConversationRecord) bool {
	_ = ctx

	timestamp := p.clock().Format("20060102_150405")
	base := filepath.Join(p.dir, "conversation_"+timestamp)
	payload := buildPayload(record)

	if len(record.Audio) > 0 {
		audioPath := base + ".mp3"
		if err := os.WriteFile(audioPath, record.Audio, 0o644); err != nil {
			p.fail("write audio %s: %v", audioPath, err)
			return false
		}
		payload["audio_file_local"] = audioPath
		p.logger.Infof("saved audio to %s (%.2fMB)", audioPath,
			float64(len(record.Audio))/1024/1024)
	}

	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		p.fail("marshal payload: %v", err)
		return false
	}
	jsonPath := base + ".json"
	if err := os.WriteFile(jsonPath, body, 0o644); err != nil {
		p.fail("write payload %s: %v", jsonPath, err)
		return false
	}

	p.logger.Infof("saved conversation to %s", jsonPath)
	return true
}

func (p *localPersistence) fail(format string, args ...interface{}) {
	p.logger.Errorf("CONVERSATION NOT STORED: "+format, args...)
	p.metrics.PersistenceFailures.WithLabelValues("local").Inc()
}
