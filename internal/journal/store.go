// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package internal_journal keeps a local, queryable trace of every capture
// session and its persistence outcome. Journal writes are best-effort:
// failures are logged and never interrupt capture or persistence.
package internal_journal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"

	"github.com/rapidaai/capture/pkg/commons"
	"github.com/rapidaai/capture/pkg/utils"
)

// Store provides operations over the session journal.
type Store interface {
	// Save creates the journal row for a starting session, generating a
	// contextId (UUID) when the record has none. Returns the contextId.
	Save(ctx context.Context, sr *SessionRecord) (string, error)

	// Get retrieves a session row by contextId regardless of status.
	Get(ctx context.Context, contextID string) (*SessionRecord, error)

	// Complete marks a session completed and records its final counts and
	// persistence outcome.
	Complete(ctx context.Context, contextID string, totalTurns, callerTurns, agentTurns int, audioSeconds float64, persisted bool) error

	// Fail marks a session that ended without producing a record.
	Fail(ctx context.Context, contextID string) error

	// Ping reports whether the backing database is reachable.
	Ping(ctx context.Context) error
}

type sqliteStore struct {
	db     *gorm.DB
	logger commons.Logger
}

// NewStore opens (and migrates) the sqlite-backed journal.
func NewStore(path string, logger commons.Logger) (Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gorm_logger.Default.LogMode(gorm_logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}
	if err := db.AutoMigrate(&SessionRecord{}); err != nil {
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	return &sqliteStore{db: db, logger: logger}, nil
}

func (s *sqliteStore) Save(ctx context.Context, sr *SessionRecord) (string, error) {
	if sr.ContextID == "" {
		sr.ContextID = uuid.New().String()
	}
	if sr.Status == "" {
		sr.Status = StatusActive
	}
	if err := s.db.WithContext(ctx).Create(sr).Error; err != nil {
		return "", fmt.Errorf("save session %s: %w", sr.ContextID, err)
	}
	return sr.ContextID, nil
}

func (s *sqliteStore) Get(ctx context.Context, contextID string) (*SessionRecord, error) {
	var sr SessionRecord
	err := s.db.WithContext(ctx).
		Where("context_id = ?", contextID).
		First(&sr).Error
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", contextID, err)
	}
	return &sr, nil
}

func (s *sqliteStore) Complete(ctx context.Context, contextID string, totalTurns, callerTurns, agentTurns int, audioSeconds float64, persisted bool) error {
	result := s.db.WithContext(ctx).
		Model(&SessionRecord{}).
		Where("context_id = ?", contextID).
		Updates(map[string]interface{}{
			"status":        StatusCompleted,
			"ended_at":      utils.Ptr(time.Now()),
			"total_turns":   totalTurns,
			"caller_turns":  callerTurns,
			"agent_turns":   agentTurns,
			"audio_seconds": audioSeconds,
			"persisted":     persisted,
		})
	if result.Error != nil {
		return fmt.Errorf("complete session %s: %w", contextID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("complete session %s: not found", contextID)
	}
	return nil
}

func (s *sqliteStore) Ping(ctx context.Context) error {
	db, err := s.db.WithContext(ctx).DB()
	if err != nil {
		return fmt.Errorf("journal db: %w", err)
	}
	return db.PingContext(ctx)
}

func (s *sqliteStore) Fail(ctx context.Context, contextID string) error {
	result := s.db.WithContext(ctx).
		Model(&SessionRecord{}).
		Where("context_id = ?", contextID).
		Updates(map[string]interface{}{
			"status":   StatusFailed,
			"ended_at": utils.Ptr(time.Now()),
		})
	if result.Error != nil {
		return fmt.Errorf("fail session %s: %w", contextID, result.Error)
	}
	return nil
}
