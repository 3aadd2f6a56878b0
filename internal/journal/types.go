// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_journal

import (
	"time"

	"gorm.io/gorm"
)

// Session journal status constants.
const (
	StatusActive    = "active"    // capture in progress
	StatusCompleted = "completed" // session ended, record handed to persistence
	StatusFailed    = "failed"    // session aborted before a snapshot was taken
)

// SessionRecord is the operational trace of one capture session. It is not
// the conversation record itself (the transcript and audio go through the
// persistence backend) but the row operators query to answer "did that
// call get stored, and what did it look like".
//
// Rows are never deleted during the session lifecycle; they transition
// from active to completed or failed and stay readable afterwards.
type SessionRecord struct {
	Id           uint64     `json:"id" gorm:"type:bigint;primaryKey;autoIncrement"`
	ContextID    string     `json:"contextId" gorm:"column:context_id;type:varchar(36);not null;uniqueIndex"`
	AgentName    string     `json:"agentName" gorm:"column:agent_name;type:varchar(100);not null;default:''"`
	Status       string     `json:"status" gorm:"column:status;type:varchar(20);not null;default:active"`
	StartedAt    time.Time  `json:"startedAt" gorm:"column:started_at;type:timestamp;not null"`
	EndedAt      *time.Time `json:"endedAt" gorm:"column:ended_at;type:timestamp;default:null"`
	TotalTurns   int        `json:"totalTurns" gorm:"column:total_turns;not null;default:0"`
	CallerTurns  int        `json:"callerTurns" gorm:"column:caller_turns;not null;default:0"`
	AgentTurns   int        `json:"agentTurns" gorm:"column:agent_turns;not null;default:0"`
	AudioSeconds float64    `json:"audioSeconds" gorm:"column:audio_seconds;not null;default:0"`

	// Persisted records whether the storage backend accepted the record.
	// False after a completed session is the data-loss signal.
	Persisted bool `json:"persisted" gorm:"column:persisted;not null;default:false"`
}

func (SessionRecord) TableName() string {
	return "capture_sessions"
}

func (sr *SessionRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if sr.StartedAt.IsZero() {
		sr.StartedAt = time.Now()
	}
	return nil
}
