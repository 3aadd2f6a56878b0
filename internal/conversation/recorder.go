// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package internal_conversation records the transcript of one live session.
// One recorder per session, injected into whatever consumes it; there is no
// process-wide recorder state.
package internal_conversation

import (
	"sync"
	"time"

	internal_type "github.com/rapidaai/capture/internal/type"
	"github.com/rapidaai/capture/pkg/commons"
	"github.com/rapidaai/capture/pkg/utils"
)

type conversationRecorder struct {
	logger    commons.Logger
	agentName string

	mu         sync.Mutex
	utterances []internal_type.Utterance
	fields     map[string]string

	// clock is injectable for testing; defaults to time.Now.
	clock func() time.Time
}

// NewConversationRecorder creates a recorder for one session.
func NewConversationRecorder(logger commons.Logger, agentName string) internal_type.Recorder {
	return &conversationRecorder{
		logger:    logger,
		agentName: agentName,
		fields:    make(map[string]string),
		clock:     time.Now,
	}
}

// AddUtterance appends one utterance in acceptance order. Utterances are
// never reordered by timestamp: upstream transcription for one speaker can
// lag behind the other, and hiding that by sorting would misrepresent what
// the pipeline actually delivered.
func (r *conversationRecorder) AddUtterance(speaker internal_type.Speaker, text string) {
	if utils.IsEmpty(text) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.utterances = append(r.utterances, internal_type.Utterance{
		Speaker:   speaker,
		Text:      text,
		Timestamp: r.clock().UTC(),
	})
	r.logger.Infof("[transcript] %s: %s", speaker, text)
}

// SetField upserts one structured field; last write wins.
func (r *conversationRecorder) SetField(name, value string) {
	if utils.IsEmpty(name) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fields[name] = value
	r.logger.Debugf("[transcript] field %s updated", name)
}

// Snapshot deep-copies the accumulated state. Utterances appended after the
// copy is taken are simply not included, an ordering caveat of teardown
// racing late events, not corruption.
func (r *conversationRecorder) Snapshot() internal_type.ConversationSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	utterances := make([]internal_type.Utterance, len(r.utterances))
	copy(utterances, r.utterances)

	fields := make(map[string]string, len(r.fields))
	for k, v := range r.fields {
		fields[k] = v
	}

	return internal_type.ConversationSnapshot{
		AgentName:  r.agentName,
		Utterances: utterances,
		Fields:     fields,
	}
}
