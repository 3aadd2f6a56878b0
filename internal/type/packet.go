// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_type

// Packet is the tagged union of everything the live transport can deliver
// into a session. Handlers dispatch on the concrete type; unknown packets
// are dropped with a diagnostic count, never an error.
type Packet interface {
	isPacket()
}

// CallerAudioPacket carries one raw audio frame from the caller leg,
// already normalized to the internal LINEAR16 configuration.
type CallerAudioPacket struct {
	Audio []byte
}

// CallerTranscriptionPacket carries one speech-transcription event for the
// caller. Event is the decoded upstream payload; its shape varies by
// provider and is resolved by the extractor.
type CallerTranscriptionPacket struct {
	Event map[string]interface{}
}

// AgentItemPacket carries one conversation-item event that may contain an
// agent response. Shape resolved by the extractor.
type AgentItemPacket struct {
	Event map[string]interface{}
}

// FieldPacket upserts one structured field (contact identity, scheduling
// parameters) captured during the call.
type FieldPacket struct {
	Name  string
	Value string
}

// EndSessionPacket signals session teardown: stop recording, snapshot,
// encode and persist.
type EndSessionPacket struct{}

func (CallerAudioPacket) isPacket()         {}
func (CallerTranscriptionPacket) isPacket() {}
func (AgentItemPacket) isPacket()           {}
func (FieldPacket) isPacket()               {}
func (EndSessionPacket) isPacket()          {}
