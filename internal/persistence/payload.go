// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package internal_persistence stores finished conversation records.
// Backends are interchangeable behind internal_type.Persistence and are
// selected once, at startup, by configuration; nothing above the factory
// may depend on a concrete backend.
package internal_persistence

import (
	internal_type "github.com/rapidaai/capture/internal/type"
)

// payloadAction tags every structured payload so the workflow behind the
// webhook can route it.
const payloadAction = "store_conversation"

// fieldKeys maps recorder field names to their wire keys. Identity today,
// kept explicit so the wire contract survives internal renames.
var fieldKeys = []string{
	internal_type.FieldContactName,
	internal_type.FieldPhoneNumber,
	internal_type.FieldBirthDate,
	internal_type.FieldReason,
	internal_type.FieldAppointmentDate,
	internal_type.FieldAppointmentTime,
}

// buildPayload flattens a conversation record into the structured payload
// both backends serialize. Unset fields are omitted entirely to keep the
// payload clean.
func buildPayload(record *internal_type.ConversationRecord) map[string]interface{} {
	payload := map[string]interface{}{
		"action":            payloadAction,
		"voice_agent_name":  record.Snapshot.AgentName,
		"transcript":        record.Snapshot.Transcript(),
		"conversation_date": record.ConversationDate,
	}
	for _, key := range fieldKeys {
		if v, ok := record.Snapshot.Field(key); ok && v != "" {
			payload[key] = v
		}
	}
	// Fields outside the known schema ride along untouched; validation is
	// the workflow's job, not ours.
	for k, v := range record.Snapshot.Fields {
		if _, exists := payload[k]; !exists && !isKnownField(k) && v != "" {
			payload[k] = v
		}
	}
	return payload
}

func isKnownField(name string) bool {
	for _, k := range fieldKeys {
		if k == name {
			return true
		}
	}
	return false
}
