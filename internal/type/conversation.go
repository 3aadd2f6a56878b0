// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_type

import (
	"fmt"
	"strings"
	"time"
)

// Speaker identifies which party produced an utterance.
type Speaker string

const (
	SpeakerCaller Speaker = "caller"
	SpeakerAgent  Speaker = "agent"
)

// Well-known structured field names captured opportunistically during a
// call. SetField accepts arbitrary names; these are the ones the webhook
// schema understands.
const (
	FieldContactName     = "contact_name"
	FieldPhoneNumber     = "phone_number"
	FieldBirthDate       = "birth_date"
	FieldReason          = "reason"
	FieldAppointmentDate = "appointment_date"
	FieldAppointmentTime = "appointment_time"
)

// Utterance is one recognized span of speech text attributed to a speaker.
// Immutable once created.
type Utterance struct {
	Speaker   Speaker
	Text      string
	Timestamp time.Time // UTC
}

// ConversationSnapshot is an immutable point-in-time view of a session's
// accumulated transcript and fields. Built at session end and owned by the
// caller of Snapshot(); the recorder keeps no reference past handoff.
type ConversationSnapshot struct {
	AgentName  string
	Utterances []Utterance
	Fields     map[string]string
}

// Transcript renders the snapshot as one speaker-labeled line per
// utterance, in acceptance order:
//
//	[2025-10-30T14:23:45] CALLER: Bonjour...
//	[2025-10-30T14:23:47] AGENT: Bonjour, comment puis-je vous aider?
func (s *ConversationSnapshot) Transcript() string {
	lines := make([]string, 0, len(s.Utterances))
	for _, u := range s.Utterances {
		lines = append(lines, fmt.Sprintf("[%s] %s: %s",
			u.Timestamp.UTC().Format("2006-01-02T15:04:05"),
			strings.ToUpper(string(u.Speaker)),
			u.Text,
		))
	}
	return strings.Join(lines, "\n")
}

// Field returns the named structured field, second value false when unset.
func (s *ConversationSnapshot) Field(name string) (string, bool) {
	v, ok := s.Fields[name]
	return v, ok
}

// ConversationRecord is the persistence payload: everything a backend needs
// to durably store one finished conversation. Created exactly once per
// session at the persistence boundary and never mutated afterwards.
type ConversationRecord struct {
	Snapshot ConversationSnapshot

	// ConversationDate is the ISO date (2006-01-02) the session ended.
	ConversationDate string

	// Audio is the encoded audio artifact, nil when audio capture or
	// encoding failed. A nil payload never blocks persistence of the
	// transcript.
	Audio []byte
}
