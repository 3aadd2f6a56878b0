// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_extractor

import (
	"encoding/json"
	"testing"

	internal_type "github.com/rapidaai/capture/internal/type"
	"github.com/stretchr/testify/assert"
)

func decode(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("bad test payload: %v", err)
	}
	return m
}

// --- ExtractCallerText ---

func TestExtractCallerText_DirectText(t *testing.T) {
	text, ok := ExtractCallerText(decode(t, `{"text": "Bonjour"}`))
	assert.True(t, ok)
	assert.Equal(t, "Bonjour", text)
}

func TestExtractCallerText_TranscriptField(t *testing.T) {
	text, ok := ExtractCallerText(decode(t, `{"transcript": "Bonjour docteur"}`))
	assert.True(t, ok)
	assert.Equal(t, "Bonjour docteur", text)
}

func TestExtractCallerText_FirstAlternative(t *testing.T) {
	text, ok := ExtractCallerText(decode(t, `{"alternatives": [{"text": "Allô"}, {"text": "Allo"}]}`))
	assert.True(t, ok)
	assert.Equal(t, "Allô", text)
}

func TestExtractCallerText_TextWinsOverTranscript(t *testing.T) {
	text, ok := ExtractCallerText(decode(t, `{"text": "primary", "transcript": "secondary"}`))
	assert.True(t, ok)
	assert.Equal(t, "primary", text)
}

func TestExtractCallerText_NoText(t *testing.T) {
	cases := []string{
		`{}`,
		`{"text": ""}`,
		`{"text": "   "}`,
		`{"alternatives": []}`,
		`{"alternatives": ["nope"]}`,
		`{"alternatives": [{"confidence": 0.4}]}`,
		`{"text": 42}`,
	}
	for _, raw := range cases {
		text, ok := ExtractCallerText(decode(t, raw))
		assert.False(t, ok, "payload %s", raw)
		assert.Empty(t, text)
	}
}

func TestExtractCallerText_NilEvent(t *testing.T) {
	text, ok := ExtractCallerText(nil)
	assert.False(t, ok)
	assert.Empty(t, text)
}

// --- ExtractAgentText ---

func TestExtractAgentText_DirectText(t *testing.T) {
	text, ok := ExtractAgentText(decode(t, `{"role": "assistant", "text": "Bonjour, comment puis-je vous aider?"}`))
	assert.True(t, ok)
	assert.Equal(t, "Bonjour, comment puis-je vous aider?", text)
}

func TestExtractAgentText_ContentString(t *testing.T) {
	text, ok := ExtractAgentText(decode(t, `{"role": "assistant", "content": "Très bien."}`))
	assert.True(t, ok)
	assert.Equal(t, "Très bien.", text)
}

func TestExtractAgentText_ContentListOfStrings(t *testing.T) {
	text, ok := ExtractAgentText(decode(t, `{"role": "assistant", "content": ["Un instant.", "ignored"]}`))
	assert.True(t, ok)
	assert.Equal(t, "Un instant.", text)
}

func TestExtractAgentText_ContentListOfObjects(t *testing.T) {
	text, ok := ExtractAgentText(decode(t, `{"role": "assistant", "content": [{"type": "text", "text": "D'accord."}]}`))
	assert.True(t, ok)
	assert.Equal(t, "D'accord.", text)
}

func TestExtractAgentText_ContentObject(t *testing.T) {
	text, ok := ExtractAgentText(decode(t, `{"role": "assistant", "content": {"text": "Entendu."}}`))
	assert.True(t, ok)
	assert.Equal(t, "Entendu.", text)
}

func TestExtractAgentText_NonAssistantRole(t *testing.T) {
	text, ok := ExtractAgentText(decode(t, `{"role": "user", "text": "should not surface"}`))
	assert.False(t, ok)
	assert.Empty(t, text)
}

func TestExtractAgentText_MissingRole(t *testing.T) {
	text, ok := ExtractAgentText(decode(t, `{"text": "no role"}`))
	assert.False(t, ok)
	assert.Empty(t, text)
}

func TestExtractAgentText_MalformedNeverPanics(t *testing.T) {
	cases := []string{
		`{"role": "assistant"}`,
		`{"role": "assistant", "content": null}`,
		`{"role": "assistant", "content": []}`,
		`{"role": "assistant", "content": [42]}`,
		`{"role": "assistant", "content": {"type": "audio"}}`,
		`{"role": "assistant", "content": 7}`,
		`{"role": "assistant", "text": ""}`,
	}
	for _, raw := range cases {
		assert.NotPanics(t, func() {
			text, ok := ExtractAgentText(decode(t, raw))
			assert.False(t, ok, "payload %s", raw)
			assert.Empty(t, text)
		})
	}
}

// --- ExtractRole ---

func TestExtractRole_Explicit(t *testing.T) {
	for raw, want := range map[string]internal_type.Speaker{
		`{"role": "user"}`:          internal_type.SpeakerCaller,
		`{"role": "caller"}`:        internal_type.SpeakerCaller,
		`{"role": "assistant"}`:     internal_type.SpeakerAgent,
		`{"role": "agent"}`:         internal_type.SpeakerAgent,
		`{"participant": "caller"}`: internal_type.SpeakerCaller,
		`{"participant": "agent"}`:  internal_type.SpeakerAgent,
	} {
		speaker, ok := ExtractRole(decode(t, raw))
		assert.True(t, ok, "payload %s", raw)
		assert.Equal(t, want, speaker)
	}
}

func TestExtractRole_Indeterminate(t *testing.T) {
	cases := []string{
		`{}`,
		`{"role": ""}`,
		`{"role": "system"}`,
		`{"role": 1}`,
		`{"participant": "observer"}`,
	}
	for _, raw := range cases {
		_, ok := ExtractRole(decode(t, raw))
		assert.False(t, ok, "payload %s", raw)
	}
	_, ok := ExtractRole(nil)
	assert.False(t, ok)
}
