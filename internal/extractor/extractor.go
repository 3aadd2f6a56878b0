// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package internal_extractor normalizes heterogeneous upstream event
// payloads into (speaker, text) pairs. Upstream realtime speech providers
// deliver the same logical event in several shapes; extraction dispatches
// over a closed set of known structural patterns and falls through to "no
// text" rather than reflecting over arbitrary fields. Everything here is a
// pure function; diagnostics are the caller's responsibility.
package internal_extractor

import (
	internal_type "github.com/rapidaai/capture/internal/type"
	"github.com/rapidaai/capture/pkg/utils"
)

// ExtractCallerText extracts caller speech text from a transcription
// event. Known patterns, in priority order:
//
//   - event.text
//   - event.transcript
//   - event.alternatives[0].text
//
// Returns ok=false when no pattern yields non-empty text. Never panics on
// any input shape.
func ExtractCallerText(event map[string]interface{}) (string, bool) {
	if event == nil {
		return "", false
	}
	if text := stringField(event, "text"); text != "" {
		return text, true
	}
	if text := stringField(event, "transcript"); text != "" {
		return text, true
	}
	if alts, ok := event["alternatives"].([]interface{}); ok && len(alts) > 0 {
		if first, ok := alts[0].(map[string]interface{}); ok {
			if text := stringField(first, "text"); text != "" {
				return text, true
			}
		}
	}
	return "", false
}

// ExtractAgentText extracts agent response text from a conversation item.
// Only items whose role field is "assistant" are considered; anything else
// is not an agent response. Known patterns, in priority order:
//
//   - item.text
//   - item.content as a string
//   - item.content[0] as a string
//   - item.content[0].text
//   - item.content.text
func ExtractAgentText(item map[string]interface{}) (string, bool) {
	if item == nil {
		return "", false
	}
	if role := stringField(item, "role"); role != "assistant" {
		return "", false
	}

	if text := stringField(item, "text"); text != "" {
		return text, true
	}

	content, ok := item["content"]
	if !ok || content == nil {
		return "", false
	}

	switch c := content.(type) {
	case string:
		if !utils.IsEmpty(c) {
			return c, true
		}

	case []interface{}:
		if len(c) == 0 {
			return "", false
		}
		switch first := c[0].(type) {
		case string:
			if !utils.IsEmpty(first) {
				return first, true
			}
		case map[string]interface{}:
			if text := stringField(first, "text"); text != "" {
				return text, true
			}
		}

	case map[string]interface{}:
		if text := stringField(c, "text"); text != "" {
			return text, true
		}
	}
	return "", false
}

// ExtractRole resolves the speaker from an explicit role/participant field.
// When the field is absent or unrecognized the result is indeterminate
// (ok=false) and the event must be dropped with a diagnostic count, never
// attributed by guesswork.
func ExtractRole(event map[string]interface{}) (internal_type.Speaker, bool) {
	if event == nil {
		return "", false
	}
	role := stringField(event, "role")
	if role == "" {
		role = stringField(event, "participant")
	}
	switch role {
	case "user", "caller":
		return internal_type.SpeakerCaller, true
	case "assistant", "agent":
		return internal_type.SpeakerAgent, true
	}
	return "", false
}

// stringField returns the field as a trimmed-presence string: "" when the
// field is missing, nil, not a string, or whitespace-only.
func stringField(m map[string]interface{}, key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok || utils.IsEmpty(s) {
		return ""
	}
	return s
}
