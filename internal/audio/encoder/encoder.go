// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package internal_encoder compresses a session's buffered PCM into the
// artifact attached to the conversation record. The encoder is an external
// collaborator: it can be missing or broken, and that is never fatal to the
// record; callers store the transcript with a nil audio payload instead.
package internal_encoder

import (
	"context"

	internal_audio "github.com/rapidaai/capture/internal/audio"
)

// Encoder turns LINEAR16 PCM into a compressed audio payload.
type Encoder interface {
	// Encode compresses pcm at the requested bitrate. Failures wrap
	// internal_type.ErrEncodingFailure.
	Encode(ctx context.Context, pcm []byte, cfg internal_audio.AudioConfig, bitrateKbps int) ([]byte, error)

	// ContentType is the MIME type of the payload Encode produces.
	ContentType() string

	// FileExtension is the artifact suffix, without the dot.
	FileExtension() string
}
