// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package recorder

import (
	internal_encoder "github.com/rapidaai/capture/internal/audio/encoder"
	internal_recorder "github.com/rapidaai/capture/internal/audio/recorder/internal"
	internal_type "github.com/rapidaai/capture/internal/type"
	"github.com/rapidaai/capture/pkg/commons"
)

// NewAudioRecorder returns the default in-memory audio recorder for one
// session.
func NewAudioRecorder(logger commons.Logger, encoder internal_encoder.Encoder) (internal_type.AudioRecorder, error) {
	return internal_recorder.NewDefaultAudioRecorder(logger, encoder)
}
