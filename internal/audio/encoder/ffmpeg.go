// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_encoder

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	internal_audio "github.com/rapidaai/capture/internal/audio"
	internal_type "github.com/rapidaai/capture/internal/type"
	"github.com/rapidaai/capture/pkg/commons"
)

type ffmpegEncoder struct {
	logger commons.Logger
	binary string
}

// NewFfmpegEncoder builds an MP3 encoder that shells out to ffmpeg. The
// binary is resolved at encode time so that an operator can install or fix
// ffmpeg without restarting the service.
func NewFfmpegEncoder(logger commons.Logger, binary string) Encoder {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &ffmpegEncoder{logger: logger, binary: binary}
}

func (e *ffmpegEncoder) ContentType() string   { return "audio/mpeg" }
func (e *ffmpegEncoder) FileExtension() string { return "mp3" }

// Encode pipes a WAV-wrapped copy of the buffer through ffmpeg and returns
// the MP3 bytes. Any failure (missing binary, bad exit, empty output) wraps
// ErrEncodingFailure so callers can degrade to a nil audio payload.
func (e *ffmpegEncoder) Encode(ctx context.Context, pcm []byte, cfg internal_audio.AudioConfig, bitrateKbps int) ([]byte, error) {
	if len(pcm) == 0 {
		return nil, nil
	}
	if bitrateKbps <= 0 {
		bitrateKbps = 64
	}

	if _, err := exec.LookPath(e.binary); err != nil {
		return nil, fmt.Errorf("%w: encoder binary %q not found: %v",
			internal_type.ErrEncodingFailure, e.binary, err)
	}

	wav, err := internal_audio.CreateWAVFile(pcm, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: wav wrap: %v", internal_type.ErrEncodingFailure, err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.binary,
		"-hide_banner", "-loglevel", "error",
		"-f", "wav", "-i", "pipe:0",
		"-vn",
		"-b:a", fmt.Sprintf("%dk", bitrateKbps),
		"-f", "mp3", "pipe:1",
	)
	cmd.Stdin = bytes.NewReader(wav)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: ffmpeg: %v (%s)",
			internal_type.ErrEncodingFailure, err, strings.TrimSpace(stderr.String()))
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("%w: ffmpeg produced no output", internal_type.ErrEncodingFailure)
	}

	e.logger.Debugf("encoded %d pcm bytes to %d mp3 bytes at %dkbps",
		len(pcm), stdout.Len(), bitrateKbps)
	return stdout.Bytes(), nil
}
