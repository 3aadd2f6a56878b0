// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_recorder

import (
	"context"
	"sync"
	"time"

	internal_audio "github.com/rapidaai/capture/internal/audio"
	internal_encoder "github.com/rapidaai/capture/internal/audio/encoder"
	internal_type "github.com/rapidaai/capture/internal/type"
	"github.com/rapidaai/capture/pkg/commons"
)

var audioConfig = internal_audio.RAPIDA_INTERNAL_AUDIO_CONFIG

// Recorder states. Idle is the only start state; Stopped is terminal for
// the session.
const (
	stateIdle = iota
	stateRecording
	stateStopped
)

// audioRecorder buffers the session's frames in memory, in strict arrival
// order. A 10-minute call at 16kHz mono LINEAR16 is ~19MB, which is fine
// to hold in memory; spooling very long sessions to disk is not this
// recorder's problem.
type audioRecorder struct {
	logger  commons.Logger
	encoder internal_encoder.Encoder

	mu      sync.Mutex
	state   int
	frames  [][]byte
	bytes   int
	dropped uint64

	// clock is injectable for testing; defaults to time.Now.
	clock     func() time.Time
	startTime time.Time
}

// NewDefaultAudioRecorder creates a recorder for one session.
func NewDefaultAudioRecorder(logger commons.Logger, encoder internal_encoder.Encoder) (internal_type.AudioRecorder, error) {
	return &audioRecorder{
		logger:  logger,
		encoder: encoder,
		clock:   time.Now,
	}, nil
}

// Start moves an Idle recorder to Recording and clears any prior buffer.
// Calling Start while already recording is a no-op; after Stop it stays
// stopped, the session is over.
func (r *audioRecorder) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != stateIdle {
		return
	}
	r.state = stateRecording
	r.frames = nil
	r.bytes = 0
	r.startTime = r.clock()
}

// AddFrame appends one frame to the buffer. Frames may arrive concurrently
// with encode requests racing session teardown, so the append is guarded;
// outside Recording the frame is dropped and counted, never an error.
func (r *audioRecorder) AddFrame(frame []byte) {
	if len(frame) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != stateRecording {
		r.dropped++
		return
	}
	// Copy to avoid caller mutations.
	buf := make([]byte, len(frame))
	copy(buf, frame)
	r.frames = append(r.frames, buf)
	r.bytes += len(buf)
}

// Stop moves the recorder to Stopped. Idempotent; stopping from Idle also
// lands on Stopped so a session that never received audio still terminates.
func (r *audioRecorder) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = stateStopped
}

// DurationSeconds is derived from the buffered byte count, callable in any
// state without decoding.
func (r *audioRecorder) DurationSeconds() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return float64(r.bytes) / float64(audioConfig.BytesPerSecond())
}

// DroppedFrames reports frames rejected outside the Recording state.
func (r *audioRecorder) DroppedFrames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// EncodeToCompressedAudio stops recording if still running, snapshots the
// buffer, and runs the external encoder. The lock is held only for the
// state flip and the buffer concatenation, never across the encoder
// invocation. An empty buffer is a well-defined no-audio result, (nil, nil).
func (r *audioRecorder) EncodeToCompressedAudio(ctx context.Context, bitrateKbps int) ([]byte, error) {
	r.mu.Lock()
	r.state = stateStopped
	pcm := make([]byte, 0, r.bytes)
	for _, f := range r.frames {
		pcm = append(pcm, f...)
	}
	started := r.startTime
	r.mu.Unlock()

	if len(pcm) == 0 {
		return nil, nil
	}

	wall := 0.0
	if !started.IsZero() {
		wall = r.clock().Sub(started).Seconds()
	}
	r.logger.Infof("audio encode: buffered=%.2fs wall=%.2fs bytes=%d",
		float64(len(pcm))/float64(audioConfig.BytesPerSecond()), wall, len(pcm))

	return r.encoder.Encode(ctx, pcm, audioConfig, bitrateKbps)
}
