// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_type

import "context"

// Recorder accumulates the transcript and structured fields of one session.
// One instance per session, owned by the session coordinator. None of its
// operations can fail in the ordinary sense.
type Recorder interface {
	// AddUtterance appends one utterance in acceptance order. Empty or
	// whitespace-only text is a recorded no-op. No deduplication and no
	// reordering by timestamp: upstream transcription for one speaker can
	// lag the other, and that lag is surfaced, not hidden.
	AddUtterance(speaker Speaker, text string)

	// SetField upserts one structured field; last write wins. Unknown
	// names are accepted; schema validation belongs to the workflow
	// behind the persistence boundary.
	SetField(name, value string)

	// Snapshot returns an immutable point-in-time view. Safe to call
	// repeatedly; the recorder retains no reference to the returned data.
	Snapshot() ConversationSnapshot
}

// AudioRecorder buffers raw audio frames for one session and produces a
// compressed artifact on demand. The lifecycle runs Idle, Recording,
// Stopped; Stopped is terminal for the session.
type AudioRecorder interface {
	// Start moves an Idle recorder to Recording, clearing any prior
	// buffer. Idempotent while recording.
	Start()
	// AddFrame appends one frame in Recording. Outside Recording the
	// frame is dropped and counted, never an error: late frames racing
	// teardown are expected.
	AddFrame(frame []byte)
	// Stop moves the recorder to Stopped. Idempotent.
	Stop()
	// DurationSeconds is the buffered duration, computed from frame
	// bytes, callable in any state.
	DurationSeconds() float64
	// DroppedFrames reports frames rejected outside the Recording state.
	DroppedFrames() uint64
	// EncodeToCompressedAudio stops recording if needed and runs the
	// external encoder over the buffer. An empty buffer yields (nil, nil).
	// Encoder problems wrap ErrEncodingFailure; the caller proceeds with
	// a nil audio payload rather than losing the transcript.
	EncodeToCompressedAudio(ctx context.Context, bitrateKbps int) ([]byte, error)
}

// Persistence durably stores one finished conversation. Exactly one
// capability: implementations absorb their own failures (logged, counted)
// and report success as a boolean so a storage outage can never crash an
// in-progress or subsequent session. Best-effort single attempt; retry
// policy lives outside this layer.
type Persistence interface {
	StoreConversation(ctx context.Context, record *ConversationRecord) bool
}
