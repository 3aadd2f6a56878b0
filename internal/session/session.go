// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package internal_session coordinates one live capture session: it routes
// transport packets into the conversation and audio recorders and, on
// teardown, hands the finished record to the persistence backend exactly
// once. Each session owns its recorders exclusively; sessions share nothing
// mutable but process-wide configuration and the telemetry registry.
package internal_session

import (
	"context"
	"fmt"
	"sync"
	"time"

	internal_audio "github.com/rapidaai/capture/internal/audio"
	internal_extractor "github.com/rapidaai/capture/internal/extractor"
	internal_journal "github.com/rapidaai/capture/internal/journal"
	internal_telemetry "github.com/rapidaai/capture/internal/telemetry"
	internal_type "github.com/rapidaai/capture/internal/type"
	"github.com/rapidaai/capture/pkg/commons"
)

// Params carries the per-session dependencies. Everything is injected;
// there is no ambient state to look up.
type Params struct {
	Logger      commons.Logger
	Metrics     *internal_telemetry.Metrics
	Recorder    internal_type.Recorder
	Audio       internal_type.AudioRecorder
	Decoder     *internal_audio.FrameDecoder
	Persistence internal_type.Persistence
	Journal     internal_journal.Store
	AgentName   string
	BitrateKbps int
}

type Session struct {
	logger      commons.Logger
	metrics     *internal_telemetry.Metrics
	recorder    internal_type.Recorder
	audio       internal_type.AudioRecorder
	decoder     *internal_audio.FrameDecoder
	persistence internal_type.Persistence
	journal     internal_journal.Store
	bitrate     int

	contextID string

	mu       sync.Mutex
	finished bool

	// clock is injectable for testing; defaults to time.Now.
	clock func() time.Time
}

// NewSession starts capture for one call: journal row, audio recording,
// active-session gauge.
func NewSession(ctx context.Context, params Params) (*Session, error) {
	if params.Recorder == nil || params.Audio == nil || params.Persistence == nil {
		return nil, fmt.Errorf("session: missing required dependency")
	}

	s := &Session{
		logger:      params.Logger,
		metrics:     params.Metrics,
		recorder:    params.Recorder,
		audio:       params.Audio,
		decoder:     params.Decoder,
		persistence: params.Persistence,
		journal:     params.Journal,
		bitrate:     params.BitrateKbps,
		clock:       time.Now,
	}

	if s.journal != nil {
		contextID, err := s.journal.Save(ctx, &internal_journal.SessionRecord{
			AgentName: params.AgentName,
			StartedAt: s.clock(),
		})
		if err != nil {
			// The journal is a trace, not the record of truth. Capture
			// proceeds without it.
			s.logger.Errorf("journal save failed, continuing without trace: %v", err)
		} else {
			s.contextID = contextID
		}
	}

	s.audio.Start()
	s.metrics.ActiveSessions.Inc()
	s.logger.Infof("capture session started, context=%s", s.contextID)
	return s, nil
}

// ContextID is the journal identifier of this session, empty when the
// journal was unavailable at start.
func (s *Session) ContextID() string {
	return s.contextID
}

// OnPacket routes one transport packet. Packets arriving after Finish are
// tolerated and discarded: late upstream events racing teardown are a
// documented caveat, not an error.
func (s *Session) OnPacket(ctx context.Context, p internal_type.Packet) error {
	switch packet := p.(type) {
	case internal_type.CallerAudioPacket:
		s.onCallerAudio(packet)

	case internal_type.CallerTranscriptionPacket:
		s.onCallerTranscription(packet)

	case internal_type.AgentItemPacket:
		s.onAgentItem(packet)

	case internal_type.FieldPacket:
		s.recorder.SetField(packet.Name, packet.Value)

	case internal_type.EndSessionPacket:
		s.Finish(ctx)

	default:
		s.metrics.DroppedEvents.WithLabelValues(internal_telemetry.DropReasonUnknownPacket).Inc()
		s.logger.Warnf("unknown packet %T dropped", p)
	}
	return nil
}

func (s *Session) onCallerAudio(packet internal_type.CallerAudioPacket) {
	frame := packet.Audio
	if s.decoder != nil {
		decoded, err := s.decoder.Decode(frame)
		if err != nil {
			s.metrics.DroppedEvents.WithLabelValues(internal_telemetry.DropReasonDecode).Inc()
			s.logger.Warnf("audio frame decode failed, frame dropped: %v", err)
			return
		}
		frame = decoded
	}
	// A stopped recorder drops and counts the frame itself.
	s.audio.AddFrame(frame)
}

func (s *Session) onCallerTranscription(packet internal_type.CallerTranscriptionPacket) {
	// Caller events come off the caller leg, but when the payload carries
	// an explicit role that contradicts that, attribution is ambiguous and
	// the event is dropped rather than guessed at.
	if speaker, ok := internal_extractor.ExtractRole(packet.Event); ok && speaker != internal_type.SpeakerCaller {
		s.metrics.DroppedEvents.WithLabelValues(internal_telemetry.DropReasonIndeterminateRole).Inc()
		s.logger.Warnf("caller transcription event claims role %s, dropped", speaker)
		return
	}
	text, ok := internal_extractor.ExtractCallerText(packet.Event)
	if !ok {
		s.metrics.DroppedEvents.WithLabelValues(internal_telemetry.DropReasonNoText).Inc()
		return
	}
	s.recorder.AddUtterance(internal_type.SpeakerCaller, text)
}

func (s *Session) onAgentItem(packet internal_type.AgentItemPacket) {
	speaker, ok := internal_extractor.ExtractRole(packet.Event)
	if !ok {
		s.metrics.DroppedEvents.WithLabelValues(internal_telemetry.DropReasonIndeterminateRole).Inc()
		return
	}
	if speaker != internal_type.SpeakerAgent {
		// User items ride the same event stream; they are captured from
		// the transcription leg instead, so this is not a drop worth
		// counting.
		return
	}
	text, ok := internal_extractor.ExtractAgentText(packet.Event)
	if !ok {
		s.metrics.DroppedEvents.WithLabelValues(internal_telemetry.DropReasonNoText).Inc()
		s.logger.Warnf("agent item carried no extractable text")
		return
	}
	s.recorder.AddUtterance(internal_type.SpeakerAgent, text)
}

// Finish ends the session: stop audio, snapshot, encode, store. Exactly one
// conversation record is built per session; repeated Finish calls are
// no-ops. Capture errors degrade (nil audio), they never lose the
// transcript; a persistence failure is surfaced loudly and recorded in the
// journal.
func (s *Session) Finish(ctx context.Context) {
	s.mu.Lock()
	if s.finished {
		s.mu.Unlock()
		return
	}
	s.finished = true
	s.mu.Unlock()

	defer s.metrics.ActiveSessions.Dec()

	s.audio.Stop()
	audioSeconds := s.audio.DurationSeconds()
	s.metrics.DroppedFrames.Add(float64(s.audio.DroppedFrames()))
	snapshot := s.recorder.Snapshot()

	audio, err := s.audio.EncodeToCompressedAudio(ctx, s.bitrate)
	if err != nil {
		s.metrics.EncodeFailures.Inc()
		s.logger.Errorf("audio encode failed, storing transcript without audio: %v", err)
		audio = nil
	}

	record := &internal_type.ConversationRecord{
		Snapshot:         snapshot,
		ConversationDate: s.clock().UTC().Format("2006-01-02"),
		Audio:            audio,
	}

	stored := s.persistence.StoreConversation(ctx, record)
	if !stored {
		// The backend already logged and counted the failure; this line
		// ties it to the session for operators chasing one call.
		s.logger.Errorf("conversation for context=%s was NOT durably stored", s.contextID)
	}

	if s.journal != nil && s.contextID != "" {
		caller, agent := speakerCounts(snapshot.Utterances)
		if err := s.journal.Complete(ctx, s.contextID,
			len(snapshot.Utterances), caller, agent, audioSeconds, stored); err != nil {
			s.logger.Errorf("journal complete failed: %v", err)
		}
	}

	s.logger.Infof("capture session finished, context=%s turns=%d audio=%.2fs stored=%v",
		s.contextID, len(snapshot.Utterances), audioSeconds, stored)
}

func speakerCounts(utterances []internal_type.Utterance) (caller, agent int) {
	for _, u := range utterances {
		switch u.Speaker {
		case internal_type.SpeakerCaller:
			caller++
		case internal_type.SpeakerAgent:
			agent++
		}
	}
	return caller, agent
}
