// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package capture_api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	internal_audio "github.com/rapidaai/capture/internal/audio"
	internal_encoder "github.com/rapidaai/capture/internal/audio/encoder"
	"github.com/rapidaai/capture/internal/audio/recorder"
	internal_conversation "github.com/rapidaai/capture/internal/conversation"
	internal_journal "github.com/rapidaai/capture/internal/journal"
	internal_session "github.com/rapidaai/capture/internal/session"
	internal_telemetry "github.com/rapidaai/capture/internal/telemetry"
	internal_type "github.com/rapidaai/capture/internal/type"
	"github.com/rapidaai/capture/config"
	"github.com/rapidaai/capture/pkg/commons"
	"github.com/rapidaai/capture/pkg/utils"
)

var captureUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type CaptureApi struct {
	cfg         *config.AppConfig
	logger      commons.Logger
	metrics     *internal_telemetry.Metrics
	journal     internal_journal.Store
	persistence internal_type.Persistence
	encoder     internal_encoder.Encoder
}

func NewCaptureApi(
	cfg *config.AppConfig,
	logger commons.Logger,
	metrics *internal_telemetry.Metrics,
	journal internal_journal.Store,
	persistence internal_type.Persistence,
	encoder internal_encoder.Encoder,
) *CaptureApi {
	return &CaptureApi{
		cfg:         cfg,
		logger:      logger,
		metrics:     metrics,
		journal:     journal,
		persistence: persistence,
		encoder:     encoder,
	}
}

// captureMessage is the envelope for text frames on the capture socket.
// Binary frames carry raw audio and never go through this.
type captureMessage struct {
	Type  string                 `json:"type"`
	Event map[string]interface{} `json:"event"`
	Name  string                 `json:"name"`
	Value string                 `json:"value"`
}

// CaptureConnect upgrades the request to a websocket and runs one capture
// session for the lifetime of the connection. Audio frame format is declared
// once at connect time via `encoding` and `sample_rate` query parameters;
// text frames are JSON envelopes typed transcription/item/field/end.
//
// @Router /v1/capture [get]
// @Summary Open a capture session
// @Param encoding query string false "Audio frame encoding (linear16, mulaw, alaw, opus)"
// @Param sample_rate query int false "Audio frame sample rate in Hz"
// @Success 101 "Switching Protocols"
// @Failure 400 {object} gin.H
func (cApi *CaptureApi) CaptureConnect(c *gin.Context) {
	opts := utils.Option{
		"audio.encoding":    c.DefaultQuery("encoding", internal_audio.EncodingLinear16),
		"audio.sample_rate": c.DefaultQuery("sample_rate", strconv.Itoa(int(internal_audio.RAPIDA_INTERNAL_AUDIO_CONFIG.SampleRate))),
	}
	encoding, _ := opts.GetString("audio.encoding")
	sampleRate, err := opts.GetInt("audio.sample_rate")
	if err != nil || sampleRate <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sample_rate"})
		return
	}
	decoder, err := internal_audio.NewFrameDecoder(cApi.logger, encoding, sampleRate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conn, err := captureUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		cApi.logger.Errorf("capture: websocket upgrade failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to upgrade to websocket"})
		return
	}
	defer conn.Close()

	audioRec, err := recorder.NewAudioRecorder(cApi.logger, cApi.encoder)
	if err != nil {
		cApi.logger.Errorf("capture: audio recorder setup failed: %v", err)
		return
	}
	session, err := internal_session.NewSession(c.Request.Context(), internal_session.Params{
		Logger:      cApi.logger,
		Metrics:     cApi.metrics,
		Recorder:    internal_conversation.NewConversationRecorder(cApi.logger, cApi.cfg.AgentName),
		Audio:       audioRec,
		Decoder:     decoder,
		Persistence: cApi.persistence,
		Journal:     cApi.journal,
		AgentName:   cApi.cfg.AgentName,
		BitrateKbps: cApi.cfg.Audio.EncodeBitrateKbps,
	})
	if err != nil {
		cApi.logger.Errorf("capture: session setup failed: %v", err)
		return
	}
	// The request context dies with the socket; finalization (encode, store)
	// must outlive it.
	sessionCtx := context.WithoutCancel(c.Request.Context())
	defer session.Finish(sessionCtx)

	grp, ctx := errgroup.WithContext(c.Request.Context())
	packets := make(chan internal_type.Packet, 64)

	grp.Go(func() error {
		defer close(packets)
		return cApi.readLoop(ctx, conn, packets)
	})
	grp.Go(func() error {
		for packet := range packets {
			if err := session.OnPacket(sessionCtx, packet); err != nil {
				cApi.logger.Errorf("capture: packet dispatch failed: %v", err)
			}
			if _, done := packet.(internal_type.EndSessionPacket); done {
				return nil
			}
		}
		return nil
	})

	if err := grp.Wait(); err != nil {
		cApi.logger.Warnf("capture: connection for context=%s ended: %v", session.ContextID(), err)
	}
}

// readLoop turns websocket messages into packets until the peer closes the
// socket or the session context ends.
func (cApi *CaptureApi) readLoop(ctx context.Context, conn *websocket.Conn, packets chan<- internal_type.Packet) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		messageType, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}

		switch messageType {
		case websocket.BinaryMessage:
			packets <- internal_type.CallerAudioPacket{Audio: payload}

		case websocket.TextMessage:
			var msg captureMessage
			if err := json.Unmarshal(payload, &msg); err != nil {
				cApi.logger.Warnf("capture: malformed text frame dropped: %v", err)
				continue
			}
			switch msg.Type {
			case "transcription":
				packets <- internal_type.CallerTranscriptionPacket{Event: msg.Event}
			case "item":
				packets <- internal_type.AgentItemPacket{Event: msg.Event}
			case "field":
				packets <- internal_type.FieldPacket{Name: msg.Name, Value: msg.Value}
			case "end":
				packets <- internal_type.EndSessionPacket{}
				return nil
			default:
				cApi.logger.Warnf("capture: unknown message type %q dropped", msg.Type)
			}
		}
	}
}
