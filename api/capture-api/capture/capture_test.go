// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package capture_api

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internal_audio "github.com/rapidaai/capture/internal/audio"
	internal_telemetry "github.com/rapidaai/capture/internal/telemetry"
	internal_type "github.com/rapidaai/capture/internal/type"
	"github.com/rapidaai/capture/config"
	"github.com/rapidaai/capture/pkg/commons"
)

// channelPersistence hands each stored record to the test goroutine.
type channelPersistence struct {
	records chan *internal_type.ConversationRecord
}

func (p *channelPersistence) StoreConversation(_ context.Context, record *internal_type.ConversationRecord) bool {
	p.records <- record
	return true
}

type identityEncoder struct{}

func (identityEncoder) Encode(_ context.Context, pcm []byte, _ internal_audio.AudioConfig, _ int) ([]byte, error) {
	out := make([]byte, len(pcm))
	copy(out, pcm)
	return out, nil
}
func (identityEncoder) ContentType() string   { return "audio/wav" }
func (identityEncoder) FileExtension() string { return "wav" }

func newCaptureServer(t *testing.T) (*httptest.Server, *channelPersistence) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger, err := commons.NewApplicationLogger(
		commons.Name("test-capture"),
		commons.Level("debug"),
	)
	require.NoError(t, err)

	cfg := &config.AppConfig{
		Name:      "capture-api",
		AgentName: "Camille",
		Audio:     config.AudioConfigSection{EncodeBitrateKbps: 64},
	}
	store := &channelPersistence{records: make(chan *internal_type.ConversationRecord, 1)}
	captureApi := NewCaptureApi(cfg,
		logger,
		internal_telemetry.NewMetrics(prometheus.NewRegistry()),
		nil,
		store,
		identityEncoder{},
	)

	engine := gin.New()
	engine.GET("/v1/capture", captureApi.CaptureConnect)
	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return srv, store
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/capture" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForRecord(t *testing.T, store *channelPersistence) *internal_type.ConversationRecord {
	t.Helper()
	select {
	case record := <-store.records:
		return record
	case <-time.After(5 * time.Second):
		t.Fatal("no conversation record stored")
		return nil
	}
}

func TestCaptureConnect_FullSessionOverWebsocket(t *testing.T) {
	srv, store := newCaptureServer(t)
	conn := dial(t, srv, "")

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"type":  "transcription",
		"event": map[string]interface{}{"text": "Bonjour"},
	}))
	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"type": "item",
		"event": map[string]interface{}{
			"role": "assistant",
			"text": "Bonjour, comment puis-je vous aider?",
		},
	}))
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, make([]byte, 320)))
	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"type": "field", "name": "contact_name", "value": "Dupont",
	}))
	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": "end"}))

	record := waitForRecord(t, store)
	transcript := record.Snapshot.Transcript()
	assert.Contains(t, transcript, "CALLER: Bonjour")
	assert.Contains(t, transcript, "AGENT: Bonjour, comment puis-je vous aider?")
	assert.Equal(t, "Dupont", record.Snapshot.Fields["contact_name"])
	assert.Equal(t, make([]byte, 320), record.Audio)
}

func TestCaptureConnect_ClientDisconnectStillStores(t *testing.T) {
	srv, store := newCaptureServer(t)
	conn := dial(t, srv, "")

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"type":  "transcription",
		"event": map[string]interface{}{"text": "Allô?"},
	}))
	// Abrupt close, no end message. The session must still finalize.
	conn.Close()

	record := waitForRecord(t, store)
	assert.Contains(t, record.Snapshot.Transcript(), "CALLER: Allô?")
}

func TestCaptureConnect_MalformedFramesDoNotKillSession(t *testing.T) {
	srv, store := newCaptureServer(t)
	conn := dial(t, srv, "")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": "no-such-type"}))
	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"type":  "transcription",
		"event": map[string]interface{}{"text": "toujours là"},
	}))
	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": "end"}))

	record := waitForRecord(t, store)
	require.Len(t, record.Snapshot.Utterances, 1)
	assert.Equal(t, "toujours là", record.Snapshot.Utterances[0].Text)
}

func TestCaptureConnect_RejectsUnknownEncoding(t *testing.T) {
	srv, _ := newCaptureServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/capture?encoding=flac"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestCaptureConnect_MulawFramesAreDecoded(t *testing.T) {
	srv, store := newCaptureServer(t)
	conn := dial(t, srv, "?encoding=mulaw&sample_rate=8000")

	// 20ms of µ-law at 8kHz: 160 bytes in, 16kHz linear16 out.
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, make([]byte, 160)))
	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": "end"}))

	record := waitForRecord(t, store)
	assert.Len(t, record.Audio, 640)
}