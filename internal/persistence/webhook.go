// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	internal_telemetry "github.com/rapidaai/capture/internal/telemetry"
	internal_type "github.com/rapidaai/capture/internal/type"
	"github.com/rapidaai/capture/pkg/commons"
)

// webhookPersistence posts finished conversations to the external workflow
// engine. One request per record: JSON body without audio, multipart with a
// binary audio part when audio is present. Any non-success response or
// transport error is absorbed here (logged, counted, reported as false) so
// a storage outage can never crash an in-progress or subsequent session.
// No automatic retry; that policy belongs to whoever owns the workflow.
type webhookPersistence struct {
	logger  commons.Logger
	metrics *internal_telemetry.Metrics
	baseURL string
	token   string
	client  *resty.Client
	// uploads get double the timeout: audio payloads are megabytes.
	uploadClient *resty.Client
}

// NewWebhookPersistence builds the remote backend.
func NewWebhookPersistence(logger commons.Logger, metrics *internal_telemetry.Metrics, baseURL, token string, timeout time.Duration) internal_type.Persistence {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &webhookPersistence{
		logger:       logger,
		metrics:      metrics,
		baseURL:      strings.TrimRight(baseURL, "/"),
		token:        token,
		client:       resty.New().SetTimeout(timeout),
		uploadClient: resty.New().SetTimeout(2 * timeout),
	}
}

func (p *webhookPersistence) StoreConversation(ctx context.Context, record *internal_type.ConversationRecord) bool {
	url := p.baseURL + "/store_conversation"
	payload := buildPayload(record)

	body, err := json.Marshal(payload)
	if err != nil {
		p.fail("marshal payload: %v", err)
		return false
	}

	var resp *resty.Response
	if len(record.Audio) > 0 {
		p.logger.Infof("storing conversation to %s with audio (%.2fMB)",
			url, float64(len(record.Audio))/1024/1024)
		req := p.uploadClient.R().
			SetContext(ctx).
			SetMultipartField("metadata", "metadata.json", "application/json; charset=utf-8", bytes.NewReader(body)).
			SetMultipartField("audio", "recording.mp3", "audio/mpeg", bytes.NewReader(record.Audio))
		if p.token != "" {
			req.SetAuthToken(p.token)
		}
		resp, err = req.Post(url)
	} else {
		p.logger.Infof("storing conversation to %s", url)
		req := p.client.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json; charset=utf-8").
			SetBody(body)
		if p.token != "" {
			req.SetAuthToken(p.token)
		}
		resp, err = req.Post(url)
	}

	if err != nil {
		p.fail("webhook request: %v", err)
		return false
	}
	if !resp.IsSuccess() {
		p.fail("webhook HTTP %d: %s", resp.StatusCode(), resp.String())
		return false
	}

	p.logger.Infof("conversation stored, webhook HTTP %d", resp.StatusCode())
	return true
}

// fail makes the data loss loud: errors in the log plus a counter operators
// can alert on.
func (p *webhookPersistence) fail(format string, args ...interface{}) {
	p.logger.Errorf("CONVERSATION NOT STORED: "+format, args...)
	p.metrics.PersistenceFailures.WithLabelValues("webhook").Inc()
}
