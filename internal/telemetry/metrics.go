// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package internal_telemetry exposes the diagnostic counters operators use
// to detect capture data loss. A persistence failure is a loud signal here
// and in the logs, never a silent drop.
package internal_telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Drop reasons for capture_dropped_events_total.
const (
	DropReasonNoText            = "no_text"
	DropReasonIndeterminateRole = "indeterminate_role"
	DropReasonUnknownPacket     = "unknown_packet"
	DropReasonDecode            = "frame_decode"
)

// Metrics holds the capture-layer instruments. One instance per process,
// shared read-only by all sessions.
type Metrics struct {
	DroppedEvents       *prometheus.CounterVec
	DroppedFrames       prometheus.Counter
	EncodeFailures      prometheus.Counter
	PersistenceFailures *prometheus.CounterVec
	ActiveSessions      prometheus.Gauge
}

// NewMetrics creates and registers the capture metrics on the given
// registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DroppedEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "capture_dropped_events_total",
			Help: "Transcript events dropped instead of guessed at.",
		}, []string{"reason"}),
		DroppedFrames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "capture_dropped_frames_total",
			Help: "Audio frames rejected outside the Recording state.",
		}),
		EncodeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "capture_encode_failures_total",
			Help: "Sessions whose audio encode failed and were stored without audio.",
		}),
		PersistenceFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "capture_persistence_failures_total",
			Help: "Conversations that could not be durably stored.",
		}, []string{"backend"}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "capture_active_sessions",
			Help: "Live capture sessions.",
		}),
	}
	reg.MustRegister(
		m.DroppedEvents,
		m.DroppedFrames,
		m.EncodeFailures,
		m.PersistenceFailures,
		m.ActiveSessions,
	)
	return m
}
