// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_audio

import (
	"fmt"

	"github.com/rapidaai/capture/pkg/commons"
	"github.com/zaf/g711"
	opus "gopkg.in/hraban/opus.v2"
)

// Wire encodings a capture transport may declare at connect time.
const (
	EncodingLinear16 = "linear16"
	EncodingMulaw    = "mulaw"
	EncodingAlaw     = "alaw"
	EncodingOpus     = "opus"
)

// maxOpusFrameSamples covers the largest Opus frame (120ms at 48kHz).
const maxOpusFrameSamples = 5760

// FrameDecoder normalizes inbound transport frames to the internal LINEAR16
// 16kHz mono format. One decoder per session: the Opus decoder is stateful.
type FrameDecoder struct {
	logger   commons.Logger
	encoding string
	src      AudioConfig
	opusDec  *opus.Decoder
	pcmBuf   []int16
}

// NewFrameDecoder builds a decoder for the declared wire encoding.
func NewFrameDecoder(logger commons.Logger, encoding string, sampleRate int) (*FrameDecoder, error) {
	d := &FrameDecoder{
		logger:   logger,
		encoding: encoding,
		src:      AudioConfig{SampleRate: uint32(sampleRate), Channels: 1},
	}
	switch encoding {
	case EncodingLinear16:
		// passthrough, resampled below when needed

	case EncodingMulaw, EncodingAlaw:
		d.src = TELEPHONY_AUDIO_CONFIG

	case EncodingOpus:
		d.src = WEBRTC_AUDIO_CONFIG
		dec, err := opus.NewDecoder(int(d.src.SampleRate), int(d.src.Channels))
		if err != nil {
			return nil, fmt.Errorf("opus decoder: %w", err)
		}
		d.opusDec = dec
		d.pcmBuf = make([]int16, maxOpusFrameSamples)

	default:
		return nil, fmt.Errorf("unknown audio encoding %q", encoding)
	}
	return d, nil
}

// Decode converts one wire frame to internal LINEAR16 16kHz mono PCM.
func (d *FrameDecoder) Decode(frame []byte) ([]byte, error) {
	if len(frame) == 0 {
		return nil, nil
	}

	var pcm []byte
	switch d.encoding {
	case EncodingLinear16:
		pcm = frame

	case EncodingMulaw:
		pcm = g711.DecodeUlaw(frame)

	case EncodingAlaw:
		pcm = g711.DecodeAlaw(frame)

	case EncodingOpus:
		n, err := d.opusDec.Decode(frame, d.pcmBuf)
		if err != nil {
			return nil, fmt.Errorf("opus decode: %w", err)
		}
		pcm = samplesToBytes(d.pcmBuf[:n])
	}

	return Resample(pcm, d.src, RAPIDA_INTERNAL_AUDIO_CONFIG)
}
