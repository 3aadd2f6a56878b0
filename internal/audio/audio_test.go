// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_audio

import (
	"encoding/binary"
	"testing"

	"github.com/rapidaai/capture/pkg/commons"
)

func newTestLogger(t *testing.T) commons.Logger {
	t.Helper()
	logger, err := commons.NewApplicationLogger(
		commons.Name("test-audio"),
		commons.Level("debug"),
	)
	if err != nil {
		t.Fatalf("failed to create test logger: %v", err)
	}
	return logger
}

// --- WAV ---

func TestCreateWAVFile_Header(t *testing.T) {
	pcm := make([]byte, 320)
	wav, err := CreateWAVFile(pcm, RAPIDA_INTERNAL_AUDIO_CONFIG)
	if err != nil {
		t.Fatalf("wav failed: %v", err)
	}

	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Error("missing RIFF/WAVE magic")
	}
	if got := binary.LittleEndian.Uint32(wav[4:8]); got != uint32(36+len(pcm)) {
		t.Errorf("bad RIFF size %d", got)
	}
	if got := binary.LittleEndian.Uint32(wav[24:28]); got != 16000 {
		t.Errorf("bad sample rate %d", got)
	}
	if got := binary.LittleEndian.Uint16(wav[22:24]); got != 1 {
		t.Errorf("bad channel count %d", got)
	}
	if got := binary.LittleEndian.Uint32(wav[40:44]); got != uint32(len(pcm)) {
		t.Errorf("bad data size %d", got)
	}
	if len(wav) != 44+len(pcm) {
		t.Errorf("bad total size %d", len(wav))
	}
}

// --- Resample ---

func TestResample_SameRatePassthrough(t *testing.T) {
	pcm := []byte{1, 0, 2, 0}
	out, err := Resample(pcm, RAPIDA_INTERNAL_AUDIO_CONFIG, RAPIDA_INTERNAL_AUDIO_CONFIG)
	if err != nil {
		t.Fatalf("resample failed: %v", err)
	}
	if &out[0] != &pcm[0] {
		t.Error("same-rate resample should not copy")
	}
}

func TestResample_Downsample48to16(t *testing.T) {
	// 6 samples at 48kHz -> 2 samples at 16kHz.
	samples := []int16{3, 3, 3, 9, 9, 9}
	out, err := Resample(samplesToBytes(samples), WEBRTC_AUDIO_CONFIG, RAPIDA_INTERNAL_AUDIO_CONFIG)
	if err != nil {
		t.Fatalf("resample failed: %v", err)
	}
	got := bytesToSamples(out)
	if len(got) != 2 || got[0] != 3 || got[1] != 9 {
		t.Errorf("unexpected downsample output %v", got)
	}
}

func TestResample_Upsample8to16(t *testing.T) {
	samples := []int16{0, 100}
	out, err := Resample(samplesToBytes(samples), TELEPHONY_AUDIO_CONFIG, RAPIDA_INTERNAL_AUDIO_CONFIG)
	if err != nil {
		t.Fatalf("resample failed: %v", err)
	}
	got := bytesToSamples(out)
	if len(got) != 4 {
		t.Fatalf("expected 4 samples, got %d", len(got))
	}
	// Interpolated midpoint between 0 and 100.
	if got[0] != 0 || got[1] != 50 || got[2] != 100 {
		t.Errorf("unexpected upsample output %v", got)
	}
}

func TestResample_OddLengthRejected(t *testing.T) {
	if _, err := Resample([]byte{1}, TELEPHONY_AUDIO_CONFIG, RAPIDA_INTERNAL_AUDIO_CONFIG); err == nil {
		t.Error("expected error for odd pcm length")
	}
}

// --- FrameDecoder ---

func TestNewFrameDecoder_KnownEncodings(t *testing.T) {
	for _, enc := range []string{EncodingLinear16, EncodingMulaw, EncodingAlaw, EncodingOpus} {
		if _, err := NewFrameDecoder(newTestLogger(t), enc, 16000); err != nil {
			t.Errorf("encoding %s rejected: %v", enc, err)
		}
	}
}

func TestNewFrameDecoder_UnknownEncoding(t *testing.T) {
	if _, err := NewFrameDecoder(newTestLogger(t), "mp3", 16000); err == nil {
		t.Error("expected error for unknown encoding")
	}
}

func TestFrameDecoder_Linear16Passthrough(t *testing.T) {
	dec, err := NewFrameDecoder(newTestLogger(t), EncodingLinear16, 16000)
	if err != nil {
		t.Fatalf("decoder failed: %v", err)
	}
	frame := []byte{1, 0, 2, 0}
	out, err := dec.Decode(frame)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(out) != len(frame) {
		t.Errorf("expected passthrough, got %d bytes", len(out))
	}
}

func TestFrameDecoder_MulawExpandsAndResamples(t *testing.T) {
	dec, err := NewFrameDecoder(newTestLogger(t), EncodingMulaw, 8000)
	if err != nil {
		t.Fatalf("decoder failed: %v", err)
	}
	// 160 µ-law bytes = 20ms at 8kHz; normalized to 16kHz LINEAR16 that is
	// 320 samples = 640 bytes.
	out, err := dec.Decode(make([]byte, 160))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(out) != 640 {
		t.Errorf("expected 640 bytes, got %d", len(out))
	}
}

func TestFrameDecoder_EmptyFrame(t *testing.T) {
	dec, _ := NewFrameDecoder(newTestLogger(t), EncodingLinear16, 16000)
	out, err := dec.Decode(nil)
	if err != nil || out != nil {
		t.Errorf("expected nil/nil for empty frame, got %v/%v", out, err)
	}
}
