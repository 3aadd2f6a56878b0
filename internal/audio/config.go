// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_audio

// AudioConfig describes a PCM stream layout. All internal audio is LINEAR16
// (16-bit signed little-endian).
type AudioConfig struct {
	SampleRate uint32
	Channels   uint16
}

const (
	AudioBytesPerSample = 2  // LINEAR16 sample width in bytes
	AudioBitsPerSample  = 16 // LINEAR16 sample width in bits
	AudioPCMFormat      = 1  // WAV PCM format tag
)

var (
	// RAPIDA_INTERNAL_AUDIO_CONFIG is the canonical in-memory format.
	// Every inbound frame is normalized to this before buffering.
	RAPIDA_INTERNAL_AUDIO_CONFIG = AudioConfig{SampleRate: 16000, Channels: 1}

	// WEBRTC_AUDIO_CONFIG is what Opus-carrying transports deliver.
	WEBRTC_AUDIO_CONFIG = AudioConfig{SampleRate: 48000, Channels: 1}

	// TELEPHONY_AUDIO_CONFIG is what µ-law/A-law telephony legs deliver.
	TELEPHONY_AUDIO_CONFIG = AudioConfig{SampleRate: 8000, Channels: 1}
)

// BytesPerSecond is the LINEAR16 byte rate of the configuration.
func (c AudioConfig) BytesPerSecond() int {
	return int(c.SampleRate) * int(c.Channels) * AudioBytesPerSample
}

// FrameAlign truncates a byte count down to a whole-sample boundary.
func (c AudioConfig) FrameAlign(n int) int {
	frameSize := AudioBytesPerSample * int(c.Channels)
	return (n / frameSize) * frameSize
}
