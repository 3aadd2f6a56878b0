// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_audio

import (
	"bytes"
	"encoding/binary"
)

// CreateWAVFile wraps LINEAR16 PCM in a RIFF/WAVE container.
func CreateWAVFile(pcmData []byte, cfg AudioConfig) ([]byte, error) {
	var buf bytes.Buffer
	bps := cfg.BytesPerSecond()

	buf.Write([]byte("RIFF"))
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcmData)))
	buf.Write([]byte("WAVE"))

	buf.Write([]byte("fmt "))
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(AudioPCMFormat))
	binary.Write(&buf, binary.LittleEndian, uint16(cfg.Channels))
	binary.Write(&buf, binary.LittleEndian, uint32(cfg.SampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(bps))
	binary.Write(&buf, binary.LittleEndian, uint16(AudioBytesPerSample*int(cfg.Channels)))
	binary.Write(&buf, binary.LittleEndian, uint16(AudioBitsPerSample))

	// data chunk
	buf.Write([]byte("data"))
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcmData)))
	buf.Write(pcmData)

	return buf.Bytes(), nil
}
