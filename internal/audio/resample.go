// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_audio

import (
	"encoding/binary"
	"fmt"
)

// Resample converts LINEAR16 mono PCM between the known stream
// configurations. Downsampling averages each group of source samples
// (cheap low-pass before decimation); upsampling linearly interpolates.
// Voice calls do not need better fidelity than this.
func Resample(pcm []byte, from, to AudioConfig) ([]byte, error) {
	if from.Channels != 1 || to.Channels != 1 {
		return nil, fmt.Errorf("resample: only mono is supported")
	}
	if from.SampleRate == to.SampleRate {
		return pcm, nil
	}
	if len(pcm)%AudioBytesPerSample != 0 {
		return nil, fmt.Errorf("resample: odd pcm length %d", len(pcm))
	}

	samples := bytesToSamples(pcm)
	var out []int16

	switch {
	case from.SampleRate%to.SampleRate == 0:
		ratio := int(from.SampleRate / to.SampleRate)
		out = make([]int16, 0, len(samples)/ratio)
		for i := 0; i+ratio <= len(samples); i += ratio {
			sum := 0
			for j := 0; j < ratio; j++ {
				sum += int(samples[i+j])
			}
			out = append(out, int16(sum/ratio))
		}

	case to.SampleRate%from.SampleRate == 0:
		ratio := int(to.SampleRate / from.SampleRate)
		out = make([]int16, 0, len(samples)*ratio)
		for i := 0; i < len(samples); i++ {
			cur := samples[i]
			next := cur
			if i+1 < len(samples) {
				next = samples[i+1]
			}
			for j := 0; j < ratio; j++ {
				v := int(cur) + (int(next)-int(cur))*j/ratio
				out = append(out, int16(v))
			}
		}

	default:
		return nil, fmt.Errorf("resample: unsupported rate pair %d to %d",
			from.SampleRate, to.SampleRate)
	}

	return samplesToBytes(out), nil
}

func bytesToSamples(pcm []byte) []int16 {
	samples := make([]int16, len(pcm)/AudioBytesPerSample)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(pcm[i*2:]))
	}
	return samples
}

func samplesToBytes(samples []int16) []byte {
	pcm := make([]byte, len(samples)*AudioBytesPerSample)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(s))
	}
	return pcm
}
