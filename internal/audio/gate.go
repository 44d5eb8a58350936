package audio

import (
	"encoding/binary"
	"math"
)

// SpeechGate decides whether an audio chunk plausibly contains speech, so
// the recognizer can short-circuit silence without a backend round trip.
// It treats the input as 16-bit little-endian mono PCM and compares RMS
// energy against a threshold.
type SpeechGate struct {
	energyThreshold float64
}

// NewSpeechGate creates a gate with the given RMS energy threshold.
func NewSpeechGate(energyThreshold float64) *SpeechGate {
	return &SpeechGate{energyThreshold: energyThreshold}
}

// HasSpeech reports whether the chunk's RMS energy exceeds the threshold.
// Empty or sub-sample input never counts as speech.
func (g *SpeechGate) HasSpeech(pcm []byte) bool {
	return g.Energy(pcm) >= g.energyThreshold
}

// Energy computes the RMS energy of a 16-bit PCM chunk.
func (g *SpeechGate) Energy(pcm []byte) float64 {
	if len(pcm) < 2 {
		return 0
	}

	var sum float64
	n := len(pcm) / 2
	for i := 0; i < n; i++ {
		sample := int16(binary.LittleEndian.Uint16(pcm[i*2:]))
		sum += float64(sample) * float64(sample)
	}
	return math.Sqrt(sum / float64(n))
}
