// Package audio provides the small amount of audio handling the gateway
// needs: wrapping PCM in a WAV container, generating silent fallback audio,
// and a cheap energy gate for detecting speech in inbound chunks.
package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"
)

const wavHeaderSize = 44

// EncodeWAV wraps 16-bit mono PCM samples in a WAV container.
func EncodeWAV(pcm []byte, sampleRate int) []byte {
	dataLen := len(pcm)
	buf := bytes.NewBuffer(make([]byte, 0, wavHeaderSize+dataLen))

	byteRate := sampleRate * 2 // mono, 16-bit

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16)) // PCM chunk size
	binary.Write(buf, binary.LittleEndian, uint16(1))  // PCM format
	binary.Write(buf, binary.LittleEndian, uint16(1))  // mono
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(buf, binary.LittleEndian, uint16(2))  // block align
	binary.Write(buf, binary.LittleEndian, uint16(16)) // bits per sample
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(dataLen))
	buf.Write(pcm)

	return buf.Bytes()
}

// Silence generates a silent WAV payload of the given duration. Used as the
// synthesis fallback so clients always receive audio in the same container
// format.
func Silence(duration time.Duration, sampleRate int) []byte {
	samples := int(float64(sampleRate) * duration.Seconds())
	return EncodeWAV(make([]byte, samples*2), sampleRate)
}

// DecodeWAV strips a WAV header and returns the PCM payload. The payload of
// inbound chunks is treated as opaque elsewhere; this exists only so the
// energy gate can inspect samples.
func DecodeWAV(data []byte) ([]byte, error) {
	if len(data) < wavHeaderSize || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, fmt.Errorf("not a WAV payload")
	}
	return data[wavHeaderSize:], nil
}
