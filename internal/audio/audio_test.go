package audio

import (
	"encoding/binary"
	"testing"
	"time"
)

func TestEncodeWAVHeader(t *testing.T) {
	pcm := make([]byte, 320)
	wav := EncodeWAV(pcm, 16000)

	if len(wav) != 44+len(pcm) {
		t.Fatalf("unexpected WAV size: %d", len(wav))
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Error("missing RIFF/WAVE markers")
	}
	if rate := binary.LittleEndian.Uint32(wav[24:28]); rate != 16000 {
		t.Errorf("sample rate: got %d, want 16000", rate)
	}
	if dataLen := binary.LittleEndian.Uint32(wav[40:44]); int(dataLen) != len(pcm) {
		t.Errorf("data length: got %d, want %d", dataLen, len(pcm))
	}
}

func TestSilenceSampleCount(t *testing.T) {
	wav := Silence(time.Second, 22050)

	dataLen := binary.LittleEndian.Uint32(wav[40:44])
	if int(dataLen) != 22050*2 {
		t.Errorf("one second of 16-bit silence should be %d bytes, got %d", 22050*2, dataLen)
	}
	for _, b := range wav[44:] {
		if b != 0 {
			t.Fatal("silence payload must be all zero samples")
		}
	}
}

func TestDecodeWAVRoundTrip(t *testing.T) {
	pcm := []byte{1, 2, 3, 4}
	got, err := DecodeWAV(EncodeWAV(pcm, 16000))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if string(got) != string(pcm) {
		t.Errorf("payload mismatch: %v", got)
	}

	if _, err := DecodeWAV([]byte("not audio")); err == nil {
		t.Error("expected error for non-WAV input")
	}
}

func TestSpeechGate(t *testing.T) {
	gate := NewSpeechGate(500)

	silence := make([]byte, 320)
	if gate.HasSpeech(silence) {
		t.Error("silence should not register as speech")
	}

	loud := make([]byte, 320)
	for i := 0; i < len(loud); i += 2 {
		binary.LittleEndian.PutUint16(loud[i:], uint16(int16(8000)))
	}
	if !gate.HasSpeech(loud) {
		t.Error("loud signal should register as speech")
	}

	if gate.HasSpeech(nil) {
		t.Error("empty input should never register as speech")
	}
}
