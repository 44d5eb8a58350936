package realtime

import (
	"github.com/medinter/translation-gateway/internal/medical"
	"github.com/medinter/translation-gateway/internal/session"
)

// Client→server message discriminants.
const (
	TypeConfig        = "config"
	TypeAudioChunk    = "audio_chunk"
	TypeTextInput     = "text_input"
	TypeSwitchSpeaker = "switch_speaker"
	TypeEndSession    = "end_session"
)

// clientMessage is the closed set of inbound messages. Type selects the
// variant; absent fields keep the connection's current binding.
type clientMessage struct {
	Type       string `json:"type"`
	SourceLang string `json:"source_lang,omitempty"`
	TargetLang string `json:"target_lang,omitempty"`
	SessionID  string `json:"session_id,omitempty"`
	Audio      string `json:"audio,omitempty"` // base64-encoded audio payload
	Text       string `json:"text,omitempty"`
}

// Server→client messages, one struct per discriminant.

type configAck struct {
	Type       string `json:"type"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

type partialTranscript struct {
	Type    string `json:"type"`
	Text    string `json:"text"`
	IsFinal bool   `json:"is_final"`
}

type translationResult struct {
	Type         string           `json:"type"`
	Original     string           `json:"original"`
	Translation  string           `json:"translation"`
	MedicalTerms []medical.Entity `json:"medical_terms"`
	Flags        []string         `json:"flags"`
	Urgency      string           `json:"urgency"`
	Audio        string           `json:"audio"`
}

type speakerSwitched struct {
	Type           string          `json:"type"`
	CurrentSpeaker session.Speaker `json:"current_speaker"`
}

type sessionEnded struct {
	Type    string           `json:"type"`
	Summary *session.Summary `json:"summary"`
}

func newConfigAck(sourceLang, targetLang string) configAck {
	return configAck{Type: "config_ack", SourceLang: sourceLang, TargetLang: targetLang}
}

func newPartialTranscript(text string, isFinal bool) partialTranscript {
	return partialTranscript{Type: "partial_transcript", Text: text, IsFinal: isFinal}
}

func newSpeakerSwitched(speaker session.Speaker) speakerSwitched {
	return speakerSwitched{Type: "speaker_switched", CurrentSpeaker: speaker}
}

func newSessionEnded(summary *session.Summary) sessionEnded {
	return sessionEnded{Type: "session_ended", Summary: summary}
}
