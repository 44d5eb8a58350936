// Package session owns all translation session state. The registry is the
// single authority: sessions are created, mutated, ended, and swept only
// through it, and no caller retains a reference to mutable session state
// across calls.
package session

import (
	"time"

	"github.com/medinter/translation-gateway/internal/medical"
)

// Speaker identifies which party produced an utterance.
type Speaker string

const (
	SpeakerPatient  Speaker = "patient"
	SpeakerProvider Speaker = "provider"
)

// Mode is the session interaction mode.
type Mode string

const (
	ModeConversation Mode = "conversation"
	ModeOneWay       Mode = "one-way"
	ModeDictation    Mode = "dictation"
)

// Exchange is one recognized-and-translated utterance within a session.
// Speaker and Timestamp are stamped by the registry on append.
type Exchange struct {
	Speaker      Speaker          `json:"speaker"`
	Original     string           `json:"original"`
	Translation  string           `json:"translation"`
	MedicalTerms []medical.Entity `json:"medical_terms"`
	Flags        []string         `json:"flags"`
	Urgency      string           `json:"urgency"`
	Timestamp    time.Time        `json:"timestamp"`
}

// Descriptor is a metadata snapshot of a session. It carries no exchange
// content and is safe to hand to any caller.
type Descriptor struct {
	SessionID       string  `json:"session_id"`
	SourceLang      string  `json:"source_lang"`
	TargetLang      string  `json:"target_lang"`
	ExchangeCount   int     `json:"exchange_count"`
	DurationSeconds float64 `json:"duration_seconds"`
	CurrentSpeaker  Speaker `json:"current_speaker"`
	Mode            Mode    `json:"mode"`
	Active          bool    `json:"-"`
}

// Summary is the end-of-session report. After the initial summary the
// detailed fields are never reproduced: transcript data is purged when the
// session ends.
type Summary struct {
	SessionID       string                  `json:"session_id"`
	DurationSeconds float64                 `json:"duration_seconds"`
	SourceLang      string                  `json:"source_lang"`
	TargetLang      string                  `json:"target_lang"`
	ExchangeCount   int                     `json:"exchange_count"`
	MedicalTerms    []medical.Entity        `json:"medical_terms"`
	ClinicalSummary medical.ClinicalSummary `json:"clinical_summary"`
	Flags           []string                `json:"flags"`
	Mode            Mode                    `json:"mode"`
	Note            string                  `json:"note,omitempty"`
}

// PurgeNote explains why an after-the-fact summary carries no detail.
const PurgeNote = "Detailed data was purged for privacy after initial summary generation."

// state is the registry-private mutable record for one session.
type state struct {
	id             string
	sourceLang     string
	targetLang     string
	mode           Mode
	createdAt      time.Time
	currentSpeaker Speaker
	active         bool
	exchanges      []Exchange

	// Snapshots taken when the session ends. The post-purge summary path
	// can no longer derive these from exchanges, and repeated summary
	// calls must return identical output.
	endedAt          time.Time
	endedDuration    float64
	endedExchanges   int
}
