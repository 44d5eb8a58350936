// Package pipeline orchestrates one utterance through recognition,
// translation, entity normalization, and speech synthesis. It holds no
// session state; persisting the resulting exchange is the caller's job.
package pipeline

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/medinter/translation-gateway/internal/asr"
	"github.com/medinter/translation-gateway/internal/medical"
	"github.com/medinter/translation-gateway/internal/observability"
	"github.com/medinter/translation-gateway/internal/translator"
	"github.com/medinter/translation-gateway/internal/tts"
)

// Result is the outcome of one utterance. Interim results bypass
// translation and synthesis entirely: only Text and IsFinal carry meaning
// and they surface to the client as a partial-transcript signal.
type Result struct {
	Interim bool
	Text    string
	IsFinal bool

	Translation  string
	MedicalTerms []medical.Entity
	Flags        []string
	Urgency      string
	Audio        string // base64 WAV
}

// Pipeline wires the three collaborators together.
type Pipeline struct {
	recognizer  asr.Recognizer
	translator  translator.Translator
	synthesizer tts.Synthesizer
	logger      zerolog.Logger
}

// New creates a pipeline over the given collaborators.
func New(rec asr.Recognizer, tr translator.Translator, syn tts.Synthesizer) *Pipeline {
	return &Pipeline{
		recognizer:  rec,
		translator:  tr,
		synthesizer: syn,
		logger:      observability.GetLogger().With().Str("component", "pipeline").Logger(),
	}
}

// ProcessAudio recognizes an audio chunk and, when recognition is final,
// runs the full translate/normalize/synthesize chain. No-speech and
// interim recognition short-circuit to an interim result.
func (p *Pipeline) ProcessAudio(ctx context.Context, audioData []byte, sourceLang, targetLang string) (*Result, error) {
	start := time.Now()
	rec, err := p.recognizer.Recognize(ctx, audioData, sourceLang)
	observability.RecordStageLatency("recognize", time.Since(start))
	if err != nil {
		return nil, err
	}

	if rec.Text == "" || !rec.IsFinal {
		return &Result{Interim: true, Text: rec.Text, IsFinal: rec.IsFinal}, nil
	}

	return p.completeUtterance(ctx, rec.Text, sourceLang, targetLang)
}

// ProcessText runs the chain for directly supplied text, skipping
// recognition.
func (p *Pipeline) ProcessText(ctx context.Context, text, sourceLang, targetLang string) (*Result, error) {
	return p.completeUtterance(ctx, text, sourceLang, targetLang)
}

func (p *Pipeline) completeUtterance(ctx context.Context, text, sourceLang, targetLang string) (*Result, error) {
	start := time.Now()
	tr, err := p.translator.Translate(ctx, text, sourceLang, targetLang)
	observability.RecordStageLatency("translate", time.Since(start))
	if err != nil {
		return nil, err
	}

	urgency := tr.Urgency
	if urgency == "" {
		urgency = translator.DefaultUrgency
	}
	terms := medical.Normalize(tr.MedicalTerms)
	flags := tr.Flags
	if flags == nil {
		flags = []string{}
	}

	start = time.Now()
	audioOut, err := p.synthesizer.Synthesize(ctx, tr.Translation, targetLang)
	observability.RecordStageLatency("synthesize", time.Since(start))
	if err != nil {
		return nil, err
	}

	return &Result{
		Text:         text,
		IsFinal:      true,
		Translation:  tr.Translation,
		MedicalTerms: terms,
		Flags:        flags,
		Urgency:      urgency,
		Audio:        audioOut,
	}, nil
}
