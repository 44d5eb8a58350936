package pipeline

import (
	"context"
	"testing"

	"github.com/medinter/translation-gateway/internal/asr"
	"github.com/medinter/translation-gateway/internal/medical"
	"github.com/medinter/translation-gateway/internal/translator"
)

type fakeRecognizer struct {
	result asr.Result
	calls  int
}

func (f *fakeRecognizer) Recognize(ctx context.Context, audioData []byte, languageCode string) (*asr.Result, error) {
	f.calls++
	r := f.result
	return &r, nil
}
func (f *fakeRecognizer) Available(ctx context.Context) bool { return true }
func (f *fakeRecognizer) Close() error                       { return nil }

type fakeTranslator struct {
	result translator.Result
	calls  int
}

func (f *fakeTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (*translator.Result, error) {
	f.calls++
	r := f.result
	return &r, nil
}
func (f *fakeTranslator) Available(ctx context.Context) bool { return true }
func (f *fakeTranslator) Close() error                       { return nil }

type fakeSynthesizer struct {
	calls int
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, text, languageCode string) (string, error) {
	f.calls++
	return "YXVkaW8=", nil
}
func (f *fakeSynthesizer) Available(ctx context.Context) bool { return true }
func (f *fakeSynthesizer) Close() error                       { return nil }

func TestProcessAudioNoSpeech(t *testing.T) {
	tr := &fakeTranslator{}
	syn := &fakeSynthesizer{}
	p := New(&fakeRecognizer{result: asr.Result{Text: "", IsFinal: false}}, tr, syn)

	got, err := p.ProcessAudio(context.Background(), []byte{0, 0}, "es-US", "en-US")
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}

	if !got.Interim {
		t.Error("no-speech result should be interim")
	}
	if got.Text != "" || got.IsFinal {
		t.Errorf("expected empty non-final result, got %+v", got)
	}
	if tr.calls != 0 || syn.calls != 0 {
		t.Error("interim results must bypass translation and synthesis")
	}
}

func TestProcessAudioInterimText(t *testing.T) {
	tr := &fakeTranslator{}
	p := New(&fakeRecognizer{result: asr.Result{Text: "me du", IsFinal: false}}, tr, &fakeSynthesizer{})

	got, _ := p.ProcessAudio(context.Background(), []byte{1}, "es-US", "en-US")

	if !got.Interim || got.Text != "me du" {
		t.Errorf("expected interim text result, got %+v", got)
	}
	if tr.calls != 0 {
		t.Error("interim recognition must not trigger translation")
	}
}

func TestProcessAudioFinal(t *testing.T) {
	rec := &fakeRecognizer{result: asr.Result{Text: "me duele la cabeza", IsFinal: true, Confidence: 0.92}}
	tr := &fakeTranslator{result: translator.Result{
		Translation:  "my head hurts",
		MedicalTerms: []medical.RawTerm{{Term: "Headache", Category: "SYMPTOM", Original: "dolor de cabeza"}},
		Flags:        []string{"check onset"},
		Urgency:      "high",
	}}
	syn := &fakeSynthesizer{}
	p := New(rec, tr, syn)

	got, err := p.ProcessAudio(context.Background(), []byte{1, 2}, "es-US", "en-US")
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}

	if got.Interim {
		t.Fatal("final recognition should complete the pipeline")
	}
	if got.Text != "me duele la cabeza" || got.Translation != "my head hurts" {
		t.Errorf("unexpected texts: %+v", got)
	}
	if len(got.MedicalTerms) != 1 || got.MedicalTerms[0].Category != medical.CategorySymptom {
		t.Errorf("terms should be normalized: %+v", got.MedicalTerms)
	}
	if got.Urgency != "high" {
		t.Errorf("urgency: got %q", got.Urgency)
	}
	if got.Audio != "YXVkaW8=" {
		t.Errorf("audio: got %q", got.Audio)
	}
	if syn.calls != 1 {
		t.Errorf("synthesizer calls: got %d", syn.calls)
	}
}

func TestProcessTextSkipsRecognition(t *testing.T) {
	rec := &fakeRecognizer{}
	p := New(rec, &fakeTranslator{result: translator.Result{Translation: "hello"}}, &fakeSynthesizer{})

	got, err := p.ProcessText(context.Background(), "hola", "es-US", "en-US")
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}

	if rec.calls != 0 {
		t.Error("text input must skip recognition")
	}
	if got.Interim {
		t.Error("text input always yields a complete result")
	}
	if got.Text != "hola" || got.Translation != "hello" {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestProcessTextDefaults(t *testing.T) {
	// Translator omits urgency, terms, and flags.
	p := New(&fakeRecognizer{}, &fakeTranslator{result: translator.Result{Translation: "x"}}, &fakeSynthesizer{})

	got, _ := p.ProcessText(context.Background(), "y", "es-US", "en-US")

	if got.Urgency != translator.DefaultUrgency {
		t.Errorf("urgency should default to %q, got %q", translator.DefaultUrgency, got.Urgency)
	}
	if got.MedicalTerms == nil || got.Flags == nil {
		t.Error("terms and flags must be empty slices, not nil")
	}
}
