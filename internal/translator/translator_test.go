package translator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/medinter/translation-gateway/internal/config"
)

func TestMockLanguageDefaults(t *testing.T) {
	m := NewMock()

	es, err := m.Translate(context.Background(), "tengo dolor", "es-US", "en-US")
	if err != nil {
		t.Fatalf("mock translate failed: %v", err)
	}
	if es.Translation != "I have a very strong headache and I feel dizzy" {
		t.Errorf("unexpected es-US default: %q", es.Translation)
	}
	if es.Urgency != "high" {
		t.Errorf("es-US default urgency: got %q", es.Urgency)
	}

	zh, _ := m.Translate(context.Background(), "...", "zh-CN", "en-US")
	if len(zh.MedicalTerms) != 2 || zh.MedicalTerms[0].Term != "Chest pain" {
		t.Errorf("unexpected zh-CN default terms: %+v", zh.MedicalTerms)
	}
}

func TestMockPoolRotation(t *testing.T) {
	m := NewMock()

	var seen []string
	for i := 0; i < len(mockPool)+1; i++ {
		// fr-FR has no canned default, so the pool rotates.
		r, err := m.Translate(context.Background(), "bonjour", "fr-FR", "en-US")
		if err != nil {
			t.Fatalf("mock translate failed: %v", err)
		}
		seen = append(seen, r.Translation)
	}

	for i := 0; i < len(mockPool); i++ {
		if seen[i] != mockPool[i].Translation {
			t.Errorf("rotation position %d: got %q, want %q", i, seen[i], mockPool[i].Translation)
		}
	}
	if seen[len(mockPool)] != mockPool[0].Translation {
		t.Error("rotation should wrap around to the first pool entry")
	}
}

func nimTestConfig(endpoint string) *config.Config {
	os.Setenv("MOCK_MODE", "true")
	defer os.Unsetenv("MOCK_MODE")
	cfg, _ := config.LoadFromEnv()
	cfg.NIMEndpoint = endpoint
	cfg.RetryMaxAttempts = 1
	return cfg
}

func TestNIMClientParsesModelReply(t *testing.T) {
	reply := map[string]any{
		"translation":   "my stomach hurts",
		"medical_terms": []map[string]string{{"term": "Stomach pain", "category": "symptom", "original": "dolor de estómago"}},
		"flags":         []string{},
		"urgency":       "low",
	}
	content, _ := json.Marshal(reply)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": string(content)}},
			},
		})
	}))
	defer srv.Close()

	c := NewNIMClient(nimTestConfig(srv.URL))
	got, err := c.Translate(context.Background(), "me duele el estómago", "es-US", "en-US")
	if err != nil {
		t.Fatalf("translate failed: %v", err)
	}

	if got.Translation != "my stomach hurts" {
		t.Errorf("translation: got %q", got.Translation)
	}
	if len(got.MedicalTerms) != 1 || got.MedicalTerms[0].Term != "Stomach pain" {
		t.Errorf("terms: got %+v", got.MedicalTerms)
	}
	if got.Urgency != "low" {
		t.Errorf("urgency: got %q", got.Urgency)
	}
}

func TestNIMClientDefaultsMissingUrgency(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": `{"translation": "hello"}`}},
			},
		})
	}))
	defer srv.Close()

	c := NewNIMClient(nimTestConfig(srv.URL))
	got, err := c.Translate(context.Background(), "hola", "fr-FR", "en-US")
	if err != nil {
		t.Fatalf("translate failed: %v", err)
	}

	if got.Urgency != DefaultUrgency {
		t.Errorf("missing urgency should default to %q, got %q", DefaultUrgency, got.Urgency)
	}
	if got.MedicalTerms == nil || got.Flags == nil {
		t.Error("terms and flags should default to empty, not nil")
	}
}

func TestNIMClientFallsBackOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewNIMClient(nimTestConfig(srv.URL))
	got, err := c.Translate(context.Background(), "bonjour", "fr-FR", "en-US")
	if err != nil {
		t.Fatalf("fallback path must not error: %v", err)
	}
	if got.Translation != mockPool[0].Translation {
		t.Errorf("expected first pool entry as fallback, got %q", got.Translation)
	}
}

func TestNIMClientAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/models" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewNIMClient(nimTestConfig(srv.URL))
	if !c.Available(context.Background()) {
		t.Error("expected available when /v1/models answers 200")
	}

	srv.Close()
	if c.Available(context.Background()) {
		t.Error("expected unavailable once the server is gone")
	}
}
