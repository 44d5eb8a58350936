package asr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/medinter/translation-gateway/internal/audio"
	"github.com/medinter/translation-gateway/internal/config"
	"github.com/medinter/translation-gateway/internal/observability"
	"github.com/medinter/translation-gateway/internal/resilience"
	"github.com/medinter/translation-gateway/internal/riva"
)

// RivaClient recognizes speech via the Riva HTTP gateway. Chunks that fail
// the local energy gate never reach the backend; they resolve immediately
// to an empty non-final result.
type RivaClient struct {
	endpoint   string
	httpClient *http.Client
	gate       *audio.SpeechGate
	breaker    *resilience.CircuitBreaker
	probe      *riva.HealthProbe
	logger     zerolog.Logger
}

type rivaRecognizeResponse struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// NewRivaClient creates a recognizer backed by the configured Riva gateway.
func NewRivaClient(cfg *config.Config) *RivaClient {
	return &RivaClient{
		endpoint:   cfg.RivaHTTPEndpoint,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		gate:       audio.NewSpeechGate(cfg.SpeechEnergyThreshold),
		breaker: resilience.NewCircuitBreaker("riva_asr",
			cfg.CircuitBreakerMaxFailures,
			time.Duration(cfg.CircuitBreakerResetTimeout)*time.Second),
		probe:  riva.NewHealthProbe(cfg.RivaASREndpoint),
		logger: observability.GetLogger().With().Str("component", "riva_asr").Logger(),
	}
}

// Recognize transcribes one audio chunk. Silence, empty input, and backend
// failure all yield an empty non-final result rather than an error, so the
// caller's interim path handles every degraded case the same way.
func (c *RivaClient) Recognize(ctx context.Context, audioData []byte, languageCode string) (*Result, error) {
	noSpeech := &Result{Text: "", IsFinal: false, Confidence: 0}

	if len(audioData) == 0 {
		return noSpeech, nil
	}

	pcm := audioData
	if decoded, err := audio.DecodeWAV(audioData); err == nil {
		pcm = decoded
	}
	if !c.gate.HasSpeech(pcm) {
		return noSpeech, nil
	}

	var parsed rivaRecognizeResponse
	err := c.breaker.Do(func() error {
		url := fmt.Sprintf("%s/v1/asr/recognize?language_code=%s", c.endpoint, languageCode)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(audioData))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "audio/wav")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("recognize request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("riva ASR returned status %d", resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read recognize response: %w", err)
		}
		if err := json.Unmarshal(body, &parsed); err != nil {
			return fmt.Errorf("failed to parse recognize response: %w", err)
		}
		return nil
	})

	observability.UpdateCircuitBreakerState(c.breaker.Name(), int(c.breaker.State()))

	if err != nil {
		c.logger.Error().Err(err).Msg("Recognition failed, treating chunk as no speech")
		observability.RecordError("recognize_error", "riva_asr")
		return noSpeech, nil
	}

	if parsed.Text == "" {
		return noSpeech, nil
	}

	return &Result{Text: parsed.Text, IsFinal: true, Confidence: parsed.Confidence}, nil
}

// Available reports whether the Riva ASR endpoint answers its health check.
func (c *RivaClient) Available(ctx context.Context) bool {
	return c.probe.Available(ctx)
}

// Close releases the health probe connection.
func (c *RivaClient) Close() error {
	return c.probe.Close()
}
