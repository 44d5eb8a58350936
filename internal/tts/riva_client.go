package tts

import (
	"bytes"
	"context"
	"encoding/base64"
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

// RivaClient synthesizes speech via the Riva HTTP gateway. The gateway
// returns raw 16-bit PCM; the client wraps it in a WAV container before
// encoding. On failure it substitutes a silent payload of the same format.
type RivaClient struct {
	endpoint   string
	sampleRate int
	httpClient *http.Client
	breaker    *resilience.CircuitBreaker
	probe      *riva.HealthProbe
	logger     zerolog.Logger
}

type rivaSynthesizeRequest struct {
	Text         string `json:"text"`
	LanguageCode string `json:"language_code"`
	SampleRateHz int    `json:"sample_rate_hz"`
}

// NewRivaClient creates a synthesizer backed by the configured Riva gateway.
func NewRivaClient(cfg *config.Config) *RivaClient {
	return &RivaClient{
		endpoint:   cfg.RivaHTTPEndpoint,
		sampleRate: cfg.TTSSampleRate,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		breaker: resilience.NewCircuitBreaker("riva_tts",
			cfg.CircuitBreakerMaxFailures,
			time.Duration(cfg.CircuitBreakerResetTimeout)*time.Second),
		probe:  riva.NewHealthProbe(cfg.RivaTTSEndpoint),
		logger: observability.GetLogger().With().Str("component", "riva_tts").Logger(),
	}
}

// Synthesize renders text as base64 WAV. Backend failure yields a silent
// payload, never an error.
func (c *RivaClient) Synthesize(ctx context.Context, text, languageCode string) (string, error) {
	var pcm []byte

	err := c.breaker.Do(func() error {
		payload, err := json.Marshal(rivaSynthesizeRequest{
			Text:         text,
			LanguageCode: languageCode,
			SampleRateHz: c.sampleRate,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal synthesize request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v1/tts/synthesize", bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("synthesize request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("riva TTS returned status %d", resp.StatusCode)
		}

		pcm, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read synthesize response: %w", err)
		}
		return nil
	})

	observability.UpdateCircuitBreakerState(c.breaker.Name(), int(c.breaker.State()))

	if err != nil || len(pcm) == 0 {
		if err != nil {
			c.logger.Error().Err(err).Msg("Synthesis failed, substituting silence")
			observability.RecordError("synthesize_error", "riva_tts")
		}
		silent := audio.Silence(500*time.Millisecond, c.sampleRate)
		return base64.StdEncoding.EncodeToString(silent), nil
	}

	wav := audio.EncodeWAV(pcm, c.sampleRate)
	return base64.StdEncoding.EncodeToString(wav), nil
}

// Available reports whether the Riva TTS endpoint answers its health check.
func (c *RivaClient) Available(ctx context.Context) bool {
	return c.probe.Available(ctx)
}

// Close releases the health probe connection.
func (c *RivaClient) Close() error {
	return c.probe.Close()
}
