package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/medinter/translation-gateway/internal/config"
	"github.com/medinter/translation-gateway/internal/medical"
	"github.com/medinter/translation-gateway/internal/observability"
	"github.com/medinter/translation-gateway/internal/resilience"
)

const systemPromptTemplate = `You are a medical interpreter AI. Your task is to:

1. **Translate** the following text from %s to %s with perfect medical accuracy. Preserve the meaning, tone, and urgency of the original.

2. **Extract medical entities** from the text. Categorize each as one of: symptom, condition, medication, allergy, vital_sign, procedure, dosage, onset, severity.

3. **Flag ambiguities** — if a word or phrase could have multiple medical interpretations, note them.

4. **Assess urgency** — rate as "low", "medium", "high", or "critical" based on the medical content.

Respond ONLY with valid JSON in this exact format:
{
  "translation": "translated text here",
  "medical_terms": [
    {"term": "English medical term", "category": "symptom|condition|medication|allergy|vital_sign|procedure|dosage|onset|severity", "original": "term in source language"}
  ],
  "flags": ["any ambiguity or warning notes"],
  "urgency": "low|medium|high|critical"
}

Do NOT include any text outside the JSON object.`

// NIMClient translates via an OpenAI-compatible NIM endpoint. Any failure
// falls back to the deterministic mock content so a translation request
// never fails outright.
type NIMClient struct {
	endpoint   string
	model      string
	httpClient *http.Client
	breaker    *resilience.CircuitBreaker
	retryCfg   resilience.RetryConfig
	fallback   *Mock
	logger     zerolog.Logger
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	MaxTokens      int           `json:"max_tokens"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewNIMClient creates a translator backed by the configured NIM endpoint.
func NewNIMClient(cfg *config.Config) *NIMClient {
	return &NIMClient{
		endpoint:   cfg.NIMEndpoint,
		model:      cfg.NIMModel,
		httpClient: &http.Client{Timeout: time.Duration(cfg.NIMTimeout) * time.Second},
		breaker: resilience.NewCircuitBreaker("nim_llm",
			cfg.CircuitBreakerMaxFailures,
			time.Duration(cfg.CircuitBreakerResetTimeout)*time.Second),
		retryCfg: resilience.RetryConfig{
			MaxAttempts:    cfg.RetryMaxAttempts,
			InitialBackoff: time.Duration(cfg.RetryInitialBackoff) * time.Millisecond,
			MaxBackoff:     5 * time.Second,
		},
		fallback: NewMock(),
		logger:   observability.GetLogger().With().Str("component", "nim_llm").Logger(),
	}
}

// Translate calls the LLM and parses its strict-JSON reply. On timeout,
// transport failure, or an unparseable reply it substitutes the mock
// translation rather than surfacing an error.
func (c *NIMClient) Translate(ctx context.Context, text, sourceLang, targetLang string) (*Result, error) {
	var result *Result

	err := c.breaker.Do(func() error {
		return resilience.Retry(ctx, c.retryCfg, func() error {
			var callErr error
			result, callErr = c.callModel(ctx, text, sourceLang, targetLang)
			return callErr
		})
	})

	observability.UpdateCircuitBreakerState(c.breaker.Name(), int(c.breaker.State()))

	if err != nil {
		c.logger.Error().Err(err).Msg("NIM translation failed, using fallback content")
		observability.RecordError("translate_error", "nim_llm")
		return c.fallback.Translate(ctx, text, sourceLang, targetLang)
	}

	return result, nil
}

func (c *NIMClient) callModel(ctx context.Context, text, sourceLang, targetLang string) (*Result, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: fmt.Sprintf(systemPromptTemplate, sourceLang, targetLang)},
			{Role: "user", Content: text},
		},
		Temperature: 0.1,
		MaxTokens:   1024,
	}
	reqBody.ResponseFormat.Type = "json_object"

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NIM returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read chat response: %w", err)
	}

	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return nil, fmt.Errorf("failed to parse chat response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("chat response carried no choices")
	}

	var parsed Result
	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), &parsed); err != nil {
		return nil, fmt.Errorf("model reply was not valid JSON: %w", err)
	}

	// The model occasionally omits fields; default rather than reject.
	if parsed.Translation == "" {
		parsed.Translation = text
	}
	if parsed.MedicalTerms == nil {
		parsed.MedicalTerms = []medical.RawTerm{}
	}
	if parsed.Flags == nil {
		parsed.Flags = []string{}
	}
	if parsed.Urgency == "" {
		parsed.Urgency = DefaultUrgency
	}

	return &parsed, nil
}

// Available reports whether the NIM models route answers.
func (c *NIMClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/v1/models", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Close is a no-op; the HTTP client holds no persistent resources.
func (c *NIMClient) Close() error {
	return nil
}
