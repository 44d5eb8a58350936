package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the translation gateway service
type Config struct {
	// Server configuration
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	Port string `envconfig:"PORT" default:"3000"`

	// Mock mode runs without Riva/NIM backends, serving deterministic
	// fallback content. Selected once at startup; call sites never probe.
	MockMode bool `envconfig:"MOCK_MODE" default:"false"`

	// NVIDIA Riva endpoints (gRPC health checks, HTTP gateway for inference)
	RivaASREndpoint  string `envconfig:"RIVA_ASR_ENDPOINT" default:"localhost:50051"`
	RivaTTSEndpoint  string `envconfig:"RIVA_TTS_ENDPOINT" default:"localhost:50051"`
	RivaHTTPEndpoint string `envconfig:"RIVA_HTTP_ENDPOINT" default:"http://localhost:9000"`

	// NVIDIA NIM LLM endpoint (OpenAI-compatible)
	NIMEndpoint string `envconfig:"NIM_ENDPOINT" default:"http://localhost:8000"`
	NIMModel    string `envconfig:"NIM_MODEL" default:"meta/llama-4-maverick-17b-128e-instruct"`
	NIMTimeout  int    `envconfig:"NIM_TIMEOUT" default:"30"` // seconds

	// Audio processing configuration
	SpeechEnergyThreshold float64 `envconfig:"SPEECH_ENERGY_THRESHOLD" default:"500.0"` // RMS gate for the no-speech short circuit
	TTSSampleRate         int     `envconfig:"TTS_SAMPLE_RATE" default:"22050"`

	// Session lifecycle configuration
	SessionCleanupMaxAge   int `envconfig:"SESSION_CLEANUP_MAX_AGE" default:"3600"`  // Seconds before ended sessions are swept
	SessionCleanupInterval int `envconfig:"SESSION_CLEANUP_INTERVAL" default:"600"`  // Seconds between sweeps

	// Resilience configuration
	CircuitBreakerMaxFailures  int `envconfig:"CIRCUIT_BREAKER_MAX_FAILURES" default:"5"`   // Failures before opening circuit
	CircuitBreakerResetTimeout int `envconfig:"CIRCUIT_BREAKER_RESET_TIMEOUT" default:"30"` // Seconds before attempting recovery
	RetryMaxAttempts           int `envconfig:"RETRY_MAX_ATTEMPTS" default:"3"`             // Maximum retry attempts
	RetryInitialBackoff        int `envconfig:"RETRY_INITIAL_BACKOFF" default:"100"`        // Initial backoff in milliseconds

	// Observability configuration
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`       // Log level: debug, info, warn, error
	LogPretty      bool   `envconfig:"LOG_PRETTY" default:"false"`     // Pretty print logs (for development)
	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"true"` // Enable Prometheus metrics
}

// Load reads configuration from environment variables
// It first attempts to load from .env file if it exists, then from environment
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	return LoadFromEnv()
}

// LoadFromEnv loads configuration directly from environment variables
// without attempting to load .env file (useful for containerized deployments)
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if !cfg.MockMode {
		if cfg.NIMEndpoint == "" {
			return nil, fmt.Errorf("NIM_ENDPOINT is required unless MOCK_MODE is set")
		}
		if cfg.RivaHTTPEndpoint == "" {
			return nil, fmt.Errorf("RIVA_HTTP_ENDPOINT is required unless MOCK_MODE is set")
		}
	}

	return &cfg, nil
}

// Language describes one supported language entry
type Language struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Flag    string `json:"flag"`
	ASRCode string `json:"riva_asr"`
	TTSCode string `json:"riva_tts"`
}

// SupportedLanguages lists the languages the gateway can translate between.
// Order is stable; the API serves it as-is.
var SupportedLanguages = []Language{
	{Code: "en-US", Name: "English", Flag: "🇺🇸", ASRCode: "en-US", TTSCode: "en-US"},
	{Code: "es-US", Name: "Spanish", Flag: "🇪🇸", ASRCode: "es-US", TTSCode: "es-US"},
	{Code: "zh-CN", Name: "Mandarin Chinese", Flag: "🇨🇳", ASRCode: "zh-CN", TTSCode: "zh-CN"},
	{Code: "ar-AR", Name: "Arabic", Flag: "🇸🇦", ASRCode: "ar-AR", TTSCode: "ar-AR"},
	{Code: "fr-FR", Name: "French", Flag: "🇫🇷", ASRCode: "fr-FR", TTSCode: "fr-FR"},
	{Code: "de-DE", Name: "German", Flag: "🇩🇪", ASRCode: "de-DE", TTSCode: "de-DE"},
	{Code: "hi-IN", Name: "Hindi", Flag: "🇮🇳", ASRCode: "hi-IN", TTSCode: "hi-IN"},
	{Code: "ko-KR", Name: "Korean", Flag: "🇰🇷", ASRCode: "ko-KR", TTSCode: "ko-KR"},
	{Code: "ja-JP", Name: "Japanese", Flag: "🇯🇵", ASRCode: "ja-JP", TTSCode: "ja-JP"},
	{Code: "pt-BR", Name: "Portuguese", Flag: "🇧🇷", ASRCode: "pt-BR", TTSCode: "pt-BR"},
	{Code: "ru-RU", Name: "Russian", Flag: "🇷🇺", ASRCode: "ru-RU", TTSCode: "ru-RU"},
	{Code: "it-IT", Name: "Italian", Flag: "🇮🇹", ASRCode: "it-IT", TTSCode: "it-IT"},
	{Code: "vi-VN", Name: "Vietnamese", Flag: "🇻🇳", ASRCode: "vi-VN", TTSCode: "vi-VN"},
}
