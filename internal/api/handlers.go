// Package api exposes the request/response facade over the session
// registry: session lifecycle, summaries, language catalog, and service
// health.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/medinter/translation-gateway/internal/asr"
	"github.com/medinter/translation-gateway/internal/config"
	"github.com/medinter/translation-gateway/internal/observability"
	"github.com/medinter/translation-gateway/internal/session"
	"github.com/medinter/translation-gateway/internal/translator"
	"github.com/medinter/translation-gateway/internal/tts"
)

// Handler serves the REST endpoints. It holds no state of its own; all
// session data lives in the registry.
type Handler struct {
	cfg         *config.Config
	registry    *session.Registry
	recognizer  asr.Recognizer
	translator  translator.Translator
	synthesizer tts.Synthesizer
	logger      zerolog.Logger
}

// NewHandler creates the REST facade over the registry and the live (or
// mock) collaborators.
func NewHandler(cfg *config.Config, registry *session.Registry, rec asr.Recognizer, tr translator.Translator, syn tts.Synthesizer) *Handler {
	return &Handler{
		cfg:         cfg,
		registry:    registry,
		recognizer:  rec,
		translator:  tr,
		synthesizer: syn,
		logger:      observability.GetLogger().With().Str("component", "api").Logger(),
	}
}

// Register mounts all endpoints on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", h.health)
	mux.HandleFunc("GET /api/languages", h.languages)
	mux.HandleFunc("POST /api/session/start", h.startSession)
	mux.HandleFunc("POST /api/session/end", h.endSession)
	mux.HandleFunc("GET /api/session/{id}/summary", h.sessionSummary)
	mux.HandleFunc("GET /api/sessions/active", h.activeSessions)
}

type startRequest struct {
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
	Mode       string `json:"mode"`
}

type startResponse struct {
	SessionID  string `json:"session_id"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
	Mode       string `json:"mode"`
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	// An empty or absent body starts a session with defaults.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SourceLang == "" {
		req.SourceLang = "es-US"
	}
	if req.TargetLang == "" {
		req.TargetLang = "en-US"
	}
	mode := session.Mode(req.Mode)
	if mode == "" {
		mode = session.ModeConversation
	}

	desc := h.registry.Create(req.SourceLang, req.TargetLang, mode)
	h.logger.Info().
		Str("session_id", desc.SessionID).
		Str("source_lang", desc.SourceLang).
		Str("target_lang", desc.TargetLang).
		Msg("Session started")

	writeJSON(w, http.StatusOK, startResponse{
		SessionID:  desc.SessionID,
		SourceLang: desc.SourceLang,
		TargetLang: desc.TargetLang,
		Mode:       string(desc.Mode),
	})
}

type endRequest struct {
	SessionID string `json:"session_id"`
}

func (h *Handler) endSession(w http.ResponseWriter, r *http.Request) {
	var req endRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	summary := h.registry.End(req.SessionID)
	if summary == nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	h.logger.Info().
		Str("session_id", req.SessionID).
		Int("exchange_count", summary.ExchangeCount).
		Msg("Session ended")
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) sessionSummary(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	summary := h.registry.Summary(id)
	if summary == nil {
		writeError(w, http.StatusNotFound, "Session not found or still active")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) activeSessions(w http.ResponseWriter, r *http.Request) {
	sessions := h.registry.ListActive()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

func (h *Handler) languages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"languages": config.SupportedLanguages,
	})
}

type healthResponse struct {
	Status         string                `json:"status"`
	MockMode       bool                  `json:"mock_mode"`
	Services       map[string]bool       `json:"services"`
	GPU            observability.GPUInfo `json:"gpu"`
	ActiveSessions int                   `json:"active_sessions"`
	DailySessions  int                   `json:"daily_sessions"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	resp := healthResponse{
		Status:   "healthy",
		MockMode: h.cfg.MockMode,
		Services: map[string]bool{
			"riva_asr": h.recognizer.Available(ctx),
			"riva_tts": h.synthesizer.Available(ctx),
			"nim_llm":  h.translator.Available(ctx),
		},
		GPU:            observability.ProbeGPU(ctx),
		ActiveSessions: h.registry.ActiveCount(),
		DailySessions:  h.registry.DailyCount(),
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
