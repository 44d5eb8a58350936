// Package realtime serves the bidirectional translation connection. Each
// connection runs a single read loop, so messages are processed strictly in
// arrival order; current-speaker tracking and exchange appends are
// order-sensitive within a session.
package realtime

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/medinter/translation-gateway/internal/observability"
	"github.com/medinter/translation-gateway/internal/pipeline"
	"github.com/medinter/translation-gateway/internal/session"
)

const (
	defaultSourceLang = "es-US"
	defaultTargetLang = "en-US"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// The gateway serves a local clinic network; origin checks are
		// left to the deployment's reverse proxy.
		return true
	},
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// Handler upgrades and serves translation connections.
type Handler struct {
	registry *session.Registry
	pipeline *pipeline.Pipeline
}

// NewHandler creates a realtime handler over the given registry and
// pipeline.
func NewHandler(registry *session.Registry, pipe *pipeline.Pipeline) *Handler {
	return &Handler{registry: registry, pipeline: pipe}
}

// ServeHTTP upgrades the request and runs the connection until the client
// disconnects.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger := observability.GetLogger()
		logger.Error().Err(err).Msg("Failed to upgrade connection")
		return
	}
	defer conn.Close()

	c := &connection{
		conn:       conn,
		registry:   h.registry,
		pipeline:   h.pipeline,
		sourceLang: defaultSourceLang,
		targetLang: defaultTargetLang,
		logger:     observability.WithConnectionID(uuid.NewString()),
	}

	observability.RecordConnectionOpen()
	defer observability.RecordConnectionClose()

	c.logger.Info().Msg("Realtime client connected")
	c.run(r.Context())
	c.logger.Info().Msg("Realtime client disconnected")
}

// connection is the per-client state machine: language pair and session
// binding, updated by config-bearing messages. It owns no session state;
// everything session-scoped goes through the registry.
type connection struct {
	conn       *websocket.Conn
	registry   *session.Registry
	pipeline   *pipeline.Pipeline
	sourceLang string
	targetLang string
	sessionID  string
	logger     zerolog.Logger
}

func (c *connection) run(ctx context.Context) {
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Warn().Err(err).Msg("Read error")
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.logger.Error().Err(err).Msg("Malformed message, ignoring")
			observability.RecordError("malformed_message", "realtime")
			continue
		}

		observability.RecordMessage(msg.Type)

		// Any message may refresh the binding; absent fields keep the
		// current values.
		c.rebind(msg)

		switch msg.Type {
		case TypeConfig:
			if !c.write(newConfigAck(c.sourceLang, c.targetLang)) {
				return
			}

		case TypeAudioChunk:
			if !c.handleAudioChunk(ctx, msg) {
				return
			}

		case TypeTextInput:
			if !c.handleTextInput(ctx, msg) {
				return
			}

		case TypeSwitchSpeaker:
			if c.sessionID == "" {
				continue
			}
			speaker, ok := c.registry.SwitchSpeaker(c.sessionID)
			if !ok {
				c.logger.Warn().Str("session_id", c.sessionID).Msg("Switch speaker on unknown session")
				continue
			}
			if !c.write(newSpeakerSwitched(speaker)) {
				return
			}

		case TypeEndSession:
			if c.sessionID == "" {
				continue
			}
			summary := c.registry.End(c.sessionID)
			if summary == nil {
				c.logger.Warn().Str("session_id", c.sessionID).Msg("End of unknown or already-ended session")
			}
			// The binding is terminal for this session; the connection
			// may configure a new one.
			c.sessionID = ""
			if !c.write(newSessionEnded(summary)) {
				return
			}

		default:
			c.logger.Warn().Str("type", msg.Type).Msg("Unknown message type, ignoring")
		}
	}
}

func (c *connection) rebind(msg clientMessage) {
	if msg.SourceLang != "" {
		c.sourceLang = msg.SourceLang
	}
	if msg.TargetLang != "" {
		c.targetLang = msg.TargetLang
	}
	if msg.SessionID != "" {
		c.sessionID = msg.SessionID
	}
}

// handleAudioChunk runs the pipeline in audio mode. Interim recognition
// emits only a partial transcript; final recognition also appends an
// exchange and emits the full translation result.
func (c *connection) handleAudioChunk(ctx context.Context, msg clientMessage) bool {
	audioData, err := base64.StdEncoding.DecodeString(msg.Audio)
	if err != nil {
		c.logger.Error().Err(err).Msg("Audio payload is not valid base64, ignoring")
		observability.RecordError("malformed_audio", "realtime")
		return true
	}

	result, err := c.pipeline.ProcessAudio(ctx, audioData, c.sourceLang, c.targetLang)
	if err != nil {
		c.logger.Error().Err(err).Msg("Audio pipeline failed")
		observability.RecordError("pipeline_error", "realtime")
		return true
	}

	if result.Interim {
		return c.write(newPartialTranscript(result.Text, result.IsFinal))
	}

	if !c.write(newPartialTranscript(result.Text, true)) {
		return false
	}
	return c.deliver(result)
}

// handleTextInput runs the pipeline in text mode; empty text is ignored.
func (c *connection) handleTextInput(ctx context.Context, msg clientMessage) bool {
	if msg.Text == "" {
		return true
	}

	result, err := c.pipeline.ProcessText(ctx, msg.Text, c.sourceLang, c.targetLang)
	if err != nil {
		c.logger.Error().Err(err).Msg("Text pipeline failed")
		observability.RecordError("pipeline_error", "realtime")
		return true
	}

	return c.deliver(result)
}

// deliver appends the completed exchange to the bound session (if any) and
// emits the translation result.
func (c *connection) deliver(result *pipeline.Result) bool {
	if c.sessionID != "" {
		appended := c.registry.AppendExchange(c.sessionID, session.Exchange{
			Original:     result.Text,
			Translation:  result.Translation,
			MedicalTerms: result.MedicalTerms,
			Flags:        result.Flags,
			Urgency:      result.Urgency,
		})
		if !appended {
			c.logger.Warn().Str("session_id", c.sessionID).Msg("Exchange rejected, session unknown or ended")
		}
	}

	return c.write(translationResult{
		Type:         "translation_result",
		Original:     result.Text,
		Translation:  result.Translation,
		MedicalTerms: result.MedicalTerms,
		Flags:        result.Flags,
		Urgency:      result.Urgency,
		Audio:        result.Audio,
	})
}

// write sends one message; false means the connection is unusable and the
// read loop should exit.
func (c *connection) write(v interface{}) bool {
	if err := c.conn.WriteJSON(v); err != nil {
		c.logger.Warn().Err(err).Msg("Write failed, closing connection")
		return false
	}
	return true
}
