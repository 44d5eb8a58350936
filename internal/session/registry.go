package session

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/medinter/translation-gateway/internal/medical"
	"github.com/medinter/translation-gateway/internal/observability"
)

const dailyWindow = 24 * time.Hour

// Registry holds every session for the lifetime of the process. All state
// transitions happen under one lock, so check-and-append and
// end-snapshot-purge are each a single atomic step with respect to
// concurrent callers on the same session.
type Registry struct {
	mu          sync.RWMutex
	sessions    map[string]*state
	dailyCount  int
	windowStart time.Time

	now func() time.Time // overridable for tests
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*state),
		now:      time.Now,
	}
}

// newSessionID returns a short opaque id, unique within process lifetime.
func newSessionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Create allocates a fresh active session and returns its descriptor.
// The first speaker is always the patient.
func (r *Registry) Create(sourceLang, targetLang string, mode Mode) Descriptor {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	id := newSessionID()
	for {
		if _, taken := r.sessions[id]; !taken {
			break
		}
		id = newSessionID()
	}

	r.sessions[id] = &state{
		id:             id,
		sourceLang:     sourceLang,
		targetLang:     targetLang,
		mode:           mode,
		createdAt:      now,
		currentSpeaker: SpeakerPatient,
		active:         true,
	}

	r.rollWindowLocked(now)
	r.dailyCount++

	observability.RecordSessionStart()

	return Descriptor{
		SessionID:      id,
		SourceLang:     sourceLang,
		TargetLang:     targetLang,
		CurrentSpeaker: SpeakerPatient,
		Mode:           mode,
		Active:         true,
	}
}

// Describe returns a metadata snapshot of a session. The second return is
// false when the session id is unknown; absence is not an error.
func (r *Registry) Describe(id string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return Descriptor{}, false
	}
	return r.describeLocked(s), true
}

func (r *Registry) describeLocked(s *state) Descriptor {
	duration := s.endedDuration
	if s.active {
		duration = r.now().Sub(s.createdAt).Seconds()
	}
	return Descriptor{
		SessionID:       s.id,
		SourceLang:      s.sourceLang,
		TargetLang:      s.targetLang,
		ExchangeCount:   len(s.exchanges),
		DurationSeconds: duration,
		CurrentSpeaker:  s.currentSpeaker,
		Mode:            s.mode,
		Active:          s.active,
	}
}

// AppendExchange appends an exchange to an active session, stamping the
// session's current speaker and the append time. It returns false without
// mutating anything when the session is unknown or already inactive.
func (r *Registry) AppendExchange(id string, ex Exchange) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok || !s.active {
		return false
	}

	ex.Speaker = s.currentSpeaker
	ex.Timestamp = r.now()
	if ex.MedicalTerms == nil {
		ex.MedicalTerms = []medical.Entity{}
	}
	if ex.Flags == nil {
		ex.Flags = []string{}
	}
	s.exchanges = append(s.exchanges, ex)

	observability.RecordExchange(string(ex.Speaker), ex.Urgency)
	return true
}

// SwitchSpeaker toggles the current speaker between patient and provider
// and returns the new value. Returns false when the session is unknown.
func (r *Registry) SwitchSpeaker(id string) (Speaker, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return "", false
	}

	if s.currentSpeaker == SpeakerPatient {
		s.currentSpeaker = SpeakerProvider
	} else {
		s.currentSpeaker = SpeakerPatient
	}
	return s.currentSpeaker, true
}

// End marks the session inactive, derives the clinical summary and
// aggregated flags from the accumulated exchanges, snapshots the counts
// the post-purge summary path needs, and purges all exchange data in one
// atomic transition. Ending an unknown or already-ended session returns
// nil; a second End never re-derives or re-purges.
func (r *Registry) End(id string) *Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok || !s.active {
		return nil
	}

	now := r.now()
	s.active = false
	s.endedAt = now
	s.endedDuration = now.Sub(s.createdAt).Seconds()
	s.endedExchanges = len(s.exchanges)

	terms := []medical.Entity{}
	flags := []string{}
	for _, ex := range s.exchanges {
		terms = append(terms, ex.MedicalTerms...)
		flags = append(flags, ex.Flags...)
	}

	summary := &Summary{
		SessionID:       s.id,
		DurationSeconds: s.endedDuration,
		SourceLang:      s.sourceLang,
		TargetLang:      s.targetLang,
		ExchangeCount:   s.endedExchanges,
		MedicalTerms:    terms,
		ClinicalSummary: medical.BuildSummary(terms),
		Flags:           flags,
		Mode:            s.mode,
	}

	// Purge: no transcripts, no terms, no audio survive the session.
	s.exchanges = nil

	observability.RecordSessionEnd(now.Sub(s.createdAt))
	return summary
}

// Summary returns the reduced post-purge summary for an already-ended
// session. It is derived purely from metadata snapshotted at end time, so
// repeated calls return identical output. Returns nil for unknown or
// still-active sessions.
func (r *Registry) Summary(id string) *Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok || s.active {
		return nil
	}

	return &Summary{
		SessionID:       s.id,
		DurationSeconds: s.endedDuration,
		SourceLang:      s.sourceLang,
		TargetLang:      s.targetLang,
		ExchangeCount:   s.endedExchanges,
		MedicalTerms:    []medical.Entity{},
		ClinicalSummary: medical.BuildSummary(nil),
		Flags:           []string{},
		Mode:            s.mode,
		Note:            PurgeNote,
	}
}

// ListActive returns metadata snapshots of all active sessions.
func (r *Registry) ListActive() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	active := []Descriptor{}
	for _, s := range r.sessions {
		if s.active {
			active = append(active, r.describeLocked(s))
		}
	}
	return active
}

// ActiveCount returns the number of active sessions.
func (r *Registry) ActiveCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, s := range r.sessions {
		if s.active {
			n++
		}
	}
	return n
}

// DailyCount returns the number of sessions created in the current 24h
// window. The window restarts lazily: once more than 24 hours have elapsed
// since the window began, the counter reads zero and a fresh window starts.
func (r *Registry) DailyCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rollWindowLocked(r.now())
	return r.dailyCount
}

func (r *Registry) rollWindowLocked(now time.Time) {
	if r.windowStart.IsZero() {
		r.windowStart = now
		return
	}
	if now.Sub(r.windowStart) > dailyWindow {
		r.dailyCount = 0
		r.windowStart = now
	}
}

// Cleanup removes ended sessions whose creation time is older than maxAge.
// Active sessions are never removed. Returns the number of sessions swept.
func (r *Registry) Cleanup(maxAge time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, s := range r.sessions {
		if !s.active && now.Sub(s.createdAt) > maxAge {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}
