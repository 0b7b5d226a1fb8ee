// Package session holds the per-connection record and the process-wide
// registry iterated by the commentary and coach loops.
package session

import (
	"sync"

	"github.com/RishabhPatel9999/WebSocket-Pong-game-with-OpenAI-coaching/internal/protocol"
)

const outboxSize = 16

// Session is the mutable record for one open connection. All fields are
// independent last-write-wins values, so a single mutex with no multi-field
// transactions is enough.
type Session struct {
	ID       string
	Identity string

	mu               sync.Mutex
	lastState        map[string]any
	lastCommentaryAt int64 // unix millis
	lastCoachAt      int64
	coachEnabled     bool
	closed           bool
	outbox           chan protocol.Event
}

func New(id, identity string) *Session {
	return &Session{
		ID:       id,
		Identity: identity,
		outbox:   make(chan protocol.Event, outboxSize),
	}
}

// SetState overwrites the latest snapshot. Snapshots are never merged or
// queued; a scheduler tick always sees the most recent one.
func (s *Session) SetState(state map[string]any) {
	s.mu.Lock()
	s.lastState = state
	s.mu.Unlock()
}

// State returns the latest snapshot, or nil if none has arrived yet.
func (s *Session) State() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastState
}

func (s *Session) HasState() bool {
	return s.State() != nil
}

func (s *Session) CoachEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coachEnabled
}

func (s *Session) SetCoachEnabled(enabled bool) {
	s.mu.Lock()
	s.coachEnabled = enabled
	s.mu.Unlock()
}

func (s *Session) LastCommentaryAt() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCommentaryAt
}

func (s *Session) MarkCommentary(nowMs int64) {
	s.mu.Lock()
	s.lastCommentaryAt = nowMs
	s.mu.Unlock()
}

func (s *Session) LastCoachAt() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCoachAt
}

func (s *Session) MarkCoach(nowMs int64) {
	s.mu.Lock()
	s.lastCoachAt = nowMs
	s.mu.Unlock()
}

// Send queues an outbound event. Delivery is best-effort: a full outbox
// drops the event, a closed session swallows it. Returns whether the event
// was queued.
func (s *Session) Send(ev protocol.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.outbox <- ev:
		return true
	default:
		return false
	}
}

// Outbox is consumed by the connection's writer goroutine. The channel is
// closed when the session closes.
func (s *Session) Outbox() <-chan protocol.Event {
	return s.outbox
}

// Close makes further Sends no-ops and closes the outbox. Safe to call more
// than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.outbox)
}
