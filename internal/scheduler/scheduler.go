// Package scheduler runs the two periodic loops that turn buffered session
// state into commentary and coaching output. Both loops share one shape; the
// coach loop differs only in its gate, interval, prompt and event type.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/RishabhPatel9999/WebSocket-Pong-game-with-OpenAI-coaching/internal/admission"
	"github.com/RishabhPatel9999/WebSocket-Pong-game-with-OpenAI-coaching/internal/commentary"
	"github.com/RishabhPatel9999/WebSocket-Pong-game-with-OpenAI-coaching/internal/protocol"
	"github.com/RishabhPatel9999/WebSocket-Pong-game-with-OpenAI-coaching/internal/session"
)

// minInterval is the floor for either loop's cadence.
const minInterval = 300 * time.Millisecond

// Scheduler is one periodic loop over all live sessions.
type Scheduler struct {
	registry *session.Registry
	limiter  admission.Limiter
	gen      commentary.Generator
	log      *zap.Logger

	interval  time.Duration
	coach     bool // gate on the session's coachEnabled flag
	streaming bool // forward provider chunks as they arrive

	nowMs func() int64 // stubbed in tests
}

// NewCommentary builds the play-by-play loop. Streaming should be true only
// when the real provider is active.
func NewCommentary(reg *session.Registry, limiter admission.Limiter, gen commentary.Generator, interval time.Duration, streaming bool, log *zap.Logger) *Scheduler {
	return &Scheduler{
		registry:  reg,
		limiter:   limiter,
		gen:       gen,
		log:       log,
		interval:  clampInterval(interval),
		streaming: streaming,
		nowMs:     nowMillis,
	}
}

// NewCoach builds the coaching loop: longer cadence, never streaming, only
// for sessions that opted in. It draws from the same commentary-call budget
// as the play-by-play loop.
func NewCoach(reg *session.Registry, limiter admission.Limiter, gen commentary.Generator, interval time.Duration, log *zap.Logger) *Scheduler {
	return &Scheduler{
		registry: reg,
		limiter:  limiter,
		gen:      gen,
		log:      log,
		interval: clampInterval(interval),
		coach:    true,
		nowMs:    nowMillis,
	}
}

func clampInterval(d time.Duration) time.Duration {
	if d < minInterval {
		return minInterval
	}
	return d
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// Run ticks until the context is cancelled. A failed iteration never stops
// the loop.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick runs one full pass over the live sessions.
func (s *Scheduler) Tick(ctx context.Context) {
	for _, sess := range s.registry.Snapshot() {
		s.tickSession(ctx, sess)
	}
}

func (s *Scheduler) tickSession(ctx context.Context, sess *session.Session) {
	if s.coach && !sess.CoachEnabled() {
		return
	}
	if !sess.HasState() {
		return
	}

	now := s.nowMs()
	if now-s.lastAt(sess) < s.interval.Milliseconds() {
		return
	}

	// The admission round-trip runs inline, so sessions within a tick are
	// checked one after another; only generation leaves the loop.
	admitted, err := s.limiter.TryConsume(ctx, admission.CategoryCommentary, sess.Identity)
	if err != nil {
		// Store unreachable. Advance the timestamp anyway so a down store
		// is not hammered every tick.
		s.mark(sess, now)
		s.log.Warn("admission check failed",
			zap.String("identity", sess.Identity), zap.Error(err))
		return
	}
	if !admitted {
		// Advancing the timestamp here prevents a rejected session from
		// re-attempting on every tick for the rest of the window.
		s.mark(sess, now)
		s.deliver(sess, s.placeholder("rate limited"))
		return
	}

	// Mark before the call completes so a slow or streaming generation
	// cannot double-fire on the next tick.
	s.mark(sess, now)
	state := sess.State()
	go s.generate(ctx, sess, state)
}

func (s *Scheduler) generate(ctx context.Context, sess *session.Session, state map[string]any) {
	var (
		text string
		err  error
	)
	if s.coach {
		text, err = s.gen.Generate(ctx, commentary.CoachSystemPrompt, commentary.CoachPrompt(state))
	} else if s.streaming {
		text, err = s.gen.GenerateStream(ctx, commentary.CommentarySystemPrompt, commentary.CommentaryPrompt(state),
			func(chunk string) { sess.Send(protocol.CommentaryChunk(chunk)) })
	} else {
		text, err = s.gen.Generate(ctx, commentary.CommentarySystemPrompt, commentary.CommentaryPrompt(state))
	}
	if err != nil {
		s.log.Warn("generation failed",
			zap.String("identity", sess.Identity), zap.Bool("coach", s.coach), zap.Error(err))
		s.deliver(sess, s.placeholder("error"))
		return
	}

	if d, ok := commentary.ParseDirective(text); ok {
		sess.Send(protocol.Control(d.Type, d.Speed))
		s.deliver(sess, fmt.Sprintf("AI paddle speed set to %.1f.", d.Speed))
		return
	}
	s.deliver(sess, text)
}

func (s *Scheduler) deliver(sess *session.Session, text string) {
	if s.coach {
		sess.Send(protocol.Coach(text))
		return
	}
	sess.Send(protocol.Commentary(text))
}

func (s *Scheduler) placeholder(kind string) string {
	if s.coach {
		return "[coach " + kind + "]"
	}
	return "[commentary " + kind + "]"
}

func (s *Scheduler) lastAt(sess *session.Session) int64 {
	if s.coach {
		return sess.LastCoachAt()
	}
	return sess.LastCommentaryAt()
}

func (s *Scheduler) mark(sess *session.Session, nowMs int64) {
	if s.coach {
		sess.MarkCoach(nowMs)
		return
	}
	sess.MarkCommentary(nowMs)
}
