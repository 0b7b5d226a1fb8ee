package session

import (
	"testing"
	"time"

	"github.com/RishabhPatel9999/WebSocket-Pong-game-with-OpenAI-coaching/internal/protocol"
)

// helper: receive one event with a timeout so tests never hang
func recvEvent(t *testing.T, ch <-chan protocol.Event, within time.Duration) protocol.Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		if !ok {
			t.Fatalf("outbox closed unexpectedly")
		}
		return ev
	case <-time.After(within):
		t.Fatalf("timed out waiting for event")
		return protocol.Event{} // unreachable
	}
}

func TestSession_LastStateWins(t *testing.T) {
	s := New("c1", "alice")

	if s.HasState() {
		t.Fatalf("fresh session should have no state")
	}

	s.SetState(map[string]any{"seq": 1})
	s.SetState(map[string]any{"seq": 2})

	got := s.State()
	if got["seq"] != 2 {
		t.Fatalf("want latest snapshot to win, got %+v", got)
	}
}

func TestSession_SendAndReceiveInOrder(t *testing.T) {
	s := New("c1", "alice")

	s.Send(protocol.CommentaryChunk("Nice"))
	s.Send(protocol.CommentaryChunk(" shot"))
	s.Send(protocol.Commentary("Nice shot"))

	first := recvEvent(t, s.Outbox(), 100*time.Millisecond)
	second := recvEvent(t, s.Outbox(), 100*time.Millisecond)
	third := recvEvent(t, s.Outbox(), 100*time.Millisecond)

	if first.Text != "Nice" || second.Text != " shot" || third.Type != protocol.EventCommentary {
		t.Fatalf("events out of order: %+v %+v %+v", first, second, third)
	}
}

func TestSession_SendAfterCloseIsSafe(t *testing.T) {
	s := New("c1", "alice")
	s.Close()
	s.Close() // double close must not panic

	if ok := s.Send(protocol.Pong()); ok {
		t.Fatalf("send after close should report not queued")
	}
}

func TestSession_FullOutboxDropsEvent(t *testing.T) {
	s := New("c1", "alice")
	for i := 0; i < outboxSize; i++ {
		if !s.Send(protocol.Pong()) {
			t.Fatalf("send %d should fit in the outbox", i)
		}
	}
	if s.Send(protocol.Pong()) {
		t.Fatalf("send into a full outbox should drop")
	}
}

func TestRegistry_Lifecycle(t *testing.T) {
	r := NewRegistry()
	s := New("c1", "alice")

	r.Add(s)
	if r.Len() != 1 || r.Get("c1") != s {
		t.Fatalf("session should be registered")
	}

	snap := r.Snapshot()
	if len(snap) != 1 || snap[0] != s {
		t.Fatalf("snapshot should contain the live session")
	}

	r.Remove("c1")
	if r.Len() != 0 || r.Get("c1") != nil {
		t.Fatalf("session should be gone after remove")
	}

	// The removed session is closed: sends are swallowed, never panic.
	if s.Send(protocol.Pong()) {
		t.Fatalf("send to removed session should be dropped")
	}

	r.Remove("c1") // removing twice is a no-op
}
