package protocol

import "encoding/json"

// Outbound event types.
const (
	EventWelcome         = "welcome"
	EventError           = "error"
	EventCommentary      = "commentary"
	EventCommentaryChunk = "commentary_chunk"
	EventCoach           = "coach"
	EventCoachStatus     = "coach_status"
	EventControl         = "control"
	EventPong            = "pong"
)

// Event is a single outbound frame. One struct covers all variants; unused
// fields are omitted on the wire.
type Event struct {
	Type       string   `json:"type"`
	Identity   string   `json:"identity,omitempty"`
	Text       string   `json:"text,omitempty"`
	Error      string   `json:"error,omitempty"`
	Enabled    *bool    `json:"enabled,omitempty"`
	Action     string   `json:"action,omitempty"`
	Speed      *float64 `json:"speed,omitempty"`
	IntervalMs int64    `json:"interval_ms,omitempty"`
}

// Encode renders an outbound event as one JSON object per frame.
func Encode(ev Event) ([]byte, error) {
	return json.Marshal(ev)
}

func Welcome(identity string, commentaryIntervalMs int64) Event {
	return Event{Type: EventWelcome, Identity: identity, IntervalMs: commentaryIntervalMs}
}

func Error(msg string) Event {
	return Event{Type: EventError, Error: msg}
}

func Commentary(text string) Event {
	return Event{Type: EventCommentary, Text: text}
}

func CommentaryChunk(text string) Event {
	return Event{Type: EventCommentaryChunk, Text: text}
}

func Coach(text string) Event {
	return Event{Type: EventCoach, Text: text}
}

func CoachStatus(enabled bool) Event {
	return Event{Type: EventCoachStatus, Enabled: &enabled}
}

// Control carries a speed-adjustment directive extracted from generated text.
func Control(action string, speed float64) Event {
	return Event{Type: EventControl, Action: action, Speed: &speed}
}

func Pong() Event {
	return Event{Type: EventPong}
}
