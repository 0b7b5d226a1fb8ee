package commentary

import (
	"fmt"
	"math"
)

// CommentarySystemPrompt shapes the play-by-play voice. It also advertises
// the speed-adjustment directive so the provider can occasionally steer the
// AI paddle instead of talking.
const CommentarySystemPrompt = "You are a lively play-by-play commentator for a game of Pong. " +
	"Reply with one short, punchy line about the current rally. " +
	"Rarely, if the match feels one-sided, you may instead reply with exactly " +
	`{"type":"ai_speed_adjustment","speed":<number>}` + " to retune the AI paddle. " +
	"Never mix prose with that object."

// CoachSystemPrompt shapes the coaching voice used by the slower coach loop.
const CoachSystemPrompt = "You are a pragmatic Pong coach watching the left player. " +
	"Reply with one short, concrete tip based on the current game state."

// CommentaryPrompt renders the latest snapshot for the commentator. Every
// field is read defensively: a missing or NaN value degrades the prompt, it
// never aborts the tick.
func CommentaryPrompt(state map[string]any) string {
	return fmt.Sprintf(
		"Ball at (%.0f, %.0f) moving (%.0f, %.0f). Left paddle y=%.0f, right paddle y=%.0f (speed %.1f). Score %.0f-%.0f. Rally %s.",
		num(state, "ball", "x"), num(state, "ball", "y"),
		num(state, "ball", "vx"), num(state, "ball", "vy"),
		num(state, "leftPaddle", "y"),
		num(state, "rightPaddle", "y"), num(state, "rightPaddle", "speed"),
		num(state, "score", "left"), num(state, "score", "right"),
		runningWord(state),
	)
}

// CoachPrompt renders the snapshot for the coach loop.
func CoachPrompt(state map[string]any) string {
	return fmt.Sprintf(
		"The left player's paddle is at y=%.0f, the ball is at (%.0f, %.0f) moving (%.0f, %.0f). Score is %.0f-%.0f. What should the left player do?",
		num(state, "leftPaddle", "y"),
		num(state, "ball", "x"), num(state, "ball", "y"),
		num(state, "ball", "vx"), num(state, "ball", "vy"),
		num(state, "score", "left"), num(state, "score", "right"),
	)
}

func runningWord(state map[string]any) string {
	if b, ok := lookup(state, "running").(bool); ok && !b {
		return "paused"
	}
	return "in progress"
}

// num walks nested maps and coerces whatever it finds into a float64,
// falling back to 0 for anything missing or non-numeric. msgpack and JSON
// decode numbers into different Go types, so every width is handled.
func num(state map[string]any, path ...string) float64 {
	v := lookup(state, path...)
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func lookup(state map[string]any, path ...string) any {
	var v any = state
	for _, key := range path {
		m, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		v = m[key]
	}
	return v
}
