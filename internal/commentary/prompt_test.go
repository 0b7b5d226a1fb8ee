package commentary

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullState() map[string]any {
	return map[string]any{
		"ball":        map[string]any{"x": 380.0, "y": 120.0, "vx": -4.0, "vy": 2.5},
		"leftPaddle":  map[string]any{"y": 110.0},
		"rightPaddle": map[string]any{"y": 140.0, "speed": 4.5},
		"score":       map[string]any{"left": 3, "right": 7},
		"running":     true,
	}
}

func TestCommentaryPrompt_FullState(t *testing.T) {
	p := CommentaryPrompt(fullState())
	assert.Contains(t, p, "Ball at (380, 120)")
	assert.Contains(t, p, "speed 4.5")
	assert.Contains(t, p, "Score 3-7")
	assert.Contains(t, p, "in progress")
}

func TestCommentaryPrompt_PausedGame(t *testing.T) {
	state := fullState()
	state["running"] = false
	assert.Contains(t, CommentaryPrompt(state), "paused")
}

func TestPrompts_SurviveMalformedSnapshots(t *testing.T) {
	cases := []struct {
		name  string
		state map[string]any
	}{
		{"empty snapshot", map[string]any{}},
		{"wrong field types", map[string]any{"ball": "round", "score": []any{1, 2}, "running": "yes"}},
		{"nan values", map[string]any{"ball": map[string]any{"x": math.NaN(), "vx": math.Inf(1)}}},
		{"nil nested map", map[string]any{"ball": nil, "leftPaddle": nil}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Degraded output is fine; panicking or NaN leakage is not.
			p := CommentaryPrompt(tc.state)
			assert.NotEmpty(t, p)
			assert.NotContains(t, p, "NaN")

			p = CoachPrompt(tc.state)
			assert.NotEmpty(t, p)
			assert.NotContains(t, p, "NaN")
		})
	}
}

func TestNum_CoercesIntegerWidths(t *testing.T) {
	// msgpack decodes small numbers into narrow integer types.
	state := map[string]any{"score": map[string]any{"left": int8(3), "right": uint16(7)}}
	assert.Equal(t, 3.0, num(state, "score", "left"))
	assert.Equal(t, 7.0, num(state, "score", "right"))
}
