package commentary

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirective_RoundTrip(t *testing.T) {
	for _, speed := range []float64{0.5, 3, 4.5, 9} {
		text := fmt.Sprintf(`{"type":"ai_speed_adjustment","speed":%g}`, speed)
		d, ok := ParseDirective(text)
		require.True(t, ok, "text %q should parse", text)
		assert.Equal(t, DirectiveSpeedAdjust, d.Type)
		assert.Equal(t, speed, d.Speed)
	}
}

func TestParseDirective_ToleratesSurroundingWhitespace(t *testing.T) {
	d, ok := ParseDirective("  {\"type\":\"ai_speed_adjustment\",\"speed\":4}\n")
	require.True(t, ok)
	assert.Equal(t, 4.0, d.Speed)
}

func TestParseDirective_RejectsNonDirectives(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"plain prose", "What a rally!"},
		{"prose mentioning the tag", "the ai_speed_adjustment was wild"},
		{"wrong type tag", `{"type":"color_change","speed":4}`},
		{"missing speed", `{"type":"ai_speed_adjustment"}`},
		{"non-numeric speed", `{"type":"ai_speed_adjustment","speed":"fast"}`},
		{"prose before object", `sure! {"type":"ai_speed_adjustment","speed":4}`},
		{"object then prose", `{"type":"ai_speed_adjustment","speed":4} there you go`},
		{"truncated object", `{"type":"ai_speed_adjustment","speed":`},
		{"empty", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := ParseDirective(tc.text)
			assert.False(t, ok)
		})
	}
}
