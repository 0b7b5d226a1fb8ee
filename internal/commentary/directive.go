package commentary

import (
	"encoding/json"
	"math"
	"strings"
)

// DirectiveSpeedAdjust tags an AI paddle speed adjustment embedded in
// generated text.
const DirectiveSpeedAdjust = "ai_speed_adjustment"

// Directive is a structured instruction a generator may emit instead of
// prose: exactly {"type":"ai_speed_adjustment","speed":<number>}.
type Directive struct {
	Type  string  `json:"type"`
	Speed float64 `json:"speed"`
}

// ParseDirective attempts the strict second stage of the generate-then-parse
// pipeline. Most generated text is prose, so a failed parse is the normal
// outcome and reported as (zero, false), never as an error.
func ParseDirective(text string) (Directive, bool) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") {
		return Directive{}, false
	}

	var probe struct {
		Type  string   `json:"type"`
		Speed *float64 `json:"speed"`
	}
	if err := json.Unmarshal([]byte(trimmed), &probe); err != nil {
		return Directive{}, false
	}
	if probe.Type != DirectiveSpeedAdjust || probe.Speed == nil {
		return Directive{}, false
	}
	if math.IsNaN(*probe.Speed) || math.IsInf(*probe.Speed, 0) {
		return Directive{}, false
	}
	return Directive{Type: probe.Type, Speed: *probe.Speed}, true
}
