// Package commentary turns game-state snapshots into natural-language
// output. Generation is a capability with two variants: the OpenAI-backed
// provider and a deterministic-shaped simulated one, selected once at
// startup. The schedulers never know which variant they hold.
package commentary

import "context"

// Generator produces commentary text for a system+user prompt pair.
type Generator interface {
	// Generate returns a single completed text.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// GenerateStream calls emit for each text fragment as it becomes
	// available and returns the full concatenation once the stream ends.
	// The fragment sequence is finite and not restartable.
	GenerateStream(ctx context.Context, systemPrompt, userPrompt string, emit func(chunk string)) (string, error)
}
