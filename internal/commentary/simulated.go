package commentary

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
)

// simulatedPhrases is the fixed pool the simulated generator draws from.
var simulatedPhrases = []string{
	"What a rally, neither side is giving an inch!",
	"The ball screams across the table!",
	"A razor-thin save at the edge of the paddle!",
	"That return had some serious spin on it.",
	"Back and forth we go, this crowd is on its feet!",
	"The left paddle barely got a piece of that one.",
	"An absolute rocket down the middle!",
	"Patience pays off, what a placement!",
	"The AI paddle is reading every move tonight.",
	"You could cut the tension with a paddle edge.",
	"A gutsy angle, right into the corner!",
	"That bounce caught everyone by surprise!",
}

// directiveChance is the odds a simulated reply is a speed directive rather
// than prose, exercising the same downstream parse path as the provider.
const directiveChance = 0.05

// Simulated is the fallback Generator used whenever the provider is
// unavailable or disabled. Same contract as the provider, randomized
// content.
type Simulated struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimulated(seed int64) *Simulated {
	return &Simulated{rng: rand.New(rand.NewSource(seed))}
}

func (s *Simulated) Generate(_ context.Context, _, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rng.Float64() < directiveChance {
		speed := 3 + s.rng.Float64()*6 // 3..9
		return fmt.Sprintf(`{"type":%q,"speed":%.1f}`, DirectiveSpeedAdjust, speed), nil
	}
	return simulatedPhrases[s.rng.Intn(len(simulatedPhrases))], nil
}

// GenerateStream emits the phrase word by word so the streaming path stays
// exercised in simulated mode.
func (s *Simulated) GenerateStream(ctx context.Context, systemPrompt, userPrompt string, emit func(chunk string)) (string, error) {
	text, err := s.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", err
	}
	words := strings.Split(text, " ")
	for i, w := range words {
		if i > 0 {
			w = " " + w
		}
		emit(w)
	}
	return text, nil
}
