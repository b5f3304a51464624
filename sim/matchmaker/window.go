package matchmaker

import (
	"fmt"
	"math"
	"math/rand"
)

const defaultWindow = 200.0

// SimilarityWindow pairs the base with a uniform pick among players inside a
// fixed rating-distance window. With LowVoteBase the base is drawn from the
// least-voted players instead of uniformly, guaranteeing coverage.
type SimilarityWindow struct {
	Window      float64
	LowVoteBase bool

	rng *rand.Rand
}

func NewSimilarityWindow(window float64, lowVoteBase bool, rng *rand.Rand) (*SimilarityWindow, error) {
	if window <= 0 || math.IsNaN(window) {
		return nil, fmt.Errorf("matchmaker: window must be positive, got %v", window)
	}
	return &SimilarityWindow{Window: window, LowVoteBase: lowVoteBase, rng: rng}, nil
}

func (m *SimilarityWindow) Name() string {
	if m.LowVoteBase {
		return "window-lowvote"
	}
	return "window"
}

func (m *SimilarityWindow) PickPair(players []Candidate) (int, int, error) {
	if len(players) < 2 {
		return 0, 0, ErrTooFewPlayers
	}
	var base int
	if m.LowVoteBase {
		base = leastVoted(players, m.rng)
	} else {
		base = m.rng.Intn(len(players))
	}

	// Reservoir-pick uniformly among in-window opponents.
	n := 0
	pick := -1
	for j, p := range players {
		if j == base {
			continue
		}
		if math.Abs(p.Rating-players[base].Rating) > m.Window {
			continue
		}
		n++
		if m.rng.Intn(n) == 0 {
			pick = j
		}
	}
	if pick < 0 {
		// Empty window: anyone goes.
		pick = uniformDistinct(len(players), base, m.rng)
	}
	return base, pick, nil
}
