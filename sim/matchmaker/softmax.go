package matchmaker

import (
	"fmt"
	"math"
	"math/rand"
)

const defaultTemperature = 20.0

// Softmax picks a least-voted base and an opponent by roulette over
// exp(-|Δrating| / T): close matches are exponentially preferred, but every
// opponent keeps a nonzero chance.
type Softmax struct {
	Temperature float64

	rng *rand.Rand
}

func NewSoftmax(temperature float64, rng *rand.Rand) (*Softmax, error) {
	if temperature <= 0 || math.IsNaN(temperature) {
		return nil, fmt.Errorf("matchmaker: temperature must be positive, got %v", temperature)
	}
	return &Softmax{Temperature: temperature, rng: rng}, nil
}

func (m *Softmax) Name() string { return "softmax" }

func (m *Softmax) PickPair(players []Candidate) (int, int, error) {
	if len(players) < 2 {
		return 0, 0, ErrTooFewPlayers
	}
	base := leastVoted(players, m.rng)
	target := players[base].Rating
	opp := opponentByRoulette(players, base, func(j int) float64 {
		return math.Exp(-math.Abs(players[j].Rating-target) / m.Temperature)
	}, m.rng)
	return base, opp, nil
}
