// Package matchmaker holds the pair-selection strategies. Each strategy sees
// only the public view of a player (estimated rating, uncertainty, vote count,
// momentum, last activity) and picks two distinct indices per duel.
package matchmaker

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// ErrTooFewPlayers is returned when fewer than two players are offered.
var ErrTooFewPlayers = errors.New("matchmaker: need at least 2 players")

// Candidate is the matchmaker-visible slice of a player. True ratings never
// appear here.
type Candidate struct {
	Rating      float64 // comparable rating from the rating system
	Uncertainty float64 // deviation-like measure, 0 when the system has none
	Votes       int     // duels participated in
	Momentum    float64 // smoothed recent rating delta
	LastRound   int     // round of most recent duel (or creation round)
}

// Matchmaker picks the next pair to duel.
type Matchmaker interface {
	Name() string
	PickPair(players []Candidate) (int, int, error)
}

// New returns the strategy registered under name with its default tuning.
func New(name string, rng *rand.Rand) (Matchmaker, error) {
	switch name {
	case "random":
		return NewRandom(rng), nil
	case "window":
		return NewSimilarityWindow(defaultWindow, false, rng)
	case "window-lowvote":
		return NewSimilarityWindow(defaultWindow, true, rng)
	case "softmax", "":
		return NewSoftmax(defaultTemperature, rng)
	case "momentum":
		return NewMomentum(DefaultMomentumConfig(), rng)
	case "infogain":
		return NewInfoGain(DefaultInfoGainConfig(), rng)
	}
	return nil, fmt.Errorf("matchmaker: unknown strategy %q", name)
}

// Names lists every registered strategy.
func Names() []string {
	return []string{"random", "window", "window-lowvote", "softmax", "momentum", "infogain"}
}

//
// ===== shared selection helpers =====
//

// leastVoted returns a uniformly random index among the players sharing the
// minimum vote count.
func leastVoted(players []Candidate, rng *rand.Rand) int {
	min := players[0].Votes
	for _, p := range players[1:] {
		if p.Votes < min {
			min = p.Votes
		}
	}
	n := 0
	pick := -1
	for i, p := range players {
		if p.Votes != min {
			continue
		}
		n++
		if rng.Intn(n) == 0 {
			pick = i
		}
	}
	return pick
}

// uniformDistinct returns a uniform index in [0,n) different from skip.
func uniformDistinct(n, skip int, rng *rand.Rand) int {
	j := rng.Intn(n - 1)
	if j >= skip {
		j++
	}
	return j
}

// roulette draws an index proportional to weights. Non-finite or negative
// weights count as zero. Reports false when no weight is positive; callers
// fall back to a uniform draw, which must always yield a valid index.
func roulette(weights []float64, rng *rand.Rand) (int, bool) {
	total := 0.0
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			weights[i] = 0
			continue
		}
		total += w
	}
	if total <= 0 {
		return 0, false
	}
	threshold := rng.Float64() * total
	cum := 0.0
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cum += w
		last = i
		// >= rather than > so rounding can never skip the final candidate.
		if cum >= threshold {
			return i, true
		}
	}
	return last, true
}

// opponentByRoulette applies roulette over per-opponent weights, skipping
// base, with the uniform fallback baked in.
func opponentByRoulette(players []Candidate, base int, weight func(j int) float64, rng *rand.Rand) int {
	weights := make([]float64, len(players))
	for j := range players {
		if j == base {
			continue
		}
		weights[j] = weight(j)
	}
	if idx, ok := roulette(weights, rng); ok && idx != base {
		return idx
	}
	return uniformDistinct(len(players), base, rng)
}
