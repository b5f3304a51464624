package matchmaker

import (
	"fmt"
	"math"
	"math/rand"
)

// MomentumConfig tunes the momentum-gated distance weighting. Gating is off
// by default; with Enabled false the strategy behaves exactly like Softmax.
type MomentumConfig struct {
	Temperature float64
	Enabled     bool
	MinVotes    int     // base must have this many duels before gating applies
	Threshold   float64 // |momentum| must reach this to shift the target
	MaxShift    float64 // cap on the target shift magnitude
}

func DefaultMomentumConfig() MomentumConfig {
	return MomentumConfig{
		Temperature: defaultTemperature,
		MinVotes:    5,
		Threshold:   10,
		MaxShift:    150,
	}
}

// Momentum is distance-weighted selection that, when gated on, aims the
// target rating ahead of a player whose rating is moving fast: a climbing
// player gets matched slightly upward, a falling one slightly downward.
type Momentum struct {
	cfg MomentumConfig
	rng *rand.Rand
}

func NewMomentum(cfg MomentumConfig, rng *rand.Rand) (*Momentum, error) {
	if cfg.Temperature <= 0 || math.IsNaN(cfg.Temperature) {
		return nil, fmt.Errorf("matchmaker: temperature must be positive, got %v", cfg.Temperature)
	}
	if cfg.Threshold < 0 || cfg.MaxShift < 0 || cfg.MinVotes < 0 {
		return nil, fmt.Errorf("matchmaker: momentum gate values must be non-negative")
	}
	return &Momentum{cfg: cfg, rng: rng}, nil
}

func (m *Momentum) Name() string { return "momentum" }

// targetFor returns the rating the opponent weights are centered on.
func (m *Momentum) targetFor(base Candidate) float64 {
	target := base.Rating
	if !m.cfg.Enabled || base.Votes < m.cfg.MinVotes {
		return target
	}
	mom := base.Momentum
	if math.Abs(mom) < m.cfg.Threshold {
		return target
	}
	// Shift by the excess over the threshold, clamped.
	excess := mom - math.Copysign(m.cfg.Threshold, mom)
	if excess > m.cfg.MaxShift {
		excess = m.cfg.MaxShift
	} else if excess < -m.cfg.MaxShift {
		excess = -m.cfg.MaxShift
	}
	return target + excess
}

func (m *Momentum) PickPair(players []Candidate) (int, int, error) {
	if len(players) < 2 {
		return 0, 0, ErrTooFewPlayers
	}
	base := leastVoted(players, m.rng)
	target := m.targetFor(players[base])
	opp := opponentByRoulette(players, base, func(j int) float64 {
		return math.Exp(-math.Abs(players[j].Rating-target) / m.cfg.Temperature)
	}, m.rng)
	return base, opp, nil
}
