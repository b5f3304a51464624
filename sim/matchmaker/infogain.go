package matchmaker

import (
	"fmt"
	"math"
	"math/rand"
)

// InfoGainConfig weights the terms of the opponent score. All weights must be
// non-negative; the default uses the closeness term alone.
type InfoGainConfig struct {
	Temperature float64

	Closeness   float64 // softmax on rating distance
	Uncertainty float64 // combined deviation of the pairing
	UnderVoted  float64 // how far below the most-voted player the opponent sits
	Staleness   float64 // rounds since the opponent last dueled
}

func DefaultInfoGainConfig() InfoGainConfig {
	return InfoGainConfig{Temperature: defaultTemperature, Closeness: 1}
}

// InfoGain scores opponents by a weighted mix of how informative the duel
// would be: close in rating, uncertain, under-sampled, or stale.
type InfoGain struct {
	cfg InfoGainConfig
	rng *rand.Rand
}

func NewInfoGain(cfg InfoGainConfig, rng *rand.Rand) (*InfoGain, error) {
	if cfg.Temperature <= 0 || math.IsNaN(cfg.Temperature) {
		return nil, fmt.Errorf("matchmaker: temperature must be positive, got %v", cfg.Temperature)
	}
	if cfg.Closeness < 0 || cfg.Uncertainty < 0 || cfg.UnderVoted < 0 || cfg.Staleness < 0 {
		return nil, fmt.Errorf("matchmaker: info-gain weights must be non-negative")
	}
	return &InfoGain{cfg: cfg, rng: rng}, nil
}

func (m *InfoGain) Name() string { return "infogain" }

func (m *InfoGain) PickPair(players []Candidate) (int, int, error) {
	if len(players) < 2 {
		return 0, 0, ErrTooFewPlayers
	}
	base := leastVoted(players, m.rng)

	// Normalizers over the candidate pool.
	maxVotes := 0
	minLast, maxLast := players[0].LastRound, players[0].LastRound
	maxCombinedU := 0.0
	for j, p := range players {
		if p.Votes > maxVotes {
			maxVotes = p.Votes
		}
		if p.LastRound < minLast {
			minLast = p.LastRound
		}
		if p.LastRound > maxLast {
			maxLast = p.LastRound
		}
		if j != base {
			if u := p.Uncertainty + players[base].Uncertainty; u > maxCombinedU {
				maxCombinedU = u
			}
		}
	}

	opp := opponentByRoulette(players, base, func(j int) float64 {
		p := players[j]
		w := m.cfg.Closeness * math.Exp(-math.Abs(p.Rating-players[base].Rating)/m.cfg.Temperature)
		if m.cfg.Uncertainty > 0 && maxCombinedU > 0 {
			w += m.cfg.Uncertainty * (p.Uncertainty + players[base].Uncertainty) / maxCombinedU
		}
		if m.cfg.UnderVoted > 0 && maxVotes > 0 {
			w += m.cfg.UnderVoted * (1 - float64(p.Votes)/float64(maxVotes))
		}
		if m.cfg.Staleness > 0 && maxLast > minLast {
			w += m.cfg.Staleness * float64(maxLast-p.LastRound) / float64(maxLast-minLast)
		}
		return w
	}, m.rng)
	return base, opp, nil
}
