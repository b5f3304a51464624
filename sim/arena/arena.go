// Package arena runs synthetic ranking experiments: hidden-strength players
// duel in pairs chosen by a matchmaker, a rating system digests the outcomes,
// and the final estimated order is scored against the hidden truth.
package arena

import (
	"fmt"
	"math"
	"math/rand"

	"imageduels/sim/matchmaker"
	"imageduels/sim/rating"
)

// Arena is a single sequential simulation run. Runs are independent; for
// Monte Carlo aggregation create one Arena per repetition and run them on
// separate goroutines.
type Arena struct {
	cfg Config
	sys rating.System
	mm  matchmaker.Matchmaker
	rng *rand.Rand

	players []*Player
	round   int // global round counter across stages
}

// New validates the configuration and prepares a run. The rand source is the
// only nondeterminism: a fixed seed reproduces the run exactly.
func New(cfg Config, sys rating.System, mm matchmaker.Matchmaker, rng *rand.Rand) (*Arena, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sys == nil || mm == nil || rng == nil {
		return nil, fmt.Errorf("arena: system, matchmaker and rng are required")
	}
	return &Arena{cfg: cfg, sys: sys, mm: mm, rng: rng}, nil
}

// Run executes every stage and returns the scored result.
func (a *Arena) Run() (*Result, error) {
	for _, stage := range a.cfg.Stages {
		a.spawn(stage.Players)
		for r := 0; r < stage.Rounds; r++ {
			if err := a.playRound(); err != nil {
				return nil, err
			}
			a.round++
		}
		a.postStage()
	}
	return a.score(), nil
}

// spawn adds a cohort. Players joining mid-simulation start their freshness
// clock at the current global round, not zero.
func (a *Arena) spawn(n int) {
	for i := 0; i < n; i++ {
		a.players = append(a.players, &Player{
			ID:         len(a.players),
			TrueRating: a.cfg.TrueMin + a.rng.Float64()*(a.cfg.TrueMax-a.cfg.TrueMin),
			State:      a.sys.InitialState(),
			LastRound:  a.round,
		})
	}
}

func (a *Arena) playRound() error {
	i, j, err := a.mm.PickPair(a.candidates())
	if err != nil {
		return err
	}
	p1, p2 := a.players[i], a.players[j]

	out := a.sampleOutcome(p1, p2)

	old1 := a.sys.ComparableRating(p1.State)
	old2 := a.sys.ComparableRating(p2.State)
	n1, n2, err := a.sys.UpdateMatch(p1.State, p2.State, out)
	if err != nil {
		return fmt.Errorf("arena: round %d update: %w", a.round, err)
	}
	p1.State = n1
	p2.State = n2

	a.bookkeep(p1, a.sys.ComparableRating(n1)-old1)
	a.bookkeep(p2, a.sys.ComparableRating(n2)-old2)
	return nil
}

func (a *Arena) bookkeep(p *Player, delta float64) {
	p.Votes++
	p.Momentum = (1-momentumAlpha)*p.Momentum + momentumAlpha*delta
	p.LastRound = a.round
}

// candidates builds the matchmaker view: estimated state only, never truth.
func (a *Arena) candidates() []matchmaker.Candidate {
	unc, hasUnc := a.sys.(rating.UncertaintySystem)
	cands := make([]matchmaker.Candidate, len(a.players))
	for i, p := range a.players {
		cands[i] = matchmaker.Candidate{
			Rating:    a.sys.ComparableRating(p.State),
			Votes:     p.Votes,
			Momentum:  p.Momentum,
			LastRound: p.LastRound,
		}
		if hasUnc {
			cands[i].Uncertainty = unc.Uncertainty(p.State)
		}
	}
	return cands
}

// sampleOutcome draws the duel result from the hidden truth under one of the
// three noise regimes. Noise offsets are uniform in [-D, D], drawn per player,
// and the win probability is the base-400 logistic on the noisy difference.
func (a *Arena) sampleOutcome(p1, p2 *Player) rating.Outcome {
	u := a.rng.Float64()
	if u < a.cfg.Noise.SpamProb {
		// Spam vote: pure coin flip, skill ignored.
		if a.rng.Float64() < 0.5 {
			return rating.P1Win
		}
		return rating.P2Win
	}
	dev := a.cfg.Noise.TypicalDev
	if u < a.cfg.Noise.SpamProb+a.cfg.Noise.RareProb {
		dev = a.cfg.Noise.RareDev
	}
	r1 := p1.TrueRating + a.uniformNoise(dev)
	r2 := p2.TrueRating + a.uniformNoise(dev)
	p := 1.0 / (1.0 + math.Pow(10, (r2-r1)/400.0))
	if a.rng.Float64() < p {
		return rating.P1Win
	}
	return rating.P2Win
}

func (a *Arena) uniformNoise(dev float64) float64 {
	return (a.rng.Float64()*2 - 1) * dev
}

// postStage applies the optional end-of-stage adjustments: true-skill drift
// and deviation decay for players who sat out.
func (a *Arena) postStage() {
	if a.cfg.DriftStd > 0 {
		for _, p := range a.players {
			p.TrueRating += a.rng.NormFloat64() * a.cfg.DriftStd
		}
	}
	if !a.cfg.TimeDecay {
		return
	}
	decay, ok := a.sys.(rating.TimeDecaySystem)
	if !ok {
		return
	}
	for _, p := range a.players {
		if idle := a.round - p.LastRound; idle > 0 {
			p.State = decay.TimeDecay(p.State, float64(idle))
		}
	}
}
