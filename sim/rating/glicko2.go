package rating

import (
	"errors"
	"math"
)

// --- Glicko-2 constants (paper values) ---
const (
	g2Scale  = 173.7178 // rating scale between r<->mu
	g2Center = 1500.0
	pi2      = math.Pi * math.Pi
)

// ErrNonConvergence is returned when the volatility root-find does not
// converge within the iteration cap. It usually means Tau is too large or a
// deviation is far outside the expected range; callers should treat it as a
// misconfiguration, not clamp and continue.
var ErrNonConvergence = errors.New("rating: glicko-2 volatility iteration did not converge")

// State holds the public “1500-scale” values (not mu/phi).
type State struct {
	Rating     float64 // r
	RD         float64 // rating deviation
	Volatility float64 // sigma
}

// Glicko2 is the rating engine. The zero value is not usable; construct with
// NewGlicko2 and tweak fields before first use.
type Glicko2 struct {
	Tau           float64 // volatility change constraint, typically 0.3–1.2
	Epsilon       float64 // root-find convergence tolerance
	MaxIterations int     // root-find iteration cap

	InitialRating     float64
	InitialRD         float64
	InitialVolatility float64

	RDCeiling float64 // deviation ceiling applied by time decay
	DecayC    float64 // per-period deviation growth (display scale)
}

// NewGlicko2 returns an engine at the canonical defaults.
func NewGlicko2() *Glicko2 {
	return &Glicko2{
		Tau:               0.5,
		Epsilon:           1e-6,
		MaxIterations:     100,
		InitialRating:     1000,
		InitialRD:         350,
		InitialVolatility: 0.03,
		RDCeiling:         150,
		DecayC:            35,
	}
}

// InitialState returns a fresh player at the engine's starting constants.
func (g *Glicko2) InitialState() State {
	return State{Rating: g.InitialRating, RD: g.InitialRD, Volatility: g.InitialVolatility}
}

// --- internal conversions r/RD <-> mu/phi ---
func toMuPhi(r, rd float64) (mu, phi float64) { return (r - g2Center) / g2Scale, rd / g2Scale }
func fromMuPhi(mu, phi float64) (r, rd float64) {
	return mu*g2Scale + g2Center, phi * g2Scale
}

// gPhi and the expected score E(mu, muj, phij), per the Glicko-2 paper.
func gPhi(phi float64) float64 { return 1.0 / math.Sqrt(1.0+3.0*phi*phi/pi2) }
func expScore(mu, muj, phij float64) float64 {
	return 1.0 / (1.0 + math.Exp(-gPhi(phij)*(mu-muj)))
}

// UpdateMatch applies one match between two players and returns both updated
// states. Pure: both outputs are computed from the two pre-match states, so
// the update is symmetric under role reversal with the outcome flipped.
func (g *Glicko2) UpdateMatch(p1, p2 State, out Outcome) (State, State, error) {
	s1, s2 := out.scores()
	n1, err := g.updateOne(p1, p2, s1)
	if err != nil {
		return p1, p2, err
	}
	n2, err := g.updateOne(p2, p1, s2)
	if err != nil {
		return p1, p2, err
	}
	return n1, n2, nil
}

// updateOne runs the full paper update for one player against one opponent.
func (g *Glicko2) updateOne(p, opp State, score float64) (State, error) {
	mu, phi := toMuPhi(p.Rating, p.RD)
	muj, phij := toMuPhi(opp.Rating, opp.RD)

	gj := gPhi(phij)
	e := expScore(mu, muj, phij)

	// Estimated variance and improvement from this single game.
	v := 1.0 / (gj * gj * e * (1.0 - e))
	delta := v * gj * (score - e)

	newVol, err := g.solveVolatility(phi, p.Volatility, v, delta)
	if err != nil {
		return p, err
	}

	phiStar := math.Sqrt(phi*phi + newVol*newVol)
	phiNew := 1.0 / math.Sqrt(1.0/(phiStar*phiStar)+1.0/v)
	muNew := mu + phiNew*phiNew*gj*(score-e)

	r, rd := fromMuPhi(muNew, phiNew)
	return State{Rating: r, RD: rd, Volatility: newVol}, nil
}

// solveVolatility finds sigma' with the Illinois variant of regula falsi on
// the paper's f(x). Fails loudly if the bracket does not tighten within the
// iteration cap.
func (g *Glicko2) solveVolatility(phi, sigma, v, delta float64) (float64, error) {
	a := math.Log(sigma * sigma)
	tau2 := g.Tau * g.Tau
	f := func(x float64) float64 {
		ex := math.Exp(x)
		num := ex * (delta*delta - phi*phi - v - ex)
		den := 2.0 * (phi*phi + v + ex) * (phi*phi + v + ex)
		return num/den - (x-a)/tau2
	}

	A := a
	var B float64
	if delta*delta > phi*phi+v {
		B = math.Log(delta*delta - phi*phi - v)
	} else {
		k := 1.0
		for f(a-k*g.Tau) < 0 {
			k++
			if int(k) > g.MaxIterations {
				return 0, ErrNonConvergence
			}
		}
		B = a - k*g.Tau
	}
	fA := f(A)
	fB := f(B)

	it := 0
	for math.Abs(B-A) > g.Epsilon {
		if it++; it > g.MaxIterations {
			return 0, ErrNonConvergence
		}
		C := A + (A-B)*fA/(fB-fA)
		fC := f(C)
		if math.IsNaN(fC) || math.IsInf(fC, 0) {
			return 0, ErrNonConvergence
		}
		if fC*fB <= 0 {
			A = B
			fA = fB
		} else {
			fA /= 2.0
		}
		B = C
		fB = fC
	}
	return math.Exp(A / 2.0), nil
}

// WinProbability is the expected score of a against b, folding both
// deviations into the weighting. Identical states give exactly 0.5.
func (g *Glicko2) WinProbability(a, b State) float64 {
	muA, phiA := toMuPhi(a.Rating, a.RD)
	muB, phiB := toMuPhi(b.Rating, b.RD)
	return 1.0 / (1.0 + math.Exp(-gPhi(math.Sqrt(phiA*phiA+phiB*phiB))*(muA-muB)))
}

// Uncertainty is the read accessor for the deviation.
func (g *Glicko2) Uncertainty(s State) float64 { return s.RD }

// TimeDecay grows the deviation toward the ceiling for periods spent without
// play: phi' = min(sqrt(phi^2 + c^2*periods), phiMax). Rating and volatility
// are untouched.
func (g *Glicko2) TimeDecay(s State, periods float64) State {
	if periods <= 0 {
		return s
	}
	_, phi := toMuPhi(s.Rating, s.RD)
	c := g.DecayC / g2Scale
	phiNew := math.Sqrt(phi*phi + c*c*periods)
	if max := g.RDCeiling / g2Scale; phiNew > max {
		phiNew = max
	}
	// Decay only ever grows the deviation; a state already above the ceiling
	// keeps what it has.
	if phiNew < phi {
		phiNew = phi
	}
	s.RD = phiNew * g2Scale
	return s
}

// FinalRD iterates self-play from startRD until the deviation reaches its
// fixed point for the given volatility (|newRD - RD| < 1e-6). Returns the
// fixed-point deviation and the number of iterations taken. Volatility and
// rating are held constant: this traces the deviation trajectory alone.
func (g *Glicko2) FinalRD(volatility, startRD float64) (float64, int) {
	const tol = 1e-6
	const maxIter = 100000
	s := State{Rating: g.InitialRating, RD: startRD, Volatility: volatility}
	for i := 1; i <= maxIter; i++ {
		next, _, err := g.UpdateMatch(s, s, P1Win)
		if err != nil {
			return s.RD, i
		}
		if math.Abs(next.RD-s.RD) < tol {
			return next.RD, i
		}
		s.RD = next.RD
	}
	return s.RD, maxIter
}
