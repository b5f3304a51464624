package rating

import "math"

// EloState tracks a single player's Elo rating and game count.
type EloState struct {
	Rating float64
	Games  int
}

// Elo is the classic base-400 engine. Kept as a sibling to Glicko-2 so the
// harness can compare algorithms under the same matchmaking.
type Elo struct {
	InitialRating float64
	K             float64 // base K
	Anneal        bool    // slowly shrink K as games accumulate
}

// NewElo returns an engine at the usual ladder defaults.
func NewElo() *Elo { return &Elo{InitialRating: 1000, K: 32} }

func (e *Elo) InitialState() EloState { return EloState{Rating: e.InitialRating} }

func eloExpect(ra, rb float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (rb-ra)/400.0))
}

// kEff tempers K with a slow anneal over games so established ratings move less.
func (e *Elo) kEff(games int) float64 {
	if !e.Anneal {
		return e.K
	}
	return e.K / (1.0 + 0.01*float64(games))
}

// UpdateMatch applies one duel and returns both updated states.
func (e *Elo) UpdateMatch(p1, p2 EloState, out Outcome) (EloState, EloState) {
	s1, s2 := out.scores()
	ea := eloExpect(p1.Rating, p2.Rating)
	eb := 1.0 - ea
	p1.Rating += e.kEff(p1.Games) * (s1 - ea)
	p2.Rating += e.kEff(p2.Games) * (s2 - eb)
	p1.Games++
	p2.Games++
	return p1, p2
}

// WinProbability is the base-400 logistic on the rating difference.
func (e *Elo) WinProbability(a, b EloState) float64 {
	return eloExpect(a.Rating, b.Rating)
}
