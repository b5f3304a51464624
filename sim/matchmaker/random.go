package matchmaker

import "math/rand"

// Random pairs two uniformly random distinct players. The baseline every
// other strategy is judged against.
type Random struct {
	rng *rand.Rand
}

func NewRandom(rng *rand.Rand) *Random { return &Random{rng: rng} }

func (m *Random) Name() string { return "random" }

func (m *Random) PickPair(players []Candidate) (int, int, error) {
	if len(players) < 2 {
		return 0, 0, ErrTooFewPlayers
	}
	i := m.rng.Intn(len(players))
	j := uniformDistinct(len(players), i, m.rng)
	return i, j, nil
}
