package rating

// Outcome is the result of one duel relative to the ordered pair passed to
// the engine. There are no draws.
type Outcome int

const (
	P1Win Outcome = iota
	P2Win
)

func (o Outcome) String() string {
	if o == P1Win {
		return "p1"
	}
	return "p2"
}

// scores maps the outcome to the (s1, s2) pair fed to the update.
func (o Outcome) scores() (float64, float64) {
	if o == P1Win {
		return 1.0, 0.0
	}
	return 0.0, 1.0
}

// Flip returns the same result seen from the swapped pair.
func (o Outcome) Flip() Outcome {
	if o == P1Win {
		return P2Win
	}
	return P1Win
}
