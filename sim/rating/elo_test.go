package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEloUpdateMatch(t *testing.T) {
	eng := NewElo()
	a := eng.InitialState()
	b := eng.InitialState()

	n1, n2 := eng.UpdateMatch(a, b, P1Win)
	assert.InDelta(t, 1016.0, n1.Rating, 1e-9, "equal players move by K/2")
	assert.InDelta(t, 984.0, n2.Rating, 1e-9)
	assert.Equal(t, 1, n1.Games)
	assert.Equal(t, 1, n2.Games)
}

func TestEloRoleReversalSymmetry(t *testing.T) {
	eng := NewElo()
	a := EloState{Rating: 1150, Games: 3}
	b := EloState{Rating: 980, Games: 9}

	n1, n2 := eng.UpdateMatch(a, b, P1Win)
	m2, m1 := eng.UpdateMatch(b, a, P2Win)
	assert.Equal(t, n1, m1)
	assert.Equal(t, n2, m2)
}

func TestEloAnneal(t *testing.T) {
	eng := NewElo()
	eng.Anneal = true
	fresh := EloState{Rating: 1000}
	veteran := EloState{Rating: 1000, Games: 100}

	n1, _ := eng.UpdateMatch(fresh, EloState{Rating: 1000}, P1Win)
	n2, _ := eng.UpdateMatch(veteran, EloState{Rating: 1000}, P1Win)
	assert.Greater(t, n1.Rating-1000, n2.Rating-1000, "veteran ratings move less")
}

func TestEloWinProbability(t *testing.T) {
	eng := NewElo()
	a := EloState{Rating: 1000}
	assert.Equal(t, 0.5, eng.WinProbability(a, a))

	b := EloState{Rating: 1400}
	assert.InDelta(t, 1.0/11.0, eng.WinProbability(a, b), 1e-9, "400 points is 10:1 odds")
}
