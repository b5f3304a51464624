package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSystem(t *testing.T) {
	for _, name := range []string{"glicko2", "elo", "openskill"} {
		sys, err := NewSystem(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, sys.Name())
	}

	sys, err := NewSystem("")
	require.NoError(t, err)
	assert.Equal(t, "glicko2", sys.Name(), "empty name defaults to glicko2")

	_, err = NewSystem("trueskill9000")
	assert.Error(t, err)
}

func TestSystemCapabilities(t *testing.T) {
	g2, _ := NewSystem("glicko2")
	elo, _ := NewSystem("elo")
	osk, _ := NewSystem("openskill")

	_, ok := g2.(UncertaintySystem)
	assert.True(t, ok, "glicko2 exposes uncertainty")
	_, ok = g2.(TimeDecaySystem)
	assert.True(t, ok, "glicko2 exposes time decay")

	_, ok = elo.(UncertaintySystem)
	assert.False(t, ok, "elo has no uncertainty")
	_, ok = elo.(TimeDecaySystem)
	assert.False(t, ok, "elo has no time decay")

	_, ok = osk.(UncertaintySystem)
	assert.True(t, ok, "openskill exposes uncertainty")
	_, ok = osk.(TimeDecaySystem)
	assert.False(t, ok, "openskill has no time decay")
}

func TestSystemUpdateMovesComparableRating(t *testing.T) {
	for _, name := range []string{"glicko2", "elo", "openskill"} {
		t.Run(name, func(t *testing.T) {
			sys, err := NewSystem(name)
			require.NoError(t, err)

			a := sys.InitialState()
			b := sys.InitialState()
			before := sys.ComparableRating(a)
			assert.Equal(t, before, sys.ComparableRating(b))

			na, nb, err := sys.UpdateMatch(a, b, P1Win)
			require.NoError(t, err)
			assert.Greater(t, sys.ComparableRating(na), before)
			assert.Less(t, sys.ComparableRating(nb), before)
		})
	}
}

func TestGlicko2SystemDecayRaisesUncertainty(t *testing.T) {
	sys := NewGlicko2System()
	s := sys.InitialState()

	// Play a match first so the deviation has room to grow back.
	s, _, err := sys.UpdateMatch(s, sys.InitialState(), P1Win)
	require.NoError(t, err)

	before := sys.Uncertainty(s)
	decayed := sys.TimeDecay(s, 3)
	assert.Greater(t, sys.Uncertainty(decayed), before)
}
