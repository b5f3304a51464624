package rating

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateMatchEqualPlayers(t *testing.T) {
	eng := NewGlicko2()
	p := State{Rating: 1000, RD: 350, Volatility: 0.03}

	n1, n2, err := eng.UpdateMatch(p, p, P1Win)
	require.NoError(t, err)

	assert.Greater(t, n1.Rating, p.Rating, "winner should gain rating")
	assert.Less(t, n2.Rating, p.Rating, "loser should lose rating")
	assert.Less(t, n1.RD, 350.0, "winner deviation should shrink")
	assert.Less(t, n2.RD, 350.0, "loser deviation should shrink")
	assert.Greater(t, n1.RD, 0.0)
	assert.Greater(t, n2.RD, 0.0)
	assert.Greater(t, n1.Volatility, 0.0)
	assert.Greater(t, n2.Volatility, 0.0)
}

func TestUpdateMatchRoleReversalSymmetry(t *testing.T) {
	eng := NewGlicko2()
	a := State{Rating: 1100, RD: 220, Volatility: 0.03}
	b := State{Rating: 950, RD: 300, Volatility: 0.04}

	n1, n2, err := eng.UpdateMatch(a, b, P1Win)
	require.NoError(t, err)
	m2, m1, err := eng.UpdateMatch(b, a, P2Win)
	require.NoError(t, err)

	assert.InDelta(t, n1.Rating, m1.Rating, 1e-12)
	assert.InDelta(t, n1.RD, m1.RD, 1e-12)
	assert.InDelta(t, n1.Volatility, m1.Volatility, 1e-12)
	assert.InDelta(t, n2.Rating, m2.Rating, 1e-12)
	assert.InDelta(t, n2.RD, m2.RD, 1e-12)
	assert.InDelta(t, n2.Volatility, m2.Volatility, 1e-12)
}

func TestUpdateMatchUpsetMonotonicity(t *testing.T) {
	eng := NewGlicko2()
	weak := State{Rating: 900, RD: 200, Volatility: 0.03}
	strong := State{Rating: 1300, RD: 200, Volatility: 0.03}

	// Underdog wins: the winner must not lose rating, the loser must not gain.
	nw, ns, err := eng.UpdateMatch(weak, strong, P1Win)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, nw.Rating, weak.Rating)
	assert.LessOrEqual(t, ns.Rating, strong.Rating)
}

func TestUpdateMatchInvariantsAcrossSweep(t *testing.T) {
	eng := NewGlicko2()
	ratings := []float64{600, 1000, 1400, 2200}
	rds := []float64{30, 150, 350}
	for _, ra := range ratings {
		for _, rb := range ratings {
			for _, rd := range rds {
				a := State{Rating: ra, RD: rd, Volatility: 0.03}
				b := State{Rating: rb, RD: rd, Volatility: 0.03}
				for _, out := range []Outcome{P1Win, P2Win} {
					n1, n2, err := eng.UpdateMatch(a, b, out)
					require.NoError(t, err)
					assert.Greater(t, n1.RD, 0.0)
					assert.Greater(t, n2.RD, 0.0)
					assert.Greater(t, n1.Volatility, 0.0)
					assert.Greater(t, n2.Volatility, 0.0)
				}
			}
		}
	}
}

func TestUpdateMatchNonConvergence(t *testing.T) {
	eng := NewGlicko2()
	eng.MaxIterations = 1
	a := State{Rating: 1000, RD: 350, Volatility: 0.03}
	b := State{Rating: 2400, RD: 30, Volatility: 0.03}

	_, _, err := eng.UpdateMatch(a, b, P1Win)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonConvergence)
}

func TestWinProbabilityEqualStates(t *testing.T) {
	eng := NewGlicko2()
	p := State{Rating: 1000, RD: 350, Volatility: 0.03}
	assert.Equal(t, 0.5, eng.WinProbability(p, p))
}

func TestWinProbabilityOrdering(t *testing.T) {
	eng := NewGlicko2()
	a := State{Rating: 1200, RD: 100, Volatility: 0.03}
	b := State{Rating: 1000, RD: 100, Volatility: 0.03}

	pab := eng.WinProbability(a, b)
	pba := eng.WinProbability(b, a)
	assert.Greater(t, pab, 0.5)
	assert.Less(t, pba, 0.5)
	assert.InDelta(t, 1.0, pab+pba, 1e-12, "probabilities should be complementary")
}

func TestRepeatedPlayKeepsDeviationBounded(t *testing.T) {
	eng := NewGlicko2()
	a := eng.InitialState()
	b := eng.InitialState()

	out := P1Win
	for i := 0; i < 500; i++ {
		var err error
		a, b, err = eng.UpdateMatch(a, b, out)
		require.NoError(t, err)
		out = out.Flip()
		assert.Less(t, a.RD, 350.0)
		assert.Less(t, b.RD, 350.0)
		assert.Greater(t, a.RD, 0.0)
		assert.Greater(t, b.RD, 0.0)
	}
}

func TestFinalRDConverges(t *testing.T) {
	eng := NewGlicko2()
	rd, iters := eng.FinalRD(0.03, 50)

	assert.Greater(t, rd, 0.0)
	assert.Less(t, rd, 50.0, "fixed point should sit below the starting deviation")
	assert.Less(t, iters, 100000, "should converge well before the cap")

	// Feeding the fixed point back in should barely move.
	rd2, _ := eng.FinalRD(0.03, rd)
	assert.InDelta(t, rd, rd2, 1e-2)
}

func TestTimeDecay(t *testing.T) {
	eng := NewGlicko2()

	t.Run("grows toward ceiling", func(t *testing.T) {
		s := State{Rating: 1000, RD: 60, Volatility: 0.03}
		d1 := eng.TimeDecay(s, 1)
		d5 := eng.TimeDecay(s, 5)
		assert.Greater(t, d1.RD, s.RD)
		assert.Greater(t, d5.RD, d1.RD)
		assert.Equal(t, s.Rating, d1.Rating)
		assert.Equal(t, s.Volatility, d1.Volatility)
	})

	t.Run("clamped at ceiling", func(t *testing.T) {
		s := State{Rating: 1000, RD: 140, Volatility: 0.03}
		d := eng.TimeDecay(s, 1e6)
		assert.InDelta(t, eng.RDCeiling, d.RD, 1e-9)
	})

	t.Run("no-op for zero periods", func(t *testing.T) {
		s := State{Rating: 1000, RD: 60, Volatility: 0.03}
		assert.Equal(t, s, eng.TimeDecay(s, 0))
	})
}

func TestScaleRoundTrip(t *testing.T) {
	mu, phi := toMuPhi(1500, 200)
	assert.Equal(t, 0.0, mu)
	assert.InDelta(t, 1.1512924985234674, phi, 1e-12)

	r, rd := fromMuPhi(mu, phi)
	assert.InDelta(t, 1500.0, r, 1e-9)
	assert.InDelta(t, 200.0, rd, 1e-9)
}

func TestGPhiMatchesPaper(t *testing.T) {
	// Reference value from the worked example in Glickman's paper.
	assert.InDelta(t, 0.9955, gPhi(30.0/g2Scale), 1e-4)
	assert.True(t, math.Abs(gPhi(0)-1.0) < 1e-12)
}
