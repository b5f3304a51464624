package main

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imageduels/sim/arena"
)

func TestSummarizeMetric(t *testing.T) {
	s := summarizeMetric([]float64{4, 1, 3, 2})
	assert.Equal(t, 2.5, s.Mean)
	assert.Equal(t, 2.5, s.Median)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 4.0, s.Max)

	odd := summarizeMetric([]float64{5, 1, 3})
	assert.Equal(t, 3.0, odd.Median)

	assert.Equal(t, MetricSummary{}, summarizeMetric(nil))
}

func TestBootstrapCI95(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	vals := []float64{5, 5, 5, 5}
	low, hi := bootstrapCI95(vals, 500, rng)
	assert.Equal(t, 5.0, low)
	assert.Equal(t, 5.0, hi)

	low, hi = bootstrapCI95([]float64{1, 2, 3, 4, 5, 6, 7, 8}, 2000, rng)
	assert.LessOrEqual(t, low, hi)
	assert.Greater(t, hi, low, "spread data should give a real interval")
	assert.InDelta(t, 4.5, (low+hi)/2, 1.0)
}

func TestRunExperimentDeterministic(t *testing.T) {
	cfg := arena.DefaultConfig()
	cfg.Stages = []arena.Stage{{Players: 20, Rounds: 100}}

	r1, err := runExperiment(cfg, "glicko2", "softmax", 4, 99)
	require.NoError(t, err)
	r2, err := runExperiment(cfg, "glicko2", "softmax", 4, 99)
	require.NoError(t, err)

	require.Len(t, r1, 4)
	for i := range r1 {
		assert.Equal(t, r1[i], r2[i], "repetition %d should reproduce under the same seed", i)
	}
}

func TestRunExperimentRejectsNonPositiveRuns(t *testing.T) {
	cfg := arena.DefaultConfig()
	for _, runs := range []int{0, -1, -20} {
		_, err := runExperiment(cfg, "glicko2", "softmax", runs, 1)
		assert.Error(t, err, "runs=%d", runs)
	}
}

func TestRunExperimentUnknownNames(t *testing.T) {
	cfg := arena.DefaultConfig()
	_, err := runExperiment(cfg, "glicko9", "softmax", 1, 1)
	assert.Error(t, err)
	_, err = runExperiment(cfg, "glicko2", "psychic", 1, 1)
	assert.Error(t, err)
}
