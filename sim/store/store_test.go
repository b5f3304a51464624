package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndListRuns(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	defer db.Close()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := db.SaveRun(RunRow{
			ID:          uuid.NewString(),
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
			System:      "glicko2",
			Matchmaker:  "softmax",
			Players:     100,
			Rounds:      1000,
			Repetitions: 20,
			Seed:        int64(i),
			MeanErr:     5.5 - float64(i),
			MedianErr:   5.0,
			MinErr:      3.1,
			MaxErr:      9.9,
		})
		require.NoError(t, err)
	}

	runs, err := db.RecentRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.True(t, runs[0].CreatedAt.After(runs[1].CreatedAt), "newest first")
	assert.Equal(t, "softmax", runs[0].Matchmaker)
	assert.Equal(t, int64(2), runs[0].Seed)
	assert.InDelta(t, 3.5, runs[0].MeanErr, 1e-9)
}

func TestDuplicateRunID(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	defer db.Close()

	row := RunRow{ID: "fixed", CreatedAt: time.Now(), System: "elo", Matchmaker: "random"}
	require.NoError(t, db.SaveRun(row))
	assert.Error(t, db.SaveRun(row), "primary key enforced")
}
