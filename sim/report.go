package main

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"imageduels/sim/arena"
)

//
// ===== aggregate statistics =====
//

// MetricSummary is mean/median/min/max of one metric across repetitions.
type MetricSummary struct {
	Mean, Median, Min, Max float64
}

func summarizeMetric(vals []float64) MetricSummary {
	if len(vals) == 0 {
		return MetricSummary{}
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	mid := len(sorted) / 2
	median := sorted[mid]
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	}
	return MetricSummary{
		Mean:   sum / float64(len(sorted)),
		Median: median,
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
}

// Aggregate bundles the across-run statistics of an experiment.
type Aggregate struct {
	Runs int

	MeanAbsRankError MetricSummary
	MaxAbsRankError  MetricSummary
	WithinN          map[int]MetricSummary

	// 95% bootstrap CI on the mean of the per-run mean rank errors.
	CILow, CIHigh float64
}

func aggregate(results []*arena.Result, rng *rand.Rand) Aggregate {
	agg := Aggregate{Runs: len(results), WithinN: map[int]MetricSummary{}}
	if len(results) == 0 {
		return agg
	}

	means := make([]float64, len(results))
	maxes := make([]float64, len(results))
	within := map[int][]float64{}
	for i, r := range results {
		means[i] = r.MeanAbsRankError
		maxes[i] = float64(r.MaxAbsRankError)
		for n, frac := range r.WithinN {
			within[n] = append(within[n], frac)
		}
	}
	agg.MeanAbsRankError = summarizeMetric(means)
	agg.MaxAbsRankError = summarizeMetric(maxes)
	for n, vals := range within {
		agg.WithinN[n] = summarizeMetric(vals)
	}
	agg.CILow, agg.CIHigh = bootstrapCI95(means, 2000, rng)
	return agg
}

// bootstrapCI95 resamples the per-run means to a 95% interval on their mean.
func bootstrapCI95(vals []float64, B int, rng *rand.Rand) (low, hi float64) {
	n := len(vals)
	if n == 0 || B <= 1 {
		return 0, 0
	}
	res := make([]float64, B)
	for b := 0; b < B; b++ {
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += vals[rng.Intn(n)]
		}
		res[b] = sum / float64(n)
	}
	sort.Float64s(res)
	l := int(0.025 * float64(B-1))
	h := int(0.975 * float64(B-1))
	return res[l], res[h]
}

//
// ===== printing =====
//

func printAggregate(sysName, mmName string, agg Aggregate) {
	section(fmt.Sprintf("%s / %s - %d run(s)", sysName, mmName, agg.Runs))
	fmt.Printf("  %s  mean=%.3f median=%.3f min=%.3f max=%.3f  %s\n",
		bold("rank error"),
		agg.MeanAbsRankError.Mean, agg.MeanAbsRankError.Median,
		agg.MeanAbsRankError.Min, agg.MeanAbsRankError.Max,
		dim(fmt.Sprintf("CI95 [%.3f, %.3f]", agg.CILow, agg.CIHigh)))
	fmt.Printf("  %s  mean=%.1f max=%.0f\n",
		bold("worst player"), agg.MaxAbsRankError.Mean, agg.MaxAbsRankError.Max)

	ns := make([]int, 0, len(agg.WithinN))
	for n := range agg.WithinN {
		ns = append(ns, n)
	}
	sort.Ints(ns)
	parts := make([]string, 0, len(ns))
	for _, n := range ns {
		parts = append(parts, fmt.Sprintf("≤%d: %.1f%%", n, agg.WithinN[n].Mean*100))
	}
	fmt.Printf("  %s  %s\n", bold("within"), strings.Join(parts, "  "))
}

// printPlayers dumps the per-player scoring rows of a single run, worst first.
func printPlayers(res *arena.Result) {
	rows := append([]arena.PlayerRecord(nil), res.Players...)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].AbsDiff != rows[j].AbsDiff {
			return rows[i].AbsDiff > rows[j].AbsDiff
		}
		return rows[i].ID < rows[j].ID
	})
	sub("per-player ranks (worst first)")
	fmt.Printf("  %4s %9s %9s %6s %6s %5s\n", "id", "true", "est", "trueR", "estR", "|Δ|")
	for _, r := range rows {
		line := fmt.Sprintf("  %4d %9.1f %9.1f %6d %6d %5d",
			r.ID, r.TrueRating, r.EstRating, r.TrueRank, r.EstRank, r.AbsDiff)
		switch {
		case r.AbsDiff == 0:
			fmt.Println(good(line))
		case r.AbsDiff >= 10:
			fmt.Println(bad(line))
		default:
			fmt.Println(line)
		}
	}
}
