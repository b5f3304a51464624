package arena

import "sort"

// withinThresholds are the absolute rank distances reported as coverage
// fractions. Raw rank counts, not percentages of the field.
var withinThresholds = []int{1, 2, 3, 5, 10}

// PlayerRecord is the per-player scoring row.
type PlayerRecord struct {
	ID         int
	TrueRating float64
	EstRating  float64
	TrueRank   int // 1-based, descending true rating
	EstRank    int // 1-based, descending estimated rating
	AbsDiff    int
}

// Result carries the ranking-accuracy metrics of one finished run.
type Result struct {
	Players []PlayerRecord // ordered by ID

	MeanAbsRankError float64
	MaxAbsRankError  int
	// WithinN[n] is the fraction of players whose |trueRank - estRank| <= n.
	WithinN map[int]float64
}

// score ranks the field twice, by truth and by estimate, and measures how far
// the two orders disagree per player.
func (a *Arena) score() *Result {
	n := len(a.players)
	recs := make([]PlayerRecord, n)
	for i, p := range a.players {
		recs[i] = PlayerRecord{
			ID:         p.ID,
			TrueRating: p.TrueRating,
			EstRating:  a.sys.ComparableRating(p.State),
		}
	}

	assignRanks(recs, func(r PlayerRecord) float64 { return r.TrueRating }, func(r *PlayerRecord, rank int) { r.TrueRank = rank })
	assignRanks(recs, func(r PlayerRecord) float64 { return r.EstRating }, func(r *PlayerRecord, rank int) { r.EstRank = rank })

	res := &Result{Players: recs, WithinN: make(map[int]float64, len(withinThresholds))}
	sum := 0
	for i := range recs {
		d := recs[i].TrueRank - recs[i].EstRank
		if d < 0 {
			d = -d
		}
		recs[i].AbsDiff = d
		sum += d
		if d > res.MaxAbsRankError {
			res.MaxAbsRankError = d
		}
	}
	res.MeanAbsRankError = float64(sum) / float64(n)
	for _, th := range withinThresholds {
		hits := 0
		for i := range recs {
			if recs[i].AbsDiff <= th {
				hits++
			}
		}
		res.WithinN[th] = float64(hits) / float64(n)
	}
	return res
}

// assignRanks writes 1-based descending ranks by key, ties broken by ID so
// the ordering is total and deterministic.
func assignRanks(recs []PlayerRecord, key func(PlayerRecord) float64, set func(*PlayerRecord, int)) {
	order := make([]int, len(recs))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(x, y int) bool {
		a, b := recs[order[x]], recs[order[y]]
		if key(a) != key(b) {
			return key(a) > key(b)
		}
		return a.ID < b.ID
	})
	for rank, idx := range order {
		set(&recs[idx], rank+1)
	}
}
