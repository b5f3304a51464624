package arena

// Player is the harness-side bookkeeping for one synthetic contestant. The
// hidden TrueRating drives outcome sampling and final scoring only; it is
// never shown to the matchmaker or the rating system.
type Player struct {
	ID         int
	TrueRating float64
	State      any // owned rating-system state, replaced after every duel

	Votes     int     // duels participated in
	Momentum  float64 // EWMA of realized comparable-rating deltas
	LastRound int     // global round of the most recent duel (or creation)
}

// momentumAlpha is the smoothing factor for the per-duel rating delta.
const momentumAlpha = 0.1
