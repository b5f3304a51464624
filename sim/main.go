package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"imageduels/sim/arena"
	"imageduels/sim/matchmaker"
	"imageduels/sim/rating"
	"imageduels/sim/store"
)

//
// ===== pretty printing =====
//

var useColor bool

const (
	colReset = "\033[0m"
	colBold  = "\033[1m"
	colDim   = "\033[2m"
	colGreen = "\033[32m"
	colRed   = "\033[31m"
	colCyan  = "\033[36m"
)

func c(code, s string) string {
	if !useColor {
		return s
	}
	return code + s + colReset
}
func bold(s string) string { return c(colBold, s) }
func dim(s string) string  { return c(colDim, s) }
func good(s string) string { return c(colGreen, s) }
func bad(s string) string  { return c(colRed, s) }
func cyan(s string) string { return c(colCyan, s) }
func section(title string) { fmt.Printf("\n%s %s %s\n", dim("──"), bold(title), dim("──")) }
func sub(title string)     { fmt.Printf("%s %s\n", dim("•"), bold(title)) }

//
// ===== env helpers =====
//

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
func atoiDef(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
func asBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

//
// ===== experiment driver =====
//

// runExperiment executes runs independent repetitions on derived seeds.
// Repetitions share nothing, so they fan out across goroutines.
func runExperiment(cfg arena.Config, sysName, mmName string, runs int, seed int64) ([]*arena.Result, error) {
	if runs < 1 {
		return nil, fmt.Errorf("runs must be at least 1, got %d", runs)
	}
	results := make([]*arena.Result, runs)
	var g errgroup.Group
	for i := 0; i < runs; i++ {
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed + int64(i)))
			sys, err := rating.NewSystem(sysName)
			if err != nil {
				return err
			}
			mm, err := matchmaker.New(mmName, rng)
			if err != nil {
				return err
			}
			a, err := arena.New(cfg, sys, mm, rng)
			if err != nil {
				return err
			}
			results[i], err = a.Run()
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func totals(cfg arena.Config) (players, rounds int) {
	for _, s := range cfg.Stages {
		players += s.Players
		rounds += s.Rounds
	}
	return players, rounds
}

func persist(db *store.DB, cfg arena.Config, sysName, mmName string, runs int, seed int64, agg Aggregate) {
	players, rounds := totals(cfg)
	row := store.RunRow{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now(),
		System:      sysName,
		Matchmaker:  mmName,
		Players:     players,
		Rounds:      rounds,
		Repetitions: runs,
		Seed:        seed,
		MeanErr:     agg.MeanAbsRankError.Mean,
		MedianErr:   agg.MeanAbsRankError.Median,
		MinErr:      agg.MeanAbsRankError.Min,
		MaxErr:      agg.MeanAbsRankError.Max,
	}
	if err := db.SaveRun(row); err != nil {
		log.Printf("warn: %v", err)
		return
	}
	fmt.Printf("%s saved run %s\n", dim("db:"), cyan(row.ID))
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	_ = godotenv.Load()

	useColor = (os.Getenv("NO_COLOR") == "") && (strings.TrimSpace(os.Getenv("USE_COLOR")) != "0")

	var compare, history bool
	var configPath string
	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--compare":
			compare = true
		case "--history":
			history = true
		case "--config":
			if i+1 >= len(args) {
				log.Fatalf("--config needs a file path")
			}
			i++
			configPath = args[i]
		default:
			log.Fatalf("unknown argument %q (want --compare, --history, --config <file>)", args[i])
		}
	}

	cfg := arena.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = arena.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
	}
	// Quick single-stage overrides for ad-hoc experiments.
	if len(cfg.Stages) == 1 {
		cfg.Stages[0].Players = atoiDef(os.Getenv("PLAYERS"), cfg.Stages[0].Players)
		cfg.Stages[0].Rounds = atoiDef(os.Getenv("ROUNDS"), cfg.Stages[0].Rounds)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	sysName := getenv("SYSTEM", "glicko2")
	mmName := getenv("MATCHMAKER", "softmax")
	runs := atoiDef(os.Getenv("RUNS"), 20)
	if runs < 1 {
		log.Fatalf("RUNS must be at least 1, got %d", runs)
	}
	seed := int64(atoiDef(os.Getenv("SEED"), int(time.Now().UnixNano()%1e9)))
	verbose := asBool(os.Getenv("VERBOSE"))

	var db *store.DB
	if path := os.Getenv("RESULTS_DB"); path != "" {
		var err error
		db, err = store.Open(path)
		if err != nil {
			log.Fatalf("results db: %v", err)
		}
		defer db.Close()
	}

	if history {
		if db == nil {
			log.Fatalf("--history needs RESULTS_DB set")
		}
		runHistory(db)
		return
	}

	players, rounds := totals(cfg)
	fmt.Printf("%s players=%d rounds=%d stages=%d runs=%d seed=%d\n",
		bold("image-duel rating sim"), players, rounds, len(cfg.Stages), runs, seed)

	if compare {
		runCompare(cfg, sysName, runs, seed, db)
		return
	}

	start := time.Now()
	results, err := runExperiment(cfg, sysName, mmName, runs, seed)
	if err != nil {
		log.Fatalf("run: %v", err)
	}
	agg := aggregate(results, rand.New(rand.NewSource(seed)))
	printAggregate(sysName, mmName, agg)
	fmt.Printf("%s\n", dim(fmt.Sprintf("elapsed %s", time.Since(start).Round(time.Millisecond))))

	if verbose && runs >= 1 {
		printPlayers(results[0])
	}
	if db != nil {
		persist(db, cfg, sysName, mmName, runs, seed, agg)
	}
}

// runCompare plays every registered strategy under identical seeds so the
// numbers are directly comparable.
func runCompare(cfg arena.Config, sysName string, runs int, seed int64, db *store.DB) {
	section(fmt.Sprintf("strategy comparison - %s, %d run(s) each", sysName, runs))
	for _, mmName := range matchmaker.Names() {
		results, err := runExperiment(cfg, sysName, mmName, runs, seed)
		if err != nil {
			log.Fatalf("run %s: %v", mmName, err)
		}
		agg := aggregate(results, rand.New(rand.NewSource(seed)))
		fmt.Printf("  %-16s mean=%.3f median=%.3f CI95=[%.3f, %.3f] within≤5=%.1f%%\n",
			cyan(mmName),
			agg.MeanAbsRankError.Mean, agg.MeanAbsRankError.Median,
			agg.CILow, agg.CIHigh, agg.WithinN[5].Mean*100)
		if db != nil {
			persist(db, cfg, sysName, mmName, runs, seed, agg)
		}
	}
}

func runHistory(db *store.DB) {
	rows, err := db.RecentRuns(atoiDef(os.Getenv("LIMIT"), 25))
	if err != nil {
		log.Fatalf("history: %v", err)
	}
	section(fmt.Sprintf("recent runs (%d)", len(rows)))
	for _, r := range rows {
		fmt.Printf("  %s %s %-9s %-16s players=%-4d rounds=%-5d reps=%-3d mean=%.3f\n",
			dim(r.CreatedAt.Format("2006-01-02 15:04")), cyan(r.ID[:8]),
			r.System, r.Matchmaker, r.Players, r.Rounds, r.Repetitions, r.MeanErr)
	}
}
