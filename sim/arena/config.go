package arena

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Stage is one cohort of players plus the rounds they duel before the next
// cohort joins.
type Stage struct {
	Players int `yaml:"players"`
	Rounds  int `yaml:"rounds"`
}

// Noise describes the per-round outcome noise regimes. The three
// probabilities must sum to exactly 1: spam rounds flip a coin and ignore
// skill entirely, rare rounds apply a large uniform rating offset, typical
// rounds a small one.
type Noise struct {
	SpamProb    float64 `yaml:"spam_prob"`
	RareProb    float64 `yaml:"rare_prob"`
	TypicalProb float64 `yaml:"typical_prob"`
	RareDev     float64 `yaml:"rare_dev"`
	TypicalDev  float64 `yaml:"typical_dev"`
}

// Config drives a single simulation run.
type Config struct {
	Stages  []Stage `yaml:"stages"`
	TrueMin float64 `yaml:"true_min"`
	TrueMax float64 `yaml:"true_max"`
	Noise   Noise   `yaml:"noise"`

	// DriftStd, when positive, perturbs every true rating with a Gaussian of
	// this standard deviation after each stage.
	DriftStd float64 `yaml:"drift_std"`
	// TimeDecay applies the rating system's decay capability (when it has
	// one) after each stage, scaled by rounds since each player's last duel.
	TimeDecay bool `yaml:"time_decay"`
}

// DefaultConfig is the standard experiment: one cohort of 100 players over
// 1000 rounds, true ratings in 800–2400, mild outcome noise.
func DefaultConfig() Config {
	return Config{
		Stages:  []Stage{{Players: 100, Rounds: 1000}},
		TrueMin: 800,
		TrueMax: 2400,
		Noise: Noise{
			SpamProb:    0.05,
			RareProb:    0.10,
			TypicalProb: 0.85,
			RareDev:     500,
			TypicalDev:  100,
		},
	}
}

// Validate rejects contract violations eagerly, before any round runs.
func (c Config) Validate() error {
	if len(c.Stages) == 0 {
		return fmt.Errorf("arena: at least one stage required")
	}
	if c.Stages[0].Players < 2 {
		return fmt.Errorf("arena: first stage needs at least 2 players, got %d", c.Stages[0].Players)
	}
	for i, s := range c.Stages {
		if s.Players < 0 || (i > 0 && s.Players == 0 && s.Rounds == 0) {
			return fmt.Errorf("arena: stage %d is empty", i)
		}
		if s.Rounds < 0 {
			return fmt.Errorf("arena: stage %d has negative rounds", i)
		}
	}
	if !(c.TrueMin < c.TrueMax) {
		return fmt.Errorf("arena: true rating range [%v,%v] is invalid", c.TrueMin, c.TrueMax)
	}
	return c.Noise.validate()
}

func (n Noise) validate() error {
	for _, p := range []float64{n.SpamProb, n.RareProb, n.TypicalProb} {
		if p < 0 || p > 1 || math.IsNaN(p) {
			return fmt.Errorf("arena: noise probability %v out of [0,1]", p)
		}
	}
	if sum := n.SpamProb + n.RareProb + n.TypicalProb; math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("arena: noise probabilities sum to %v, want 1", sum)
	}
	if n.TypicalDev < 0 || n.RareDev < 0 {
		return fmt.Errorf("arena: noise deviations must be non-negative")
	}
	if !(n.RareDev > n.TypicalDev) {
		return fmt.Errorf("arena: rare deviation %v must exceed typical deviation %v", n.RareDev, n.TypicalDev)
	}
	return nil
}

// LoadConfig reads a YAML experiment file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("arena: read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("arena: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
