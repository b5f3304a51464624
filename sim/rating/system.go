package rating

import "fmt"

// System binds a concrete rating algorithm to the generic shape the harness
// and matchmakers work against. State values are opaque to callers; the only
// number anyone outside the adapter may reason about is ComparableRating.
type System interface {
	Name() string
	InitialState() any
	ComparableRating(state any) float64
	UpdateMatch(p1, p2 any, out Outcome) (any, any, error)
}

// UncertaintySystem is implemented by systems that expose a deviation-like
// uncertainty for their states.
type UncertaintySystem interface {
	System
	Uncertainty(state any) float64
}

// TimeDecaySystem is implemented by systems whose uncertainty grows with
// inactivity.
type TimeDecaySystem interface {
	System
	TimeDecay(state any, periods float64) any
}

// NewSystem returns the adapter registered under name.
func NewSystem(name string) (System, error) {
	switch name {
	case "glicko2", "":
		return NewGlicko2System(), nil
	case "elo":
		return NewEloSystem(), nil
	case "openskill":
		return NewOpenSkillSystem(), nil
	}
	return nil, fmt.Errorf("rating: unknown system %q", name)
}

//
// ===== Glicko-2 adapter =====
//

// Glicko2System adapts the Glicko-2 engine. It carries every optional
// capability: uncertainty and time decay.
type Glicko2System struct {
	Engine *Glicko2
}

func NewGlicko2System() *Glicko2System { return &Glicko2System{Engine: NewGlicko2()} }

func (s *Glicko2System) Name() string      { return "glicko2" }
func (s *Glicko2System) InitialState() any { return s.Engine.InitialState() }

func (s *Glicko2System) ComparableRating(state any) float64 {
	return state.(State).Rating
}

func (s *Glicko2System) Uncertainty(state any) float64 {
	return s.Engine.Uncertainty(state.(State))
}

func (s *Glicko2System) UpdateMatch(p1, p2 any, out Outcome) (any, any, error) {
	n1, n2, err := s.Engine.UpdateMatch(p1.(State), p2.(State), out)
	if err != nil {
		return p1, p2, err
	}
	return n1, n2, nil
}

func (s *Glicko2System) TimeDecay(state any, periods float64) any {
	return s.Engine.TimeDecay(state.(State), periods)
}

//
// ===== Elo adapter =====
//

// EloSystem adapts the Elo engine. Deliberately exposes no uncertainty and no
// time decay; it exercises the absent-capability paths downstream.
type EloSystem struct {
	Engine *Elo
}

func NewEloSystem() *EloSystem { return &EloSystem{Engine: NewElo()} }

func (s *EloSystem) Name() string      { return "elo" }
func (s *EloSystem) InitialState() any { return s.Engine.InitialState() }

func (s *EloSystem) ComparableRating(state any) float64 {
	return state.(EloState).Rating
}

func (s *EloSystem) UpdateMatch(p1, p2 any, out Outcome) (any, any, error) {
	n1, n2 := s.Engine.UpdateMatch(p1.(EloState), p2.(EloState), out)
	return n1, n2, nil
}
