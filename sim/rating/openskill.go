package rating

import (
	openskill "github.com/intinig/go-openskill/rating"
	"github.com/intinig/go-openskill/types"
)

// openskillScale maps the Plackett-Luce mu/sigma (25 / 25÷3) onto the same
// display scale as the other systems, so matchmaker distance windows keep
// their meaning: mu 25 -> 1200, sigma 8.33 -> 400.
const openskillScale = 48.0

// OpenSkillSystem adapts the openskill library as a third algorithm. It
// reports uncertainty (sigma) but has no time-decay capability.
type OpenSkillSystem struct{}

func NewOpenSkillSystem() *OpenSkillSystem { return &OpenSkillSystem{} }

func (s *OpenSkillSystem) Name() string { return "openskill" }

func (s *OpenSkillSystem) InitialState() any {
	return openskill.New()
}

func (s *OpenSkillSystem) ComparableRating(state any) float64 {
	return state.(types.Rating).Mu * openskillScale
}

func (s *OpenSkillSystem) Uncertainty(state any) float64 {
	return state.(types.Rating).Sigma * openskillScale
}

func (s *OpenSkillSystem) UpdateMatch(p1, p2 any, out Outcome) (any, any, error) {
	a := p1.(types.Rating)
	b := p2.(types.Rating)
	winner, loser := a, b
	if out == P2Win {
		winner, loser = b, a
	}
	teams := openskill.Rate([]types.Team{{winner}, {loser}}, &types.OpenSkillOptions{})
	newWinner, newLoser := teams[0][0], teams[1][0]
	if out == P2Win {
		return newLoser, newWinner, nil
	}
	return newWinner, newLoser, nil
}
