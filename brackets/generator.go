package brackets

import (
	"context"
	"fmt"

	"github.com/Dosada05/tournament-portal/models"
	"github.com/google/uuid"
)

// GenerateBracketParams carries the seeded teams, best seed first.
type GenerateBracketParams struct {
	TournamentID uuid.UUID
	Seeds        []uuid.UUID
}

type BracketGenerator interface {
	GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*BracketMatch, error)

	GetName() string
}

type BracketMatch struct {
	UID          string `json:"uid"`
	Round        int    `json:"round"`
	OrderInRound int    `json:"order_in_round"`

	Participant1ID *uuid.UUID `json:"participant1_id,omitempty"`
	Participant2ID *uuid.UUID `json:"participant2_id,omitempty"`
	Seed1          int        `json:"seed1,omitempty"`
	Seed2          int        `json:"seed2,omitempty"`

	SourceMatch1UID *string `json:"source_match1_uid,omitempty"`
	SourceMatch2UID *string `json:"source_match2_uid,omitempty"`

	IsPlaceholder bool `json:"is_placeholder"`

	IsBye            bool       `json:"is_bye"`
	ByeParticipantID *uuid.UUID `json:"bye_participant_id,omitempty"`
}

// GeneratorFor picks the preview generator of a bracket type. Double elimination
// previews its winners side, which is seeded like single elimination.
func GeneratorFor(t models.BracketType) (BracketGenerator, error) {
	switch t {
	case models.BracketSingleElimination, models.BracketDoubleElimination:
		return NewSingleEliminationGenerator(), nil
	case models.BracketRoundRobin:
		return NewRoundRobinGenerator(), nil
	default:
		return nil, fmt.Errorf("unsupported bracket type %q", t)
	}
}
