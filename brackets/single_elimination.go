package brackets

import (
	"context"
	"errors"
	"fmt"
	"math/bits"
	"sort"

	"github.com/google/uuid"
)

type node struct {
	participantID    *uuid.UUID
	seed             int
	sourceMatchUID   *string
	isByePlaceholder bool
}

type SingleEliminationGenerator struct {
}

func NewSingleEliminationGenerator() BracketGenerator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) GetName() string {
	return "SingleElimination"
}

// seedOrder lists seeds in bracket slot order so that 1 and 2 can only meet in the final.
func seedOrder(size int) []int {
	order := []int{1}
	for len(order) < size {
		next := make([]int, 0, len(order)*2)
		sum := len(order)*2 + 1
		for _, s := range order {
			next = append(next, s, sum-s)
		}
		order = next
	}
	return order
}

func (g *SingleEliminationGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*BracketMatch, error) {
	n := len(params.Seeds)
	if n < 2 {
		return nil, errors.New("not enough seeded teams to generate a single elimination bracket (minimum 2)")
	}

	numRounds := bits.Len(uint(n - 1))
	sizeOfFullBracket := 1 << numRounds

	currentRoundNodes := make([]*node, 0, sizeOfFullBracket)
	for _, seed := range seedOrder(sizeOfFullBracket) {
		if seed > n {
			currentRoundNodes = append(currentRoundNodes, &node{isByePlaceholder: true})
			continue
		}
		id := params.Seeds[seed-1]
		currentRoundNodes = append(currentRoundNodes, &node{participantID: &id, seed: seed})
	}

	allGeneratedMatches := make([]*BracketMatch, 0, sizeOfFullBracket-1)

	for r := 1; r <= numRounds; r++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		nextRoundNodes := make([]*node, 0, len(currentRoundNodes)/2)
		matchesInThisRound := 0

		for i := 0; i < len(currentRoundNodes); i += 2 {
			node1 := currentRoundNodes[i]
			node2 := currentRoundNodes[i+1]

			currentMatchUID := fmt.Sprintf("R%dM%d", r, matchesInThisRound+1)

			bm := &BracketMatch{
				UID:          currentMatchUID,
				Round:        r,
				OrderInRound: matchesInThisRound + 1,
			}

			switch {
			case node1.participantID != nil && node2.isByePlaceholder:
				bm.IsBye = true
				bm.ByeParticipantID = node1.participantID
				bm.Participant1ID = node1.participantID
				bm.Seed1 = node1.seed
				nextRoundNodes = append(nextRoundNodes, node1)

			case node2.participantID != nil && node1.isByePlaceholder:
				bm.IsBye = true
				bm.ByeParticipantID = node2.participantID
				bm.Participant1ID = node2.participantID
				bm.Seed1 = node2.seed
				nextRoundNodes = append(nextRoundNodes, node2)

			case node1.isByePlaceholder && node2.isByePlaceholder:
				// seedOrder never pairs two byes while n > size/2.
				return nil, fmt.Errorf("two byes met in match %s", currentMatchUID)

			default:
				bm.Participant1ID, bm.Seed1, bm.SourceMatch1UID = node1.participantID, node1.seed, node1.sourceMatchUID
				bm.Participant2ID, bm.Seed2, bm.SourceMatch2UID = node2.participantID, node2.seed, node2.sourceMatchUID
				bm.IsPlaceholder = node1.sourceMatchUID != nil || node2.sourceMatchUID != nil
				uid := currentMatchUID
				nextRoundNodes = append(nextRoundNodes, &node{sourceMatchUID: &uid})
			}

			allGeneratedMatches = append(allGeneratedMatches, bm)
			matchesInThisRound++
		}
		currentRoundNodes = nextRoundNodes
	}

	sort.Slice(allGeneratedMatches, func(i, j int) bool {
		if allGeneratedMatches[i].Round != allGeneratedMatches[j].Round {
			return allGeneratedMatches[i].Round < allGeneratedMatches[j].Round
		}
		return allGeneratedMatches[i].OrderInRound < allGeneratedMatches[j].OrderInRound
	})

	return allGeneratedMatches, nil
}
