package brackets

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() BracketGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

// GenerateBracket schedules every pair of teams once using the circle method.
// An odd field gets a rotating bye, which is left out of the match list.
func (g *RoundRobinGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*BracketMatch, error) {
	n := len(params.Seeds)
	if n < 2 {
		return nil, fmt.Errorf("RoundRobinGenerator: not enough seeded teams (found %d, min 2 required)", n)
	}

	// slot value 0 is the bye, otherwise the 1-based seed.
	slots := make([]int, 0, n+1)
	for i := 1; i <= n; i++ {
		slots = append(slots, i)
	}
	if n%2 == 1 {
		slots = append(slots, 0)
	}
	size := len(slots)

	matches := make([]*BracketMatch, 0, n*(n-1)/2)
	for r := 1; r < size; r++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		order := 0
		for i := 0; i < size/2; i++ {
			s1, s2 := slots[i], slots[size-1-i]
			if s1 == 0 || s2 == 0 {
				continue
			}
			if s1 > s2 {
				s1, s2 = s2, s1
			}
			order++
			p1 := seedID(params.Seeds, s1)
			p2 := seedID(params.Seeds, s2)
			matches = append(matches, &BracketMatch{
				UID:            fmt.Sprintf("R%dM%d", r, order),
				Round:          r,
				OrderInRound:   order,
				Participant1ID: &p1,
				Participant2ID: &p2,
				Seed1:          s1,
				Seed2:          s2,
			})
		}
		// Seed 1 stays fixed, the rest rotate one step clockwise.
		last := slots[size-1]
		copy(slots[2:], slots[1:size-1])
		slots[1] = last
	}

	return matches, nil
}

func seedID(seeds []uuid.UUID, seed int) uuid.UUID {
	return seeds[seed-1]
}
