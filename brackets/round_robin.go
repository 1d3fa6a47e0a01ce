package brackets

import (
	"context"
	"fmt"
	"sort"

	"github.com/Dosada05/volleyball-league/models"
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() BracketGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

// GenerateBracket creates the REGULAR matches of a round-robin tournament
// using the circle method. Every team meets every other team once per leg;
// number_of_rounds legs are played, with sides swapped on even legs. Round
// numbers run continuously across legs, so a 6-team double round robin has
// rounds 1..10.
func (g *RoundRobinGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*BracketMatch, error) {
	teams := params.Teams
	tournament := params.Tournament

	if len(teams) < 2 {
		return nil, fmt.Errorf("RoundRobinGenerator: not enough teams (found %d, min 2 required)", len(teams))
	}

	legs := 1
	if tournament != nil && tournament.NumberOfRounds > 1 {
		legs = tournament.NumberOfRounds
	}
	tournamentID := 0
	if tournament != nil {
		tournamentID = tournament.ID
	}

	// Нечётное число команд: добавляем "пустой" слот, его соперник отдыхает
	slots := make([]int, 0, len(teams)+1)
	for _, t := range teams {
		slots = append(slots, t.ID)
	}
	const bye = 0
	if len(slots)%2 == 1 {
		slots = append(slots, bye)
	}
	n := len(slots)
	roundsPerLeg := n - 1

	matches := make([]*BracketMatch, 0, len(teams)*(len(teams)-1)/2*legs)
	for leg := 1; leg <= legs; leg++ {
		rotation := make([]int, n)
		copy(rotation, slots)

		for r := 0; r < roundsPerLeg; r++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			round := (leg-1)*roundsPerLeg + r + 1
			order := 0
			for i := 0; i < n/2; i++ {
				a, b := rotation[i], rotation[n-1-i]
				if a == bye || b == bye {
					continue
				}
				// Чередуем стороны, чтобы первая команда не была всегда "А";
				// во втором круге пары зеркалятся
				swap := i == 0 && r%2 == 1
				if leg%2 == 0 {
					swap = !swap
				}
				if swap {
					a, b = b, a
				}
				order++
				matches = append(matches, &BracketMatch{
					UID:          fmt.Sprintf("T%d_L%d_R%d_M%d", tournamentID, leg, round, order),
					Stage:        models.StageRegular,
					Round:        round,
					OrderInRound: order,
					TeamAID:      a,
					TeamBID:      b,
				})
			}
			rotate(rotation)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Round != matches[j].Round {
			return matches[i].Round < matches[j].Round
		}
		return matches[i].OrderInRound < matches[j].OrderInRound
	})

	return matches, nil
}

// rotate keeps the first slot fixed and moves the rest one step clockwise.
func rotate(slots []int) {
	if len(slots) < 3 {
		return
	}
	last := slots[len(slots)-1]
	copy(slots[2:], slots[1:len(slots)-1])
	slots[1] = last
}
