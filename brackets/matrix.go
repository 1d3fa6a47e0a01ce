package brackets

import (
	"fmt"
	"sort"

	"github.com/Dosada05/volleyball-league/models"
)

// NoResult fills a matrix cell when the pair has no finished match yet.
const NoResult = "-"

type MatrixCell struct {
	IsSelf bool     `json:"is_self"`
	Scores []string `json:"scores,omitempty"`
}

type MatrixRow struct {
	Team  models.Team  `json:"team"`
	Cells []MatrixCell `json:"results"`
}

type Matrix struct {
	Teams []models.Team `json:"teams"`
	Rows  []MatrixRow   `json:"matrix"`
}

// BuildMatrix returns the head-to-head grid in the order of teams.
// Cell (i, j) lists every counted match between i and j as "own:opp" from
// row i's side, ordered by round number (matches without one go last).
func BuildMatrix(teams []models.Team, matches []models.Match) Matrix {
	counted := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		if m.Counted() {
			counted = append(counted, m)
		}
	}
	sort.SliceStable(counted, func(i, j int) bool {
		return roundLess(counted[i].RoundNumber, counted[j].RoundNumber)
	})

	matrix := Matrix{Teams: teams, Rows: make([]MatrixRow, 0, len(teams))}
	for _, rowTeam := range teams {
		row := MatrixRow{Team: rowTeam, Cells: make([]MatrixCell, 0, len(teams))}
		for _, colTeam := range teams {
			if rowTeam.ID == colTeam.ID {
				row.Cells = append(row.Cells, MatrixCell{IsSelf: true})
				continue
			}
			row.Cells = append(row.Cells, MatrixCell{Scores: headToHead(counted, rowTeam.ID, colTeam.ID)})
		}
		matrix.Rows = append(matrix.Rows, row)
	}
	return matrix
}

func headToHead(matches []models.Match, rowID, colID int) []string {
	var scores []string
	for _, m := range matches {
		if !m.Involves(colID) {
			continue
		}
		side, ok := Perspective(m, rowID)
		if !ok {
			continue
		}
		scores = append(scores, fmt.Sprintf("%d:%d", side.Own, side.Opp))
	}
	if len(scores) == 0 {
		return []string{NoResult}
	}
	return scores
}

// roundLess orders round numbers ascending with nil after any number.
func roundLess(a, b *int) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return *a < *b
	}
}
