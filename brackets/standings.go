package brackets

import (
	"sort"

	"github.com/Dosada05/volleyball-league/models"
)

// ComputeStandings builds one row per team, in ranking order.
//
// Every counted match of the tournament contributes to both of its teams,
// whatever the stage. Rows are ordered by tournament points, then set
// difference, then sets won, all descending; equal keys keep the order of
// teams. Teams without counted matches get an all-zero row.
func ComputeStandings(teams []models.Team, matches []models.Match) []models.StandingRow {
	rows := make([]models.StandingRow, 0, len(teams))
	for _, team := range teams {
		rows = append(rows, teamRow(team, matches))
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.TournamentPoints != b.TournamentPoints {
			return a.TournamentPoints > b.TournamentPoints
		}
		if a.SetsDiff != b.SetsDiff {
			return a.SetsDiff > b.SetsDiff
		}
		return a.SetsWon > b.SetsWon
	})

	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

func teamRow(team models.Team, matches []models.Match) models.StandingRow {
	row := models.StandingRow{Team: team}
	for _, m := range matches {
		side, ok := Perspective(m, team.ID)
		if !ok {
			continue
		}
		row = accumulate(row, side)
	}
	row.SetsDiff = row.SetsWon - row.SetsLost
	row.PointsDiff = row.PointsWon - row.PointsLost
	return row
}

func accumulate(row models.StandingRow, side Side) models.StandingRow {
	res := side.Result()
	row.Played++
	switch res.Outcome {
	case Win:
		row.Won++
	case Loss:
		row.Lost++
	}
	row.SetsWon += side.Own
	row.SetsLost += side.Opp
	row.PointsWon += side.OwnPoints
	row.PointsLost += side.OppPoints
	row.TournamentPoints += res.Points
	return row
}
