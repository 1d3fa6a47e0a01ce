package models

import "time"

// StandingRow is one team's aggregated record within a tournament.
type StandingRow struct {
	Rank             int  `json:"rank"`
	Team             Team `json:"team"`
	Played           int  `json:"played"`
	Won              int  `json:"won"`
	Lost             int  `json:"lost"`
	SetsWon          int  `json:"sets_won"`
	SetsLost         int  `json:"sets_lost"`
	SetsDiff         int  `json:"sets_diff"`
	PointsWon        int  `json:"points_won"`
	PointsLost       int  `json:"points_lost"`
	PointsDiff       int  `json:"points_diff"`
	TournamentPoints int  `json:"tournament_points"`
}

// TournamentStanding - снапшот строки таблицы, кеш результата расчёта.
// Никогда не редактируется вручную, пересобирается из матчей.
type TournamentStanding struct {
	ID               int       `json:"id" db:"id"`
	TournamentID     int       `json:"tournament_id" db:"tournament_id"`
	TeamID           int       `json:"team_id" db:"team_id"`
	Rank             int       `json:"rank" db:"rank"`
	Played           int       `json:"played" db:"played"`
	Won              int       `json:"won" db:"won"`
	Lost             int       `json:"lost" db:"lost"`
	SetsWon          int       `json:"sets_won" db:"sets_won"`
	SetsLost         int       `json:"sets_lost" db:"sets_lost"`
	PointsWon        int       `json:"points_won" db:"points_won"`
	PointsLost       int       `json:"points_lost" db:"points_lost"`
	TournamentPoints int       `json:"tournament_points" db:"tournament_points"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`

	Team *Team `json:"team,omitempty" db:"-"`
}

// SnapshotFromRows converts computed rows into cache records.
func SnapshotFromRows(tournamentID int, rows []StandingRow, now time.Time) []*TournamentStanding {
	out := make([]*TournamentStanding, 0, len(rows))
	for _, r := range rows {
		team := r.Team
		out = append(out, &TournamentStanding{
			TournamentID:     tournamentID,
			TeamID:           r.Team.ID,
			Rank:             r.Rank,
			Played:           r.Played,
			Won:              r.Won,
			Lost:             r.Lost,
			SetsWon:          r.SetsWon,
			SetsLost:         r.SetsLost,
			PointsWon:        r.PointsWon,
			PointsLost:       r.PointsLost,
			TournamentPoints: r.TournamentPoints,
			UpdatedAt:        now,
			Team:             &team,
		})
	}
	return out
}
