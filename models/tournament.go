package models

import "time"

// SemifinalBracketSize is the only playoff size the bracket seeder builds.
const SemifinalBracketSize = 4

// Tournament представляет турнир по круговой системе.
type Tournament struct {
	ID             int       `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Gender         Gender    `json:"gender" db:"gender"`
	NumberOfRounds int       `json:"number_of_rounds" db:"number_of_rounds"` // 1 for single round-robin, 2 for double
	HasPlayoff     bool      `json:"has_playoff" db:"has_playoff"`
	PlayoffTeams   *int      `json:"playoff_teams,omitempty" db:"playoff_teams"` // 4 or 8, informational
	Order          int       `json:"order" db:"display_order"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`

	// Упорядоченный список участников (порядок добавления в турнир)
	Teams []Team `json:"teams,omitempty" db:"-"`
}

// TeamIndex returns the position of teamID in t.Teams or -1.
func (t Tournament) TeamIndex(teamID int) int {
	for i, team := range t.Teams {
		if team.ID == teamID {
			return i
		}
	}
	return -1
}
