package models

import (
	"fmt"
	"strings"
	"time"
)

type Stage string

const (
	StagePreliminary Stage = "PRELIMINARY"
	StageRegular     Stage = "REGULAR"
	StageQuarter     Stage = "QUARTER"
	StageSemi        Stage = "SEMI"
	StageThird       Stage = "THIRD"
	StageFinal       Stage = "FINAL"
)

// RoundRobinStages are the stages that count toward round-robin completion.
var RoundRobinStages = []Stage{StagePreliminary, StageRegular}

// PlayoffStages in bracket order.
var PlayoffStages = []Stage{StageQuarter, StageSemi, StageThird, StageFinal}

func (s Stage) Valid() bool {
	switch s {
	case StagePreliminary, StageRegular, StageQuarter, StageSemi, StageThird, StageFinal:
		return true
	}
	return false
}

func (s Stage) IsPlayoff() bool {
	switch s {
	case StageQuarter, StageSemi, StageThird, StageFinal:
		return true
	}
	return false
}

type Match struct {
	ID           int        `json:"id" db:"id"`
	TournamentID int        `json:"tournament_id" db:"tournament_id"`
	TeamAID      int        `json:"team_a_id" db:"team_a_id"`
	TeamBID      int        `json:"team_b_id" db:"team_b_id"`
	VenueID      *int       `json:"venue_id,omitempty" db:"venue_id"`
	DateTime     *time.Time `json:"date_time,omitempty" db:"date_time"`
	Stage        Stage      `json:"stage" db:"stage"`
	RoundNumber  *int       `json:"round_number,omitempty" db:"round_number"`
	IsFinished   bool       `json:"is_finished" db:"is_finished"`
	SetsA        *int       `json:"sets_a,omitempty" db:"sets_a"`
	SetsB        *int       `json:"sets_b,omitempty" db:"sets_b"`
	SetScores    SetScores  `json:"set_scores,omitempty" db:"set_scores"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`

	// Заполняются репозиторием через JOIN
	TeamA *Team  `json:"team_a,omitempty" db:"-"`
	TeamB *Team  `json:"team_b,omitempty" db:"-"`
	Venue *Venue `json:"venue,omitempty" db:"-"`
}

// Counted reports whether the match contributes to standings and the matrix.
func (m Match) Counted() bool {
	return m.IsFinished && m.SetsA != nil && m.SetsB != nil
}

// Involves reports whether teamID plays in the match on either side.
func (m Match) Involves(teamID int) bool {
	return m.TeamAID == teamID || m.TeamBID == teamID
}

// ScoreDisplay renders "3:1 (25:20, 20:25, 25:18, 25:22)" or "-" when there is no result.
func (m Match) ScoreDisplay() string {
	if !m.IsFinished || m.SetsA == nil || m.SetsB == nil {
		return "-"
	}
	score := fmt.Sprintf("%d:%d", *m.SetsA, *m.SetsB)
	if len(m.SetScores) == 0 {
		return score
	}
	sets := make([]string, 0, len(m.SetScores))
	for _, s := range m.SetScores {
		sets = append(sets, fmt.Sprintf("%d:%d", s.A, s.B))
	}
	return score + " (" + strings.Join(sets, ", ") + ")"
}
