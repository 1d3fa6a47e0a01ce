package brackets

import (
	"context"

	"github.com/Dosada05/volleyball-league/models"
)

type GenerateBracketParams struct {
	Tournament *models.Tournament
	Teams      []models.Team
}

// BracketMatch is a generated, not yet persisted, match slot.
type BracketMatch struct {
	UID          string
	Stage        models.Stage
	Round        int
	OrderInRound int
	TeamAID      int
	TeamBID      int
}

// Match converts the slot into a match of tournamentID.
func (bm *BracketMatch) Match(tournamentID int) models.Match {
	round := bm.Round
	return models.Match{
		TournamentID: tournamentID,
		TeamAID:      bm.TeamAID,
		TeamBID:      bm.TeamBID,
		Stage:        bm.Stage,
		RoundNumber:  &round,
	}
}

type BracketGenerator interface {
	GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*BracketMatch, error)

	GetName() string
}
