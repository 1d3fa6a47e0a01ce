package brackets

import "github.com/Dosada05/volleyball-league/models"

// SetsToWin is the number of sets needed to take a best-of-5 match.
const SetsToWin = 3

type Outcome int

const (
	Undecided Outcome = iota
	Win
	Loss
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Loss:
		return "loss"
	default:
		return "undecided"
	}
}

// Result of a match for one team.
type Result struct {
	Outcome Outcome
	Points  int
}

func (r Result) Won() bool { return r.Outcome == Win }

// Score applies the league point table to a set score seen from one team:
// 3:0 and 3:1 give 3 points, 3:2 gives 2, 2:3 gives 1, 1:3 and 0:3 give 0.
// Any other combination is neither a win nor a loss.
func Score(own, opp int) Result {
	switch {
	case own == SetsToWin && (opp == 0 || opp == 1):
		return Result{Outcome: Win, Points: 3}
	case own == SetsToWin && opp == 2:
		return Result{Outcome: Win, Points: 2}
	case own == 2 && opp == SetsToWin:
		return Result{Outcome: Loss, Points: 1}
	case (own == 0 || own == 1) && opp == SetsToWin:
		return Result{Outcome: Loss, Points: 0}
	default:
		return Result{Outcome: Undecided}
	}
}

// Side is a counted match normalized to one team's point of view.
type Side struct {
	Own       int
	Opp       int
	OwnPoints int
	OppPoints int
}

// Perspective normalizes m to teamID's side. ok is false when the match is
// not counted or the team does not play in it.
func Perspective(m models.Match, teamID int) (Side, bool) {
	if !m.Counted() || !m.Involves(teamID) {
		return Side{}, false
	}
	var side Side
	for _, s := range m.SetScores {
		side.OwnPoints += s.A
		side.OppPoints += s.B
	}
	side.Own, side.Opp = *m.SetsA, *m.SetsB
	if m.TeamAID != teamID {
		side.Own, side.Opp = side.Opp, side.Own
		side.OwnPoints, side.OppPoints = side.OppPoints, side.OwnPoints
	}
	return side, true
}

// Result scores the side through the league point table.
func (s Side) Result() Result {
	return Score(s.Own, s.Opp)
}
