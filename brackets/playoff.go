package brackets

import "github.com/Dosada05/volleyball-league/models"

// Reason explains the outcome of a playoff evaluation.
type Reason string

const (
	ReasonTriggered      Reason = "triggered"
	ReasonNoPlayoff      Reason = "tournament has no playoff"
	ReasonNotEnoughTeams Reason = "not enough teams for a round robin"
	ReasonInProgress     Reason = "round robin still in progress"
	ReasonBracketExists  Reason = "playoff bracket already exists"
	ReasonTooFewRows     Reason = "fewer than 4 teams in standings"
)

// Pairing is a bracket match to be created.
type Pairing struct {
	Stage models.Stage
	TeamA models.Team
	TeamB models.Team
	SeedA int
	SeedB int
}

type PlayoffPlan struct {
	Pairings []Pairing
	// Finished and Expected describe round-robin progress.
	Finished int
	Expected int
}

// ExpectedRoundRobinMatches is C(teams, 2) * rounds.
func ExpectedRoundRobinMatches(teams, rounds int) int {
	if teams < 2 || rounds < 1 {
		return 0
	}
	return teams * (teams - 1) / 2 * rounds
}

// CountFinishedRoundRobin counts finished PRELIMINARY and REGULAR matches.
func CountFinishedRoundRobin(matches []models.Match) int {
	n := 0
	for _, m := range matches {
		if m.IsFinished && (m.Stage == models.StageRegular || m.Stage == models.StagePreliminary) {
			n++
		}
	}
	return n
}

// PlanPlayoff decides whether the semifinals are due and seeds them:
// seed 1 vs seed 4 and seed 2 vs seed 3 from the standings.
//
// Finished PRELIMINARY matches count toward completion alongside REGULAR
// ones. Nothing is planned once any playoff-stage match exists.
func PlanPlayoff(t models.Tournament, matches []models.Match) (PlayoffPlan, Reason) {
	var plan PlayoffPlan
	if !t.HasPlayoff {
		return plan, ReasonNoPlayoff
	}

	plan.Expected = ExpectedRoundRobinMatches(len(t.Teams), t.NumberOfRounds)
	if len(t.Teams) < 2 || plan.Expected == 0 {
		return plan, ReasonNotEnoughTeams
	}

	plan.Finished = CountFinishedRoundRobin(matches)
	if plan.Finished < plan.Expected {
		return plan, ReasonInProgress
	}

	for _, m := range matches {
		if m.Stage.IsPlayoff() {
			return plan, ReasonBracketExists
		}
	}

	rows := ComputeStandings(t.Teams, matches)
	if len(rows) < models.SemifinalBracketSize {
		return plan, ReasonTooFewRows
	}
	plan.Pairings = SeedSemifinals(rows[:models.SemifinalBracketSize])
	return plan, ReasonTriggered
}

// SeedSemifinals pairs the top four rows 1v4 and 2v3.
func SeedSemifinals(top []models.StandingRow) []Pairing {
	return []Pairing{
		{Stage: models.StageSemi, TeamA: top[0].Team, TeamB: top[3].Team, SeedA: 1, SeedB: 4},
		{Stage: models.StageSemi, TeamA: top[1].Team, TeamB: top[2].Team, SeedA: 2, SeedB: 3},
	}
}

// Match converts the pairing into an unscheduled match of tournamentID:
// no round number, venue or date.
func (p Pairing) Match(tournamentID int) models.Match {
	return models.Match{
		TournamentID: tournamentID,
		TeamAID:      p.TeamA.ID,
		TeamBID:      p.TeamB.ID,
		Stage:        p.Stage,
	}
}
