package brackets

import (
	"time"

	"github.com/Dosada05/volleyball-league/models"
)

func intPtr(v int) *int { return &v }

func teamsOf(names ...string) []models.Team {
	teams := make([]models.Team, 0, len(names))
	for i, name := range names {
		teams = append(teams, models.Team{ID: i + 1, Name: name, Gender: models.GenderFemale})
	}
	return teams
}

func finished(a, b, setsA, setsB int, scores ...models.SetScore) models.Match {
	return models.Match{
		TeamAID:    a,
		TeamBID:    b,
		Stage:      models.StageRegular,
		IsFinished: true,
		SetsA:      intPtr(setsA),
		SetsB:      intPtr(setsB),
		SetScores:  scores,
	}
}

func inRound(m models.Match, round int) models.Match {
	m.RoundNumber = intPtr(round)
	return m
}

func at(m models.Match, ts string) models.Match {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	m.DateTime = &t
	return m
}

func withStage(m models.Match, s models.Stage) models.Match {
	m.Stage = s
	return m
}

func pending(a, b int) models.Match {
	return models.Match{TeamAID: a, TeamBID: b, Stage: models.StageRegular}
}
