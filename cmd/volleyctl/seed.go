package main

import (
	"context"
	"fmt"

	"github.com/Dosada05/volleyball-league/models"
	"github.com/Dosada05/volleyball-league/services"
	"github.com/brianvoe/gofakeit/v7"
)

type seedOptions struct {
	Teams      int
	Rounds     int
	HasPlayoff bool
	Gender     string
}

type seedSummary struct {
	TournamentID int
	Name         string
	Teams        int
	Matches      int
	Playoff      *services.TriggerResult
}

type seeder struct {
	app   *app
	faker *gofakeit.Faker
}

func newSeeder(a *app, seed int64) *seeder {
	return &seeder{app: a, faker: gofakeit.New(uint64(seed))}
}

func (s *seeder) Run(ctx context.Context, opts seedOptions) (*seedSummary, error) {
	if opts.Teams < 2 {
		return nil, fmt.Errorf("need at least 2 teams, got %d", opts.Teams)
	}
	gender := models.Gender(opts.Gender)

	teamIDs := make([]int, 0, opts.Teams)
	for _, name := range teamNames(s.faker, opts.Teams) {
		team, err := s.app.teams.CreateTeam(ctx, services.CreateTeamInput{Name: name, Gender: gender})
		if err != nil {
			return nil, fmt.Errorf("create team %q: %w", name, err)
		}
		teamIDs = append(teamIDs, team.ID)
	}

	input := services.CreateTournamentInput{
		Name:           fmt.Sprintf("Кубок %s %d", s.faker.City(), s.faker.Year()),
		Gender:         gender,
		NumberOfRounds: opts.Rounds,
		HasPlayoff:     opts.HasPlayoff,
		TeamIDs:        teamIDs,
	}
	if opts.HasPlayoff {
		size := models.SemifinalBracketSize
		input.PlayoffTeams = &size
	}
	tournament, err := s.app.tournaments.Create(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("create tournament: %w", err)
	}

	matches, err := s.app.tournaments.GenerateSchedule(ctx, tournament.ID)
	if err != nil {
		return nil, fmt.Errorf("generate schedule: %w", err)
	}

	summary := &seedSummary{
		TournamentID: tournament.ID,
		Name:         tournament.Name,
		Teams:        len(teamIDs),
		Matches:      len(matches),
	}
	for _, m := range matches {
		sets := randomMatchScore(s.faker)
		setsA, setsB := countSets(sets)
		out, err := s.app.matches.RecordResult(ctx, m.ID, services.RecordResultInput{
			SetsA:     &setsA,
			SetsB:     &setsB,
			SetScores: sets,
		})
		if err != nil {
			return nil, fmt.Errorf("record result for match %d: %w", m.ID, err)
		}
		if out.Playoff != nil && out.Playoff.Triggered {
			summary.Playoff = out.Playoff
		}
	}
	return summary, nil
}

// teamNames returns n distinct names.
func teamNames(f *gofakeit.Faker, n int) []string {
	seen := make(map[string]bool, n)
	names := make([]string, 0, n)
	for len(names) < n {
		name := fmt.Sprintf("%s %s", f.City(), f.Animal())
		if seen[name] {
			name = fmt.Sprintf("%s %d", name, len(names)+1)
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// randomMatchScore plays sets until someone wins three: 25 points, fifth set
// to 15, a two-point margin every time.
func randomMatchScore(f *gofakeit.Faker) models.SetScores {
	var (
		sets       models.SetScores
		winsA      int
		winsB      int
		favouriteA = f.Bool()
	)
	for winsA < 3 && winsB < 3 {
		target := 25
		if len(sets) == 4 {
			target = 15
		}
		loser := f.IntRange(target/2, target-2)
		if f.IntRange(1, 10) == 1 {
			// затяжной сет на балансе
			loser = f.IntRange(target-1, target+6)
		}
		winner := target
		if loser >= target-1 {
			winner = loser + 2
		}

		aWins := f.IntRange(1, 100) <= 60
		if !favouriteA {
			aWins = !aWins
		}
		if aWins {
			sets = append(sets, models.SetScore{A: winner, B: loser})
			winsA++
		} else {
			sets = append(sets, models.SetScore{A: loser, B: winner})
			winsB++
		}
	}
	return sets
}

func countSets(sets models.SetScores) (a, b int) {
	for _, s := range sets {
		switch {
		case s.A > s.B:
			a++
		case s.B > s.A:
			b++
		}
	}
	return a, b
}
