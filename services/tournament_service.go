package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/volleyball-league/brackets"
	"github.com/Dosada05/volleyball-league/models"
	"github.com/Dosada05/volleyball-league/repositories"
)

type CreateTournamentInput struct {
	Name           string        `json:"name"`
	Gender         models.Gender `json:"gender"`
	NumberOfRounds int           `json:"number_of_rounds"`
	HasPlayoff     bool          `json:"has_playoff"`
	PlayoffTeams   *int          `json:"playoff_teams,omitempty"`
	Order          int           `json:"order"`
	TeamIDs        []int         `json:"team_ids,omitempty"`
}

type TournamentService interface {
	Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context) ([]models.Tournament, error)
	// SetTeams replaces the participants; the slice order becomes the table order.
	SetTeams(ctx context.Context, tournamentID int, teamIDs []int) (*models.Tournament, error)
	// GenerateSchedule creates the REGULAR round-robin matches for all legs.
	GenerateSchedule(ctx context.Context, tournamentID int) ([]models.Match, error)
}

type tournamentService struct {
	txManager      repositories.TxManager
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	generator      brackets.BracketGenerator
	logger         *slog.Logger
}

func NewTournamentService(
	txManager repositories.TxManager,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	generator brackets.BracketGenerator,
	logger *slog.Logger,
) TournamentService {
	if generator == nil {
		generator = brackets.NewRoundRobinGenerator()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &tournamentService{
		txManager:      txManager,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		generator:      generator,
		logger:         logger,
	}
}

func validateTournamentInput(input *CreateTournamentInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return ErrTournamentNameRequired
	}
	if !input.Gender.Valid() {
		return ErrInvalidGender
	}
	if input.NumberOfRounds == 0 {
		input.NumberOfRounds = 1
	}
	if input.NumberOfRounds < 1 {
		return ErrInvalidNumberOfRounds
	}
	if input.PlayoffTeams != nil && *input.PlayoffTeams != 4 && *input.PlayoffTeams != 8 {
		return ErrInvalidPlayoffTeams
	}
	return nil
}

func (s *tournamentService) Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	if err := validateTournamentInput(&input); err != nil {
		return nil, err
	}

	t := &models.Tournament{
		Name:           input.Name,
		Gender:         input.Gender,
		NumberOfRounds: input.NumberOfRounds,
		HasPlayoff:     input.HasPlayoff,
		PlayoffTeams:   input.PlayoffTeams,
		Order:          input.Order,
	}

	err := s.txManager.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.tournamentRepo.Create(ctx, exec, t); err != nil {
			return fmt.Errorf("failed to create tournament: %w", err)
		}
		if len(input.TeamIDs) == 0 {
			return nil
		}
		teams, err := s.checkTeams(ctx, exec, t.Gender, input.TeamIDs)
		if err != nil {
			return err
		}
		if err := s.tournamentRepo.SetTeams(ctx, exec, t.ID, input.TeamIDs); err != nil {
			return handleRepositoryError(err)
		}
		t.Teams = teams
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("tournament created", slog.Int("tournament_id", t.ID), slog.String("name", t.Name))
	return t, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	teams, err := s.teamRepo.ListByTournament(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament teams: %w", err)
	}
	t.Teams = teams
	return t, nil
}

func (s *tournamentService) List(ctx context.Context) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

func (s *tournamentService) SetTeams(ctx context.Context, tournamentID int, teamIDs []int) (*models.Tournament, error) {
	var result *models.Tournament
	err := s.txManager.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		t, err := s.tournamentRepo.GetForUpdate(ctx, exec, tournamentID)
		if err != nil {
			return handleRepositoryError(err)
		}
		teams, err := s.checkTeams(ctx, exec, t.Gender, teamIDs)
		if err != nil {
			return err
		}
		if err := s.tournamentRepo.SetTeams(ctx, exec, tournamentID, teamIDs); err != nil {
			return handleRepositoryError(err)
		}
		t.Teams = teams
		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// checkTeams loads the teams in order and verifies they fit the tournament.
func (s *tournamentService) checkTeams(ctx context.Context, exec repositories.SQLExecutor, gender models.Gender, teamIDs []int) ([]models.Team, error) {
	seen := make(map[int]bool, len(teamIDs))
	teams := make([]models.Team, 0, len(teamIDs))
	for _, id := range teamIDs {
		if seen[id] {
			return nil, fmt.Errorf("%w: team %d", ErrDuplicateTeam, id)
		}
		seen[id] = true

		team, err := s.teamRepo.GetByID(ctx, exec, id)
		if err != nil {
			return nil, handleRepositoryError(err)
		}
		if team.Gender != gender {
			return nil, fmt.Errorf("%w: team %d", ErrGenderMismatch, id)
		}
		teams = append(teams, *team)
	}
	return teams, nil
}

func (s *tournamentService) GenerateSchedule(ctx context.Context, tournamentID int) ([]models.Match, error) {
	var created []models.Match
	err := s.txManager.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		t, err := s.tournamentRepo.GetForUpdate(ctx, exec, tournamentID)
		if err != nil {
			return handleRepositoryError(err)
		}
		teams, err := s.teamRepo.ListByTournament(ctx, exec, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load tournament teams: %w", err)
		}
		if len(teams) < 2 {
			return ErrNotEnoughTeams
		}
		t.Teams = teams

		existing, err := s.matchRepo.ListByTournament(ctx, exec, tournamentID, repositories.MatchFilter{
			Stages: []models.Stage{models.StageRegular},
		})
		if err != nil {
			return fmt.Errorf("failed to check existing matches: %w", err)
		}
		if len(existing) > 0 {
			return ErrScheduleExists
		}

		slots, err := s.generator.GenerateBracket(ctx, brackets.GenerateBracketParams{Tournament: t, Teams: teams})
		if err != nil {
			return fmt.Errorf("%s generator failed: %w", s.generator.GetName(), err)
		}
		created = make([]models.Match, 0, len(slots))
		for _, slot := range slots {
			m := slot.Match(tournamentID)
			if err := s.matchRepo.Create(ctx, exec, &m); err != nil {
				return fmt.Errorf("failed to create match %s: %w", slot.UID, handleRepositoryError(err))
			}
			created = append(created, m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("round robin schedule generated",
		slog.Int("tournament_id", tournamentID), slog.Int("matches", len(created)))
	return created, nil
}
