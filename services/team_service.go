package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dosada05/volleyball-league/models"
	"github.com/Dosada05/volleyball-league/repositories"
)

type CreateTeamInput struct {
	Name   string        `json:"name"`
	Gender models.Gender `json:"gender"`
}

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	RenameTeam(ctx context.Context, id int, name string) (*models.Team, error)
	ListTeams(ctx context.Context, gender *models.Gender) ([]models.Team, error)
}

type teamService struct {
	teamRepo repositories.TeamRepository
}

func NewTeamService(teamRepo repositories.TeamRepository) TeamService {
	return &teamService{teamRepo: teamRepo}
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	if !input.Gender.Valid() {
		return nil, ErrInvalidGender
	}
	team := &models.Team{Name: name, Gender: input.Gender}
	if err := s.teamRepo.Create(ctx, nil, team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *teamService) RenameTeam(ctx context.Context, id int, name string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	if err := s.teamRepo.Rename(ctx, nil, id, name); err != nil {
		return nil, handleRepositoryError(err)
	}
	team, err := s.teamRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context, gender *models.Gender) ([]models.Team, error) {
	if gender != nil && !gender.Valid() {
		return nil, ErrInvalidGender
	}
	teams, err := s.teamRepo.List(ctx, nil, gender)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}
