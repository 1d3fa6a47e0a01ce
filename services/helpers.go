package services

import (
	"errors"

	"github.com/Dosada05/volleyball-league/models"
	"github.com/Dosada05/volleyball-league/repositories"
)

// handleRepositoryError переводит ошибки репозиториев в ошибки сервисного слоя.
func handleRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrTeamNotFound):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrTournamentInvalidTeam):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrTournamentTeamExists):
		return ErrDuplicateTeam
	case errors.Is(err, repositories.ErrMatchSameTeams):
		return ErrSameTeam
	}
	return err
}

func teamByID(teams []models.Team, id int) (models.Team, bool) {
	for _, t := range teams {
		if t.ID == id {
			return t, true
		}
	}
	return models.Team{}, false
}

func boolPtr(b bool) *bool {
	return &b
}
