package services

import "errors"

// Общие ошибки сервисов, маппятся в HTTP статусы в handlers.
var (
	// Ошибки валидации и бизнес-правил
	ErrTeamNameRequired       = errors.New("team name is required")
	ErrInvalidGender          = errors.New("gender must be M or F")
	ErrTournamentNameRequired = errors.New("tournament name is required")
	ErrInvalidNumberOfRounds  = errors.New("number of rounds must be at least 1")
	ErrInvalidPlayoffTeams    = errors.New("playoff teams must be 4 or 8")
	ErrDuplicateTeam          = errors.New("team listed more than once")
	ErrSameTeam               = errors.New("a team cannot play against itself")
	ErrGenderMismatch         = errors.New("team gender does not match tournament gender")
	ErrInvalidStage           = errors.New("invalid match stage")
	ErrRoundNumberNotAllowed  = errors.New("round number is only allowed for REGULAR matches")
	ErrInvalidRoundNumber     = errors.New("round number must be at least 1")
	ErrInvalidSetCount        = errors.New("set counts must not be negative")
	ErrTeamNotInTournament    = errors.New("team does not participate in tournament")
	ErrNotEnoughTeams         = errors.New("at least two teams are required")
	ErrScheduleExists         = errors.New("round robin schedule already exists")
	ErrPasswordTooShort       = errors.New("password is too short")

	// Ошибки аутентификации
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Не найдено
	ErrTeamNotFound       = errors.New("team not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrMatchNotFound      = errors.New("match not found")
)
