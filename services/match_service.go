package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/volleyball-league/brackets"
	"github.com/Dosada05/volleyball-league/metrics"
	"github.com/Dosada05/volleyball-league/models"
	"github.com/Dosada05/volleyball-league/repositories"
)

type CreateMatchInput struct {
	TeamAID     int          `json:"team_a_id"`
	TeamBID     int          `json:"team_b_id"`
	Stage       models.Stage `json:"stage"`
	RoundNumber *int         `json:"round_number,omitempty"`
	VenueID     *int         `json:"venue_id,omitempty"`
	DateTime    *time.Time   `json:"date_time,omitempty"`
}

// RecordResultInput is a result entered by an administrator.
// IsFinished defaults to true when omitted.
type RecordResultInput struct {
	SetsA      *int             `json:"sets_a"`
	SetsB      *int             `json:"sets_b"`
	SetScores  models.SetScores `json:"set_scores"`
	IsFinished *bool            `json:"is_finished,omitempty"`
	DateTime   *time.Time       `json:"date_time,omitempty"`
}

type RecordResultOutput struct {
	Match     *models.Match        `json:"match"`
	Standings []models.StandingRow `json:"standings,omitempty"`
	Playoff   *TriggerResult       `json:"playoff,omitempty"`
}

type MatchService interface {
	CreateMatch(ctx context.Context, tournamentID int, input CreateMatchInput) (*models.Match, error)
	GetMatch(ctx context.Context, matchID int) (*models.Match, error)
	// RecordResult saves the result, refreshes the standings snapshot and runs the playoff trigger.
	RecordResult(ctx context.Context, matchID int, input RecordResultInput) (*RecordResultOutput, error)
}

type matchService struct {
	tournamentRepo   repositories.TournamentRepository
	teamRepo         repositories.TeamRepository
	matchRepo        repositories.MatchRepository
	standingsService StandingsService
	playoffService   PlayoffService
	notifier         Notifier
	metrics          *metrics.Metrics
	logger           *slog.Logger
}

func NewMatchService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	standingsService StandingsService,
	playoffService PlayoffService,
	notifier Notifier,
	m *metrics.Metrics,
	logger *slog.Logger,
) MatchService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &matchService{
		tournamentRepo:   tournamentRepo,
		teamRepo:         teamRepo,
		matchRepo:        matchRepo,
		standingsService: standingsService,
		playoffService:   playoffService,
		notifier:         notifier,
		metrics:          m,
		logger:           logger,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, tournamentID int, input CreateMatchInput) (*models.Match, error) {
	if !input.Stage.Valid() {
		return nil, ErrInvalidStage
	}
	if input.TeamAID == input.TeamBID {
		return nil, ErrSameTeam
	}
	if input.RoundNumber != nil {
		if input.Stage != models.StageRegular {
			return nil, ErrRoundNumberNotAllowed
		}
		if *input.RoundNumber < 1 {
			return nil, ErrInvalidRoundNumber
		}
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	teams, err := s.teamRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament teams: %w", err)
	}
	for _, id := range []int{input.TeamAID, input.TeamBID} {
		team, ok := teamByID(teams, id)
		if !ok {
			return nil, fmt.Errorf("%w: team %d", ErrTeamNotInTournament, id)
		}
		if team.Gender != tournament.Gender {
			return nil, fmt.Errorf("%w: team %d", ErrGenderMismatch, id)
		}
	}

	match := &models.Match{
		TournamentID: tournamentID,
		TeamAID:      input.TeamAID,
		TeamBID:      input.TeamBID,
		VenueID:      input.VenueID,
		DateTime:     input.DateTime,
		Stage:        input.Stage,
		RoundNumber:  input.RoundNumber,
	}
	if err := s.matchRepo.Create(ctx, nil, match); err != nil {
		return nil, handleRepositoryError(err)
	}

	created, err := s.matchRepo.GetByID(ctx, nil, match.ID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	s.notifier.Notify(tournamentID, brackets.EventMatchUpdated, created)
	return created, nil
}

func (s *matchService) GetMatch(ctx context.Context, matchID int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, nil, matchID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return match, nil
}

func (s *matchService) RecordResult(ctx context.Context, matchID int, input RecordResultInput) (*RecordResultOutput, error) {
	if (input.SetsA != nil && *input.SetsA < 0) || (input.SetsB != nil && *input.SetsB < 0) {
		return nil, ErrInvalidSetCount
	}

	match, err := s.matchRepo.GetByID(ctx, nil, matchID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}

	match.IsFinished = true
	if input.IsFinished != nil {
		match.IsFinished = *input.IsFinished
	}
	match.SetsA = input.SetsA
	match.SetsB = input.SetsB
	match.SetScores = input.SetScores
	if input.DateTime != nil {
		match.DateTime = input.DateTime
	}

	if err := s.matchRepo.UpdateResult(ctx, nil, match); err != nil {
		return nil, handleRepositoryError(err)
	}
	s.metrics.ResultRecorded()
	s.logger.Info("match result recorded",
		slog.Int("match_id", match.ID),
		slog.Int("tournament_id", match.TournamentID),
		slog.String("score", match.ScoreDisplay()))

	out := &RecordResultOutput{Match: match}
	s.notifier.Notify(match.TournamentID, brackets.EventMatchUpdated, match)

	// Результат уже сохранён: ошибки кеша и плей-офф только логируем
	rows, err := s.standingsService.RefreshCache(ctx, match.TournamentID)
	if err != nil {
		s.logger.Error("failed to refresh standings cache",
			slog.Int("tournament_id", match.TournamentID), slog.Any("error", err))
	} else {
		out.Standings = rows
		s.notifier.Notify(match.TournamentID, brackets.EventStandingsUpdated, rows)
	}

	trigger, err := s.playoffService.Trigger(ctx, match.TournamentID)
	if err != nil {
		s.logger.Error("playoff trigger failed",
			slog.Int("tournament_id", match.TournamentID), slog.Any("error", err))
	} else {
		out.Playoff = trigger
	}
	return out, nil
}
