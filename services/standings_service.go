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
	"golang.org/x/sync/errgroup"
)

// RoundRobinProgress counts finished round-robin matches against the expected total.
type RoundRobinProgress struct {
	Finished int `json:"finished"`
	Expected int `json:"expected"`
}

// TournamentDetail is everything the public tournament page shows.
type TournamentDetail struct {
	Tournament *models.Tournament        `json:"tournament"`
	Standings  []models.StandingRow      `json:"standings"`
	Matrix     brackets.Matrix           `json:"matrix"`
	Schedule   []brackets.ScheduleBucket `json:"schedule"`
	Playoff    []brackets.ScheduleBucket `json:"playoff"`
	Progress   RoundRobinProgress        `json:"progress"`
}

type StandingsService interface {
	Detail(ctx context.Context, tournamentID int) (*TournamentDetail, error)
	Standings(ctx context.Context, tournamentID int) ([]models.StandingRow, error)
	CachedStandings(ctx context.Context, tournamentID int) ([]*models.TournamentStanding, error)
	Matrix(ctx context.Context, tournamentID int) (*brackets.Matrix, error)
	Schedule(ctx context.Context, tournamentID int) ([]brackets.ScheduleBucket, error)
	// RefreshCache recomputes the standings and replaces the stored snapshot.
	RefreshCache(ctx context.Context, tournamentID int) ([]models.StandingRow, error)
}

type standingsService struct {
	txManager      repositories.TxManager
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	standingRepo   repositories.TournamentStandingRepository
	publisher      SnapshotPublisher
	metrics        *metrics.Metrics
	logger         *slog.Logger
}

// NewStandingsService; publisher and m may be nil.
func NewStandingsService(
	txManager repositories.TxManager,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	standingRepo repositories.TournamentStandingRepository,
	publisher SnapshotPublisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) StandingsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &standingsService{
		txManager:      txManager,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		standingRepo:   standingRepo,
		publisher:      publisher,
		metrics:        m,
		logger:         logger,
	}
}

// load читает турнир, участников и все матчи параллельно.
func (s *standingsService) load(ctx context.Context, tournamentID int) (*models.Tournament, []models.Match, error) {
	var (
		tournament *models.Tournament
		teams      []models.Team
		matches    []models.Match
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.tournamentRepo.GetByID(gCtx, nil, tournamentID)
		if err != nil {
			return handleRepositoryError(err)
		}
		tournament = t
		return nil
	})
	g.Go(func() error {
		list, err := s.teamRepo.ListByTournament(gCtx, nil, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load teams of tournament %d: %w", tournamentID, err)
		}
		teams = list
		return nil
	})
	g.Go(func() error {
		list, err := s.matchRepo.ListByTournament(gCtx, nil, tournamentID, repositories.MatchFilter{})
		if err != nil {
			return fmt.Errorf("failed to load matches of tournament %d: %w", tournamentID, err)
		}
		matches = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	tournament.Teams = teams
	return tournament, matches, nil
}

func (s *standingsService) Detail(ctx context.Context, tournamentID int) (*TournamentDetail, error) {
	t, matches, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return &TournamentDetail{
		Tournament: t,
		Standings:  brackets.ComputeStandings(t.Teams, matches),
		Matrix:     brackets.BuildMatrix(t.Teams, matches),
		Schedule:   brackets.GroupSchedule(*t, matches),
		Playoff:    brackets.PlayoffBuckets(*t, matches),
		Progress: RoundRobinProgress{
			Finished: brackets.CountFinishedRoundRobin(matches),
			Expected: brackets.ExpectedRoundRobinMatches(len(t.Teams), t.NumberOfRounds),
		},
	}, nil
}

func (s *standingsService) Standings(ctx context.Context, tournamentID int) ([]models.StandingRow, error) {
	t, matches, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return brackets.ComputeStandings(t.Teams, matches), nil
}

func (s *standingsService) CachedStandings(ctx context.Context, tournamentID int) ([]*models.TournamentStanding, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID); err != nil {
		return nil, handleRepositoryError(err)
	}
	standings, err := s.standingRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached standings: %w", err)
	}
	return standings, nil
}

func (s *standingsService) Matrix(ctx context.Context, tournamentID int) (*brackets.Matrix, error) {
	t, matches, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	matrix := brackets.BuildMatrix(t.Teams, matches)
	return &matrix, nil
}

func (s *standingsService) Schedule(ctx context.Context, tournamentID int) ([]brackets.ScheduleBucket, error) {
	t, matches, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return brackets.GroupSchedule(*t, matches), nil
}

func (s *standingsService) RefreshCache(ctx context.Context, tournamentID int) ([]models.StandingRow, error) {
	start := time.Now()
	t, matches, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	rows := brackets.ComputeStandings(t.Teams, matches)
	snapshot := models.SnapshotFromRows(tournamentID, rows, time.Now())

	err = s.txManager.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		return s.standingRepo.ReplaceForTournament(ctx, exec, tournamentID, snapshot)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store standings snapshot for tournament %d: %w", tournamentID, err)
	}
	s.metrics.ObserveStandingsRefresh(time.Since(start))

	if s.publisher != nil {
		location, pubErr := s.publisher.PublishStandings(ctx, tournamentID, rows)
		s.metrics.SnapshotPublished(pubErr)
		if pubErr != nil {
			// Таблица в БД уже обновлена, публикация не критична
			s.logger.Warn("failed to publish standings snapshot",
				slog.Int("tournament_id", tournamentID), slog.Any("error", pubErr))
		} else {
			s.logger.Info("standings snapshot published",
				slog.Int("tournament_id", tournamentID), slog.String("location", location))
		}
	}
	return rows, nil
}
