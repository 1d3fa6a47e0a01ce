package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/volleyball-league/brackets"
	"github.com/Dosada05/volleyball-league/metrics"
	"github.com/Dosada05/volleyball-league/models"
	"github.com/Dosada05/volleyball-league/repositories"
)

// TriggerResult describes one playoff evaluation. Not triggering is not an error.
type TriggerResult struct {
	TournamentID int             `json:"tournament_id"`
	Triggered    bool            `json:"triggered"`
	Reason       brackets.Reason `json:"reason"`
	Finished     int             `json:"finished_matches"`
	Expected     int             `json:"expected_matches"`
	Matches      []models.Match  `json:"matches,omitempty"`
}

type PlayoffService interface {
	// Trigger creates the semifinals once the round robin is complete.
	Trigger(ctx context.Context, tournamentID int) (*TriggerResult, error)
	// TriggerAll evaluates every tournament that has a playoff.
	TriggerAll(ctx context.Context) ([]*TriggerResult, error)
}

type playoffService struct {
	txManager      repositories.TxManager
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	notifier       Notifier
	metrics        *metrics.Metrics
	logger         *slog.Logger
}

func NewPlayoffService(
	txManager repositories.TxManager,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	notifier Notifier,
	m *metrics.Metrics,
	logger *slog.Logger,
) PlayoffService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &playoffService{
		txManager:      txManager,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		notifier:       notifier,
		metrics:        m,
		logger:         logger,
	}
}

// errBracketRace откатывает транзакцию, если пару уже вставил кто-то другой.
var errBracketRace = errors.New("playoff pairing inserted concurrently")

// Trigger проверяет условия и создаёт полуфиналы в одной транзакции.
// Строка турнира блокируется SELECT ... FOR UPDATE, поэтому параллельные
// вызовы выполняются по очереди и второй видит уже созданную сетку.
func (s *playoffService) Trigger(ctx context.Context, tournamentID int) (*TriggerResult, error) {
	result := &TriggerResult{TournamentID: tournamentID}

	err := s.txManager.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		t, err := s.tournamentRepo.GetForUpdate(ctx, exec, tournamentID)
		if err != nil {
			return handleRepositoryError(err)
		}
		teams, err := s.teamRepo.ListByTournament(ctx, exec, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load teams: %w", err)
		}
		t.Teams = teams

		matches, err := s.matchRepo.ListByTournament(ctx, exec, tournamentID, repositories.MatchFilter{})
		if err != nil {
			return fmt.Errorf("failed to load matches: %w", err)
		}

		plan, reason := brackets.PlanPlayoff(*t, matches)
		result.Reason = reason
		result.Finished = plan.Finished
		result.Expected = plan.Expected
		if reason != brackets.ReasonTriggered {
			return nil
		}

		created := make([]models.Match, 0, len(plan.Pairings))
		for _, p := range plan.Pairings {
			m := p.Match(tournamentID)
			if err := s.matchRepo.Create(ctx, exec, &m); err != nil {
				if errors.Is(err, repositories.ErrMatchPlayoffPairExists) {
					return errBracketRace
				}
				return fmt.Errorf("failed to create %s match %d vs %d: %w", p.Stage, p.TeamA.ID, p.TeamB.ID, err)
			}
			teamA, teamB := p.TeamA, p.TeamB
			m.TeamA, m.TeamB = &teamA, &teamB
			created = append(created, m)
		}
		result.Triggered = true
		result.Matches = created
		return nil
	})
	if errors.Is(err, errBracketRace) {
		result.Triggered = false
		result.Reason = brackets.ReasonBracketExists
		result.Matches = nil
		err = nil
	}
	if err != nil {
		return nil, err
	}

	s.metrics.PlayoffEvaluated(string(result.Reason))
	if result.Triggered {
		s.logger.Info("playoff semifinals created",
			slog.Int("tournament_id", tournamentID), slog.Int("matches", len(result.Matches)))
		s.notifier.Notify(tournamentID, brackets.EventPlayoffCreated, result.Matches)
	} else {
		s.logger.Debug("playoff not triggered",
			slog.Int("tournament_id", tournamentID), slog.String("reason", string(result.Reason)))
	}
	return result, nil
}

func (s *playoffService) TriggerAll(ctx context.Context) ([]*TriggerResult, error) {
	tournaments, err := s.tournamentRepo.ListWithPlayoff(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments with playoff: %w", err)
	}
	results := make([]*TriggerResult, 0, len(tournaments))
	for _, t := range tournaments {
		res, err := s.Trigger(ctx, t.ID)
		if err != nil {
			return results, fmt.Errorf("tournament %d: %w", t.ID, err)
		}
		results = append(results, res)
	}
	return results, nil
}
