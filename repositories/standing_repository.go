package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Dosada05/volleyball-league/models"
)

type TournamentStandingRepository interface {
	// ReplaceForTournament drops the snapshot and writes the given rows.
	// Should run inside a transaction.
	ReplaceForTournament(ctx context.Context, exec SQLExecutor, tournamentID int, standings []*models.TournamentStanding) error
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.TournamentStanding, error)
}

type postgresTournamentStandingRepository struct {
	db *sql.DB
}

func NewPostgresTournamentStandingRepository(db *sql.DB) TournamentStandingRepository {
	return &postgresTournamentStandingRepository{db: db}
}

func (r *postgresTournamentStandingRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTournamentStandingRepository) ReplaceForTournament(ctx context.Context, exec SQLExecutor, tournamentID int, standings []*models.TournamentStanding) error {
	executor := r.getExecutor(exec)
	if _, err := executor.ExecContext(ctx, `DELETE FROM tournament_standings WHERE tournament_id = $1`, tournamentID); err != nil {
		return fmt.Errorf("failed to delete standings for tournament %d: %w", tournamentID, err)
	}

	query := `
		INSERT INTO tournament_standings
		    (tournament_id, team_id, rank, played, won, lost, sets_won, sets_lost,
		     points_won, points_lost, tournament_points, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	for _, s := range standings {
		if s.UpdatedAt.IsZero() {
			s.UpdatedAt = time.Now()
		}
		err := executor.QueryRowContext(ctx, query,
			tournamentID, s.TeamID, s.Rank, s.Played, s.Won, s.Lost, s.SetsWon, s.SetsLost,
			s.PointsWon, s.PointsLost, s.TournamentPoints, s.UpdatedAt,
		).Scan(&s.ID)
		if err != nil {
			return fmt.Errorf("failed to insert standing for team %d: %w", s.TeamID, err)
		}
	}
	return nil
}

func (r *postgresTournamentStandingRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.TournamentStanding, error) {
	query := `
		SELECT s.id, s.tournament_id, s.team_id, s.rank, s.played, s.won, s.lost,
		       s.sets_won, s.sets_lost, s.points_won, s.points_lost, s.tournament_points, s.updated_at,
		       t.name, t.gender
		FROM tournament_standings s
		JOIN teams t ON t.id = s.team_id
		WHERE s.tournament_id = $1
		ORDER BY s.rank ASC`
	rows, err := r.getExecutor(exec).QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]*models.TournamentStanding, 0)
	for rows.Next() {
		s := &models.TournamentStanding{Team: &models.Team{}}
		if err := rows.Scan(
			&s.ID, &s.TournamentID, &s.TeamID, &s.Rank, &s.Played, &s.Won, &s.Lost,
			&s.SetsWon, &s.SetsLost, &s.PointsWon, &s.PointsLost, &s.TournamentPoints, &s.UpdatedAt,
			&s.Team.Name, &s.Team.Gender,
		); err != nil {
			return nil, err
		}
		s.Team.ID = s.TeamID
		standings = append(standings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return standings, nil
}
