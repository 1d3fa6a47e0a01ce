package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/volleyball-league/models"
)

var (
	ErrTournamentNotFound    = errors.New("tournament not found")
	ErrTournamentInvalidTeam = errors.New("invalid team reference")
	ErrTournamentTeamExists  = errors.New("team already participates in tournament")
)

type TournamentRepository interface {
	Create(ctx context.Context, exec SQLExecutor, tournament *models.Tournament) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error)
	// GetForUpdate locks the tournament row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error)
	List(ctx context.Context, exec SQLExecutor) ([]models.Tournament, error)
	ListWithPlayoff(ctx context.Context, exec SQLExecutor) ([]models.Tournament, error)
	SetTeams(ctx context.Context, exec SQLExecutor, tournamentID int, teamIDs []int) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const tournamentColumns = `id, name, gender, number_of_rounds, has_playoff, playoff_teams, display_order, created_at`

func scanTournament(row interface{ Scan(dest ...any) error }) (*models.Tournament, error) {
	t := &models.Tournament{}
	var playoffTeams sql.NullInt64
	err := row.Scan(&t.ID, &t.Name, &t.Gender, &t.NumberOfRounds, &t.HasPlayoff, &playoffTeams, &t.Order, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	if playoffTeams.Valid {
		v := int(playoffTeams.Int64)
		t.PlayoffTeams = &v
	}
	return t, nil
}

func (r *postgresTournamentRepository) Create(ctx context.Context, exec SQLExecutor, t *models.Tournament) error {
	query := `
		INSERT INTO tournaments (name, gender, number_of_rounds, has_playoff, playoff_teams, display_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	return r.getExecutor(exec).QueryRowContext(ctx, query,
		t.Name, t.Gender, t.NumberOfRounds, t.HasPlayoff, t.PlayoffTeams, t.Order,
	).Scan(&t.ID, &t.CreatedAt)
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error) {
	return r.getOne(ctx, exec, `SELECT `+tournamentColumns+` FROM tournaments WHERE id = $1`, id)
}

func (r *postgresTournamentRepository) GetForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error) {
	return r.getOne(ctx, exec, `SELECT `+tournamentColumns+` FROM tournaments WHERE id = $1 FOR UPDATE`, id)
}

func (r *postgresTournamentRepository) getOne(ctx context.Context, exec SQLExecutor, query string, id int) (*models.Tournament, error) {
	t, err := scanTournament(r.getExecutor(exec).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context, exec SQLExecutor) ([]models.Tournament, error) {
	return r.list(ctx, exec, `SELECT `+tournamentColumns+` FROM tournaments ORDER BY display_order, name`)
}

func (r *postgresTournamentRepository) ListWithPlayoff(ctx context.Context, exec SQLExecutor) ([]models.Tournament, error) {
	return r.list(ctx, exec, `SELECT `+tournamentColumns+` FROM tournaments WHERE has_playoff ORDER BY display_order, name`)
}

func (r *postgresTournamentRepository) list(ctx context.Context, exec SQLExecutor, query string) ([]models.Tournament, error) {
	rows, err := r.getExecutor(exec).QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, err
		}
		tournaments = append(tournaments, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tournaments, nil
}

// SetTeams replaces the participant list; position follows the slice order.
// Should run inside a transaction.
func (r *postgresTournamentRepository) SetTeams(ctx context.Context, exec SQLExecutor, tournamentID int, teamIDs []int) error {
	executor := r.getExecutor(exec)
	if _, err := executor.ExecContext(ctx, `DELETE FROM tournament_teams WHERE tournament_id = $1`, tournamentID); err != nil {
		return fmt.Errorf("failed to clear tournament teams: %w", err)
	}
	for _, teamID := range teamIDs {
		_, err := executor.ExecContext(ctx,
			`INSERT INTO tournament_teams (tournament_id, team_id) VALUES ($1, $2)`, tournamentID, teamID)
		if err != nil {
			return r.handleTournamentTeamError(err)
		}
	}
	return nil
}

func (r *postgresTournamentRepository) handleTournamentTeamError(err error) error {
	if pqErr, ok := pqError(err); ok {
		switch pqErr.Code {
		case pqUniqueViolation:
			return ErrTournamentTeamExists
		case pqForeignKeyViolation:
			if pqErr.Constraint == "tournament_teams_tournament_id_fkey" {
				return ErrTournamentNotFound
			}
			return ErrTournamentInvalidTeam
		}
	}
	return err
}
