package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/volleyball-league/models"
)

var ErrTeamNotFound = errors.New("team not found")

type TeamRepository interface {
	Create(ctx context.Context, exec SQLExecutor, team *models.Team) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Team, error)
	Rename(ctx context.Context, exec SQLExecutor, id int, name string) error
	List(ctx context.Context, exec SQLExecutor, gender *models.Gender) ([]models.Team, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Team, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamRepository) Create(ctx context.Context, exec SQLExecutor, team *models.Team) error {
	query := `INSERT INTO teams (name, gender) VALUES ($1, $2) RETURNING id`
	return r.getExecutor(exec).QueryRowContext(ctx, query, team.Name, team.Gender).Scan(&team.ID)
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Team, error) {
	query := `SELECT id, name, gender FROM teams WHERE id = $1`
	var team models.Team
	err := r.getExecutor(exec).QueryRowContext(ctx, query, id).Scan(&team.ID, &team.Name, &team.Gender)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (r *postgresTeamRepository) Rename(ctx context.Context, exec SQLExecutor, id int, name string) error {
	result, err := r.getExecutor(exec).ExecContext(ctx, `UPDATE teams SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) List(ctx context.Context, exec SQLExecutor, gender *models.Gender) ([]models.Team, error) {
	query := `SELECT id, name, gender FROM teams`
	args := []interface{}{}
	if gender != nil {
		query += ` WHERE gender = $1`
		args = append(args, *gender)
	}
	query += ` ORDER BY name, gender`
	return r.queryTeams(ctx, exec, query, args...)
}

// ListByTournament returns the participants in the order they joined.
func (r *postgresTeamRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Team, error) {
	query := `
		SELECT t.id, t.name, t.gender
		FROM tournament_teams tt
		JOIN teams t ON t.id = tt.team_id
		WHERE tt.tournament_id = $1
		ORDER BY tt.position ASC`
	return r.queryTeams(ctx, exec, query, tournamentID)
}

func (r *postgresTeamRepository) queryTeams(ctx context.Context, exec SQLExecutor, query string, args ...interface{}) ([]models.Team, error) {
	rows, err := r.getExecutor(exec).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var team models.Team
		if err := rows.Scan(&team.ID, &team.Name, &team.Gender); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}
