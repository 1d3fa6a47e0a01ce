package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/volleyball-league/models"
)

var (
	ErrMatchNotFound          = errors.New("match not found")
	ErrMatchInvalidReference  = errors.New("match references unknown tournament, team or venue")
	ErrMatchPlayoffPairExists = errors.New("playoff pairing already exists")
	ErrMatchSameTeams         = errors.New("match teams must differ")
)

// MatchFilter narrows ListByTournament. Zero value returns every match.
type MatchFilter struct {
	Stages   []models.Stage
	Finished *bool
}

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int, filter MatchFilter) ([]models.Match, error)
	UpdateResult(ctx context.Context, exec SQLExecutor, match *models.Match) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchSelect = `
	SELECT m.id, m.tournament_id, m.team_a_id, m.team_b_id, m.venue_id, m.date_time,
	       m.stage, m.round_number, m.is_finished, m.sets_a, m.sets_b, m.set_scores, m.created_at,
	       ta.name, ta.gender, tb.name, tb.gender, v.name, v.address
	FROM matches m
	JOIN teams ta ON ta.id = m.team_a_id
	JOIN teams tb ON tb.id = m.team_b_id
	LEFT JOIN venues v ON v.id = m.venue_id`

func scanMatch(row interface{ Scan(dest ...any) error }) (*models.Match, error) {
	var (
		m                    models.Match
		venueID, round       sql.NullInt64
		setsA, setsB         sql.NullInt64
		dateTime             sql.NullTime
		teamA, teamB         models.Team
		venueName, venueAddr sql.NullString
	)
	err := row.Scan(
		&m.ID, &m.TournamentID, &m.TeamAID, &m.TeamBID, &venueID, &dateTime,
		&m.Stage, &round, &m.IsFinished, &setsA, &setsB, &m.SetScores, &m.CreatedAt,
		&teamA.Name, &teamA.Gender, &teamB.Name, &teamB.Gender, &venueName, &venueAddr,
	)
	if err != nil {
		return nil, err
	}
	m.VenueID = nullIntPtr(venueID)
	m.RoundNumber = nullIntPtr(round)
	m.SetsA = nullIntPtr(setsA)
	m.SetsB = nullIntPtr(setsB)
	if dateTime.Valid {
		t := dateTime.Time
		m.DateTime = &t
	}
	teamA.ID, teamB.ID = m.TeamAID, m.TeamBID
	m.TeamA, m.TeamB = &teamA, &teamB
	if m.VenueID != nil && venueName.Valid {
		m.Venue = &models.Venue{ID: *m.VenueID, Name: venueName.String, Address: venueAddr.String}
	}
	return &m, nil
}

func nullIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	query := `
		INSERT INTO matches (tournament_id, team_a_id, team_b_id, venue_id, date_time, stage,
		                     round_number, is_finished, sets_a, sets_b, set_scores)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`
	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		m.TournamentID, m.TeamAID, m.TeamBID, m.VenueID, m.DateTime, m.Stage,
		m.RoundNumber, m.IsFinished, m.SetsA, m.SetsB, m.SetScores,
	).Scan(&m.ID, &m.CreatedAt)
	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	m, err := scanMatch(r.getExecutor(exec).QueryRowContext(ctx, matchSelect+` WHERE m.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int, filter MatchFilter) ([]models.Match, error) {
	query := matchSelect + ` WHERE m.tournament_id = $1`
	args := []interface{}{tournamentID}
	argID := 2

	if len(filter.Stages) > 0 {
		placeholders := make([]string, 0, len(filter.Stages))
		for _, s := range filter.Stages {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argID))
			args = append(args, s)
			argID++
		}
		query += ` AND m.stage IN (` + strings.Join(placeholders, ", ") + `)`
	}
	if filter.Finished != nil {
		query += fmt.Sprintf(` AND m.is_finished = $%d`, argID)
		args = append(args, *filter.Finished)
	}
	query += ` ORDER BY m.date_time ASC NULLS LAST, m.round_number ASC NULLS LAST, m.id ASC`

	rows, err := r.getExecutor(exec).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

// UpdateResult writes is_finished, set counts and set scores.
func (r *postgresMatchRepository) UpdateResult(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	query := `
		UPDATE matches
		SET is_finished = $1, sets_a = $2, sets_b = $3, set_scores = $4, date_time = COALESCE($5, date_time)
		WHERE id = $6`
	result, err := r.getExecutor(exec).ExecContext(ctx, query,
		m.IsFinished, m.SetsA, m.SetsB, m.SetScores, m.DateTime, m.ID)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := pqError(err); ok {
		switch pqErr.Code {
		case pqUniqueViolation:
			if pqErr.Constraint == "uq_matches_playoff_pair" {
				return ErrMatchPlayoffPairExists
			}
		case pqForeignKeyViolation:
			return ErrMatchInvalidReference
		case pqCheckViolation:
			if pqErr.Constraint == "matches_distinct_teams" {
				return ErrMatchSameTeams
			}
		}
	}
	return err
}
