package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Dosada05/volleyball-league/models"
)

// StandingsSnapshot is the public JSON document for one tournament table.
type StandingsSnapshot struct {
	TournamentID int                  `json:"tournament_id"`
	GeneratedAt  time.Time            `json:"generated_at"`
	Standings    []models.StandingRow `json:"standings"`
}

// StandingsPublisher uploads standings snapshots as static JSON files.
type StandingsPublisher struct {
	uploader FileUploader
	now      func() time.Time
}

func NewStandingsPublisher(uploader FileUploader) *StandingsPublisher {
	return &StandingsPublisher{uploader: uploader, now: time.Now}
}

// StandingsKey is the object key of the tournament's snapshot.
func StandingsKey(tournamentID int) string {
	return fmt.Sprintf("standings/tournament_%d.json", tournamentID)
}

// PublishStandings uploads the table and returns its public URL.
func (p *StandingsPublisher) PublishStandings(ctx context.Context, tournamentID int, rows []models.StandingRow) (string, error) {
	if rows == nil {
		rows = []models.StandingRow{}
	}
	body, err := json.Marshal(StandingsSnapshot{
		TournamentID: tournamentID,
		GeneratedAt:  p.now().UTC(),
		Standings:    rows,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal standings snapshot: %w", err)
	}

	result, err := p.uploader.Upload(ctx, StandingsKey(tournamentID), "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	return result.Location, nil
}
