package services

import (
	"context"

	"github.com/Dosada05/volleyball-league/models"
)

// Notifier доставляет события подписчикам комнаты турнира (websocket hub).
type Notifier interface {
	Notify(tournamentID int, eventType string, payload interface{})
}

// SnapshotPublisher выкладывает таблицу турнира во внешнее хранилище.
type SnapshotPublisher interface {
	PublishStandings(ctx context.Context, tournamentID int, rows []models.StandingRow) (string, error)
}

type noopNotifier struct{}

func (noopNotifier) Notify(int, string, interface{}) {}
