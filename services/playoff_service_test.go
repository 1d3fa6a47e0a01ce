package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Dosada05/volleyball-league/brackets"
	"github.com/Dosada05/volleyball-league/models"
	"github.com/Dosada05/volleyball-league/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completeRoundRobin finishes every pairing; the earlier team in the list always wins 3:0.
func (h *harness) completeRoundRobin(tournamentID int, teams []models.Team) {
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			h.finish(tournamentID, teams[i], teams[j], 3, 0)
		}
	}
}

func TestPlayoffService_TriggerCreatesSemifinalsOnce(t *testing.T) {
	h := newHarness()
	tournament, teams := h.league(4, true)
	h.completeRoundRobin(tournament.ID, teams)
	ctx := context.Background()

	first, err := h.playoffService.Trigger(ctx, tournament.ID)
	require.NoError(t, err)
	assert.True(t, first.Triggered)
	assert.Equal(t, brackets.ReasonTriggered, first.Reason)
	assert.Equal(t, 6, first.Finished)
	assert.Equal(t, 6, first.Expected)
	require.Len(t, first.Matches, 2)

	semis := h.store.matchesOf(tournament.ID, models.StageSemi)
	require.Len(t, semis, 2)
	assert.Equal(t, [2]int{teams[0].ID, teams[3].ID}, [2]int{semis[0].TeamAID, semis[0].TeamBID})
	assert.Equal(t, [2]int{teams[1].ID, teams[2].ID}, [2]int{semis[1].TeamAID, semis[1].TeamBID})
	for _, m := range semis {
		assert.Nil(t, m.RoundNumber)
		assert.Nil(t, m.VenueID)
		assert.Nil(t, m.DateTime)
		assert.False(t, m.IsFinished)
	}
	assert.Equal(t, []string{brackets.EventPlayoffCreated}, h.notifier.types())

	second, err := h.playoffService.Trigger(ctx, tournament.ID)
	require.NoError(t, err)
	assert.False(t, second.Triggered)
	assert.Equal(t, brackets.ReasonBracketExists, second.Reason)
	assert.Len(t, h.store.matchesOf(tournament.ID, models.StageSemi), 2)
	assert.Len(t, h.notifier.types(), 1)
}

func TestPlayoffService_NotTriggered(t *testing.T) {
	tests := []struct {
		name       string
		hasPlayoff bool
		finished   int
		want       brackets.Reason
	}{
		{name: "tournament without playoff", hasPlayoff: false, finished: 6, want: brackets.ReasonNoPlayoff},
		{name: "round robin in progress", hasPlayoff: true, finished: 5, want: brackets.ReasonInProgress},
		{name: "nothing played", hasPlayoff: true, finished: 0, want: brackets.ReasonInProgress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			tournament, teams := h.league(4, tt.hasPlayoff)
			played := 0
			for i := 0; i < len(teams) && played < tt.finished; i++ {
				for j := i + 1; j < len(teams) && played < tt.finished; j++ {
					h.finish(tournament.ID, teams[i], teams[j], 3, 1)
					played++
				}
			}

			res, err := h.playoffService.Trigger(context.Background(), tournament.ID)
			require.NoError(t, err)
			assert.False(t, res.Triggered)
			assert.Equal(t, tt.want, res.Reason)
			assert.Empty(t, res.Matches)
			assert.Empty(t, h.store.matchesOf(tournament.ID, models.StageSemi))
			assert.Empty(t, h.notifier.types())
		})
	}
}

func TestPlayoffService_UnknownTournament(t *testing.T) {
	h := newHarness()
	_, err := h.playoffService.Trigger(context.Background(), 404)
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestPlayoffService_ConcurrentTriggersCreateOneBracket(t *testing.T) {
	h := newHarness()
	tournament, teams := h.league(5, true)
	h.completeRoundRobin(tournament.ID, teams)

	const callers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		triggered int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := h.playoffService.Trigger(context.Background(), tournament.ID)
			if !assert.NoError(t, err) {
				return
			}
			if res.Triggered {
				mu.Lock()
				triggered++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, triggered)
	assert.Len(t, h.store.matchesOf(tournament.ID, models.StageSemi), 2)
}

func TestPlayoffService_FailedInsertRollsBack(t *testing.T) {
	h := newHarness()
	tournament, teams := h.league(4, true)
	h.completeRoundRobin(tournament.ID, teams)
	dbErr := errors.New("connection reset")
	h.matches.createErr = dbErr
	h.matches.failAfter = 1

	_, err := h.playoffService.Trigger(context.Background(), tournament.ID)
	require.ErrorIs(t, err, dbErr)
	assert.Empty(t, h.store.matchesOf(tournament.ID, models.StageSemi))
	assert.Equal(t, 1, h.tx.rollbacks)
	assert.Empty(t, h.notifier.types())
}

func TestPlayoffService_UniqueViolationMeansBracketExists(t *testing.T) {
	h := newHarness()
	tournament, teams := h.league(4, true)
	h.completeRoundRobin(tournament.ID, teams)
	h.matches.createErr = repositories.ErrMatchPlayoffPairExists

	res, err := h.playoffService.Trigger(context.Background(), tournament.ID)
	require.NoError(t, err)
	assert.False(t, res.Triggered)
	assert.Equal(t, brackets.ReasonBracketExists, res.Reason)
	assert.Empty(t, res.Matches)
}

func TestPlayoffService_TriggerAll(t *testing.T) {
	h := newHarness()
	withPlayoff, teams := h.league(4, true)
	h.completeRoundRobin(withPlayoff.ID, teams)
	withoutPlayoff := h.store.addTournament(models.Tournament{Name: "Cup", Gender: models.GenderFemale}, teams...)
	h.completeRoundRobin(withoutPlayoff.ID, teams)

	results, err := h.playoffService.TriggerAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, withPlayoff.ID, results[0].TournamentID)
	assert.True(t, results[0].Triggered)
	assert.Empty(t, h.store.matchesOf(withoutPlayoff.ID, models.StageSemi))
}
