package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Dosada05/volleyball-league/models"
	"github.com/Dosada05/volleyball-league/repositories"
)

// memStore is an in-memory database shared by the fake repositories.
type memStore struct {
	mu sync.Mutex

	nextID      int
	teams       map[int]models.Team
	tournaments map[int]models.Tournament
	members     map[int][]int
	matches     map[int]models.Match
	standings   map[int][]*models.TournamentStanding
}

func newMemStore() *memStore {
	return &memStore{
		teams:       make(map[int]models.Team),
		tournaments: make(map[int]models.Tournament),
		members:     make(map[int][]int),
		matches:     make(map[int]models.Match),
		standings:   make(map[int][]*models.TournamentStanding),
	}
}

func (s *memStore) id() int {
	s.nextID++
	return s.nextID
}

type memSnapshot struct {
	nextID      int
	teams       map[int]models.Team
	tournaments map[int]models.Tournament
	members     map[int][]int
	matches     map[int]models.Match
	standings   map[int][]*models.TournamentStanding
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := memSnapshot{
		nextID:      s.nextID,
		teams:       make(map[int]models.Team, len(s.teams)),
		tournaments: make(map[int]models.Tournament, len(s.tournaments)),
		members:     make(map[int][]int, len(s.members)),
		matches:     make(map[int]models.Match, len(s.matches)),
		standings:   make(map[int][]*models.TournamentStanding, len(s.standings)),
	}
	for k, v := range s.teams {
		snap.teams[k] = v
	}
	for k, v := range s.tournaments {
		snap.tournaments[k] = v
	}
	for k, v := range s.members {
		snap.members[k] = append([]int(nil), v...)
	}
	for k, v := range s.matches {
		snap.matches[k] = v
	}
	for k, v := range s.standings {
		snap.standings[k] = append([]*models.TournamentStanding(nil), v...)
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID = snap.nextID
	s.teams = snap.teams
	s.tournaments = snap.tournaments
	s.members = snap.members
	s.matches = snap.matches
	s.standings = snap.standings
}

// seed helpers

func (s *memStore) addTeam(name string, gender models.Gender) models.Team {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := models.Team{ID: s.id(), Name: name, Gender: gender}
	s.teams[t.ID] = t
	return t
}

func (s *memStore) addTournament(t models.Tournament, teams ...models.Team) models.Tournament {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.id()
	if t.NumberOfRounds == 0 {
		t.NumberOfRounds = 1
	}
	t.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t.Teams = nil
	s.tournaments[t.ID] = t
	for _, team := range teams {
		s.members[t.ID] = append(s.members[t.ID], team.ID)
	}
	return t
}

func (s *memStore) addMatch(m models.Match) models.Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = s.id()
	s.matches[m.ID] = m
	return m
}

func (s *memStore) matchesOf(tournamentID int, stage models.Stage) []models.Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Match
	for _, m := range s.matches {
		if m.TournamentID == tournamentID && m.Stage == stage {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// fakeTxManager serialises transactions and restores the store on error.
type fakeTxManager struct {
	store     *memStore
	mu        sync.Mutex
	commits   int
	rollbacks int
}

func (f *fakeTxManager) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := f.store.snapshot()
	if err := fn(nil); err != nil {
		f.store.restore(snap)
		f.rollbacks++
		return err
	}
	f.commits++
	return nil
}

type fakeTeamRepo struct{ store *memStore }

func (r *fakeTeamRepo) Create(ctx context.Context, exec repositories.SQLExecutor, team *models.Team) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	team.ID = r.store.id()
	r.store.teams[team.ID] = *team
	return nil
}

func (r *fakeTeamRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Team, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return &t, nil
}

func (r *fakeTeamRepo) Rename(ctx context.Context, exec repositories.SQLExecutor, id int, name string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	t.Name = name
	r.store.teams[id] = t
	return nil
}

func (r *fakeTeamRepo) List(ctx context.Context, exec repositories.SQLExecutor, gender *models.Gender) ([]models.Team, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]models.Team, 0)
	for _, t := range r.store.teams {
		if gender == nil || t.Gender == *gender {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeTeamRepo) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) ([]models.Team, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]models.Team, 0)
	for _, id := range r.store.members[tournamentID] {
		out = append(out, r.store.teams[id])
	}
	return out, nil
}

type fakeTournamentRepo struct{ store *memStore }

func (r *fakeTournamentRepo) Create(ctx context.Context, exec repositories.SQLExecutor, t *models.Tournament) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t.ID = r.store.id()
	t.CreatedAt = time.Now()
	stored := *t
	stored.Teams = nil
	r.store.tournaments[t.ID] = stored
	return nil
}

func (r *fakeTournamentRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Tournament, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return &t, nil
}

func (r *fakeTournamentRepo) GetForUpdate(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Tournament, error) {
	return r.GetByID(ctx, exec, id)
}

func (r *fakeTournamentRepo) List(ctx context.Context, exec repositories.SQLExecutor) ([]models.Tournament, error) {
	return r.list(func(models.Tournament) bool { return true }), nil
}

func (r *fakeTournamentRepo) ListWithPlayoff(ctx context.Context, exec repositories.SQLExecutor) ([]models.Tournament, error) {
	return r.list(func(t models.Tournament) bool { return t.HasPlayoff }), nil
}

func (r *fakeTournamentRepo) list(keep func(models.Tournament) bool) []models.Tournament {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]models.Tournament, 0)
	for _, t := range r.store.tournaments {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (r *fakeTournamentRepo) SetTeams(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, teamIDs []int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.tournaments[tournamentID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	for _, id := range teamIDs {
		if _, ok := r.store.teams[id]; !ok {
			return repositories.ErrTournamentInvalidTeam
		}
	}
	r.store.members[tournamentID] = append([]int(nil), teamIDs...)
	return nil
}

type fakeMatchRepo struct {
	store *memStore
	// createErr, when set, fails Create calls after the first failAfter successes.
	createErr error
	failAfter int
	created   int
}

func (r *fakeMatchRepo) Create(ctx context.Context, exec repositories.SQLExecutor, m *models.Match) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.createErr != nil && r.created >= r.failAfter {
		return r.createErr
	}
	if m.TeamAID == m.TeamBID {
		return repositories.ErrMatchSameTeams
	}
	if m.Stage.IsPlayoff() {
		for _, existing := range r.store.matches {
			if existing.TournamentID == m.TournamentID && existing.Stage == m.Stage &&
				existing.TeamAID == m.TeamAID && existing.TeamBID == m.TeamBID {
				return repositories.ErrMatchPlayoffPairExists
			}
		}
	}
	r.created++
	m.ID = r.store.id()
	m.CreatedAt = time.Now()
	r.store.matches[m.ID] = *m
	return nil
}

func (r *fakeMatchRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Match, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	m, ok := r.store.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	r.store.joinTeams(&m)
	return &m, nil
}

func (r *fakeMatchRepo) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, filter repositories.MatchFilter) ([]models.Match, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]models.Match, 0)
	for _, m := range r.store.matches {
		if m.TournamentID != tournamentID {
			continue
		}
		if filter.Finished != nil && m.IsFinished != *filter.Finished {
			continue
		}
		if len(filter.Stages) > 0 && !containsStage(filter.Stages, m.Stage) {
			continue
		}
		r.store.joinTeams(&m)
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeMatchRepo) UpdateResult(ctx context.Context, exec repositories.SQLExecutor, m *models.Match) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.matches[m.ID]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	stored.IsFinished = m.IsFinished
	stored.SetsA, stored.SetsB = m.SetsA, m.SetsB
	stored.SetScores = m.SetScores
	if m.DateTime != nil {
		stored.DateTime = m.DateTime
	}
	r.store.matches[m.ID] = stored
	return nil
}

// joinTeams must be called with the store lock held.
func (s *memStore) joinTeams(m *models.Match) {
	a, b := s.teams[m.TeamAID], s.teams[m.TeamBID]
	m.TeamA, m.TeamB = &a, &b
}

func containsStage(stages []models.Stage, s models.Stage) bool {
	for _, st := range stages {
		if st == s {
			return true
		}
	}
	return false
}

type fakeStandingRepo struct {
	store    *memStore
	replaces int
}

func (r *fakeStandingRepo) ReplaceForTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, standings []*models.TournamentStanding) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.replaces++
	r.store.standings[tournamentID] = append([]*models.TournamentStanding(nil), standings...)
	return nil
}

func (r *fakeStandingRepo) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) ([]*models.TournamentStanding, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return append([]*models.TournamentStanding{}, r.store.standings[tournamentID]...), nil
}

type notification struct {
	TournamentID int
	Type         string
	Payload      interface{}
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []notification
}

func (n *fakeNotifier) Notify(tournamentID int, eventType string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notification{TournamentID: tournamentID, Type: eventType, Payload: payload})
}

func (n *fakeNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.events))
	for _, e := range n.events {
		out = append(out, e.Type)
	}
	return out
}

type fakePublisher struct {
	PublishFunc func(ctx context.Context, tournamentID int, rows []models.StandingRow) (string, error)
	calls       int
}

func (p *fakePublisher) PublishStandings(ctx context.Context, tournamentID int, rows []models.StandingRow) (string, error) {
	p.calls++
	if p.PublishFunc != nil {
		return p.PublishFunc(ctx, tournamentID, rows)
	}
	return "https://cdn.example.com/standings.json", nil
}

// harness wires every service over one memStore.
type harness struct {
	store       *memStore
	tx          *fakeTxManager
	teams       *fakeTeamRepo
	tournaments *fakeTournamentRepo
	matches     *fakeMatchRepo
	standings   *fakeStandingRepo
	notifier    *fakeNotifier
	publisher   *fakePublisher

	standingsService  StandingsService
	playoffService    PlayoffService
	matchService      MatchService
	tournamentService TournamentService
}

func newHarness() *harness {
	store := newMemStore()
	h := &harness{
		store:       store,
		tx:          &fakeTxManager{store: store},
		teams:       &fakeTeamRepo{store: store},
		tournaments: &fakeTournamentRepo{store: store},
		matches:     &fakeMatchRepo{store: store},
		standings:   &fakeStandingRepo{store: store},
		notifier:    &fakeNotifier{},
		publisher:   &fakePublisher{},
	}
	h.standingsService = NewStandingsService(h.tx, h.tournaments, h.teams, h.matches, h.standings, h.publisher, nil, nil)
	h.playoffService = NewPlayoffService(h.tx, h.tournaments, h.teams, h.matches, h.notifier, nil, nil)
	h.matchService = NewMatchService(h.tournaments, h.teams, h.matches, h.standingsService, h.playoffService, h.notifier, nil, nil)
	h.tournamentService = NewTournamentService(h.tx, h.tournaments, h.teams, h.matches, nil, nil)
	return h
}

func intPtr(v int) *int { return &v }

// league seeds a female tournament with n teams named T1..Tn.
func (h *harness) league(n int, hasPlayoff bool) (models.Tournament, []models.Team) {
	teams := make([]models.Team, 0, n)
	for i := 1; i <= n; i++ {
		teams = append(teams, h.store.addTeam("T"+string(rune('0'+i)), models.GenderFemale))
	}
	t := h.store.addTournament(models.Tournament{
		Name:           "Spring league",
		Gender:         models.GenderFemale,
		NumberOfRounds: 1,
		HasPlayoff:     hasPlayoff,
	}, teams...)
	t.Teams = teams
	return t, teams
}

// finish stores a finished REGULAR match with the given set score.
func (h *harness) finish(tournamentID int, a, b models.Team, setsA, setsB int) models.Match {
	return h.store.addMatch(models.Match{
		TournamentID: tournamentID,
		TeamAID:      a.ID,
		TeamBID:      b.ID,
		Stage:        models.StageRegular,
		IsFinished:   true,
		SetsA:        intPtr(setsA),
		SetsB:        intPtr(setsB),
	})
}
