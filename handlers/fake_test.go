package handlers

import (
	"context"

	"github.com/Dosada05/volleyball-league/brackets"
	"github.com/Dosada05/volleyball-league/models"
	"github.com/Dosada05/volleyball-league/services"
)

type fakeAuthService struct {
	LoginFunc func(ctx context.Context, input services.LoginInput) (string, error)
}

func (f *fakeAuthService) Login(ctx context.Context, input services.LoginInput) (string, error) {
	return f.LoginFunc(ctx, input)
}

type fakeTeamService struct {
	CreateTeamFunc func(ctx context.Context, input services.CreateTeamInput) (*models.Team, error)
	RenameTeamFunc func(ctx context.Context, id int, name string) (*models.Team, error)
	ListTeamsFunc  func(ctx context.Context, gender *models.Gender) ([]models.Team, error)
}

func (f *fakeTeamService) CreateTeam(ctx context.Context, input services.CreateTeamInput) (*models.Team, error) {
	return f.CreateTeamFunc(ctx, input)
}

func (f *fakeTeamService) RenameTeam(ctx context.Context, id int, name string) (*models.Team, error) {
	return f.RenameTeamFunc(ctx, id, name)
}

func (f *fakeTeamService) ListTeams(ctx context.Context, gender *models.Gender) ([]models.Team, error) {
	return f.ListTeamsFunc(ctx, gender)
}

type fakeTournamentService struct {
	CreateFunc           func(ctx context.Context, input services.CreateTournamentInput) (*models.Tournament, error)
	GetByIDFunc          func(ctx context.Context, id int) (*models.Tournament, error)
	ListFunc             func(ctx context.Context) ([]models.Tournament, error)
	SetTeamsFunc         func(ctx context.Context, tournamentID int, teamIDs []int) (*models.Tournament, error)
	GenerateScheduleFunc func(ctx context.Context, tournamentID int) ([]models.Match, error)
}

func (f *fakeTournamentService) Create(ctx context.Context, input services.CreateTournamentInput) (*models.Tournament, error) {
	return f.CreateFunc(ctx, input)
}

func (f *fakeTournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	return f.GetByIDFunc(ctx, id)
}

func (f *fakeTournamentService) List(ctx context.Context) ([]models.Tournament, error) {
	return f.ListFunc(ctx)
}

func (f *fakeTournamentService) SetTeams(ctx context.Context, tournamentID int, teamIDs []int) (*models.Tournament, error) {
	return f.SetTeamsFunc(ctx, tournamentID, teamIDs)
}

func (f *fakeTournamentService) GenerateSchedule(ctx context.Context, tournamentID int) ([]models.Match, error) {
	return f.GenerateScheduleFunc(ctx, tournamentID)
}

type fakeStandingsService struct {
	DetailFunc          func(ctx context.Context, tournamentID int) (*services.TournamentDetail, error)
	StandingsFunc       func(ctx context.Context, tournamentID int) ([]models.StandingRow, error)
	CachedStandingsFunc func(ctx context.Context, tournamentID int) ([]*models.TournamentStanding, error)
	MatrixFunc          func(ctx context.Context, tournamentID int) (*brackets.Matrix, error)
	ScheduleFunc        func(ctx context.Context, tournamentID int) ([]brackets.ScheduleBucket, error)
	RefreshCacheFunc    func(ctx context.Context, tournamentID int) ([]models.StandingRow, error)
}

func (f *fakeStandingsService) Detail(ctx context.Context, tournamentID int) (*services.TournamentDetail, error) {
	return f.DetailFunc(ctx, tournamentID)
}

func (f *fakeStandingsService) Standings(ctx context.Context, tournamentID int) ([]models.StandingRow, error) {
	return f.StandingsFunc(ctx, tournamentID)
}

func (f *fakeStandingsService) CachedStandings(ctx context.Context, tournamentID int) ([]*models.TournamentStanding, error) {
	return f.CachedStandingsFunc(ctx, tournamentID)
}

func (f *fakeStandingsService) Matrix(ctx context.Context, tournamentID int) (*brackets.Matrix, error) {
	return f.MatrixFunc(ctx, tournamentID)
}

func (f *fakeStandingsService) Schedule(ctx context.Context, tournamentID int) ([]brackets.ScheduleBucket, error) {
	return f.ScheduleFunc(ctx, tournamentID)
}

func (f *fakeStandingsService) RefreshCache(ctx context.Context, tournamentID int) ([]models.StandingRow, error) {
	return f.RefreshCacheFunc(ctx, tournamentID)
}

type fakePlayoffService struct {
	TriggerFunc    func(ctx context.Context, tournamentID int) (*services.TriggerResult, error)
	TriggerAllFunc func(ctx context.Context) ([]*services.TriggerResult, error)
}

func (f *fakePlayoffService) Trigger(ctx context.Context, tournamentID int) (*services.TriggerResult, error) {
	return f.TriggerFunc(ctx, tournamentID)
}

func (f *fakePlayoffService) TriggerAll(ctx context.Context) ([]*services.TriggerResult, error) {
	return f.TriggerAllFunc(ctx)
}

type fakeExportService struct {
	StandingsWorkbookFunc func(ctx context.Context, tournamentID int) ([]byte, string, error)
}

func (f *fakeExportService) StandingsWorkbook(ctx context.Context, tournamentID int) ([]byte, string, error) {
	return f.StandingsWorkbookFunc(ctx, tournamentID)
}

type fakeMatchService struct {
	CreateMatchFunc  func(ctx context.Context, tournamentID int, input services.CreateMatchInput) (*models.Match, error)
	GetMatchFunc     func(ctx context.Context, matchID int) (*models.Match, error)
	RecordResultFunc func(ctx context.Context, matchID int, input services.RecordResultInput) (*services.RecordResultOutput, error)
}

func (f *fakeMatchService) CreateMatch(ctx context.Context, tournamentID int, input services.CreateMatchInput) (*models.Match, error) {
	return f.CreateMatchFunc(ctx, tournamentID, input)
}

func (f *fakeMatchService) GetMatch(ctx context.Context, matchID int) (*models.Match, error) {
	return f.GetMatchFunc(ctx, matchID)
}

func (f *fakeMatchService) RecordResult(ctx context.Context, matchID int, input services.RecordResultInput) (*services.RecordResultOutput, error) {
	return f.RecordResultFunc(ctx, matchID, input)
}
