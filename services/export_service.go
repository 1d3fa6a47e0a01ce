package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/Dosada05/volleyball-league/brackets"
	"github.com/xuri/excelize/v2"
)

const (
	sheetStandings = "Standings"
	sheetMatrix    = "Matrix"
	sheetSchedule  = "Schedule"
)

var standingsHeader = []interface{}{
	"#", "Team", "Played", "Won", "Lost", "Sets won", "Sets lost", "Sets diff",
	"Points won", "Points lost", "Points diff", "Points",
}

// ExportService выгружает таблицу, шахматку и расписание турнира в XLSX.
type ExportService interface {
	StandingsWorkbook(ctx context.Context, tournamentID int) ([]byte, string, error)
}

type exportService struct {
	standingsService StandingsService
}

func NewExportService(standingsService StandingsService) ExportService {
	return &exportService{standingsService: standingsService}
}

// StandingsWorkbook returns the workbook bytes and a suggested file name.
func (s *exportService) StandingsWorkbook(ctx context.Context, tournamentID int) ([]byte, string, error) {
	detail, err := s.standingsService.Detail(ctx, tournamentID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetStandings); err != nil {
		return nil, "", fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeStandingsSheet(f, detail); err != nil {
		return nil, "", err
	}
	if err := writeMatrixSheet(f, detail.Matrix); err != nil {
		return nil, "", err
	}
	if err := writeScheduleSheet(f, detail); err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), fmt.Sprintf("tournament_%d_standings.xlsx", tournamentID), nil
}

func writeStandingsSheet(f *excelize.File, detail *TournamentDetail) error {
	if err := f.SetSheetRow(sheetStandings, "A1", &standingsHeader); err != nil {
		return fmt.Errorf("failed to write standings header: %w", err)
	}
	for i, r := range detail.Standings {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			r.Rank, r.Team.Name, r.Played, r.Won, r.Lost, r.SetsWon, r.SetsLost, r.SetsDiff,
			r.PointsWon, r.PointsLost, r.PointsDiff, r.TournamentPoints,
		}
		if err := f.SetSheetRow(sheetStandings, cell, &row); err != nil {
			return fmt.Errorf("failed to write standings row %d: %w", i+1, err)
		}
	}
	return nil
}

func writeMatrixSheet(f *excelize.File, matrix brackets.Matrix) error {
	if _, err := f.NewSheet(sheetMatrix); err != nil {
		return fmt.Errorf("failed to create matrix sheet: %w", err)
	}
	header := []interface{}{""}
	for _, t := range matrix.Teams {
		header = append(header, t.Name)
	}
	if err := f.SetSheetRow(sheetMatrix, "A1", &header); err != nil {
		return fmt.Errorf("failed to write matrix header: %w", err)
	}
	for i, mr := range matrix.Rows {
		row := []interface{}{mr.Team.Name}
		for _, c := range mr.Cells {
			if c.IsSelf {
				row = append(row, "X")
				continue
			}
			row = append(row, strings.Join(c.Scores, ", "))
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetMatrix, cell, &row); err != nil {
			return fmt.Errorf("failed to write matrix row %d: %w", i+1, err)
		}
	}
	return nil
}

func writeScheduleSheet(f *excelize.File, detail *TournamentDetail) error {
	if _, err := f.NewSheet(sheetSchedule); err != nil {
		return fmt.Errorf("failed to create schedule sheet: %w", err)
	}
	header := []interface{}{"Stage", "Date", "Team A", "Team B", "Score", "Venue"}
	if err := f.SetSheetRow(sheetSchedule, "A1", &header); err != nil {
		return fmt.Errorf("failed to write schedule header: %w", err)
	}

	line := 2
	for _, b := range detail.Schedule {
		for _, m := range b.Matches {
			date, venue, teamA, teamB := "", "", "", ""
			if m.DateTime != nil {
				date = m.DateTime.Format("2006-01-02 15:04")
			}
			if m.Venue != nil {
				venue = m.Venue.Name
			}
			if m.TeamA != nil {
				teamA = m.TeamA.Name
			}
			if m.TeamB != nil {
				teamB = m.TeamB.Name
			}
			row := []interface{}{b.Name, date, teamA, teamB, m.ScoreDisplay(), venue}
			cell, err := excelize.CoordinatesToCellName(1, line)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheetSchedule, cell, &row); err != nil {
				return fmt.Errorf("failed to write schedule row %d: %w", line, err)
			}
			line++
		}
	}
	return nil
}
