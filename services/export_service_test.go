package services

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportService_StandingsWorkbook(t *testing.T) {
	h := newHarness()
	tournament, teams := h.league(2, false)
	h.finish(tournament.ID, teams[0], teams[1], 3, 1)
	svc := NewExportService(h.standingsService)

	data, name, err := svc.StandingsWorkbook(context.Background(), tournament.ID)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("tournament_%d_standings.xlsx", tournament.ID), name)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetStandings, sheetMatrix, sheetSchedule}, f.GetSheetList())

	rows, err := f.GetRows(sheetStandings)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Team", rows[0][1])
	assert.Equal(t, []string{"1", teams[0].Name, "1", "1", "0", "3", "1", "2", "0", "0", "0", "3"}, rows[1])

	matrix, err := f.GetRows(sheetMatrix)
	require.NoError(t, err)
	require.Len(t, matrix, 3)
	assert.Equal(t, []string{teams[0].Name, "X", "3:1"}, matrix[1])
	assert.Equal(t, []string{teams[1].Name, "1:3", "X"}, matrix[2])

	schedule, err := f.GetRows(sheetSchedule)
	require.NoError(t, err)
	require.Len(t, schedule, 2)
	assert.Equal(t, "3:1", schedule[1][4])
}

func TestExportService_UnknownTournament(t *testing.T) {
	h := newHarness()
	_, _, err := NewExportService(h.standingsService).StandingsWorkbook(context.Background(), 9)
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}
