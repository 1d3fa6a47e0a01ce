package main

import (
	"bufio"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Dosada05/volleyball-league/config"
	"github.com/Dosada05/volleyball-league/db"
	"github.com/Dosada05/volleyball-league/repositories"
	"github.com/Dosada05/volleyball-league/services"
	_ "github.com/lib/pq"
	"github.com/urfave/cli/v2"
)

// app собирает сервисы поверх одного подключения к базе.
type app struct {
	db          *sql.DB
	teams       services.TeamService
	tournaments services.TournamentService
	standings   services.StandingsService
	playoff     services.PlayoffService
	matches     services.MatchService
}

func newApp(c *cli.Context) (*app, error) {
	dsn, err := config.LoadDatabaseURL()
	if err != nil {
		return nil, err
	}
	conn, err := db.Connect(dsn, 5*time.Second)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(c.Context, conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	txManager := repositories.NewTxManager(conn)
	teamRepo := repositories.NewPostgresTeamRepository(conn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(conn)
	matchRepo := repositories.NewPostgresMatchRepository(conn)
	standingRepo := repositories.NewPostgresTournamentStandingRepository(conn)

	standings := services.NewStandingsService(txManager, tournamentRepo, teamRepo, matchRepo, standingRepo, nil, nil, logger)
	playoff := services.NewPlayoffService(txManager, tournamentRepo, teamRepo, matchRepo, nil, nil, logger)

	return &app{
		db:          conn,
		teams:       services.NewTeamService(teamRepo),
		tournaments: services.NewTournamentService(txManager, tournamentRepo, teamRepo, matchRepo, nil, logger),
		standings:   standings,
		playoff:     playoff,
		matches:     services.NewMatchService(tournamentRepo, teamRepo, matchRepo, standings, playoff, nil, nil, logger),
	}, nil
}

func (a *app) Close() {
	_ = a.db.Close()
}

func main() {
	cliApp := &cli.App{
		Name:  "volleyctl",
		Usage: "обслуживание волейбольной лиги",
		Commands: []*cli.Command{
			generatePlayoffCommand(),
			rebuildStandingsCommand(),
			seedDemoCommand(),
			hashPasswordCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func printTrigger(c *cli.Context, r *services.TriggerResult) {
	if r.Triggered {
		fmt.Fprintf(c.App.Writer, "tournament %d: created %d semifinal(s)\n", r.TournamentID, len(r.Matches))
		return
	}
	fmt.Fprintf(c.App.Writer, "tournament %d: %s (%d/%d round-robin matches finished)\n",
		r.TournamentID, r.Reason, r.Finished, r.Expected)
}

func generatePlayoffCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate-playoff",
		Usage: "создать полуфиналы там, где круг завершён",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "tournament-id", Usage: "только этот турнир"},
		},
		Action: func(c *cli.Context) error {
			a, err := newApp(c)
			if err != nil {
				return err
			}
			defer a.Close()

			if id := c.Int("tournament-id"); id > 0 {
				r, err := a.playoff.Trigger(c.Context, id)
				if err != nil {
					return err
				}
				printTrigger(c, r)
				return nil
			}

			results, err := a.playoff.TriggerAll(c.Context)
			for _, r := range results {
				printTrigger(c, r)
			}
			return err
		},
	}
}

func rebuildStandingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "rebuild-standings",
		Usage: "пересчитать сохранённую таблицу турнира",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "tournament-id", Required: true},
		},
		Action: func(c *cli.Context) error {
			a, err := newApp(c)
			if err != nil {
				return err
			}
			defer a.Close()

			rows, err := a.standings.RefreshCache(c.Context, c.Int("tournament-id"))
			if err != nil {
				return err
			}
			for _, row := range rows {
				fmt.Fprintf(c.App.Writer, "%2d. %-30s %2d pts  %d:%d\n",
					row.Rank, row.Team.Name, row.TournamentPoints, row.SetsWon, row.SetsLost)
			}
			return nil
		},
	}
}

func seedDemoCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed-demo",
		Usage: "создать демо-турнир со случайными результатами",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "teams", Value: 6},
			&cli.IntFlag{Name: "rounds", Value: 1},
			&cli.BoolFlag{Name: "playoff"},
			&cli.StringFlag{Name: "gender", Value: "F", Usage: "M или F"},
			&cli.Int64Flag{Name: "seed", Usage: "seed генератора, 0 - текущее время"},
		},
		Action: func(c *cli.Context) error {
			a, err := newApp(c)
			if err != nil {
				return err
			}
			defer a.Close()

			seed := c.Int64("seed")
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			s := newSeeder(a, seed)
			summary, err := s.Run(c.Context, seedOptions{
				Teams:      c.Int("teams"),
				Rounds:     c.Int("rounds"),
				HasPlayoff: c.Bool("playoff"),
				Gender:     c.String("gender"),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "tournament %d %q: %d teams, %d matches\n",
				summary.TournamentID, summary.Name, summary.Teams, summary.Matches)
			if summary.Playoff != nil {
				printTrigger(c, summary.Playoff)
			}
			return nil
		},
	}
}

func hashPasswordCommand() *cli.Command {
	return &cli.Command{
		Name:      "hash-password",
		Usage:     "bcrypt-хеш для ADMIN_PASSWORD_HASH",
		ArgsUsage: "[password]",
		Action: func(c *cli.Context) error {
			password := c.Args().First()
			if password == "" {
				reader := bufio.NewReader(c.App.Reader)
				line, err := reader.ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			hash, err := services.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, hash)
			return nil
		},
	}
}
