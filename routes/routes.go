package routes

import (
	"net/http"

	_ "github.com/Dosada05/volleyball-league/docs"
	"github.com/Dosada05/volleyball-league/handlers"
	"github.com/Dosada05/volleyball-league/metrics"
	"github.com/Dosada05/volleyball-league/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	JWTSecret          string
	CORSAllowedOrigins []string
	LoginRatePerMinute int
	Metrics            *metrics.Metrics
}

func SetupRoutes(
	router chi.Router,
	opts Options,
	authHandler *handlers.AuthHandler,
	teamHandler *handlers.TeamHandler,
	tournamentHandler *handlers.TournamentHandler,
	matchHandler *handlers.MatchHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(opts.Metrics.Middleware)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	rate := opts.LoginRatePerMinute
	if rate <= 0 {
		rate = 10
	}
	router.With(middleware.RateLimit(middleware.PerMinute(rate))).Post("/auth/login", authHandler.Login)

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.ListTournaments)
		r.Route("/{tournamentID}", func(r chi.Router) {
			r.Get("/", tournamentHandler.GetTournament)
			r.Get("/standings", tournamentHandler.GetStandings)
			r.Get("/standings.xlsx", tournamentHandler.ExportStandings)
			r.Get("/matrix", tournamentHandler.GetMatrix)
			r.Get("/schedule", tournamentHandler.GetSchedule)
		})
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)

	router.Route("/admin", func(r chi.Router) {
		r.Use(middleware.Authenticate(opts.JWTSecret))
		r.Use(middleware.RequireRole(middleware.RoleAdmin))

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", teamHandler.ListTeams)
			r.Post("/", teamHandler.CreateTeam)
			r.Put("/{teamID}", teamHandler.RenameTeam)
		})

		r.Route("/tournaments", func(r chi.Router) {
			r.Post("/", tournamentHandler.CreateTournament)
			r.Route("/{tournamentID}", func(r chi.Router) {
				r.Put("/teams", tournamentHandler.SetTeams)
				r.Post("/schedule", tournamentHandler.GenerateSchedule)
				r.Post("/matches", matchHandler.CreateMatch)
				r.Post("/playoff", tournamentHandler.TriggerPlayoff)
			})
		})

		r.Put("/matches/{matchID}/result", matchHandler.RecordResult)
	})
}
