package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Dosada05/chess-federation/handlers"
	"github.com/Dosada05/chess-federation/middleware"
)

type Options struct {
	Logger             *slog.Logger
	AllowedOrigins     []string
	RateLimitPerMinute int
}

type Handlers struct {
	System     *handlers.SystemHandler
	Player     *handlers.PlayerHandler
	Tournament *handlers.TournamentHandler
	Round      *handlers.RoundHandler
	Match      *handlers.MatchHandler
	News       *handlers.NewsHandler
	Event      *handlers.EventHandler
	Gallery    *handlers.GalleryHandler
	Analysis   *handlers.AnalysisHandler
}

func SetupRoutes(router chi.Router, opts Options, h Handlers) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(opts.Logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Загрузки и анализ ходят во внешние сервисы, поэтому ограничены по IP.
	// У каждой группы маршрутов свой счётчик.
	perIP := func() func(http.Handler) http.Handler {
		return httprate.LimitByIP(opts.RateLimitPerMinute, time.Minute)
	}
	matchUploads := perIP()
	newsUploads := perIP()
	galleryUploads := perIP()
	analysis := perIP()

	router.Get("/health", h.System.Health)
	router.Get("/swagger/doc.json", h.System.OpenAPIDoc)
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/players", func(r chi.Router) {
		r.Get("/", h.Player.ListPlayers)
		r.Post("/", h.Player.CreatePlayer)
		r.Route("/{playerID}", func(r chi.Router) {
			r.Get("/", h.Player.GetPlayerByID)
			r.Put("/", h.Player.UpdatePlayer)
			r.Delete("/", h.Player.DeletePlayer)
			r.Get("/matches", h.Player.GetPlayerMatches)
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", h.Tournament.ListTournaments)
		r.Post("/", h.Tournament.CreateTournament)
		r.Get("/all", h.Tournament.ListTournamentTrees)
		r.Route("/{tournamentID}", func(r chi.Router) {
			r.Get("/", h.Tournament.GetTournamentTree)
			r.Delete("/", h.Tournament.DeleteTournament)
			r.Get("/standings", h.Tournament.GetStandings)
			r.Post("/pairings", h.Tournament.GeneratePairings)
		})
	})

	router.Route("/rounds", func(r chi.Router) {
		r.Get("/", h.Round.ListRounds)
		r.Post("/", h.Round.CreateRound)
		r.Delete("/{roundID}", h.Round.DeleteRound)
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/", h.Match.ListMatches)
		r.With(matchUploads).Post("/", h.Match.CreateMatch)
		r.Delete("/{matchID}", h.Match.DeleteMatch)
	})

	router.Route("/news", func(r chi.Router) {
		r.Get("/", h.News.ListNews)
		r.With(newsUploads).Post("/", h.News.CreateNews)
		r.Delete("/{newsID}", h.News.DeleteNews)
	})

	router.Route("/events", func(r chi.Router) {
		r.Get("/", h.Event.ListEvents)
		r.Post("/", h.Event.CreateEvent)
		r.Put("/{eventID}", h.Event.UpdateEvent)
		r.Delete("/{eventID}", h.Event.DeleteEvent)
	})

	router.Route("/images", func(r chi.Router) {
		r.Get("/", h.Gallery.ListImages)
		r.With(galleryUploads).Post("/", h.Gallery.UploadImages)
	})

	router.With(analysis).Post("/analyze", h.Analysis.Analyze)

	// Старые адреса, на которые ходит фронтенд.
	router.With(galleryUploads).Post("/upload-images", h.Gallery.UploadImages)
	router.Get("/tournament/{tournamentID}", h.Tournament.GetTournamentTree)
	router.Get("/tournament/{tournamentID}/standings", h.Tournament.GetStandings)
	router.Delete("/tournament/{tournamentID}", h.Tournament.DeleteTournament)
	router.Get("/player/{playerID}/matches", h.Player.GetPlayerMatches)
	router.Delete("/player/{playerID}", h.Player.DeletePlayer)
	router.Delete("/event/{eventID}", h.Event.DeleteEvent)
	router.Delete("/round/{roundID}", h.Round.DeleteRound)
	router.Delete("/match/{matchID}", h.Match.DeleteMatch)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"the requested resource could not be found"}` + "\n"))
	})
}
