package routes

import (
	"log/slog"
	"net/http"

	_ "github.com/Dosada05/tournament-portal/docs"
	"github.com/Dosada05/tournament-portal/handlers"
	"github.com/Dosada05/tournament-portal/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	User       *handlers.UserHandler
	Tournament *handlers.TournamentHandler
	WebSocket  *handlers.WebSocketHandler
}

func SetupRoutes(router chi.Router, h Handlers, auth *middleware.Authenticator, allowedOrigins []string, logger *slog.Logger) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.With(auth.OptionalAuthenticate).Get("/u/{identifier}", h.User.GetUserPage)

	router.Route("/to/{nameForUrl}", func(r chi.Router) {
		r.Get("/", h.Tournament.ListByNameForURL)
		r.With(auth.Authenticate).Get("/invite-codes", h.Tournament.ListWithInviteCodes)
	})

	router.Route("/tournaments/{tournamentID}", func(r chi.Router) {
		r.Get("/", h.Tournament.GetTournament)
		r.Get("/bracket-preview", h.Tournament.BracketPreview)

		// Только организатор турнира
		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Put("/seeds", h.Tournament.UpdateSeeds)
			r.Put("/banner", h.Tournament.UploadBanner)
		})
	})

	router.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeWs)
}
