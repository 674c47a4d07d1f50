package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/playperu/charquest/internal/hunt"
)

func addRoutes(r chi.Router, logger *slog.Logger, store *hunt.Store, admin *AdminSessions, opts Options) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("CharQuest API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, store))

	// Player-facing reads + the catch endpoint. Clients poll these; the
	// store is the only synchronization point.
	r.Route("/api", func(r chi.Router) {
		r.Get("/teams", handleListTeams(store))
		r.Get("/teams/{teamID}/cards", handleListTeamCards(store))
		r.Get("/cards/uncaught", handleListUncaughtCards(store))
		r.Get("/characters", handleCharacters(logger, store))
		r.Post("/catch", handleCatch(store))
	})

	// Admin auth.
	r.Post("/api/admin/login", handleAdminLogin(admin))
	r.Post("/api/admin/logout", handleAdminLogout(admin))
	r.Get("/api/admin/me", handleAdminMe(admin))

	// Admin surface. Requires a live session.
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(adminAuthMiddleware(admin))

		r.Get("/setup", handleAdminSetupStatus(store))
		r.Post("/setup", handleAdminSetup(store))

		r.Post("/teams", handleAdminCreateTeam(store))
		r.Delete("/teams/{teamID}", handleAdminDeleteTeam(store))

		r.Post("/cards", handleAdminCreateCard(store))
		r.Put("/cards/{cardID}", handleAdminUpdateCard(store))
		r.Delete("/cards/{cardID}", handleAdminDeleteCard(store))
		r.Get("/cards/{cardID}/marker", handleAdminCardMarker(store, opts.PublicURL))

		r.Post("/reset", handleAdminReset(logger, store, admin))
		r.Post("/undo", handleAdminUndo(logger, store, admin))
	})

	if opts.SPADir != "" {
		if info, err := os.Stat(opts.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", opts.SPADir)
			r.NotFound(handleSPA(opts.SPADir))
		}
	}
}
