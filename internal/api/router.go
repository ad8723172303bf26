package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"lorekeep/internal/middleware"
)

// NewRouter wires all routes. Register, login, logout, the liveness
// probe and upload serving are public; everything else sits behind the
// session middleware.
func NewRouter(h *Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogger(h.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Post("/api/register", h.Register)
	r.Post("/api/login", h.Login)
	r.Post("/api/logout", h.Logout)
	r.Get("/api/test", h.Test)
	r.Get("/api/uploads/{filename}", h.ServeUpload)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(h.sessions, h.signer))

		r.Get("/api/validate-session", h.ValidateSession)

		r.Get("/api/loremaps", h.ListLoreMaps)
		r.Post("/api/loremaps", h.CreateLoreMap)
		r.Get("/api/loremaps/{id}", h.GetLoreMap)
		r.Delete("/api/loremaps/{id}", h.DeleteLoreMap)

		r.Post("/api/loremaps/{id}/events", h.CreateEvent)
		r.Put("/api/events/{id}", h.UpdateEvent)
		r.Post("/api/events/{id}/toggle-complete", h.ToggleEventComplete)

		r.Post("/api/loremaps/{id}/connections", h.CreateConnection)
		r.Put("/api/connections/{id}", h.UpdateConnection)
		r.Delete("/api/connections/{id}", h.DeleteConnection)

		r.Get("/api/characters", h.ListCharacters)
		r.Post("/api/characters", h.CreateCharacter)
		r.Get("/api/characters/{id}", h.GetCharacter)
		r.Put("/api/characters/{id}", h.UpdateCharacter)
		r.Delete("/api/characters/{id}", h.DeleteCharacter)

		r.Get("/api/events/{id}/characters", h.ListEventCharacters)
		r.Post("/api/events/{id}/characters", h.AddEventCharacter)
		r.Delete("/api/events/{id}/characters/{character_id}", h.RemoveEventCharacter)

		r.Post("/api/events/{id}/battle-map", h.UploadBattleMap)
		r.Delete("/api/events/{id}/battle-map", h.DeleteBattleMap)
	})

	return r
}

// idParam parses a chi URL parameter as an integer ID.
func idParam(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
