// Package api implements the LoreKeep JSON REST API.
package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"lorekeep/internal/auth"
	"lorekeep/internal/config"
	"lorekeep/internal/store"
)

// Handlers carries the dependencies shared by all request handlers.
// Everything is injected; there is no package-level state.
type Handlers struct {
	store    store.Store
	sessions *auth.Sessions
	signer   *auth.Signer
	cfg      config.Config
	log      zerolog.Logger
	validate *validator.Validate
}

func NewHandlers(st store.Store, sessions *auth.Sessions, signer *auth.Signer, cfg config.Config, logger zerolog.Logger) *Handlers {
	return &Handlers{
		store:    st,
		sessions: sessions,
		signer:   signer,
		cfg:      cfg,
		log:      logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error().Err(err).Msg("encode response")
	}
}

// writeError returns the uniform {"error": msg} shape used by every
// failing endpoint.
func (h *Handlers) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

// serverError logs the cause and returns a generic message so
// internals never leak to the caller.
func (h *Handlers) serverError(w http.ResponseWriter, err error, op string) {
	h.log.Error().Err(err).Str("op", op).Msg("request failed")
	h.writeError(w, http.StatusInternalServerError, "Internal server error")
}

func (h *Handlers) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// userID returns the authenticated user placed in the context by the
// auth middleware. Handlers behind the middleware can rely on it; the
// 401 covers the middleware being absent in a misconfigured route.
func (h *Handlers) userID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Not authenticated")
	}
	return id, ok
}
