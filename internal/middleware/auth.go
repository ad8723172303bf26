// Package middleware provides the chi middleware stack: session
// authentication and request logging.
package middleware

import (
	"net/http"

	json "github.com/goccy/go-json"

	"lorekeep/internal/auth"
)

// Auth validates the signed session cookie, resolves it to a user ID
// and places the ID in the request context. Requests without a valid
// session get a uniform 401. Routes that skip this middleware (register,
// login, logout, test, uploads) are grouped separately in the router.
func Auth(sessions *auth.Sessions, signer *auth.Signer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.TokenFromRequest(r, signer)
			if err != nil {
				unauthorized(w)
				return
			}

			userID, ok := sessions.UserID(token)
			if !ok {
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "Not authenticated"})
}
