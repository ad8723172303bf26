package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
)

// CookieName carries the signed session token.
const CookieName = "session_token"

type contextKey string

// UserIDKey is the request-context key for the authenticated user ID.
const UserIDKey contextKey = "userID"

var (
	ErrInvalidCookie = errors.New("invalid session cookie")
	ErrNoCookie      = errors.New("no session cookie")
)

// Signer signs session tokens into tamper-evident cookie values.
// Cookie format: base64url(token.signature).
type Signer struct {
	secret []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Encode wraps a session token in a signed cookie value.
func (s *Signer) Encode(token string) string {
	sig := s.sign(token)
	return base64.URLEncoding.EncodeToString([]byte(token + "." + sig))
}

// Decode verifies a cookie value and returns the embedded token.
func (s *Signer) Decode(value string) (string, error) {
	decoded, err := base64.URLEncoding.DecodeString(value)
	if err != nil {
		return "", ErrInvalidCookie
	}

	token, sig, ok := strings.Cut(string(decoded), ".")
	if !ok {
		return "", ErrInvalidCookie
	}
	if !hmac.Equal([]byte(s.sign(token)), []byte(sig)) {
		return "", ErrInvalidCookie
	}
	return token, nil
}

func (s *Signer) sign(data string) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(data))
	return base64.URLEncoding.EncodeToString(h.Sum(nil))
}

// SetSessionCookie writes the signed session cookie on the response.
func SetSessionCookie(w http.ResponseWriter, signer *Signer, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signer.Encode(token),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// TokenFromRequest extracts and verifies the session token from the
// request's cookie.
func TokenFromRequest(r *http.Request, signer *Signer) (string, error) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return "", ErrNoCookie
	}
	return signer.Decode(c.Value)
}

// UserIDFromContext retrieves the authenticated user ID placed in the
// context by the auth middleware.
func UserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(UserIDKey).(int)
	return id, ok
}

// WithUserID returns a context carrying the authenticated user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}
