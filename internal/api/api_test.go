package api

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"lorekeep/internal/auth"
	"lorekeep/internal/config"
	"lorekeep/internal/store/sqlstore"
)

// testEnv wires a full router against a throwaway SQLite database.
type testEnv struct {
	t      *testing.T
	router http.Handler
	store  *sqlstore.SQLStore
	cfg    config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlstore.New("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cfg := config.Default()
	cfg.UploadDir = t.TempDir()

	h := NewHandlers(st, auth.NewSessions(), auth.NewSigner("test-secret"), cfg, zerolog.Nop())
	return &testEnv{t: t, router: NewRouter(h), store: st, cfg: cfg}
}

func (e *testEnv) do(req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) doJSON(method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return e.do(req, cookie)
}

// registerAndLogin creates a user and returns its session cookie.
func (e *testEnv) registerAndLogin(username string) *http.Cookie {
	e.t.Helper()

	body := fmt.Sprintf(`{"username": %q, "email": "%s@example.com", "password": "password123"}`, username, username)
	w := e.doJSON("POST", "/api/register", body, nil)
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())

	w = e.doJSON("POST", "/api/login", fmt.Sprintf(`{"username": %q, "password": "password123"}`, username), nil)
	require.Equal(e.t, http.StatusOK, w.Code, w.Body.String())

	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	e.t.Fatal("login did not set a session cookie")
	return nil
}

func (e *testEnv) createLoreMap(cookie *http.Cookie, body string) int {
	e.t.Helper()
	w := e.doJSON("POST", "/api/loremaps", body, cookie)
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())
	return int(decodeMap(e.t, w)["id"].(float64))
}

func (e *testEnv) createEvent(cookie *http.Cookie, loreMapID int, body string) int {
	e.t.Helper()
	w := e.doJSON("POST", fmt.Sprintf("/api/loremaps/%d/events", loreMapID), body, cookie)
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())
	return int(decodeMap(e.t, w)["id"].(float64))
}

func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m
}

func TestHealthEndpoint(t *testing.T) {
	e := newTestEnv(t)

	w := e.doJSON("GET", "/api/test", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "LoreKeep API is working!", decodeMap(t, w)["message"])
}

func TestRegisterLoginValidate(t *testing.T) {
	e := newTestEnv(t)

	w := e.doJSON("POST", "/api/register", `{"username": "alice", "email": "alice@example.com", "password": "password123"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeMap(t, w)
	require.Equal(t, "alice", resp["username"])
	require.Equal(t, "User registered successfully!", resp["message"])

	// Duplicate username and duplicate email are separate errors.
	w = e.doJSON("POST", "/api/register", `{"username": "alice", "email": "other@example.com", "password": "password123"}`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Username already exists", decodeMap(t, w)["error"])

	w = e.doJSON("POST", "/api/register", `{"username": "alice2", "email": "alice@example.com", "password": "password123"}`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Email already exists", decodeMap(t, w)["error"])

	w = e.doJSON("POST", "/api/login", `{"username": "alice", "password": "wrong-password"}`, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Invalid username or password", decodeMap(t, w)["error"])

	w = e.doJSON("POST", "/api/login", `{"username": "alice", "password": "password123"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	w = e.doJSON("GET", "/api/validate-session", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "alice", decodeMap(t, w)["username"])
}

func TestRegisterRejectsWeakInput(t *testing.T) {
	e := newTestEnv(t)

	for _, body := range []string{
		`{"username": "ab", "email": "a@example.com", "password": "password123"}`,
		`{"username": "alice", "email": "not-an-email", "password": "password123"}`,
		`{"username": "alice", "email": "a@example.com", "password": "short"}`,
		`{"email": "a@example.com", "password": "password123"}`,
	} {
		w := e.doJSON("POST", "/api/register", body, nil)
		require.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	e := newTestEnv(t)
	cookie := e.registerAndLogin("bob")

	w := e.doJSON("GET", "/api/validate-session", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.doJSON("POST", "/api/logout", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	// The server-side session is gone even if the client keeps the cookie.
	w = e.doJSON("GET", "/api/validate-session", "", cookie)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Not authenticated", decodeMap(t, w)["error"])

	// Logout without any session still succeeds.
	w = e.doJSON("POST", "/api/logout", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	e := newTestEnv(t)

	for _, route := range []struct{ method, path string }{
		{"GET", "/api/loremaps"},
		{"POST", "/api/loremaps"},
		{"GET", "/api/characters"},
		{"GET", "/api/validate-session"},
	} {
		w := e.doJSON(route.method, route.path, "", nil)
		require.Equal(t, http.StatusUnauthorized, w.Code, route.path)
		require.Equal(t, "Not authenticated", decodeMap(t, w)["error"])
	}
}

func TestTamperedCookieRejected(t *testing.T) {
	e := newTestEnv(t)
	cookie := e.registerAndLogin("mallory")

	tampered := &http.Cookie{Name: auth.CookieName, Value: cookie.Value[:len(cookie.Value)-4] + "AAAA"}
	w := e.doJSON("GET", "/api/validate-session", "", tampered)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	forged := &http.Cookie{Name: auth.CookieName, Value: "bm90LWEtcmVhbC1jb29raWU="}
	w = e.doJSON("GET", "/api/validate-session", "", forged)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
