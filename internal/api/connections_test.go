package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnectionLifecycle(t *testing.T) {
	e := newTestEnv(t)
	cookie := e.registerAndLogin("alice")
	mapID := e.createLoreMap(cookie, "{}")
	from := e.createEvent(cookie, mapID, `{"title": "Village"}`)
	to := e.createEvent(cookie, mapID, `{"title": "Castle"}`)

	w := e.doJSON("POST", fmt.Sprintf("/api/loremaps/%d/connections", mapID),
		fmt.Sprintf(`{"from": %d, "to": %d}`, from, to), cookie)
	require.Equal(t, http.StatusCreated, w.Code)
	conn := decodeMap(t, w)
	require.Equal(t, "default", conn["connection_type"])
	require.Equal(t, float64(from), conn["from"])
	require.Equal(t, float64(to), conn["to"])
	connID := int(conn["id"].(float64))

	w = e.doJSON("PUT", fmt.Sprintf("/api/connections/%d", connID),
		`{"connection_type": "success", "description": "The party wins the siege"}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	conn = decodeMap(t, w)
	require.Equal(t, "success", conn["connection_type"])
	require.Equal(t, "The party wins the siege", conn["description"])

	w = e.doJSON("GET", fmt.Sprintf("/api/loremaps/%d", mapID), "", cookie)
	require.Len(t, decodeMap(t, w)["connections"], 1)

	w = e.doJSON("DELETE", fmt.Sprintf("/api/connections/%d", connID), "", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.doJSON("DELETE", fmt.Sprintf("/api/connections/%d", connID), "", cookie)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Connection not found", decodeMap(t, w)["error"])
}

func TestConnectionRequiresEndpointsInMap(t *testing.T) {
	e := newTestEnv(t)
	cookie := e.registerAndLogin("alice")
	mapID := e.createLoreMap(cookie, "{}")
	otherMapID := e.createLoreMap(cookie, "{}")
	inMap := e.createEvent(cookie, mapID, "{}")
	elsewhere := e.createEvent(cookie, otherMapID, "{}")

	// Endpoints in a different lore map are rejected, even the caller's own.
	w := e.doJSON("POST", fmt.Sprintf("/api/loremaps/%d/connections", mapID),
		fmt.Sprintf(`{"from": %d, "to": %d}`, inMap, elsewhere), cookie)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "One or both events not found", decodeMap(t, w)["error"])

	w = e.doJSON("POST", fmt.Sprintf("/api/loremaps/%d/connections", mapID),
		fmt.Sprintf(`{"from": %d, "to": 99999}`, inMap), cookie)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = e.doJSON("POST", fmt.Sprintf("/api/loremaps/%d/connections", mapID),
		fmt.Sprintf(`{"from": %d}`, inMap), cookie)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConnectionScopedToOwner(t *testing.T) {
	e := newTestEnv(t)
	alice := e.registerAndLogin("alice")
	bob := e.registerAndLogin("bob")
	mapID := e.createLoreMap(alice, "{}")
	from := e.createEvent(alice, mapID, "{}")
	to := e.createEvent(alice, mapID, "{}")

	w := e.doJSON("POST", fmt.Sprintf("/api/loremaps/%d/connections", mapID),
		fmt.Sprintf(`{"from": %d, "to": %d}`, from, to), alice)
	require.Equal(t, http.StatusCreated, w.Code)
	connID := int(decodeMap(t, w)["id"].(float64))

	w = e.doJSON("PUT", fmt.Sprintf("/api/connections/%d", connID), `{"connection_type": "failure"}`, bob)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Connection not found", decodeMap(t, w)["error"])

	w = e.doJSON("DELETE", fmt.Sprintf("/api/connections/%d", connID), "", bob)
	require.Equal(t, http.StatusNotFound, w.Code)
}
