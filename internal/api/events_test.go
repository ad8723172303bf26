package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"lorekeep/internal/models"
)

func TestCreateEventDefaults(t *testing.T) {
	e := newTestEnv(t)
	cookie := e.registerAndLogin("alice")
	mapID := e.createLoreMap(cookie, "{}")

	w := e.doJSON("POST", fmt.Sprintf("/api/loremaps/%d/events", mapID), "{}", cookie)
	require.Equal(t, http.StatusCreated, w.Code)
	ev := decodeMap(t, w)
	require.Equal(t, "New Event", ev["title"])
	require.Equal(t, map[string]any{"x": float64(0), "y": float64(0)}, ev["position"])
	require.Equal(t, false, ev["is_completed"])
	require.Nil(t, ev["battle_map_url"])
	require.Nil(t, ev["conditions"])
	require.Equal(t, float64(mapID), ev["lore_map_id"])
}

func TestCreateEventRequiresOwnedMap(t *testing.T) {
	e := newTestEnv(t)
	alice := e.registerAndLogin("alice")
	bob := e.registerAndLogin("bob")
	mapID := e.createLoreMap(alice, "{}")

	w := e.doJSON("POST", fmt.Sprintf("/api/loremaps/%d/events", mapID), "{}", bob)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Lore map not found", decodeMap(t, w)["error"])
}

func TestUpdateEventPartial(t *testing.T) {
	e := newTestEnv(t)
	cookie := e.registerAndLogin("alice")
	mapID := e.createLoreMap(cookie, "{}")
	eventID := e.createEvent(cookie, mapID,
		`{"title": "Ambush", "location": "Old Svalich Road", "position": {"x": 100, "y": 200}}`)

	// Only the title is sent; everything else must survive.
	w := e.doJSON("PUT", fmt.Sprintf("/api/events/%d", eventID), `{"title": "Ambush at dusk"}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	ev := decodeMap(t, w)
	require.Equal(t, "Ambush at dusk", ev["title"])
	require.Equal(t, "Old Svalich Road", ev["location"])
	require.Equal(t, map[string]any{"x": float64(100), "y": float64(200)}, ev["position"])

	// A single coordinate updates just that axis.
	w = e.doJSON("PUT", fmt.Sprintf("/api/events/%d", eventID), `{"position": {"y": 300}}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	ev = decodeMap(t, w)
	require.Equal(t, map[string]any{"x": float64(100), "y": float64(300)}, ev["position"])

	w = e.doJSON("PUT", fmt.Sprintf("/api/events/%d", eventID),
		`{"conditions": {"party_level": 3}, "dm_notes": "Strahd watches", "order_number": 2}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	ev = decodeMap(t, w)
	require.Equal(t, map[string]any{"party_level": float64(3)}, ev["conditions"])
	require.Equal(t, "Strahd watches", ev["dm_notes"])
	require.Equal(t, float64(2), ev["order_number"])
}

func TestUpdateEventLeavesBattleMapAlone(t *testing.T) {
	e := newTestEnv(t)
	cookie := e.registerAndLogin("alice")
	mapID := e.createLoreMap(cookie, "{}")
	eventID := e.createEvent(cookie, mapID, "{}")

	url := "/api/uploads/123_map.png"
	require.NoError(t, e.store.SetEventImageURL(eventID, &url))

	// Neither an absent field nor an explicit null clears the image.
	for _, body := range []string{
		`{"title": "Renamed"}`,
		`{"title": "Renamed again", "battle_map_url": null}`,
	} {
		w := e.doJSON("PUT", fmt.Sprintf("/api/events/%d", eventID), body, cookie)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, url, decodeMap(t, w)["battle_map_url"], body)
	}

	// A real value still writes through.
	w := e.doJSON("PUT", fmt.Sprintf("/api/events/%d", eventID), `{"battle_map_url": "/api/uploads/456_new.png"}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "/api/uploads/456_new.png", decodeMap(t, w)["battle_map_url"])
}

func TestUpdateEventScopedToOwner(t *testing.T) {
	e := newTestEnv(t)
	alice := e.registerAndLogin("alice")
	bob := e.registerAndLogin("bob")
	mapID := e.createLoreMap(alice, "{}")
	eventID := e.createEvent(alice, mapID, "{}")

	w := e.doJSON("PUT", fmt.Sprintf("/api/events/%d", eventID), `{"title": "Hijacked"}`, bob)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Event not found", decodeMap(t, w)["error"])

	w = e.doJSON("POST", fmt.Sprintf("/api/events/%d/toggle-complete", eventID), "", bob)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleEventComplete(t *testing.T) {
	e := newTestEnv(t)
	cookie := e.registerAndLogin("alice")
	mapID := e.createLoreMap(cookie, "{}")
	eventID := e.createEvent(cookie, mapID, "{}")

	w := e.doJSON("POST", fmt.Sprintf("/api/events/%d/toggle-complete", eventID), "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, decodeMap(t, w)["is_completed"])

	w = e.doJSON("POST", fmt.Sprintf("/api/events/%d/toggle-complete", eventID), "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, false, decodeMap(t, w)["is_completed"])
}

func TestEventGarbageConditionsReadAsNull(t *testing.T) {
	e := newTestEnv(t)
	cookie := e.registerAndLogin("alice")
	mapID := e.createLoreMap(cookie, "{}")

	// Rows written by older front-end builds hold literal junk in the
	// conditions column; reads must surface null, not an error.
	for _, stored := range []string{"undefined", "[object Object]", "null", "not json at all"} {
		ev, err := e.store.CreateEvent(models.Event{
			Title:      "Legacy",
			LoreMapID:  mapID,
			Conditions: models.JSONText(stored),
		})
		require.NoError(t, err)

		w := e.doJSON("GET", fmt.Sprintf("/api/loremaps/%d", mapID), "", cookie)
		require.Equal(t, http.StatusOK, w.Code)

		detail := decodeMap(t, w)
		for _, raw := range detail["events"].([]any) {
			entry := raw.(map[string]any)
			if int(entry["id"].(float64)) == ev.ID {
				require.Nil(t, entry["conditions"], stored)
			}
		}
	}
}
