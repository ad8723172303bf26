package api

import (
	"database/sql"
	"errors"
	"net/http"

	"lorekeep/internal/models"
)

// ownedEvent loads an event scoped to the caller, writing the uniform
// 404 when it is absent or belongs to someone else.
func (h *Handlers) ownedEvent(w http.ResponseWriter, r *http.Request) (models.Event, int, bool) {
	userID, ok := h.userID(w, r)
	if !ok {
		return models.Event{}, 0, false
	}
	eventID, ok := idParam(r, "id")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "Invalid event ID")
		return models.Event{}, 0, false
	}

	ev, err := h.store.GetEventOwned(eventID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.writeError(w, http.StatusNotFound, "Event not found")
			return models.Event{}, 0, false
		}
		h.serverError(w, err, "load event")
		return models.Event{}, 0, false
	}
	return ev, userID, true
}

func (h *Handlers) ListEventCharacters(w http.ResponseWriter, r *http.Request) {
	ev, _, ok := h.ownedEvent(w, r)
	if !ok {
		return
	}

	roster, err := h.store.GetRoster(ev.ID)
	if err != nil {
		h.serverError(w, err, "load roster")
		return
	}
	if roster == nil {
		roster = []models.RosterEntry{}
	}
	h.writeJSON(w, http.StatusOK, roster)
}

func (h *Handlers) AddEventCharacter(w http.ResponseWriter, r *http.Request) {
	ev, userID, ok := h.ownedEvent(w, r)
	if !ok {
		return
	}

	var req struct {
		CharacterID *int    `json:"character_id"`
		Role        *string `json:"role"`
	}
	if !h.decodeBody(w, r, &req) {
		return
	}
	if req.CharacterID == nil {
		h.writeError(w, http.StatusBadRequest, "character_id is required")
		return
	}

	// The character must be the caller's own or an official monster.
	if _, err := h.store.GetCharacterVisible(*req.CharacterID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.writeError(w, http.StatusNotFound, "Character not found or access denied")
			return
		}
		h.serverError(w, err, "load character")
		return
	}

	exists, err := h.store.RosterContains(ev.ID, *req.CharacterID)
	if err != nil {
		h.serverError(w, err, "check roster")
		return
	}
	if exists {
		h.writeError(w, http.StatusBadRequest, "Character already in event")
		return
	}

	role := "present"
	if req.Role != nil && *req.Role != "" {
		role = *req.Role
	}

	entry, err := h.store.AddToRoster(ev.ID, *req.CharacterID, role)
	if err != nil {
		h.serverError(w, err, "add to roster")
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]any{
		"id":           entry.ID,
		"event_id":     entry.EventID,
		"character_id": entry.CharacterID,
		"role":         entry.Role,
		"message":      "Character added to event!",
	})
}

func (h *Handlers) RemoveEventCharacter(w http.ResponseWriter, r *http.Request) {
	ev, _, ok := h.ownedEvent(w, r)
	if !ok {
		return
	}
	characterID, ok := idParam(r, "character_id")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "Invalid character ID")
		return
	}

	if err := h.store.RemoveFromRoster(ev.ID, characterID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.writeError(w, http.StatusNotFound, "Character not in event")
			return
		}
		h.serverError(w, err, "remove from roster")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Character removed from event!"})
}
