package api

import (
	"database/sql"
	"errors"
	"net/http"

	"lorekeep/internal/models"
)

// eventRequest uses pointer fields so partial updates only touch what
// the client sent. battle_map_url deliberately reads the same for
// "absent" and "explicit null": either way the stored image is left
// alone, so saves that don't touch the image can't clear it.
type eventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Position    *struct {
		X *int `json:"x"`
		Y *int `json:"y"`
	} `json:"position"`
	Conditions      *models.JSONText `json:"conditions"`
	IsPartyLocation *bool            `json:"is_party_location"`
	IsCompleted     *bool            `json:"is_completed"`
	DMNotes         *string          `json:"dm_notes"`
	OrderNumber     *int             `json:"order_number"`
	BattleMapURL    *string          `json:"battle_map_url"`
}

type eventResponse struct {
	models.Event
	Message string `json:"message,omitempty"`
}

func (h *Handlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	loreMapID, ok := idParam(r, "id")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "Invalid lore map ID")
		return
	}

	if _, err := h.store.GetLoreMap(loreMapID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.writeError(w, http.StatusNotFound, "Lore map not found")
			return
		}
		h.serverError(w, err, "load lore map")
		return
	}

	var req eventRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	ev := models.Event{
		Title:     "New Event",
		LoreMapID: loreMapID,
	}
	applyEventRequest(&ev, req)

	created, err := h.store.CreateEvent(ev)
	if err != nil {
		h.serverError(w, err, "create event")
		return
	}

	h.writeJSON(w, http.StatusCreated, eventResponse{Event: created, Message: "Event created successfully!"})
}

func (h *Handlers) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	eventID, ok := idParam(r, "id")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	ev, err := h.store.GetEventOwned(eventID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.writeError(w, http.StatusNotFound, "Event not found")
			return
		}
		h.serverError(w, err, "load event")
		return
	}

	var req eventRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	applyEventRequest(&ev, req)

	if err := h.store.UpdateEvent(ev); err != nil {
		h.serverError(w, err, "update event")
		return
	}

	h.writeJSON(w, http.StatusOK, eventResponse{Event: ev, Message: "Event updated successfully!"})
}

// applyEventRequest merges the fields present in the request into the
// event. Used for both create (over defaults) and update (over the
// stored row).
func applyEventRequest(ev *models.Event, req eventRequest) {
	if req.Title != nil {
		ev.Title = *req.Title
	}
	if req.Description != nil {
		ev.Description = *req.Description
	}
	if req.Location != nil {
		ev.Location = *req.Location
	}
	if req.Position != nil {
		if req.Position.X != nil {
			ev.Position.X = *req.Position.X
		}
		if req.Position.Y != nil {
			ev.Position.Y = *req.Position.Y
		}
	}
	if req.Conditions != nil {
		ev.Conditions = *req.Conditions
	}
	if req.IsPartyLocation != nil {
		ev.IsPartyLocation = *req.IsPartyLocation
	}
	if req.IsCompleted != nil {
		ev.IsCompleted = *req.IsCompleted
	}
	if req.DMNotes != nil {
		ev.DMNotes = req.DMNotes
	}
	if req.OrderNumber != nil {
		ev.OrderNumber = req.OrderNumber
	}
	if req.BattleMapURL != nil {
		ev.ImageURL = req.BattleMapURL
	}
}

func (h *Handlers) ToggleEventComplete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	eventID, ok := idParam(r, "id")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	completed, err := h.store.ToggleEventComplete(eventID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.writeError(w, http.StatusNotFound, "Event not found")
			return
		}
		h.serverError(w, err, "toggle event")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"id":           eventID,
		"is_completed": completed,
		"message":      "Event completion toggled!",
	})
}
