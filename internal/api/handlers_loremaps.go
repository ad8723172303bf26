package api

import (
	"database/sql"
	"errors"
	"net/http"

	"lorekeep/internal/models"
)

type loreMapRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (h *Handlers) ListLoreMaps(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	maps, err := h.store.GetLoreMaps(userID)
	if err != nil {
		h.serverError(w, err, "list lore maps")
		return
	}
	if maps == nil {
		maps = []models.LoreMap{}
	}
	h.writeJSON(w, http.StatusOK, maps)
}

func (h *Handlers) CreateLoreMap(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req loreMapRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	title := "Untitled Map"
	if req.Title != nil && *req.Title != "" {
		title = *req.Title
	}
	description := ""
	if req.Description != nil {
		description = *req.Description
	}

	lm, err := h.store.CreateLoreMap(userID, title, description)
	if err != nil {
		h.serverError(w, err, "create lore map")
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]any{
		"id":          lm.ID,
		"title":       lm.Title,
		"description": lm.Description,
		"message":     "Lore map created successfully!",
	})
}

func (h *Handlers) GetLoreMap(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, ok := idParam(r, "id")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "Invalid lore map ID")
		return
	}

	lm, err := h.store.GetLoreMap(id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.writeError(w, http.StatusNotFound, "Lore map not found")
			return
		}
		h.serverError(w, err, "load lore map")
		return
	}

	events, err := h.store.GetEventsByLoreMap(lm.ID)
	if err != nil {
		h.serverError(w, err, "load events")
		return
	}
	if events == nil {
		events = []models.Event{}
	}

	connections, err := h.store.GetConnectionsByLoreMap(lm.ID)
	if err != nil {
		h.serverError(w, err, "load connections")
		return
	}
	if connections == nil {
		connections = []models.EventConnection{}
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"id":          lm.ID,
		"title":       lm.Title,
		"description": lm.Description,
		"created_at":  lm.CreatedAt,
		"updated_at":  lm.UpdatedAt,
		"events":      events,
		"connections": connections,
	})
}

func (h *Handlers) DeleteLoreMap(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, ok := idParam(r, "id")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "Invalid lore map ID")
		return
	}

	if err := h.store.DeleteLoreMap(id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.writeError(w, http.StatusNotFound, "Campaign not found")
			return
		}
		h.log.Error().Err(err).Int("lore_map_id", id).Msg("delete campaign failed")
		h.writeError(w, http.StatusInternalServerError, "Failed to delete campaign")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Campaign deleted successfully!"})
}
