package api

import (
	"database/sql"
	"errors"
	"net/http"

	"lorekeep/internal/models"
)

type connectionRequest struct {
	From           *int             `json:"from"`
	To             *int             `json:"to"`
	Description    *string          `json:"description"`
	Condition      *models.JSONText `json:"condition"`
	ConnectionType *string          `json:"connection_type"`
}

type connectionResponse struct {
	models.EventConnection
	Message string `json:"message,omitempty"`
}

func (h *Handlers) CreateConnection(w http.ResponseWriter, r *http.Request) {
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

	var req connectionRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if req.From == nil || req.To == nil {
		h.writeError(w, http.StatusBadRequest, "Both connection endpoints are required")
		return
	}

	// Both endpoints must belong to this lore map. Only enforced at
	// creation time.
	for _, eventID := range []int{*req.From, *req.To} {
		in, err := h.store.EventInLoreMap(eventID, loreMapID)
		if err != nil {
			h.serverError(w, err, "check endpoint")
			return
		}
		if !in {
			h.writeError(w, http.StatusNotFound, "One or both events not found")
			return
		}
	}

	conn := models.EventConnection{
		FromEventID:    *req.From,
		ToEventID:      *req.To,
		ConnectionType: models.ConnectionDefault,
	}
	if req.Description != nil {
		conn.Description = *req.Description
	}
	if req.Condition != nil {
		conn.Condition = *req.Condition
	}
	if req.ConnectionType != nil {
		conn.ConnectionType = *req.ConnectionType
	}

	created, err := h.store.CreateConnection(conn)
	if err != nil {
		h.serverError(w, err, "create connection")
		return
	}

	h.writeJSON(w, http.StatusCreated, connectionResponse{EventConnection: created, Message: "Connection created successfully!"})
}

func (h *Handlers) UpdateConnection(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	connID, ok := idParam(r, "id")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "Invalid connection ID")
		return
	}

	conn, err := h.store.GetConnectionOwned(connID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.writeError(w, http.StatusNotFound, "Connection not found")
			return
		}
		h.serverError(w, err, "load connection")
		return
	}

	var req connectionRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if req.Description != nil {
		conn.Description = *req.Description
	}
	if req.Condition != nil {
		conn.Condition = *req.Condition
	}
	if req.ConnectionType != nil {
		conn.ConnectionType = *req.ConnectionType
	}

	if err := h.store.UpdateConnection(conn); err != nil {
		h.serverError(w, err, "update connection")
		return
	}

	h.writeJSON(w, http.StatusOK, connectionResponse{EventConnection: conn, Message: "Connection updated successfully!"})
}

func (h *Handlers) DeleteConnection(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	connID, ok := idParam(r, "id")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "Invalid connection ID")
		return
	}

	if err := h.store.DeleteConnection(connID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.writeError(w, http.StatusNotFound, "Connection not found")
			return
		}
		h.serverError(w, err, "delete connection")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Connection deleted successfully!"})
}
