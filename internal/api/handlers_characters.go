package api

import (
	"database/sql"
	"errors"
	"net/http"

	"lorekeep/internal/models"
)

type characterRequest struct {
	Name          *string `json:"name"`
	CharacterType *string `json:"character_type"`
	Description   *string `json:"description"`

	Strength     *int `json:"strength"`
	Dexterity    *int `json:"dexterity"`
	Constitution *int `json:"constitution"`
	Intelligence *int `json:"intelligence"`
	Wisdom       *int `json:"wisdom"`
	Charisma     *int `json:"charisma"`

	ArmorClass *int `json:"armor_class"`
	HitPoints  *int `json:"hit_points"`

	ChallengeRating *string `json:"challenge_rating"`
	CreatureType    *string `json:"creature_type"`
	IsOfficial      *bool   `json:"is_official"`

	Actions          *models.JSONText `json:"actions"`
	LegendaryActions *models.JSONText `json:"legendary_actions"`
	SpecialAbilities *models.JSONText `json:"special_abilities"`
	Reactions        *models.JSONText `json:"reactions"`
	Skills           *models.JSONText `json:"skills"`

	DamageResistances   *string `json:"damage_resistances"`
	DamageImmunities    *string `json:"damage_immunities"`
	ConditionImmunities *string `json:"condition_immunities"`
	Senses              *string `json:"senses"`
	Languages           *string `json:"languages"`
}

type characterResponse struct {
	models.Character
	Message string `json:"message,omitempty"`
}

func (h *Handlers) ListCharacters(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	chars, err := h.store.GetCharacters(userID)
	if err != nil {
		h.serverError(w, err, "list characters")
		return
	}
	if chars == nil {
		chars = []models.Character{}
	}
	h.writeJSON(w, http.StatusOK, chars)
}

func (h *Handlers) GetCharacter(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, ok := idParam(r, "id")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "Invalid character ID")
		return
	}

	c, err := h.store.GetCharacterVisible(id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.writeError(w, http.StatusNotFound, "Character not found")
			return
		}
		h.serverError(w, err, "load character")
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

func (h *Handlers) CreateCharacter(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req characterRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	// Owner is always the caller. Officials (shared, ownerless rows)
	// only come from the importer.
	c := models.Character{
		Name:            "New Character",
		CharacterType:   "NPC",
		UserID:          &userID,
		Strength:        10,
		Dexterity:       10,
		Constitution:    10,
		Intelligence:    10,
		Wisdom:          10,
		Charisma:        10,
		ArmorClass:      10,
		HitPoints:       1,
		ChallengeRating: "0",
		CreatureType:    "humanoid",
	}
	applyCharacterRequest(&c, req)
	if req.IsOfficial != nil {
		c.IsOfficial = *req.IsOfficial
	}

	created, err := h.store.CreateCharacter(c)
	if err != nil {
		h.serverError(w, err, "create character")
		return
	}

	h.writeJSON(w, http.StatusCreated, characterResponse{Character: created, Message: "Character created successfully!"})
}

func (h *Handlers) UpdateCharacter(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, ok := idParam(r, "id")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "Invalid character ID")
		return
	}

	// Owned lookup never matches official monsters, so they cannot be
	// edited regardless of caller.
	c, err := h.store.GetCharacterOwned(id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.writeError(w, http.StatusNotFound, "Character not found or access denied")
			return
		}
		h.serverError(w, err, "load character")
		return
	}

	var req characterRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	applyCharacterRequest(&c, req)

	if err := h.store.UpdateCharacter(c); err != nil {
		h.serverError(w, err, "update character")
		return
	}

	h.writeJSON(w, http.StatusOK, characterResponse{Character: c, Message: "Character updated successfully!"})
}

func (h *Handlers) DeleteCharacter(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, ok := idParam(r, "id")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "Invalid character ID")
		return
	}

	if err := h.store.DeleteCharacter(id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.writeError(w, http.StatusNotFound, "Character not found")
			return
		}
		h.serverError(w, err, "delete character")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Character deleted successfully!"})
}

// applyCharacterRequest merges present fields into the character.
// is_official and user_id are never merged here; ownership and the
// official flag are controlled by the handlers.
func applyCharacterRequest(c *models.Character, req characterRequest) {
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.CharacterType != nil {
		c.CharacterType = *req.CharacterType
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Strength != nil {
		c.Strength = *req.Strength
	}
	if req.Dexterity != nil {
		c.Dexterity = *req.Dexterity
	}
	if req.Constitution != nil {
		c.Constitution = *req.Constitution
	}
	if req.Intelligence != nil {
		c.Intelligence = *req.Intelligence
	}
	if req.Wisdom != nil {
		c.Wisdom = *req.Wisdom
	}
	if req.Charisma != nil {
		c.Charisma = *req.Charisma
	}
	if req.ArmorClass != nil {
		c.ArmorClass = *req.ArmorClass
	}
	if req.HitPoints != nil {
		c.HitPoints = *req.HitPoints
	}
	if req.ChallengeRating != nil {
		c.ChallengeRating = *req.ChallengeRating
	}
	if req.CreatureType != nil {
		c.CreatureType = *req.CreatureType
	}
	if req.Actions != nil {
		c.Actions = *req.Actions
	}
	if req.LegendaryActions != nil {
		c.LegendaryActions = *req.LegendaryActions
	}
	if req.SpecialAbilities != nil {
		c.SpecialAbilities = *req.SpecialAbilities
	}
	if req.Reactions != nil {
		c.Reactions = *req.Reactions
	}
	if req.Skills != nil {
		c.Skills = *req.Skills
	}
	if req.DamageResistances != nil {
		c.DamageResistances = *req.DamageResistances
	}
	if req.DamageImmunities != nil {
		c.DamageImmunities = *req.DamageImmunities
	}
	if req.ConditionImmunities != nil {
		c.ConditionImmunities = *req.ConditionImmunities
	}
	if req.Senses != nil {
		c.Senses = *req.Senses
	}
	if req.Languages != nil {
		c.Languages = *req.Languages
	}
}
