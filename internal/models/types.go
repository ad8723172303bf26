package models

import "time"

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type LoreMap struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	UserID      int       `json:"user_id"`
}

// Position is an event's location on the lore map canvas.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Event struct {
	ID              int      `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Location        string   `json:"location"`
	Position        Position `json:"position"`
	ImageURL        *string  `json:"battle_map_url"`
	Conditions      JSONText `json:"conditions"`
	IsPartyLocation bool     `json:"is_party_location"`
	IsCompleted     bool     `json:"is_completed"`
	DMNotes         *string  `json:"dm_notes"`
	OrderNumber     *int     `json:"order_number"`
	LoreMapID       int      `json:"lore_map_id"`
}

// Connection types for EventConnection.
const (
	ConnectionDefault  = "default"
	ConnectionSuccess  = "success"
	ConnectionFailure  = "failure"
	ConnectionOptional = "optional"
)

// EventConnection is a directed edge between two events of one lore map.
// Ownership is derived through the source event's lore map.
type EventConnection struct {
	ID             int      `json:"id"`
	FromEventID    int      `json:"from"`
	ToEventID      int      `json:"to"`
	Description    string   `json:"description"`
	Condition      JSONText `json:"condition"`
	ConnectionType string   `json:"connection_type"`
}

// Character is a reusable actor: a player character, NPC or monster.
// Official monsters have a nil UserID and IsOfficial set; they are
// visible to every user and mutable by none.
type Character struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	CharacterType string `json:"character_type"`
	Description   string `json:"description"`
	UserID        *int   `json:"user_id"`

	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`

	ArmorClass int `json:"armor_class"`
	HitPoints  int `json:"hit_points"`

	ChallengeRating string `json:"challenge_rating"`
	CreatureType    string `json:"creature_type"`
	IsOfficial      bool   `json:"is_official"`

	Actions          JSONText `json:"actions"`
	LegendaryActions JSONText `json:"legendary_actions"`
	SpecialAbilities JSONText `json:"special_abilities"`
	Reactions        JSONText `json:"reactions"`
	Skills           JSONText `json:"skills"`

	DamageResistances   string `json:"damage_resistances"`
	DamageImmunities    string `json:"damage_immunities"`
	ConditionImmunities string `json:"condition_immunities"`
	Senses              string `json:"senses"`
	Languages           string `json:"languages"`
}

// EventCharacter associates a character with one event, with a role
// specific to that event.
type EventCharacter struct {
	ID          int    `json:"id"`
	EventID     int    `json:"event_id"`
	CharacterID int    `json:"character_id"`
	Role        string `json:"role"`
}

// RosterEntry is an EventCharacter denormalized with character fields
// for display.
type RosterEntry struct {
	EventCharacter
	CharacterName string `json:"character_name"`
	CharacterType string `json:"character_type"`
	IsOfficial    bool   `json:"is_official"`
}

type Item struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Properties  JSONText `json:"properties"`
	UserID      int      `json:"user_id"`
}
