// Package store defines the persistence interface for LoreKeep.
//
// Every accessor that reads or mutates user-owned data takes the
// caller's user ID and scopes the query to it, so ownership is
// enforced in one place per entity kind: lore maps directly, events
// and connections through their lore map, characters by owner or the
// official flag. Absent-or-not-owned is uniformly sql.ErrNoRows.
package store

import (
	"lorekeep/internal/models"
)

type Store interface {
	// Users
	CreateUser(username, email, passwordHash string) (int, error)
	GetUserByUsername(username string) (models.User, error)
	GetUserByID(id int) (models.User, error)
	UsernameTaken(username string) (bool, error)
	EmailTaken(email string) (bool, error)

	// Lore maps
	CreateLoreMap(userID int, title, description string) (models.LoreMap, error)
	GetLoreMaps(userID int) ([]models.LoreMap, error)
	GetLoreMap(id, userID int) (models.LoreMap, error)
	DeleteLoreMap(id, userID int) error

	// Events
	CreateEvent(ev models.Event) (models.Event, error)
	GetEventOwned(eventID, userID int) (models.Event, error)
	GetEventsByLoreMap(loreMapID int) ([]models.Event, error)
	EventInLoreMap(eventID, loreMapID int) (bool, error)
	UpdateEvent(ev models.Event) error
	ToggleEventComplete(eventID, userID int) (bool, error)
	SetEventImageURL(eventID int, url *string) error

	// Connections
	CreateConnection(conn models.EventConnection) (models.EventConnection, error)
	GetConnectionsByLoreMap(loreMapID int) ([]models.EventConnection, error)
	GetConnectionOwned(connID, userID int) (models.EventConnection, error)
	UpdateConnection(conn models.EventConnection) error
	DeleteConnection(connID, userID int) error

	// Characters
	CreateCharacter(c models.Character) (models.Character, error)
	GetCharacters(userID int) ([]models.Character, error)
	GetCharacterVisible(id, userID int) (models.Character, error)
	GetCharacterOwned(id, userID int) (models.Character, error)
	UpdateCharacter(c models.Character) error
	DeleteCharacter(id, userID int) error

	// Official monsters (importer)
	GetOfficialCharacterByName(name string) (models.Character, error)
	CreateOfficialCharacter(c models.Character) (int, error)
	UpdateOfficialCharacter(c models.Character) error
	CountOfficialCharacters() (int, error)

	// Event roster
	GetRoster(eventID int) ([]models.RosterEntry, error)
	RosterContains(eventID, characterID int) (bool, error)
	AddToRoster(eventID, characterID int, role string) (models.EventCharacter, error)
	RemoveFromRoster(eventID, characterID int) error

	Close() error
}
