package sqlstore

import (
	"database/sql"

	"lorekeep/internal/models"
)

func (s *SQLStore) GetRoster(eventID int) ([]models.RosterEntry, error) {
	rows, err := s.db.Query(
		s.rebind(`SELECT ec.id, ec.event_id, ec.character_id, ec.role, c.name, c.character_type, c.is_official
			FROM event_characters ec
			JOIN characters c ON ec.character_id = c.id
			WHERE ec.event_id = ?`),
		eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roster []models.RosterEntry
	for rows.Next() {
		var entry models.RosterEntry
		var role, characterType sql.NullString
		err := rows.Scan(&entry.ID, &entry.EventID, &entry.CharacterID, &role,
			&entry.CharacterName, &characterType, &entry.IsOfficial)
		if err != nil {
			return nil, err
		}
		entry.Role = role.String
		entry.CharacterType = characterType.String
		roster = append(roster, entry)
	}
	return roster, rows.Err()
}

func (s *SQLStore) RosterContains(eventID, characterID int) (bool, error) {
	var in bool
	err := s.db.QueryRow(
		s.rebind("SELECT EXISTS(SELECT 1 FROM event_characters WHERE event_id = ? AND character_id = ?)"),
		eventID, characterID).Scan(&in)
	return in, err
}

func (s *SQLStore) AddToRoster(eventID, characterID int, role string) (models.EventCharacter, error) {
	id, err := s.insertReturningID(
		"INSERT INTO event_characters (event_id, character_id, role) VALUES (?, ?, ?)",
		eventID, characterID, role)
	if err != nil {
		return models.EventCharacter{}, err
	}
	return models.EventCharacter{ID: id, EventID: eventID, CharacterID: characterID, Role: role}, nil
}

func (s *SQLStore) RemoveFromRoster(eventID, characterID int) error {
	result, err := s.db.Exec(
		s.rebind("DELETE FROM event_characters WHERE event_id = ? AND character_id = ?"),
		eventID, characterID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
