package sqlstore

import (
	"database/sql"
	"time"

	"lorekeep/internal/models"
)

func (s *SQLStore) CreateLoreMap(userID int, title, description string) (models.LoreMap, error) {
	now := time.Now().UTC()
	id, err := s.insertReturningID(
		"INSERT INTO lore_maps (title, description, created_at, updated_at, user_id) VALUES (?, ?, ?, ?, ?)",
		title, description, now, now, userID)
	if err != nil {
		return models.LoreMap{}, err
	}
	return models.LoreMap{
		ID:          id,
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		UserID:      userID,
	}, nil
}

func (s *SQLStore) GetLoreMaps(userID int) ([]models.LoreMap, error) {
	rows, err := s.db.Query(
		s.rebind("SELECT id, title, description, created_at, updated_at FROM lore_maps WHERE user_id = ?"),
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var maps []models.LoreMap
	for rows.Next() {
		lm := models.LoreMap{UserID: userID}
		var desc sql.NullString
		if err := rows.Scan(&lm.ID, &lm.Title, &desc, &lm.CreatedAt, &lm.UpdatedAt); err != nil {
			return nil, err
		}
		lm.Description = desc.String
		maps = append(maps, lm)
	}
	return maps, rows.Err()
}

func (s *SQLStore) GetLoreMap(id, userID int) (models.LoreMap, error) {
	lm := models.LoreMap{UserID: userID}
	var desc sql.NullString
	err := s.db.QueryRow(
		s.rebind("SELECT id, title, description, created_at, updated_at FROM lore_maps WHERE id = ? AND user_id = ?"),
		id, userID).Scan(&lm.ID, &lm.Title, &desc, &lm.CreatedAt, &lm.UpdatedAt)
	lm.Description = desc.String
	return lm, err
}

// DeleteLoreMap removes a lore map and everything under it: roster
// rows and connections of its events, the events themselves, then the
// map. One transaction, rolled back on any failure.
func (s *SQLStore) DeleteLoreMap(id, userID int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var owned int
	err = tx.QueryRow(s.rebind("SELECT id FROM lore_maps WHERE id = ? AND user_id = ?"), id, userID).Scan(&owned)
	if err != nil {
		return err
	}

	cascade := []string{
		`DELETE FROM event_characters WHERE event_id IN (SELECT id FROM events WHERE lore_map_id = ?)`,
		`DELETE FROM event_connections WHERE from_event_id IN (SELECT id FROM events WHERE lore_map_id = ?)
			OR to_event_id IN (SELECT id FROM events WHERE lore_map_id = ?)`,
		`DELETE FROM events WHERE lore_map_id = ?`,
		`DELETE FROM lore_maps WHERE id = ?`,
	}
	args := [][]any{{id}, {id, id}, {id}, {id}}
	for i, stmt := range cascade {
		if _, err := tx.Exec(s.rebind(stmt), args[i]...); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLStore) touchLoreMap(tx *sql.Tx, id int) error {
	_, err := tx.Exec(s.rebind("UPDATE lore_maps SET updated_at = ? WHERE id = ?"), time.Now().UTC(), id)
	return err
}
