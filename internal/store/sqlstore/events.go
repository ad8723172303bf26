package sqlstore

import (
	"database/sql"

	"lorekeep/internal/models"
)

const eventColumns = `id, title, description, location, position_x, position_y, image_url,
	conditions, is_party_location, is_completed, dm_notes, order_number, lore_map_id`

const eventColumnsPrefixed = `e.id, e.title, e.description, e.location, e.position_x, e.position_y,
	e.image_url, e.conditions, e.is_party_location, e.is_completed, e.dm_notes, e.order_number, e.lore_map_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (models.Event, error) {
	var ev models.Event
	var description, location, imageURL, conditions, dmNotes sql.NullString
	var orderNumber sql.NullInt64

	err := row.Scan(&ev.ID, &ev.Title, &description, &location, &ev.Position.X, &ev.Position.Y,
		&imageURL, &conditions, &ev.IsPartyLocation, &ev.IsCompleted, &dmNotes, &orderNumber, &ev.LoreMapID)
	if err != nil {
		return models.Event{}, err
	}

	ev.Description = description.String
	ev.Location = location.String
	ev.Conditions = models.JSONText(conditions.String)
	if imageURL.Valid {
		ev.ImageURL = &imageURL.String
	}
	if dmNotes.Valid {
		ev.DMNotes = &dmNotes.String
	}
	if orderNumber.Valid {
		n := int(orderNumber.Int64)
		ev.OrderNumber = &n
	}
	return ev, nil
}

func (s *SQLStore) CreateEvent(ev models.Event) (models.Event, error) {
	id, err := s.insertReturningID(
		`INSERT INTO events (title, description, location, position_x, position_y, image_url,
			conditions, is_party_location, is_completed, dm_notes, order_number, lore_map_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.Title, ev.Description, ev.Location, ev.Position.X, ev.Position.Y, ev.ImageURL,
		string(ev.Conditions), ev.IsPartyLocation, ev.IsCompleted, ev.DMNotes, ev.OrderNumber, ev.LoreMapID)
	if err != nil {
		return models.Event{}, err
	}
	ev.ID = id
	return ev, nil
}

// GetEventOwned loads an event only if its lore map belongs to the
// user. This is the single authorization path for event mutations.
func (s *SQLStore) GetEventOwned(eventID, userID int) (models.Event, error) {
	row := s.db.QueryRow(
		s.rebind(`SELECT `+eventColumnsPrefixed+` FROM events e
			JOIN lore_maps lm ON e.lore_map_id = lm.id
			WHERE e.id = ? AND lm.user_id = ?`),
		eventID, userID)
	return scanEvent(row)
}

func (s *SQLStore) GetEventsByLoreMap(loreMapID int) ([]models.Event, error) {
	rows, err := s.db.Query(
		s.rebind("SELECT "+eventColumns+" FROM events WHERE lore_map_id = ?"), loreMapID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (s *SQLStore) EventInLoreMap(eventID, loreMapID int) (bool, error) {
	var in bool
	err := s.db.QueryRow(
		s.rebind("SELECT EXISTS(SELECT 1 FROM events WHERE id = ? AND lore_map_id = ?)"),
		eventID, loreMapID).Scan(&in)
	return in, err
}

// UpdateEvent writes the full event row and bumps the parent lore
// map's updated_at in the same transaction. Callers merge partial
// request fields into a loaded event before calling.
func (s *SQLStore) UpdateEvent(ev models.Event) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		s.rebind(`UPDATE events SET title = ?, description = ?, location = ?, position_x = ?,
			position_y = ?, image_url = ?, conditions = ?, is_party_location = ?,
			is_completed = ?, dm_notes = ?, order_number = ? WHERE id = ?`),
		ev.Title, ev.Description, ev.Location, ev.Position.X, ev.Position.Y, ev.ImageURL,
		string(ev.Conditions), ev.IsPartyLocation, ev.IsCompleted, ev.DMNotes, ev.OrderNumber, ev.ID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	if err := s.touchLoreMap(tx, ev.LoreMapID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLStore) ToggleEventComplete(eventID, userID int) (bool, error) {
	ev, err := s.GetEventOwned(eventID, userID)
	if err != nil {
		return false, err
	}
	next := !ev.IsCompleted
	_, err = s.db.Exec(s.rebind("UPDATE events SET is_completed = ? WHERE id = ?"), next, eventID)
	return next, err
}

func (s *SQLStore) SetEventImageURL(eventID int, url *string) error {
	result, err := s.db.Exec(s.rebind("UPDATE events SET image_url = ? WHERE id = ?"), url, eventID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
