package sqlstore

import (
	"database/sql"

	"lorekeep/internal/models"
)

func scanConnection(row rowScanner) (models.EventConnection, error) {
	var conn models.EventConnection
	var description, condition sql.NullString
	err := row.Scan(&conn.ID, &conn.FromEventID, &conn.ToEventID, &description, &condition, &conn.ConnectionType)
	if err != nil {
		return models.EventConnection{}, err
	}
	conn.Description = description.String
	conn.Condition = models.JSONText(condition.String)
	return conn, nil
}

func (s *SQLStore) CreateConnection(conn models.EventConnection) (models.EventConnection, error) {
	if conn.ConnectionType == "" {
		conn.ConnectionType = models.ConnectionDefault
	}
	id, err := s.insertReturningID(
		`INSERT INTO event_connections (from_event_id, to_event_id, description, condition, connection_type)
			VALUES (?, ?, ?, ?, ?)`,
		conn.FromEventID, conn.ToEventID, conn.Description, string(conn.Condition), conn.ConnectionType)
	if err != nil {
		return models.EventConnection{}, err
	}
	conn.ID = id
	return conn, nil
}

func (s *SQLStore) GetConnectionsByLoreMap(loreMapID int) ([]models.EventConnection, error) {
	rows, err := s.db.Query(
		s.rebind(`SELECT DISTINCT c.id, c.from_event_id, c.to_event_id, c.description, c.condition, c.connection_type
			FROM event_connections c
			JOIN events ef ON c.from_event_id = ef.id
			JOIN events et ON c.to_event_id = et.id
			WHERE ef.lore_map_id = ? OR et.lore_map_id = ?`),
		loreMapID, loreMapID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conns []models.EventConnection
	for rows.Next() {
		conn, err := scanConnection(rows)
		if err != nil {
			return nil, err
		}
		conns = append(conns, conn)
	}
	return conns, rows.Err()
}

// GetConnectionOwned authorizes through the source event's lore map
// only; the destination side is not cross-validated.
func (s *SQLStore) GetConnectionOwned(connID, userID int) (models.EventConnection, error) {
	row := s.db.QueryRow(
		s.rebind(`SELECT c.id, c.from_event_id, c.to_event_id, c.description, c.condition, c.connection_type
			FROM event_connections c
			JOIN events e ON c.from_event_id = e.id
			JOIN lore_maps lm ON e.lore_map_id = lm.id
			WHERE c.id = ? AND lm.user_id = ?`),
		connID, userID)
	return scanConnection(row)
}

func (s *SQLStore) UpdateConnection(conn models.EventConnection) error {
	result, err := s.db.Exec(
		s.rebind("UPDATE event_connections SET description = ?, condition = ?, connection_type = ? WHERE id = ?"),
		conn.Description, string(conn.Condition), conn.ConnectionType, conn.ID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *SQLStore) DeleteConnection(connID, userID int) error {
	result, err := s.db.Exec(
		s.rebind(`DELETE FROM event_connections WHERE id = ? AND from_event_id IN (
			SELECT e.id FROM events e JOIN lore_maps lm ON e.lore_map_id = lm.id WHERE lm.user_id = ?)`),
		connID, userID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
