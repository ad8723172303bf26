package sqlstore

func (s *SQLStore) initSchema() error {
	var stmts []string

	if s.dbType == Postgres {
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS users (
				id SERIAL PRIMARY KEY,
				username TEXT NOT NULL UNIQUE,
				email TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL
			);`,
			`CREATE TABLE IF NOT EXISTS lore_maps (
				id SERIAL PRIMARY KEY,
				title TEXT NOT NULL,
				description TEXT,
				created_at TIMESTAMP NOT NULL,
				updated_at TIMESTAMP NOT NULL,
				user_id INTEGER NOT NULL REFERENCES users(id)
			);`,
			`CREATE TABLE IF NOT EXISTS events (
				id SERIAL PRIMARY KEY,
				title TEXT NOT NULL,
				description TEXT,
				location TEXT,
				position_x INTEGER NOT NULL DEFAULT 0,
				position_y INTEGER NOT NULL DEFAULT 0,
				image_url TEXT,
				conditions TEXT,
				is_party_location BOOLEAN NOT NULL DEFAULT FALSE,
				is_completed BOOLEAN NOT NULL DEFAULT FALSE,
				dm_notes TEXT,
				order_number INTEGER,
				lore_map_id INTEGER NOT NULL REFERENCES lore_maps(id)
			);`,
			`CREATE TABLE IF NOT EXISTS event_connections (
				id SERIAL PRIMARY KEY,
				from_event_id INTEGER NOT NULL REFERENCES events(id),
				to_event_id INTEGER NOT NULL REFERENCES events(id),
				description TEXT,
				condition TEXT,
				connection_type TEXT NOT NULL DEFAULT 'default'
			);`,
			`CREATE TABLE IF NOT EXISTS characters (
				id SERIAL PRIMARY KEY,
				name TEXT NOT NULL,
				character_type TEXT,
				description TEXT,
				user_id INTEGER REFERENCES users(id),
				strength INTEGER DEFAULT 10,
				dexterity INTEGER DEFAULT 10,
				constitution INTEGER DEFAULT 10,
				intelligence INTEGER DEFAULT 10,
				wisdom INTEGER DEFAULT 10,
				charisma INTEGER DEFAULT 10,
				armor_class INTEGER DEFAULT 10,
				hit_points INTEGER DEFAULT 1,
				challenge_rating TEXT,
				creature_type TEXT,
				is_official BOOLEAN NOT NULL DEFAULT FALSE,
				actions TEXT,
				legendary_actions TEXT,
				special_abilities TEXT,
				reactions TEXT,
				skills TEXT,
				damage_resistances TEXT,
				damage_immunities TEXT,
				condition_immunities TEXT,
				senses TEXT,
				languages TEXT
			);`,
			`CREATE TABLE IF NOT EXISTS event_characters (
				id SERIAL PRIMARY KEY,
				event_id INTEGER NOT NULL REFERENCES events(id) ON DELETE CASCADE,
				character_id INTEGER NOT NULL REFERENCES characters(id) ON DELETE CASCADE,
				role TEXT
			);`,
			`CREATE TABLE IF NOT EXISTS items (
				id SERIAL PRIMARY KEY,
				name TEXT NOT NULL,
				description TEXT,
				properties TEXT,
				user_id INTEGER NOT NULL REFERENCES users(id)
			);`,
		}
	} else {
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT NOT NULL UNIQUE,
				email TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				created_at DATETIME NOT NULL
			);`,
			`CREATE TABLE IF NOT EXISTS lore_maps (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				title TEXT NOT NULL,
				description TEXT,
				created_at DATETIME NOT NULL,
				updated_at DATETIME NOT NULL,
				user_id INTEGER NOT NULL,
				FOREIGN KEY(user_id) REFERENCES users(id)
			);`,
			`CREATE TABLE IF NOT EXISTS events (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				title TEXT NOT NULL,
				description TEXT,
				location TEXT,
				position_x INTEGER NOT NULL DEFAULT 0,
				position_y INTEGER NOT NULL DEFAULT 0,
				image_url TEXT,
				conditions TEXT,
				is_party_location BOOLEAN NOT NULL DEFAULT 0,
				is_completed BOOLEAN NOT NULL DEFAULT 0,
				dm_notes TEXT,
				order_number INTEGER,
				lore_map_id INTEGER NOT NULL,
				FOREIGN KEY(lore_map_id) REFERENCES lore_maps(id)
			);`,
			`CREATE TABLE IF NOT EXISTS event_connections (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				from_event_id INTEGER NOT NULL,
				to_event_id INTEGER NOT NULL,
				description TEXT,
				condition TEXT,
				connection_type TEXT NOT NULL DEFAULT 'default',
				FOREIGN KEY(from_event_id) REFERENCES events(id),
				FOREIGN KEY(to_event_id) REFERENCES events(id)
			);`,
			`CREATE TABLE IF NOT EXISTS characters (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				character_type TEXT,
				description TEXT,
				user_id INTEGER,
				strength INTEGER DEFAULT 10,
				dexterity INTEGER DEFAULT 10,
				constitution INTEGER DEFAULT 10,
				intelligence INTEGER DEFAULT 10,
				wisdom INTEGER DEFAULT 10,
				charisma INTEGER DEFAULT 10,
				armor_class INTEGER DEFAULT 10,
				hit_points INTEGER DEFAULT 1,
				challenge_rating TEXT,
				creature_type TEXT,
				is_official BOOLEAN NOT NULL DEFAULT 0,
				actions TEXT,
				legendary_actions TEXT,
				special_abilities TEXT,
				reactions TEXT,
				skills TEXT,
				damage_resistances TEXT,
				damage_immunities TEXT,
				condition_immunities TEXT,
				senses TEXT,
				languages TEXT,
				FOREIGN KEY(user_id) REFERENCES users(id)
			);`,
			`CREATE TABLE IF NOT EXISTS event_characters (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				event_id INTEGER NOT NULL,
				character_id INTEGER NOT NULL,
				role TEXT,
				FOREIGN KEY(event_id) REFERENCES events(id) ON DELETE CASCADE,
				FOREIGN KEY(character_id) REFERENCES characters(id) ON DELETE CASCADE
			);`,
			`CREATE TABLE IF NOT EXISTS items (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				description TEXT,
				properties TEXT,
				user_id INTEGER NOT NULL,
				FOREIGN KEY(user_id) REFERENCES users(id)
			);`,
		}
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
