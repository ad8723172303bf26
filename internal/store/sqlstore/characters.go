package sqlstore

import (
	"database/sql"

	"lorekeep/internal/models"
)

const characterColumns = `id, name, character_type, description, user_id,
	strength, dexterity, constitution, intelligence, wisdom, charisma,
	armor_class, hit_points, challenge_rating, creature_type, is_official,
	actions, legendary_actions, special_abilities, reactions, skills,
	damage_resistances, damage_immunities, condition_immunities, senses, languages`

func scanCharacter(row rowScanner) (models.Character, error) {
	var c models.Character
	var characterType, description, challengeRating, creatureType sql.NullString
	var actions, legendary, special, reactions, skills sql.NullString
	var resist, immune, condImmune, senses, languages sql.NullString
	var userID sql.NullInt64
	var str, dex, con, intl, wis, cha, ac, hp sql.NullInt64

	err := row.Scan(&c.ID, &c.Name, &characterType, &description, &userID,
		&str, &dex, &con, &intl, &wis, &cha,
		&ac, &hp, &challengeRating, &creatureType, &c.IsOfficial,
		&actions, &legendary, &special, &reactions, &skills,
		&resist, &immune, &condImmune, &senses, &languages)
	if err != nil {
		return models.Character{}, err
	}

	c.CharacterType = characterType.String
	c.Description = description.String
	c.ChallengeRating = challengeRating.String
	c.CreatureType = creatureType.String
	if userID.Valid {
		id := int(userID.Int64)
		c.UserID = &id
	}

	// Rows predating a stat column surface sane defaults regardless of
	// what is stored: 10 for ability scores and AC, 1 for hit points.
	c.Strength = statOr(str, 10)
	c.Dexterity = statOr(dex, 10)
	c.Constitution = statOr(con, 10)
	c.Intelligence = statOr(intl, 10)
	c.Wisdom = statOr(wis, 10)
	c.Charisma = statOr(cha, 10)
	c.ArmorClass = statOr(ac, 10)
	c.HitPoints = statOr(hp, 1)

	c.Actions = models.JSONText(actions.String)
	c.LegendaryActions = models.JSONText(legendary.String)
	c.SpecialAbilities = models.JSONText(special.String)
	c.Reactions = models.JSONText(reactions.String)
	c.Skills = models.JSONText(skills.String)
	c.DamageResistances = resist.String
	c.DamageImmunities = immune.String
	c.ConditionImmunities = condImmune.String
	c.Senses = senses.String
	c.Languages = languages.String
	return c, nil
}

func statOr(v sql.NullInt64, fallback int) int {
	if !v.Valid || v.Int64 == 0 {
		return fallback
	}
	return int(v.Int64)
}

func (s *SQLStore) insertCharacter(c models.Character) (int, error) {
	return s.insertReturningID(
		`INSERT INTO characters (name, character_type, description, user_id,
			strength, dexterity, constitution, intelligence, wisdom, charisma,
			armor_class, hit_points, challenge_rating, creature_type, is_official,
			actions, legendary_actions, special_abilities, reactions, skills,
			damage_resistances, damage_immunities, condition_immunities, senses, languages)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.CharacterType, c.Description, c.UserID,
		c.Strength, c.Dexterity, c.Constitution, c.Intelligence, c.Wisdom, c.Charisma,
		c.ArmorClass, c.HitPoints, c.ChallengeRating, c.CreatureType, c.IsOfficial,
		string(c.Actions), string(c.LegendaryActions), string(c.SpecialAbilities),
		string(c.Reactions), string(c.Skills),
		c.DamageResistances, c.DamageImmunities, c.ConditionImmunities, c.Senses, c.Languages)
}

func (s *SQLStore) CreateCharacter(c models.Character) (models.Character, error) {
	id, err := s.insertCharacter(c)
	if err != nil {
		return models.Character{}, err
	}
	c.ID = id
	return c, nil
}

// GetCharacters returns the user's own characters plus every official
// monster, officials sorted after user characters, then by name.
func (s *SQLStore) GetCharacters(userID int) ([]models.Character, error) {
	rows, err := s.db.Query(
		s.rebind(`SELECT `+characterColumns+` FROM characters
			WHERE user_id = ? OR (user_id IS NULL AND is_official)
			ORDER BY is_official ASC, name ASC`),
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chars []models.Character
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, err
		}
		chars = append(chars, c)
	}
	return chars, rows.Err()
}

// GetCharacterVisible matches the caller's own rows and official
// monsters; anything else is sql.ErrNoRows.
func (s *SQLStore) GetCharacterVisible(id, userID int) (models.Character, error) {
	row := s.db.QueryRow(
		s.rebind(`SELECT `+characterColumns+` FROM characters
			WHERE id = ? AND (user_id = ? OR (user_id IS NULL AND is_official))`),
		id, userID)
	return scanCharacter(row)
}

// GetCharacterOwned matches only the caller's own rows; official
// monsters are never mutable through this path.
func (s *SQLStore) GetCharacterOwned(id, userID int) (models.Character, error) {
	row := s.db.QueryRow(
		s.rebind(`SELECT `+characterColumns+` FROM characters WHERE id = ? AND user_id = ?`),
		id, userID)
	return scanCharacter(row)
}

func (s *SQLStore) updateCharacterRow(c models.Character, where string, args ...any) error {
	query := `UPDATE characters SET name = ?, character_type = ?, description = ?,
		strength = ?, dexterity = ?, constitution = ?, intelligence = ?, wisdom = ?, charisma = ?,
		armor_class = ?, hit_points = ?, challenge_rating = ?, creature_type = ?,
		actions = ?, legendary_actions = ?, special_abilities = ?, reactions = ?, skills = ?,
		damage_resistances = ?, damage_immunities = ?, condition_immunities = ?, senses = ?, languages = ?
		WHERE ` + where
	all := []any{c.Name, c.CharacterType, c.Description,
		c.Strength, c.Dexterity, c.Constitution, c.Intelligence, c.Wisdom, c.Charisma,
		c.ArmorClass, c.HitPoints, c.ChallengeRating, c.CreatureType,
		string(c.Actions), string(c.LegendaryActions), string(c.SpecialAbilities),
		string(c.Reactions), string(c.Skills),
		c.DamageResistances, c.DamageImmunities, c.ConditionImmunities, c.Senses, c.Languages}
	all = append(all, args...)

	result, err := s.db.Exec(s.rebind(query), all...)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *SQLStore) UpdateCharacter(c models.Character) error {
	if c.UserID == nil {
		return sql.ErrNoRows
	}
	return s.updateCharacterRow(c, "id = ? AND user_id = ?", c.ID, *c.UserID)
}

// DeleteCharacter removes a caller-owned character and its roster rows.
func (s *SQLStore) DeleteCharacter(id, userID int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec(s.rebind("DELETE FROM characters WHERE id = ? AND user_id = ?"), id, userID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	if _, err := tx.Exec(s.rebind("DELETE FROM event_characters WHERE character_id = ?"), id); err != nil {
		return err
	}
	return tx.Commit()
}

// Official monster accessors, used by the importer only.

func (s *SQLStore) GetOfficialCharacterByName(name string) (models.Character, error) {
	row := s.db.QueryRow(
		s.rebind(`SELECT `+characterColumns+` FROM characters
			WHERE name = ? AND user_id IS NULL AND is_official`),
		name)
	return scanCharacter(row)
}

func (s *SQLStore) CreateOfficialCharacter(c models.Character) (int, error) {
	c.UserID = nil
	c.IsOfficial = true
	return s.insertCharacter(c)
}

func (s *SQLStore) UpdateOfficialCharacter(c models.Character) error {
	return s.updateCharacterRow(c, "id = ? AND user_id IS NULL AND is_official", c.ID)
}

func (s *SQLStore) CountOfficialCharacters() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM characters WHERE user_id IS NULL AND is_official").Scan(&n)
	return n, err
}
