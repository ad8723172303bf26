package sqlstore

import (
	"time"

	"lorekeep/internal/models"
)

func (s *SQLStore) CreateUser(username, email, passwordHash string) (int, error) {
	return s.insertReturningID(
		"INSERT INTO users (username, email, password_hash, created_at) VALUES (?, ?, ?, ?)",
		username, email, passwordHash, time.Now().UTC())
}

func (s *SQLStore) GetUserByUsername(username string) (models.User, error) {
	var u models.User
	err := s.db.QueryRow(
		s.rebind("SELECT id, username, email, password_hash, created_at FROM users WHERE username = ?"),
		username).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

func (s *SQLStore) GetUserByID(id int) (models.User, error) {
	var u models.User
	err := s.db.QueryRow(
		s.rebind("SELECT id, username, email, password_hash, created_at FROM users WHERE id = ?"),
		id).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

func (s *SQLStore) UsernameTaken(username string) (bool, error) {
	var taken bool
	err := s.db.QueryRow(
		s.rebind("SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)"), username).Scan(&taken)
	return taken, err
}

func (s *SQLStore) EmailTaken(email string) (bool, error) {
	var taken bool
	err := s.db.QueryRow(
		s.rebind("SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)"), email).Scan(&taken)
	return taken, err
}
