package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"expense-ledger/internal/models"
)

// CreateUser inserts a new user with the given hex-encoded salt and
// password hash and returns the assigned id. The users.username unique
// constraint is the single source of truth for duplicates: a violation is
// translated into ErrDuplicateUsername.
func (db *DB) CreateUser(username, saltHex, hashHex string) (int64, error) {
	result, err := db.conn.Exec(
		"INSERT INTO users (username, pwd_hash, salt) VALUES (?, ?, ?)",
		username, hashHex, saltHex,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateUsername
		}
		return 0, fmt.Errorf("create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// GetUserByID retrieves a user by id.
func (db *DB) GetUserByID(id int64) (*models.User, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, pwd_hash, salt, created_at FROM users WHERE id = ?",
		id,
	)
	return scanUser(row)
}

// GetUserByUsername retrieves a user by username. The lookup is
// case-sensitive.
func (db *DB) GetUserByUsername(username string) (*models.User, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, pwd_hash, salt, created_at FROM users WHERE username = ?",
		username,
	)
	return scanUser(row)
}

// UserCount returns the number of users in the database.
func (db *DB) UserCount() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.PwdHash, &u.Salt, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
