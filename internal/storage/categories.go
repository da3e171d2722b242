package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"expense-ledger/internal/models"
)

// CreateCategory inserts a new category. The name must be non-empty after
// trimming; duplicates are reported as ErrDuplicateCategory.
func (db *DB) CreateCategory(name, color, icon string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	_, err := db.conn.Exec(
		"INSERT INTO categories (name, color, icon) VALUES (?, ?, ?)",
		name, strings.TrimSpace(color), strings.TrimSpace(icon),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateCategory
		}
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// DeleteCategory removes a category by name. Deleting a name that does not
// exist is a no-op. Expenses referencing the name keep their textual
// snapshot untouched.
func (db *DB) DeleteCategory(name string) error {
	if _, err := db.conn.Exec("DELETE FROM categories WHERE name = ?", name); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// ListCategories returns all categories ordered by name ascending.
func (db *DB) ListCategories() ([]models.Category, error) {
	rows, err := db.conn.Query("SELECT id, name, color, icon FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		var color, icon sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &color, &icon); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Color = color.String
		c.Icon = icon.String
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// CategoryExists reports whether a category with the given name exists.
func (db *DB) CategoryExists(name string) (bool, error) {
	var one int
	err := db.conn.QueryRow("SELECT 1 FROM categories WHERE name = ?", name).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check category: %w", err)
	}
	return true, nil
}
