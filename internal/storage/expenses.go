package storage

import (
	"database/sql"
	"fmt"
	"time"

	"expense-ledger/internal/models"
)

// dateLayout is the ISO-8601 calendar-date format expenses are stored with.
const dateLayout = "2006-01-02"

// ExpenseFilter narrows ListExpensesFiltered. Zero values mean "no filter".
type ExpenseFilter struct {
	Category string
	Month    int // 1-12
	Year     int
}

// CreateExpense inserts a new expense for the user and returns its id.
// The store validates its inputs: the amount must be positive and the
// category must currently exist. The category name is stored as a plain
// string snapshot.
func (db *DB) CreateExpense(userID int64, amount float64, category, description string, date time.Time) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	exists, err := db.CategoryExists(category)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrUnknownCategory
	}

	result, err := db.conn.Exec(
		"INSERT INTO expenses (user_id, amount, category, description, date) VALUES (?, ?, ?, ?, ?)",
		userID, amount, category, description, date.Format(dateLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("create expense: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// DeleteExpense removes an expense only when the row's owner matches
// userID. A miss is a silent no-op: the caller learns nothing about rows
// owned by other users.
func (db *DB) DeleteExpense(id, userID int64) error {
	if _, err := db.conn.Exec("DELETE FROM expenses WHERE id = ? AND user_id = ?", id, userID); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

// ListExpenses returns all of the user's expenses ordered by date
// descending, insertion order on ties.
func (db *DB) ListExpenses(userID int64) ([]models.Expense, error) {
	return db.ListExpensesFiltered(userID, ExpenseFilter{})
}

// ListExpensesFiltered returns the user's expenses matching the filter,
// ordered by date descending.
func (db *DB) ListExpensesFiltered(userID int64, filter ExpenseFilter) ([]models.Expense, error) {
	query := "SELECT id, user_id, amount, category, description, date FROM expenses WHERE user_id = ?"
	args := []any{userID}

	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	if filter.Month >= 1 && filter.Month <= 12 {
		query += " AND strftime('%m', date) = ?"
		args = append(args, fmt.Sprintf("%02d", filter.Month))
	}
	if filter.Year > 0 {
		query += " AND strftime('%Y', date) = ?"
		args = append(args, fmt.Sprintf("%04d", filter.Year))
	}
	query += " ORDER BY date DESC, id"

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		var desc sql.NullString
		var dateStr string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Category, &desc, &dateStr); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.Description = desc.String
		e.Date, err = time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("parse expense date %q: %w", dateStr, err)
		}
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

// ExpenseYears returns the distinct years the user has expenses in,
// ascending. Used to populate the history filter.
func (db *DB) ExpenseYears(userID int64) ([]int, error) {
	rows, err := db.conn.Query(
		"SELECT DISTINCT strftime('%Y', date) FROM expenses WHERE user_id = ? ORDER BY 1",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list expense years: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("scan year: %w", err)
		}
		years = append(years, y)
	}

	return years, rows.Err()
}

// SummaryByCategory returns the sum of the user's expense amounts grouped
// by category snapshot. The result is unordered; presentation orders it.
func (db *DB) SummaryByCategory(userID int64) (map[string]float64, error) {
	rows, err := db.conn.Query(
		"SELECT category, SUM(amount) FROM expenses WHERE user_id = ? GROUP BY category",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("summary by category: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]float64)
	for rows.Next() {
		var category string
		var total float64
		if err := rows.Scan(&category, &total); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		totals[category] = total
	}

	return totals, rows.Err()
}

// SummaryByDay returns the sum of the user's expense amounts grouped by
// calendar date, ascending by date.
func (db *DB) SummaryByDay(userID int64) ([]models.DayTotal, error) {
	rows, err := db.conn.Query(
		"SELECT date, SUM(amount) FROM expenses WHERE user_id = ? GROUP BY date ORDER BY date",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("summary by day: %w", err)
	}
	defer rows.Close()

	var totals []models.DayTotal
	for rows.Next() {
		var dateStr string
		var dt models.DayTotal
		if err := rows.Scan(&dateStr, &dt.Total); err != nil {
			return nil, fmt.Errorf("scan day total: %w", err)
		}
		dt.Date, err = time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("parse summary date %q: %w", dateStr, err)
		}
		totals = append(totals, dt)
	}

	return totals, rows.Err()
}
