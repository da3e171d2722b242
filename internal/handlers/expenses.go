package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"expense-ledger/internal/models"
	"expense-ledger/internal/storage"
)

const dateLayout = "2006-01-02"

// ExpenseGroup groups expenses by date.
type ExpenseGroup struct {
	Title string
	Date  string
	Total float64
	Items []models.Expense
}

// ListViewModel is the data passed to the expense list view template.
type ListViewModel struct {
	Total      float64
	Groups     []ExpenseGroup
	Categories []models.Category
	Years      []int
	Months     []int
	Filter     storage.ExpenseFilter
}

var filterMonths = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

// FormViewModel is the data passed to the add-expense form template.
type FormViewModel struct {
	Categories  []models.Category
	Error       string
	Amount      string
	Category    string
	Description string
	Date        string
}

// ListExpenses renders the expense history, optionally filtered by
// category, month, and year.
func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	filter := parseFilter(r)
	expenses, err := h.db.ListExpensesFiltered(user.ID, filter)
	if err != nil {
		slog.Error("list expenses", "user_id", user.ID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	categories, err := h.db.ListCategories()
	if err != nil {
		slog.Error("list categories", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	years, err := h.db.ExpenseYears(user.ID)
	if err != nil {
		slog.Error("list expense years", "user_id", user.ID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	groupsMap := make(map[string]*ExpenseGroup)
	var totalSpent float64

	for _, e := range expenses {
		dateStr := e.Date.Format(dateLayout)
		if _, ok := groupsMap[dateStr]; !ok {
			groupsMap[dateStr] = &ExpenseGroup{Date: dateStr, Title: formatGroupTitle(e.Date)}
		}
		group := groupsMap[dateStr]
		group.Total += e.Amount
		totalSpent += e.Amount
		group.Items = append(group.Items, e)
	}

	groups := make([]ExpenseGroup, 0, len(groupsMap))
	for _, g := range groupsMap {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Date > groups[j].Date })

	h.render(w, r, "list.html", ListViewModel{
		Total:      totalSpent,
		Groups:     groups,
		Categories: categories,
		Years:      years,
		Months:     filterMonths,
		Filter:     filter,
	})
}

// CreateExpenseForm renders the form to create a new expense.
func (h *Handlers) CreateExpenseForm(w http.ResponseWriter, r *http.Request) {
	categories, err := h.db.ListCategories()
	if err != nil {
		slog.Error("list categories", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.render(w, r, "create.html", FormViewModel{
		Categories: categories,
		Date:       time.Now().Format(dateLayout),
	})
}

// CreateExpense handles the creation of a new expense. Store-level
// validation errors come back as inline messages on the form.
func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	amountStr := strings.TrimSpace(r.FormValue("amount"))
	category := r.FormValue("category")
	description := strings.TrimSpace(r.FormValue("description"))
	dateStr := r.FormValue("date")

	retry := func(msg string) {
		categories, err := h.db.ListCategories()
		if err != nil {
			slog.Error("list categories", "error", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		h.render(w, r, "create.html", FormViewModel{
			Categories:  categories,
			Error:       msg,
			Amount:      amountStr,
			Category:    category,
			Description: description,
			Date:        dateStr,
		})
	}

	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		retry("Amount must be a number")
		return
	}

	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		retry("Date is required")
		return
	}

	if _, err := h.db.CreateExpense(user.ID, amount, category, description, date); err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidAmount):
			retry("Amount must be greater than zero")
		case errors.Is(err, storage.ErrUnknownCategory):
			retry("Choose a category")
		default:
			slog.Error("create expense", "user_id", user.ID, "error", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	http.Redirect(w, r, "/expenses", http.StatusSeeOther)
}

// DeleteExpense deletes one of the current user's expenses. Deleting a row
// that does not exist, or that belongs to someone else, quietly does
// nothing.
func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid expense id", http.StatusBadRequest)
		return
	}

	if err := h.db.DeleteExpense(id, user.ID); err != nil {
		slog.Error("delete expense", "user_id", user.ID, "expense_id", id, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/expenses", http.StatusSeeOther)
}

func parseFilter(r *http.Request) storage.ExpenseFilter {
	var filter storage.ExpenseFilter
	filter.Category = r.URL.Query().Get("category")
	if m, err := strconv.Atoi(r.URL.Query().Get("month")); err == nil && m >= 1 && m <= 12 {
		filter.Month = m
	}
	if y, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil && y > 0 {
		filter.Year = y
	}
	return filter
}

func formatGroupTitle(date time.Time) string {
	dateStr := date.Format(dateLayout)
	nowStr := time.Now().Format(dateLayout)

	if dateStr == nowStr {
		return "TODAY"
	}
	yesterdayStr := time.Now().AddDate(0, 0, -1).Format(dateLayout)
	if dateStr == yesterdayStr {
		return "YESTERDAY"
	}
	return strings.ToUpper(date.Format("Mon, 02 Jan '06"))
}
