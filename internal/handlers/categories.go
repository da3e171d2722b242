package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"expense-ledger/internal/models"
	"expense-ledger/internal/storage"
)

// CategoriesViewModel is the data passed to the categories template.
type CategoriesViewModel struct {
	Categories []models.Category
	Error      string
	Name       string
	Icon       string
}

// ListCategories renders the category management page.
func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	h.renderCategories(w, r, "", "", "")
}

// CreateCategory handles the add-category form.
func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	icon := strings.TrimSpace(r.FormValue("icon"))

	if err := h.db.CreateCategory(name, "", icon); err != nil {
		switch {
		case errors.Is(err, storage.ErrEmptyName):
			h.renderCategories(w, r, "Name cannot be empty", name, icon)
		case errors.Is(err, storage.ErrDuplicateCategory):
			h.renderCategories(w, r, "Category already exists", name, icon)
		default:
			slog.Error("create category", "name", name, "error", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}

// DeleteCategory handles the delete-category form. Existing expenses keep
// their category snapshot.
func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	if err := h.db.DeleteCategory(r.FormValue("name")); err != nil {
		slog.Error("delete category", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}

func (h *Handlers) renderCategories(w http.ResponseWriter, r *http.Request, errMsg, name, icon string) {
	categories, err := h.db.ListCategories()
	if err != nil {
		slog.Error("list categories", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.render(w, r, "categories.html", CategoriesViewModel{
		Categories: categories,
		Error:      errMsg,
		Name:       name,
		Icon:       icon,
	})
}
