package handlers

import (
	"log/slog"
	"net/http"
	"sort"

	"expense-ledger/internal/models"
)

// SummaryCategoryItem represents a category with its spending share.
type SummaryCategoryItem struct {
	Category   string
	Total      float64
	Percentage float64
}

// SummaryViewModel is the data passed to the summary view template.
type SummaryViewModel struct {
	Total      float64
	Categories []SummaryCategoryItem
	Days       []models.DayTotal
}

// Summary renders aggregate spending: totals per category (with shares for
// the pie presentation) and totals per day in date order.
func (h *Handlers) Summary(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	categoryTotals, err := h.db.SummaryByCategory(user.ID)
	if err != nil {
		slog.Error("summary by category", "user_id", user.ID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	dayTotals, err := h.db.SummaryByDay(user.ID)
	if err != nil {
		slog.Error("summary by day", "user_id", user.ID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var total float64
	for _, v := range categoryTotals {
		total += v
	}

	// The store returns an unordered map; order by total descending for
	// display.
	items := make([]SummaryCategoryItem, 0, len(categoryTotals))
	for category, sum := range categoryTotals {
		percentage := 0.0
		if total > 0 {
			percentage = (sum / total) * 100
		}
		items = append(items, SummaryCategoryItem{
			Category:   category,
			Total:      sum,
			Percentage: percentage,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Total != items[j].Total {
			return items[i].Total > items[j].Total
		}
		return items[i].Category < items[j].Category
	})

	h.render(w, r, "summary.html", SummaryViewModel{
		Total:      total,
		Categories: items,
		Days:       dayTotals,
	})
}
