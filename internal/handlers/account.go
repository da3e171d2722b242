package handlers

import (
	"log/slog"
	"net/http"
)

// resetConfirmation must be typed verbatim before a reset is performed.
const resetConfirmation = "RESET"

// AccountViewModel is the data passed to the account template.
type AccountViewModel struct {
	Username string
	Error    string
	Notice   string
}

// Account renders the account settings page.
func (h *Handlers) Account(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	h.render(w, r, "account.html", AccountViewModel{Username: user.Username})
}

// ResetData wipes all stored data after an explicit confirmation phrase.
// The session that issued the reset dies with everything else, so the
// response sends the user back to the login page.
func (h *Handlers) ResetData(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	if r.FormValue("confirm") != resetConfirmation {
		h.render(w, r, "account.html", AccountViewModel{
			Username: user.Username,
			Error:    "Type RESET to confirm wiping all data",
		})
		return
	}

	if err := h.db.Reset(); err != nil {
		slog.Error("reset data", "user_id", user.ID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	slog.Warn("all data reset", "requested_by", user.Username)
	h.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}
