package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"expense-ledger/internal/auth"
	"expense-ledger/internal/config"
	"expense-ledger/internal/handlers"
	"expense-ledger/internal/storage"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := storage.NewDB(cfg.DBPath)
	if err != nil {
		slog.Error("open database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := seedAdminUser(db, cfg); err != nil {
		slog.Error("seed admin user", "error", err)
		os.Exit(1)
	}

	go cleanSessionsLoop(db)

	h := handlers.NewHandlers(db, cfg.TemplateDir, cfg.SecureCookies, cfg.SessionDuration)
	mux := setupRouter(h, cfg.StaticDir)

	addr := ":" + cfg.Port
	slog.Info("server listening", "addr", addr, "db", cfg.DBPath)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func setupRouter(h *handlers.Handlers, staticDir string) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/expenses", http.StatusFound)
	})

	mux.HandleFunc("GET /login", h.LoginForm)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("GET /register", h.RegisterForm)
	mux.HandleFunc("POST /register", h.Register)
	mux.HandleFunc("POST /logout", h.Logout)

	mux.Handle("GET /expenses", h.AuthMiddleware(http.HandlerFunc(h.ListExpenses)))
	mux.Handle("GET /expenses/new", h.AuthMiddleware(http.HandlerFunc(h.CreateExpenseForm)))
	mux.Handle("POST /expenses", h.AuthMiddleware(http.HandlerFunc(h.CreateExpense)))
	mux.Handle("POST /expenses/{id}/delete", h.AuthMiddleware(http.HandlerFunc(h.DeleteExpense)))

	mux.Handle("GET /categories", h.AuthMiddleware(http.HandlerFunc(h.ListCategories)))
	mux.Handle("POST /categories", h.AuthMiddleware(http.HandlerFunc(h.CreateCategory)))
	mux.Handle("POST /categories/delete", h.AuthMiddleware(http.HandlerFunc(h.DeleteCategory)))

	mux.Handle("GET /summary", h.AuthMiddleware(http.HandlerFunc(h.Summary)))

	mux.Handle("GET /account", h.AuthMiddleware(http.HandlerFunc(h.Account)))
	mux.Handle("POST /account/reset", h.AuthMiddleware(http.HandlerFunc(h.ResetData)))

	return mux
}

// seedAdminUser provisions the account named in ADMIN_USER/ADMIN_PASSWORD
// when it does not exist yet. Useful for first deploys and e2e runs.
func seedAdminUser(db *storage.DB, cfg *config.Config) error {
	if cfg.AdminUser == "" || cfg.AdminPassword == "" {
		return nil
	}

	if _, err := db.GetUserByUsername(cfg.AdminUser); err == nil {
		return nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	salt, hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	id, err := db.CreateUser(cfg.AdminUser, salt, hash)
	if err != nil {
		return err
	}
	slog.Info("seeded admin user", "username", cfg.AdminUser, "id", id)
	return nil
}

func cleanSessionsLoop(db *storage.DB) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := db.CleanExpiredSessions(); err != nil {
			slog.Error("clean expired sessions", "error", err)
		}
	}
}
