package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tevirein/todo-auth/internal/domain"
)

type contextKey string

const accountContextKey contextKey = "account"

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.healthHandler)

	r.Get("/register", s.registerFormHandler)
	r.Post("/register", s.registerHandler)
	r.Get("/login", s.loginFormHandler)
	r.Post("/login", s.loginHandler)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/logout", s.logoutHandler)
		r.Get("/", s.indexHandler)
		r.Post("/add", s.addTaskHandler)
		r.Post("/update/{id}", s.updateTaskHandler)
		r.Get("/done/{id}", s.toggleDoneHandler)
		r.Get("/delete/{id}", s.deleteTaskHandler)
	})

	return r
}

// requireAuth guards every task route: without a live session the request
// is redirected to the login form. The resolved Account travels in the
// request context so handlers never re-read the cookie.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := s.sessions.accountID(r)
		if !ok {
			s.sessions.addFlash(w, r, "error", "Please log in first.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		account, err := s.auth.AccountByID(r.Context(), id)
		if err != nil {
			// Stale cookie pointing at an account that no longer resolves.
			s.sessions.signOut(w, r)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), accountContextKey, account)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func accountFrom(ctx context.Context) *domain.Account {
	account, _ := ctx.Value(accountContextKey).(*domain.Account)
	return account
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	healthStats := s.db.Health()
	if status, ok := healthStats["status"]; ok && status == "down" {
		respondWithJSON(w, http.StatusServiceUnavailable, healthStats)
		return
	}
	respondWithJSON(w, http.StatusOK, healthStats)
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error preparing response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
