package server

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/tevirein/todo-auth/internal/domain"
)

// redirectIfAuthenticated sends signed-in visitors of /login and /register
// back to the task list.
func (s *Server) redirectIfAuthenticated(w http.ResponseWriter, r *http.Request) bool {
	id, ok := s.sessions.accountID(r)
	if !ok {
		return false
	}
	if _, err := s.auth.AccountByID(r.Context(), id); err != nil {
		s.sessions.signOut(w, r)
		return false
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
	return true
}

func (s *Server) registerFormHandler(w http.ResponseWriter, r *http.Request) {
	if s.redirectIfAuthenticated(w, r) {
		return
	}
	s.render(w, "register.html", pageData{
		Title:   "Sign Up",
		Flashes: s.sessions.takeFlashes(w, r),
	})
}

func (s *Server) registerHandler(w http.ResponseWriter, r *http.Request) {
	if s.redirectIfAuthenticated(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")

	_, err := s.auth.Register(r.Context(), username, password)
	switch {
	case errors.Is(err, domain.ErrDuplicateUsername):
		s.sessions.addFlash(w, r, "error", "That username is already taken.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
	case errors.Is(err, domain.ErrWeakPassword):
		s.sessions.addFlash(w, r, "error", "Password must be at least 4 characters.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
	case err != nil:
		s.logger.Error("registering account", zap.Error(err))
		s.sessions.addFlash(w, r, "error", "Registration failed. Please try again.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
	default:
		s.sessions.addFlash(w, r, "message", "Registration complete. Please log in.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

func (s *Server) loginFormHandler(w http.ResponseWriter, r *http.Request) {
	if s.redirectIfAuthenticated(w, r) {
		return
	}
	s.render(w, "login.html", pageData{
		Title:   "Log In",
		Flashes: s.sessions.takeFlashes(w, r),
	})
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	if s.redirectIfAuthenticated(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	account, err := s.auth.Authenticate(r.Context(), r.PostForm.Get("username"), r.PostForm.Get("password"))
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			s.logger.Error("authenticating", zap.Error(err))
		}
		s.sessions.addFlash(w, r, "error", "Invalid username or password.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := s.sessions.signIn(w, r, account.ID); err != nil {
		s.logger.Error("establishing session", zap.Error(err))
		s.sessions.addFlash(w, r, "error", "Could not establish a session.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	s.sessions.addFlash(w, r, "message", "Logged in successfully!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) logoutHandler(w http.ResponseWriter, r *http.Request) {
	s.sessions.signOut(w, r)
	s.sessions.addFlash(w, r, "message", "Logged out.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
