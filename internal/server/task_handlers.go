package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tevirein/todo-auth/internal/domain"
	"github.com/tevirein/todo-auth/internal/service"
)

// dateLayout is the only form in which due dates cross the HTTP boundary.
const dateLayout = "2006-01-02"

func parseDueDate(text string) (*time.Time, error) {
	parsed, err := time.Parse(dateLayout, text)
	if err != nil {
		return nil, domain.ErrInvalidDateFormat
	}
	return &parsed, nil
}

func taskID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.ErrNotFound
	}
	return uint(id), nil
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	account := accountFrom(r.Context())
	query := r.URL.Query().Get("q")

	tasks, err := s.tasks.List(r.Context(), account.ID, query)
	if err != nil {
		s.logger.Error("listing tasks", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	s.render(w, "index.html", pageData{
		Title:   "Task List",
		Flashes: s.sessions.takeFlashes(w, r),
		Account: account,
		Tasks:   tasks,
		Query:   query,
	})
}

func (s *Server) addTaskHandler(w http.ResponseWriter, r *http.Request) {
	account := accountFrom(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	// A missing or blank title silently skips creation.
	title := strings.TrimSpace(r.PostForm.Get("title"))
	if title == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	priority := domain.DefaultPriority
	if p, err := strconv.Atoi(r.PostForm.Get("priority")); err == nil {
		priority = p
	}

	var dueDate *time.Time
	if text := r.PostForm.Get("due_date"); text != "" {
		parsed, err := parseDueDate(text)
		if err != nil {
			// Non-fatal: the task is still created, just without a deadline.
			s.sessions.addFlash(w, r, "error", "The due date format is invalid.")
		} else {
			dueDate = parsed
		}
	}

	_, err := s.tasks.Add(r.Context(), account.ID, service.AddTaskRequest{
		Title:    title,
		Priority: priority,
		DueDate:  dueDate,
	})
	if err != nil {
		s.logger.Error("adding task", zap.Error(err))
		s.sessions.addFlash(w, r, "error", "Could not add the task.")
	} else {
		s.sessions.addFlash(w, r, "message", "Task added.")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) updateTaskHandler(w http.ResponseWriter, r *http.Request) {
	account := accountFrom(r.Context())
	id, err := taskID(r)
	if err != nil {
		s.flashNotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	var req service.UpdateTaskRequest
	if title := r.PostForm.Get("title"); title != "" {
		req.Title = &title
	}
	if text := r.PostForm.Get("priority"); text != "" {
		if p, err := strconv.Atoi(text); err == nil {
			req.Priority = &p
		}
	}

	dateInvalid := false
	if values, ok := r.PostForm["due_date"]; ok {
		if text := values[0]; text == "" {
			req.ClearDueDate = true
		} else if parsed, err := parseDueDate(text); err != nil {
			// The stored due date stays as it was; other field updates in
			// this request still go through.
			dateInvalid = true
		} else {
			req.DueDate = parsed
		}
	}

	if _, err := s.tasks.Update(r.Context(), account.ID, id, req); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.flashNotFound(w, r)
			return
		}
		s.logger.Error("updating task", zap.Uint("id", id), zap.Error(err))
		s.sessions.addFlash(w, r, "error", "Could not update the task.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if dateInvalid {
		s.sessions.addFlash(w, r, "error", "The due date format is invalid.")
	}
	s.sessions.addFlash(w, r, "message", "Task updated.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) toggleDoneHandler(w http.ResponseWriter, r *http.Request) {
	account := accountFrom(r.Context())
	id, err := taskID(r)
	if err != nil {
		s.flashNotFound(w, r)
		return
	}

	task, err := s.tasks.ToggleDone(r.Context(), account.ID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.flashNotFound(w, r)
			return
		}
		s.logger.Error("toggling task", zap.Uint("id", id), zap.Error(err))
		s.sessions.addFlash(w, r, "error", "Could not update the task.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	s.sessions.addFlash(w, r, "message", fmt.Sprintf("Updated status of %q.", task.Title))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) deleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	account := accountFrom(r.Context())
	id, err := taskID(r)
	if err != nil {
		s.flashNotFound(w, r)
		return
	}

	if err := s.tasks.Delete(r.Context(), account.ID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.flashNotFound(w, r)
			return
		}
		s.logger.Error("deleting task", zap.Uint("id", id), zap.Error(err))
		s.sessions.addFlash(w, r, "error", "Could not delete the task.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	s.sessions.addFlash(w, r, "message", "Task deleted.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// flashNotFound is the shared response for missing tasks and ownership
// mismatches, so other accounts' task ids cannot be probed.
func (s *Server) flashNotFound(w http.ResponseWriter, r *http.Request) {
	s.sessions.addFlash(w, r, "error", "Task not found or you don't have permission.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
