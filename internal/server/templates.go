package server

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/tevirein/todo-auth/internal/domain"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplates() *template.Template {
	funcs := template.FuncMap{
		// dateValue renders an optional due date in the boundary format,
		// or an empty string when the task has no deadline.
		"dateValue": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format(dateLayout)
		},
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

// pageData carries everything a view needs. Password hashes never pass
// through here: templates only touch Account.Username.
type pageData struct {
	Title   string
	Flashes []flashMessage
	Account *domain.Account
	Tasks   []domain.Task
	Query   string
}

func (s *Server) render(w http.ResponseWriter, name string, data pageData) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("rendering template", zap.String("template", name), zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
