package server

import (
	"encoding/gob"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	sessionName       = "todo_session"
	sessionAccountKey = "account_id"
)

// flashMessage is a one-shot user-facing notice, rendered once by the next
// page and then discarded. Category is "message" or "error".
type flashMessage struct {
	Category string
	Text     string
}

func init() {
	gob.Register(flashMessage{})
}

// sessionManager wraps the cookie store holding the signed-in account id
// and pending flash messages.
type sessionManager struct {
	store *sessions.CookieStore
}

func newSessionManager(secret []byte) *sessionManager {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &sessionManager{store: store}
}

// accountID returns the signed-in account id, if any. A malformed or
// tampered cookie simply reads as no session.
func (m *sessionManager) accountID(r *http.Request) (uint, bool) {
	session, _ := m.store.Get(r, sessionName)
	id, ok := session.Values[sessionAccountKey].(uint)
	return id, ok
}

func (m *sessionManager) signIn(w http.ResponseWriter, r *http.Request, accountID uint) error {
	session, _ := m.store.Get(r, sessionName)
	session.Values[sessionAccountKey] = accountID
	return session.Save(r, w)
}

// signOut clears the session identity. Idempotent.
func (m *sessionManager) signOut(w http.ResponseWriter, r *http.Request) {
	session, _ := m.store.Get(r, sessionName)
	delete(session.Values, sessionAccountKey)
	_ = session.Save(r, w)
}

func (m *sessionManager) addFlash(w http.ResponseWriter, r *http.Request, category, text string) {
	session, _ := m.store.Get(r, sessionName)
	session.AddFlash(flashMessage{Category: category, Text: text})
	_ = session.Save(r, w)
}

// takeFlashes drains and returns the pending flash messages.
func (m *sessionManager) takeFlashes(w http.ResponseWriter, r *http.Request) []flashMessage {
	session, _ := m.store.Get(r, sessionName)
	raw := session.Flashes()
	if len(raw) > 0 {
		_ = session.Save(r, w)
	}
	flashes := make([]flashMessage, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(flashMessage); ok {
			flashes = append(flashes, f)
		}
	}
	return flashes
}
