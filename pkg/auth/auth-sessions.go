package auth

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

const (
	sessionName          = "atelier-session"
	sessionAuthenticated = "authenticated"
	sessionUsername      = "username"
)

// SessionManager wraps a cookie store holding the authenticated flag and the
// logged in username; sessions lapse after the configured lifetime or on Clear.
type SessionManager struct {
	store *sessions.CookieStore
}

func NewSessionManager(secret string, lifetime time.Duration) *SessionManager {
	var store = sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(lifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionManager{store: store}
}

// SetAuthenticated marks the session as authenticated for the given username.
func (m *SessionManager) SetAuthenticated(w http.ResponseWriter, r *http.Request, username string) error {
	session, err := m.store.Get(r, sessionName)
	if err != nil {
		return err
	}
	session.Values[sessionAuthenticated] = true
	session.Values[sessionUsername] = username
	return session.Save(r, w)
}

// IsAuthenticated reports whether the request carries an authenticated session;
// undecodable cookies count as anonymous.
func (m *SessionManager) IsAuthenticated(r *http.Request) bool {
	session, err := m.store.Get(r, sessionName)
	if err != nil {
		return false
	}
	authenticated, ok := session.Values[sessionAuthenticated].(bool)
	return ok && authenticated
}

// Username returns the logged in username, empty for anonymous sessions.
func (m *SessionManager) Username(r *http.Request) string {
	session, err := m.store.Get(r, sessionName)
	if err != nil {
		return ""
	}
	username, _ := session.Values[sessionUsername].(string)
	return username
}

// Clear destroys the session, reverting the client to the anonymous state.
func (m *SessionManager) Clear(w http.ResponseWriter, r *http.Request) error {
	session, err := m.store.Get(r, sessionName)
	if err != nil {
		return err
	}
	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
