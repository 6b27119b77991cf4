package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRequireRejectsAnonymousRequests(t *testing.T) {
	var sessions = NewSessionManager("test-secret", time.Hour)

	var reached = false
	guarded := Require(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	recorder := httptest.NewRecorder()
	guarded.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("anonymous request returned %d, wanted 401", recorder.Code)
	}
	if reached {
		t.Error("the guarded handler ran for an anonymous request")
	}
}

func TestRequireAdmitsAuthenticatedSessions(t *testing.T) {
	var sessions = NewSessionManager("test-secret", time.Hour)

	// log in against a recorder to obtain the session cookie
	login := httptest.NewRecorder()
	if err := sessions.SetAuthenticated(login, httptest.NewRequest(http.MethodPost, "/admin/login", nil), "admin"); err != nil {
		t.Fatalf("establishing session: %v", err)
	}

	request := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	for _, cookie := range login.Result().Cookies() {
		request.AddCookie(cookie)
	}

	var reached = false
	guarded := Require(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		if username := sessions.Username(r); username != "admin" {
			t.Errorf("session username = %q, wanted %q", username, "admin")
		}
	}))

	recorder := httptest.NewRecorder()
	guarded.ServeHTTP(recorder, request)

	if !reached {
		t.Fatal("the guarded handler never ran for an authenticated session")
	}
	if recorder.Code != http.StatusOK {
		t.Errorf("authenticated request returned %d, wanted 200", recorder.Code)
	}
}

func TestClearRevertsToAnonymous(t *testing.T) {
	var sessions = NewSessionManager("test-secret", time.Hour)

	login := httptest.NewRecorder()
	if err := sessions.SetAuthenticated(login, httptest.NewRequest(http.MethodPost, "/admin/login", nil), "admin"); err != nil {
		t.Fatalf("establishing session: %v", err)
	}

	request := httptest.NewRequest(http.MethodGet, "/admin/logout", nil)
	for _, cookie := range login.Result().Cookies() {
		request.AddCookie(cookie)
	}
	if !sessions.IsAuthenticated(request) {
		t.Fatal("session should be authenticated before the clear")
	}

	if err := sessions.Clear(httptest.NewRecorder(), request); err != nil {
		t.Fatalf("clearing session: %v", err)
	}
}
