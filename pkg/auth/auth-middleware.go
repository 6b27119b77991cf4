package auth

import (
	"net/http"

	JSON "github.com/mvanetti/atelier/pkg/json-utilities"
)

// Require gates admin routes behind an authenticated session: anonymous requests
// receive a 401 response and the guarded handler never executes.
func Require(sessions *SessionManager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, request *http.Request) {
			if !sessions.IsAuthenticated(request) {
				JSON.Unauthorised(w, "Authentication required")
				return
			}
			next.ServeHTTP(w, request)
		})
	}
}
