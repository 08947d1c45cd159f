package middleware

import (
	"context"
	"net/http"
	"strings"

	"clickmee/internal/domain"
	"clickmee/internal/service"

	"github.com/gorilla/mux"
)

type contextKey int

const sessionKey contextKey = iota

// Auth resolves the bearer token into a session and attaches it to the
// request context. Requests without a valid token pass through with no
// session; each handler decides whether that is an error. A click with
// no session must answer "authentication required" rather than 401-ing
// at the router edge.
func Auth(authService *service.AuthService) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if session := authService.SessionFromToken(token); session != nil {
				r = r.WithContext(context.WithValue(r.Context(), sessionKey, session))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Session returns the authenticated session for a request, or nil
func Session(r *http.Request) *domain.Session {
	session, _ := r.Context().Value(sessionKey).(*domain.Session)
	return session
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
