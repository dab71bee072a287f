package middleware

import (
	"net/http"

	"github.com/mathewar/apty/internal/auth"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "apty_session"

// Session resolves the request's principal from the session cookie and
// attaches it to the context. It never rejects: requests with a missing,
// malformed, or expired session proceed anonymously, and each handler decides
// what an anonymous caller may do.
func Session(secret string, sessions auth.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			sessionID, err := auth.ParseSessionToken(secret, cookie.Value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := sessions.Get(r.Context(), sessionID)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := auth.ContextWithPrincipal(r.Context(), auth.ResolvePrincipal(sess))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
