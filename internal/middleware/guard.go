package middleware

import (
	"net/http"

	"easyimg-web/internal/session"
)

// RequireAuthCookie is the coarse route guard in front of the dashboard: it
// only checks that the boolean authentication cookie is present and truthy,
// redirecting to the login page otherwise. It deliberately does not verify
// the signed session or its expiry; that finer gate runs in the handlers.
func RequireAuthCookie(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(session.GuardCookieName)
		if err != nil || cookie.Value != "true" {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}
