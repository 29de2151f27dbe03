package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"easyimg-web/internal/session"
)

func TestRequireAuthCookie(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	guarded := RequireAuthCookie(next)

	t.Run("no cookie redirects to login", func(t *testing.T) {
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("a non-truthy cookie redirects to login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: session.GuardCookieName, Value: "false"})

		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)

		require.Equal(t, http.StatusSeeOther, rec.Code)
	})

	t.Run("a truthy cookie passes through, even a stale one", func(t *testing.T) {
		// The guard only checks presence; expiry is the handlers' concern.
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: session.GuardCookieName, Value: "true"})

		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})
}
