package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"easyimg-web/internal/model"
	"easyimg-web/internal/session"
)

func TestLoginSubmit(t *testing.T) {
	t.Parallel()

	t.Run("valid credentials set both cookies and redirect to the dashboard", func(t *testing.T) {
		f := newFixture(t, &fakeAPI{creds: model.Credentials{
			Token:    "backend-token",
			ExpireAt: time.Now().Add(time.Hour).Unix(),
		}})

		rec := httptest.NewRecorder()
		f.login.Submit(rec, postForm("/login", url.Values{
			"username":              {"admin"},
			"password":              {"secret"},
			"cf-turnstile-response": {"ts-response"},
		}, nil))

		requireRedirect(t, rec, "/dashboard")
		require.Equal(t, "ts-response", f.api.lastTurnstile)

		names := map[string]bool{}
		for _, cookie := range rec.Result().Cookies() {
			names[cookie.Name] = true
		}
		require.True(t, names[session.CookieName])
		require.True(t, names[session.GuardCookieName])
	})

	t.Run("rejected credentials render the generic message without a cookie", func(t *testing.T) {
		f := newFixture(t, &fakeAPI{loginErr: model.ErrInvalidCredentials})

		rec := httptest.NewRecorder()
		f.login.Submit(rec, postForm("/login", url.Values{
			"username": {"admin"},
			"password": {"wrong"},
		}, nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Invalid username or password")
		require.Empty(t, rec.Result().Cookies())
	})

	t.Run("empty fields never reach the backend", func(t *testing.T) {
		f := newFixture(t, &fakeAPI{})

		rec := httptest.NewRecorder()
		f.login.Submit(rec, postForm("/login", url.Values{
			"username": {""},
			"password": {""},
		}, nil))

		require.Contains(t, rec.Body.String(), "Username and password are required")
		require.Zero(t, f.api.logins)
	})

	t.Run("backend outage renders a non-credential error", func(t *testing.T) {
		f := newFixture(t, &fakeAPI{loginErr: model.ErrBackendUnavailable})

		rec := httptest.NewRecorder()
		f.login.Submit(rec, postForm("/login", url.Values{
			"username": {"admin"},
			"password": {"secret"},
		}, nil))

		require.Contains(t, rec.Body.String(), "An error occurred during login")
		require.NotContains(t, rec.Body.String(), "Invalid username or password")
	})
}

func TestLoginPage(t *testing.T) {
	t.Parallel()

	t.Run("renders the bot verification widget with the configured key", func(t *testing.T) {
		f := newFixture(t, &fakeAPI{})

		rec := httptest.NewRecorder()
		f.login.Page(rec, getPage("/login", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `data-sitekey="site-key-under-test"`)
	})

	t.Run("an authenticated visitor is sent to the dashboard", func(t *testing.T) {
		f := newFixture(t, &fakeAPI{})
		cookies := f.authenticate(t)

		rec := httptest.NewRecorder()
		f.login.Page(rec, getPage("/login", cookies))

		requireRedirect(t, rec, "/dashboard")
	})
}

func TestLogout(t *testing.T) {
	t.Parallel()

	f := newFixture(t, &fakeAPI{})
	cookies := f.authenticate(t)

	rec := httptest.NewRecorder()
	f.login.Logout(rec, postForm("/logout", url.Values{}, cookies))

	requireRedirect(t, rec, "/login")

	cleared := map[string]bool{}
	for _, cookie := range rec.Result().Cookies() {
		if cookie.MaxAge < 0 && cookie.Value == "" {
			cleared[cookie.Name] = true
		}
	}
	require.True(t, cleared[session.CookieName])
	require.True(t, cleared[session.GuardCookieName])
}
