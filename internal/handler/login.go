package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"easyimg-web/internal/listing"
	"easyimg-web/internal/model"
	"easyimg-web/internal/session"
)

type authenticator interface {
	Login(ctx context.Context, username string, password string, turnstileToken string) (model.Credentials, error)
}

// LoginHandler serves the admin login page and the logout action.
type LoginHandler struct {
	client           authenticator
	sessions         *session.Manager
	listings         *listing.Store
	renderer         *Renderer
	turnstileSiteKey string
}

func NewLoginHandler(client authenticator, sessions *session.Manager, listings *listing.Store, renderer *Renderer, turnstileSiteKey string) *LoginHandler {
	return &LoginHandler{
		client:           client,
		sessions:         sessions,
		listings:         listings,
		renderer:         renderer,
		turnstileSiteKey: turnstileSiteKey,
	}
}

type loginView struct {
	Error            string
	Username         string
	TurnstileSiteKey string
}

func (h *LoginHandler) Page(w http.ResponseWriter, r *http.Request) {
	// Already authenticated sessions go straight to the dashboard.
	if _, err := h.sessions.Current(r); err == nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	h.renderer.render(w, http.StatusOK, "login.html", loginView{TurnstileSiteKey: h.turnstileSiteKey})
}

func (h *LoginHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.render(w, http.StatusBadRequest, "login.html", loginView{
			Error:            "An error occurred during login",
			TurnstileSiteKey: h.turnstileSiteKey,
		})
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")
	turnstileToken := r.PostFormValue("cf-turnstile-response")

	if username == "" || password == "" {
		h.renderer.render(w, http.StatusOK, "login.html", loginView{
			Error:            "Username and password are required",
			Username:         username,
			TurnstileSiteKey: h.turnstileSiteKey,
		})
		return
	}

	creds, err := h.client.Login(r.Context(), username, password, turnstileToken)
	if err != nil {
		message := "An error occurred during login"
		if errors.Is(err, model.ErrInvalidCredentials) {
			message = "Invalid username or password"
		} else {
			slog.Error("login failed", "error", err)
		}
		h.renderer.render(w, http.StatusOK, "login.html", loginView{
			Error:            message,
			Username:         username,
			TurnstileSiteKey: h.turnstileSiteKey,
		})
		return
	}

	if _, err := h.sessions.Issue(w, creds); err != nil {
		slog.Error("failed to issue session", "error", err)
		h.renderer.render(w, http.StatusInternalServerError, "login.html", loginView{
			Error:            "An error occurred during login",
			Username:         username,
			TurnstileSiteKey: h.turnstileSiteKey,
		})
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout clears the stored credential unconditionally and drops the listing
// session before redirecting to the login page.
func (h *LoginHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, err := h.sessions.Current(r); err == nil {
		h.listings.Drop(sess.ID)
	}

	h.sessions.Clear(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
