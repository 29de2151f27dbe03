// Package session persists the admin credential in the browser's cookie jar.
// The backend bearer token and its absolute expiry travel inside an
// HMAC-signed JWT cookie minted by this process; a separate plain boolean
// cookie feeds the coarse route guard. The two are deliberately not
// synchronized — the guard only checks presence, the gate checks expiry.
package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"easyimg-web/internal/model"
)

const (
	// CookieName holds the signed session JWT.
	CookieName = "easyimg_session"
	// GuardCookieName is the boolean cookie the route guard inspects.
	GuardCookieName = "isAuthenticated"
)

// Session is an authenticated admin session derived from the stored cookie.
type Session struct {
	ID       string
	Token    string
	ExpireAt time.Time
}

type claims struct {
	Token string `json:"tok"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	secure bool
}

func NewManager(secret string, secure bool) *Manager {
	return &Manager{secret: []byte(secret), secure: secure}
}

// Issue mints a new session from backend credentials and writes both
// cookies. The cookie lifetime matches the backend-reported token expiry.
func (m *Manager) Issue(w http.ResponseWriter, creds model.Credentials) (Session, error) {
	expireAt := time.Unix(creds.ExpireAt, 0)
	sess := Session{
		ID:       uuid.NewString(),
		Token:    creds.Token,
		ExpireAt: expireAt,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Token: creds.Token,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			ExpiresAt: jwt.NewNumericDate(expireAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return Session{}, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		Expires:  expireAt,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     GuardCookieName,
		Value:    "true",
		Path:     "/",
		Expires:  expireAt,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return sess, nil
}

// Current derives the session from the request's cookies. A token whose
// expiry has passed is treated as absent even though the cookie string is
// still there; the caller is expected to clear the stored credential.
func (m *Manager) Current(r *http.Request) (Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return Session{}, model.ErrNoSession
	}

	parsed, err := jwt.ParseWithClaims(cookie.Value, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Session{}, model.ErrSessionExpired
		}
		return Session{}, model.ErrNoSession
	}

	parsedClaims, ok := parsed.Claims.(*claims)
	if !ok || parsedClaims.Token == "" {
		return Session{}, model.ErrNoSession
	}

	return Session{
		ID:       parsedClaims.ID,
		Token:    parsedClaims.Token,
		ExpireAt: parsedClaims.ExpiresAt.Time,
	}, nil
}

// Clear discards both cookies unconditionally.
func (m *Manager) Clear(w http.ResponseWriter) {
	for _, name := range []string{CookieName, GuardCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: name == CookieName,
			Secure:   m.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
