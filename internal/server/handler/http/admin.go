// Package http provides HTTP routing and handlers for the exhibition site:
// the admin session endpoints, the public guestbook API and the exhibition
// status endpoints.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/atinyakov/exhibition/internal/middleware"
	"github.com/atinyakov/exhibition/internal/models"
	"go.uber.org/zap"
)

// AuthService defines the admin authentication operations required by the
// AdminHandler.
type AuthService interface {
	// Login returns a session token for valid credentials, or
	// models.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, error)
}

// AdminHandler handles the admin login, logout and root endpoints.
type AdminHandler struct {
	// AuthService verifies credentials and issues session tokens.
	AuthService AuthService
	// SecureCookie marks the session cookie Secure.
	SecureCookie bool
	// SessionTTL is the session cookie max-age.
	SessionTTL time.Duration
	// Logger records backend failures.
	Logger *zap.Logger
}

const loginForm = `<!doctype html>
<html><head><meta charset="utf-8"><title>Admin login</title></head>
<body>
<form method="post" action="/admin/login">
<input name="username" autocomplete="username">
<input name="password" type="password" autocomplete="current-password">
<button type="submit">Login</button>
</form>
</body></html>
`

// LoginPage handles GET /admin/login. An already signed-in admin is sent to
// the admin root.
func (h *AdminHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.IdentityFromContext(r.Context()) != nil {
		http.Redirect(w, r, middleware.AdminPath, http.StatusSeeOther)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(loginForm))
}

// Login handles POST /admin/login with form fields username and password.
// On success it sets the session cookie and redirects to the admin root.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := h.AuthService.Login(r.Context(), r.PostForm.Get("username"), r.PostForm.Get("password"))
	if errors.Is(err, models.ErrInvalidCredentials) {
		writeError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	if err != nil {
		h.Logger.Error("admin login failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.SessionTTL / time.Second),
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteStrictMode,
	})
	http.Redirect(w, r, middleware.AdminPath, http.StatusSeeOther)
}

// Logout handles POST /admin/logout by expiring the session cookie. The
// token itself stays valid until it expires; there is no server-side
// revocation.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteStrictMode,
	})
	http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
}

// Root handles GET /admin and reports the signed-in admin.
func (h *AdminHandler) Root(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFromContext(r.Context())
	if id == nil {
		http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"username": id.Username})
}
