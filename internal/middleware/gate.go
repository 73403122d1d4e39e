package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/atinyakov/exhibition/internal/session"
	"github.com/atinyakov/exhibition/internal/window"
)

// Paths the gate knows about.
const (
	SessionCookie = "session"
	AdminPath     = "/admin"
	LoginPath     = "/admin/login"
	LogoutPath    = "/admin/logout"
	TeaserPath    = "/teaser"
	APIPath       = "/api"
)

// Gate resolves the session identity of every request and enforces the
// admin and pre-opening redirects. It never produces an application error:
// it either redirects with 303 or passes the request on.
type Gate struct {
	codec          session.Codec
	window         window.Window
	teaserRedirect bool
	now            func() time.Time
}

// NewGate creates a Gate. When teaserRedirect is set, anonymous visitors are
// sent to the teaser until the exhibition starts.
func NewGate(codec session.Codec, w window.Window, teaserRedirect bool) *Gate {
	return &Gate{codec: codec, window: w, teaserRedirect: teaserRedirect, now: time.Now}
}

// Handler wraps next with the gate.
//
// The session cookie is attacker-controlled; it is only ever decoded, and a
// token that does not decode is treated as no session.
func (g *Gate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var token string
		if c, err := r.Cookie(SessionCookie); err == nil {
			token = c.Value
		}
		identity := g.codec.Decode(token)
		r = r.WithContext(WithIdentity(r.Context(), identity))

		path := r.URL.Path
		if identity == nil && underPrefix(path, AdminPath) && path != LoginPath {
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}

		if g.teaserRedirect && identity == nil &&
			g.window.IsBeforeExhibition(g.now()) && !allowedBeforeOpening(path) {
			http.Redirect(w, r, TeaserPath, http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func allowedBeforeOpening(path string) bool {
	return underPrefix(path, TeaserPath) ||
		underPrefix(path, APIPath) ||
		path == LoginPath ||
		path == LogoutPath
}

// underPrefix reports whether path is prefix itself or a sub-path of it.
func underPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
