package middleware

import (
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
)

// SessionGate classifies page paths as public, auth-only or protected and
// issues the pre-auth redirects: anonymous visitors are bounced off
// protected pages to the login page (carrying a sanitized callback URL), and
// logged-in visitors are bounced off the login/signup pages to the default
// destination. It is a routing decision only; the real access control lives
// in the auth middleware and the services behind it.
type SessionGate struct {
	Locales         []string
	PublicRoutes    []string
	AuthRoutes      []string
	ProtectedRoutes []string
	LoginPath       string
	DefaultRedirect string

	// HasSession reports whether the request carries a session artifact.
	// Presence is enough here; validity is enforced elsewhere.
	HasSession func(c echo.Context) bool

	authPattern      *regexp.Regexp
	protectedPattern *regexp.Regexp
}

func NewSessionGate(locales, public, auth, protected []string) *SessionGate {
	g := &SessionGate{
		Locales:         locales,
		PublicRoutes:    public,
		AuthRoutes:      auth,
		ProtectedRoutes: protected,
		LoginPath:       "/auth/login",
		DefaultRedirect: "/dashboard",
		HasSession:      hasSessionCookie,
	}
	g.authPattern = g.compile(auth)
	g.protectedPattern = g.compile(protected)
	return g
}

func (g *SessionGate) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Page navigation only; JSON posts to the same paths go through.
			if method := c.Request().Method; method != http.MethodGet && method != http.MethodHead {
				return next(c)
			}

			path := c.Request().URL.Path
			session := g.HasSession != nil && g.HasSession(c)

			if !session && g.protectedPattern.MatchString(path) {
				callback := SanitizeCallbackURL(path + queryString(c.Request().URL))
				target := g.LoginPath + "?callback_url=" + url.QueryEscape(callback)
				return c.Redirect(http.StatusFound, target)
			}

			if session && g.authPattern.MatchString(path) {
				return c.Redirect(http.StatusFound, g.DefaultRedirect)
			}

			return next(c)
		}
	}
}

// compile builds one case-insensitive pattern for a route list, with an
// optional locale prefix: ^(/(en|fr))?(/settings|/dashboard)/?$
func (g *SessionGate) compile(routes []string) *regexp.Regexp {
	alternatives := make([]string, 0, len(routes))
	for _, route := range routes {
		if route == "/" {
			alternatives = append(alternatives, "", "/")
			continue
		}
		alternatives = append(alternatives, regexp.QuoteMeta(route))
	}
	pattern := "^(/(" + strings.Join(g.Locales, "|") + "))?(" + strings.Join(alternatives, "|") + ")/?$"
	return regexp.MustCompile("(?i)" + pattern)
}

// SanitizeCallbackURL rejects anything that is not a site-relative path, so
// the login redirect cannot be turned into an open redirect.
func SanitizeCallbackURL(callback string) string {
	if callback == "" ||
		strings.HasPrefix(callback, "http") ||
		strings.HasPrefix(callback, "//") ||
		!strings.HasPrefix(callback, "/") {
		return "/"
	}
	return callback
}

func queryString(u *url.URL) string {
	if u.RawQuery == "" {
		return ""
	}
	return "?" + u.RawQuery
}

func hasSessionCookie(c echo.Context) bool {
	cookie, err := c.Cookie("refresh_token")
	return err == nil && cookie.Value != ""
}
