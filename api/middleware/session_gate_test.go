package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGate() *SessionGate {
	return NewSessionGate(
		[]string{"en", "fr"},
		[]string{"/", "/auth/verify-email"},
		[]string{"/auth/login", "/auth/signup"},
		[]string{"/settings", "/dashboard"},
	)
}

func runGate(t *testing.T, gate *SessionGate, target string, withSession bool) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if withSession {
		req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "some-token"})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := gate.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec
}

func TestSessionGate_AnonymousOnProtectedPage(t *testing.T) {
	rec := runGate(t, newTestGate(), "/settings", false)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/login?callback_url=%2Fsettings", rec.Header().Get("Location"))
}

func TestSessionGate_CallbackKeepsQueryString(t *testing.T) {
	rec := runGate(t, newTestGate(), "/dashboard?tab=security", false)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/login?callback_url=%2Fdashboard%3Ftab%3Dsecurity", rec.Header().Get("Location"))
}

func TestSessionGate_LocalePrefixedProtectedPage(t *testing.T) {
	for _, target := range []string{"/fr/settings", "/en/dashboard", "/FR/settings/"} {
		rec := runGate(t, newTestGate(), target, false)
		assert.Equal(t, http.StatusFound, rec.Code, "path %s should redirect", target)
	}
}

func TestSessionGate_AnonymousOnPublicPage(t *testing.T) {
	for _, target := range []string{"/", "/auth/verify-email", "/en/auth/verify-email"} {
		rec := runGate(t, newTestGate(), target, false)
		assert.Equal(t, http.StatusOK, rec.Code, "path %s should pass through", target)
	}
}

func TestSessionGate_AnonymousOnAuthPage(t *testing.T) {
	rec := runGate(t, newTestGate(), "/auth/login", false)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionGate_LoggedInOnAuthPage(t *testing.T) {
	for _, target := range []string{"/auth/login", "/auth/signup", "/fr/auth/login"} {
		rec := runGate(t, newTestGate(), target, true)
		assert.Equal(t, http.StatusFound, rec.Code, "path %s should redirect", target)
		assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	}
}

func TestSessionGate_LoggedInOnProtectedPage(t *testing.T) {
	rec := runGate(t, newTestGate(), "/settings", true)

	assert.Equal(t, http.StatusOK, rec.Code)
}

// Route matching is exact: an unknown path is neither protected nor
// auth-only, so the gate stays out of the way.
func TestSessionGate_UnlistedPathPassesThrough(t *testing.T) {
	for _, target := range []string{"/settings/extra", "/dashboards", "/about"} {
		rec := runGate(t, newTestGate(), target, false)
		assert.Equal(t, http.StatusOK, rec.Code, "path %s should pass through", target)
	}
}

// Only page navigation is gated; API posts to the same paths go through.
func TestSessionGate_IgnoresNonGETRequests(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "stale"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := newTestGate().Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSanitizeCallbackURL(t *testing.T) {
	cases := map[string]string{
		"/settings":                 "/settings",
		"/dashboard?tab=security":   "/dashboard?tab=security",
		"":                          "/",
		"https://evil.example.com":  "/",
		"http://evil.example.com":   "/",
		"//evil.example.com":        "/",
		"settings":                  "/",
		"javascript:alert(1)":       "/",
		"/fr/settings":              "/fr/settings",
	}
	for input, want := range cases {
		assert.Equal(t, want, SanitizeCallbackURL(input), "input %q", input)
	}
}
