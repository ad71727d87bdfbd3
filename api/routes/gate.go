package routes

import (
	"authcore/api/middleware"
	"authcore/internal/i18n"
)

const DefaultLoginRedirect = "/dashboard"

// Page-route classification for the session gate. Paths may carry a locale
// prefix (/en, /fr); the gate matches either way.
var (
	PublicRoutes = []string{"/", "/auth/verify-email", "/auth/reset-password"}

	AuthRoutes = []string{"/auth/login", "/auth/signup", "/auth/forgot-password"}

	ProtectedRoutes = []string{"/settings", "/dashboard"}
)

func NewSessionGate() *middleware.SessionGate {
	gate := middleware.NewSessionGate(i18n.Locales(), PublicRoutes, AuthRoutes, ProtectedRoutes)
	gate.DefaultRedirect = DefaultLoginRedirect
	return gate
}
