package routes

import (
	"time"

	"authcore/api/handler"
	"authcore/api/middleware"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type Router struct {
	Echo           *echo.Echo
	Auth           *handler.AuthHandler
	Totp           *handler.TotpHandler
	Settings       *handler.SettingsHandler
	AuthMiddleware middleware.AuthMiddleware
	AuthRate       *middleware.RateLimiter
	LoginRate      *middleware.RateLimiter
}

func NewRouter(
	e *echo.Echo,
	authHandler *handler.AuthHandler,
	totpHandler *handler.TotpHandler,
	settingsHandler *handler.SettingsHandler,
	authMiddleware middleware.AuthMiddleware,
) *Router {
	return &Router{
		Echo:           e,
		Auth:           authHandler,
		Totp:           totpHandler,
		Settings:       settingsHandler,
		AuthMiddleware: authMiddleware,
		AuthRate:       middleware.NewRateLimiter(rate.Limit(5), 10, 5*time.Minute),
		LoginRate:      middleware.NewRateLimiter(rate.Limit(2), 4, 10*time.Minute),
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo

	e.POST("/auth/signup", r.Auth.Signup, r.AuthRate.Middleware())
	e.POST("/auth/login", r.Auth.Login, r.LoginRate.Middleware())
	e.POST("/auth/verify-email", r.Auth.VerifyEmail, r.AuthRate.Middleware())
	e.POST("/auth/password/forgot", r.Auth.ForgotPassword, r.LoginRate.Middleware())
	e.POST("/auth/password/reset", r.Auth.ResetPassword, r.AuthRate.Middleware())
	e.POST("/auth/resend/verify-email", r.Auth.ResendVerifyEmailLink, r.LoginRate.Middleware())
	e.POST("/auth/resend/forgot-password", r.Auth.ResendForgotPasswordLink, r.LoginRate.Middleware())
	e.POST("/auth/resend/two-factor", r.Auth.ResendTwoFactorCode, r.LoginRate.Middleware())
	e.POST("/auth/refresh", r.Auth.Refresh, r.AuthRate.Middleware())
	e.POST("/auth/logout", r.Auth.Logout, r.AuthMiddleware.RequireAuth)
	e.POST("/auth/logout-all", r.Auth.LogoutAll, r.AuthMiddleware.RequireAuth)

	e.POST("/totp/generate", r.Totp.Generate, r.AuthMiddleware.RequireAuth)
	e.POST("/totp/verify", r.Totp.Verify, r.AuthRate.Middleware())
	e.POST("/totp/confirm", r.Totp.Confirm, r.AuthMiddleware.RequireAuth)
	e.POST("/totp/disable", r.Totp.Disable, r.AuthMiddleware.RequireAuth)

	e.GET("/me", r.Auth.Me, r.AuthMiddleware.RequireAuth)

	e.PATCH("/settings/profile", r.Settings.UpdateProfile, r.AuthMiddleware.RequireAuth)
	e.PATCH("/settings/account", r.Settings.UpdateAccount, r.AuthMiddleware.RequireAuth)
	e.PATCH("/settings/password", r.Settings.UpdatePassword, r.AuthMiddleware.RequireAuth)
	e.PATCH("/settings/authentication", r.Settings.UpdateAuthentication, r.AuthMiddleware.RequireAuth)
	e.PUT("/settings/avatar", r.Settings.UpdateAvatar, r.AuthMiddleware.RequireAuth)
	e.DELETE("/settings/avatar", r.Settings.DeleteAvatar, r.AuthMiddleware.RequireAuth)
	e.DELETE("/settings/account", r.Settings.DeleteAccount, r.AuthMiddleware.RequireAuth)
}
