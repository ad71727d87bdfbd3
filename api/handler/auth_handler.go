package handler

import (
	"context"
	"net/http"
	"time"

	"authcore/api/middleware"
	"authcore/internal/dto"
	"authcore/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	Service           *service.AuthService
	Validate          *validator.Validate
	Logger            *logrus.Logger
	RefreshCookieName string
	CookieDomain      string
	SecureCookies     bool
	SameSite          http.SameSite
}

func NewAuthHandler(svc *service.AuthService, validate *validator.Validate, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		Service:           svc,
		Validate:          validate,
		Logger:            logger,
		RefreshCookieName: "refresh_token",
		SecureCookies:     true,
		SameSite:          http.SameSiteStrictMode,
	}
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req dto.SignupRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeValidationError(c)
	}
	if err := validateStruct(h.Validate, req); err != nil {
		return writeValidationError(c)
	}
	input := service.SignupInput{Email: req.Email, Password: req.Password, Name: req.Name}
	if err := h.Service.Signup(c.Request().Context(), input); err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	t := resolverFor(c)
	return c.JSON(http.StatusCreated, dto.ActionResponse{
		Success: true,
		Message: t.Resolve("signup.success", nil),
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeValidationError(c)
	}
	if err := validateStruct(h.Validate, req); err != nil {
		return writeValidationError(c)
	}
	input := service.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		Code:      req.Code,
		IPAddress: stringPtr(c.RealIP()),
		UserAgent: stringPtr(c.Request().UserAgent()),
	}
	result, err := h.Service.Login(c.Request().Context(), input)
	if err != nil {
		return writeServiceError(c, h.Logger, err)
	}

	t := resolverFor(c)
	response := dto.LoginResponse{
		Success:     result.Success,
		VerifyEmail: result.VerifyEmail,
		TwoFactor:   result.TwoFactor,
		Totp:        result.Totp,
	}
	switch {
	case result.VerifyEmail:
		response.Message = t.Resolve("login.verifyEmail", map[string]any{"email": req.Email})
	case result.TwoFactor:
		response.Message = t.Resolve("login.twoFactor", nil)
	case result.Totp:
		response.Message = t.Resolve("login.totp", nil)
	default:
		response.Message = t.Resolve("login.success", nil)
		response.AccessToken = result.AccessToken
		response.ExpiresIn = result.ExpiresIn
		h.setRefreshCookie(c, result.RefreshToken, result.RefreshExpiresIn)
	}
	return c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	var req dto.VerifyEmailRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeValidationError(c)
	}
	if err := h.Service.VerifyEmail(c.Request().Context(), req.Token); err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	t := resolverFor(c)
	return c.JSON(http.StatusOK, dto.ActionResponse{
		Success: true,
		Message: t.Resolve("verifyEmail.success", nil),
	})
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req dto.ForgotPasswordRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeValidationError(c)
	}
	if err := validateStruct(h.Validate, req); err != nil {
		return writeValidationError(c)
	}
	if err := h.Service.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	t := resolverFor(c)
	return c.JSON(http.StatusOK, dto.ActionResponse{
		Success: true,
		Message: t.Resolve("forgotPassword.success", nil),
	})
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req dto.ResetPasswordRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeValidationError(c)
	}
	if err := validateStruct(h.Validate, req); err != nil {
		return writeValidationError(c)
	}
	if err := h.Service.ResetPassword(c.Request().Context(), req.Token, req.Password); err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	t := resolverFor(c)
	return c.JSON(http.StatusOK, dto.ActionResponse{
		Success: true,
		Message: t.Resolve("resetPassword.success", nil),
	})
}

func (h *AuthHandler) ResendVerifyEmailLink(c echo.Context) error {
	return h.resend(c, h.Service.ResendVerifyEmailLink, "signup.success")
}

func (h *AuthHandler) ResendForgotPasswordLink(c echo.Context) error {
	return h.resend(c, h.Service.ResendForgotPasswordLink, "forgotPassword.success")
}

func (h *AuthHandler) ResendTwoFactorCode(c echo.Context) error {
	return h.resend(c, h.Service.ResendTwoFactorCode, "twoFactor.resend.success")
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	refreshToken := h.readRefreshCookie(c)
	if refreshToken == "" {
		return writeServiceError(c, h.Logger, service.ErrNotAuthorized)
	}
	result, err := h.Service.Refresh(c.Request().Context(), refreshToken)
	if err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	h.setRefreshCookie(c, result.RefreshToken, result.RefreshExpiresIn)
	return c.JSON(http.StatusOK, dto.LoginResponse{
		Success:     true,
		AccessToken: result.AccessToken,
		ExpiresIn:   result.ExpiresIn,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeServiceError(c, h.Logger, service.ErrNotAuthorized)
	}
	sessionID, ok := middleware.SessionIDFromContext(c)
	if !ok {
		return writeServiceError(c, h.Logger, service.ErrNotAuthorized)
	}
	if err := h.Service.Logout(c.Request().Context(), sessionID, &userID, stringPtr(c.RealIP())); err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	h.clearRefreshCookie(c)
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) LogoutAll(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeServiceError(c, h.Logger, service.ErrNotAuthorized)
	}
	if err := h.Service.LogoutAll(c.Request().Context(), userID, stringPtr(c.RealIP())); err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	h.clearRefreshCookie(c)
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeServiceError(c, h.Logger, service.ErrNotAuthorized)
	}
	user, err := h.Service.GetCurrentUser(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	if user == nil {
		return writeServiceError(c, h.Logger, service.ErrNotAuthorized)
	}
	return c.JSON(http.StatusOK, dto.UserResponseFromEntity(user))
}

func (h *AuthHandler) resend(c echo.Context, action func(ctx context.Context, email string) error, successKey string) error {
	var req dto.ResendRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeValidationError(c)
	}
	if err := validateStruct(h.Validate, req); err != nil {
		return writeValidationError(c)
	}
	if err := action(c.Request().Context(), req.Email); err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	t := resolverFor(c)
	return c.JSON(http.StatusOK, dto.ActionResponse{
		Success: true,
		Message: t.Resolve(successKey, nil),
	})
}

func (h *AuthHandler) setRefreshCookie(c echo.Context, token string, expiresIn int64) {
	if token == "" {
		return
	}
	maxAge := int(expiresIn)
	if maxAge < 0 {
		maxAge = 0
	}
	c.SetCookie(&http.Cookie{
		Name:     h.RefreshCookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.CookieDomain,
		MaxAge:   maxAge,
		Expires:  time.Now().Add(time.Duration(expiresIn) * time.Second),
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: h.SameSite,
	})
}

func (h *AuthHandler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     h.RefreshCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: h.SameSite,
	})
}

func (h *AuthHandler) readRefreshCookie(c echo.Context) string {
	cookie, err := c.Cookie(h.RefreshCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
