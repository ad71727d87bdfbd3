package handler

import (
	"net/http"

	"authcore/api/middleware"
	"authcore/internal/dto"
	"authcore/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// 5 MiB is plenty for an avatar.
const maxAvatarBytes = 5 << 20

type SettingsHandler struct {
	Service  *service.SettingsService
	Validate *validator.Validate
	Logger   *logrus.Logger
}

func NewSettingsHandler(svc *service.SettingsService, validate *validator.Validate, logger *logrus.Logger) *SettingsHandler {
	return &SettingsHandler{Service: svc, Validate: validate, Logger: logger}
}

func (h *SettingsHandler) UpdateProfile(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeServiceError(c, h.Logger, service.ErrNotAuthorized)
	}
	var req dto.ProfileUpdateRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeValidationError(c)
	}
	if err := validateStruct(h.Validate, req); err != nil {
		return writeValidationError(c)
	}
	update := service.ProfileUpdate{Name: req.Name, Bio: req.Bio, Location: req.Location}
	if err := h.Service.UpdateProfile(c.Request().Context(), userID, update); err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	t := resolverFor(c)
	return c.JSON(http.StatusOK, dto.ActionResponse{
		Success: true,
		Message: t.Resolve("settings.profile.success", nil),
	})
}

func (h *SettingsHandler) UpdateAccount(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeServiceError(c, h.Logger, service.ErrNotAuthorized)
	}
	var req dto.AccountUpdateRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeValidationError(c)
	}
	if err := validateStruct(h.Validate, req); err != nil {
		return writeValidationError(c)
	}
	update := service.AccountUpdate{Name: req.Name, Email: req.Email}
	if err := h.Service.UpdateAccount(c.Request().Context(), userID, update); err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	t := resolverFor(c)
	return c.JSON(http.StatusOK, dto.ActionResponse{
		Success: true,
		Message: t.Resolve("settings.account.success", nil),
	})
}

func (h *SettingsHandler) UpdatePassword(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeServiceError(c, h.Logger, service.ErrNotAuthorized)
	}
	var req dto.PasswordUpdateRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeValidationError(c)
	}
	if err := validateStruct(h.Validate, req); err != nil {
		return writeValidationError(c)
	}
	err := h.Service.UpdatePassword(c.Request().Context(), userID, req.Password, req.ResetPassword)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			t := resolverFor(c)
			return c.JSON(http.StatusUnauthorized, errorBody{
				Error:   "invalid_credentials",
				Message: t.Resolve("settings.password.incorrect", nil),
			})
		}
		return writeServiceError(c, h.Logger, err)
	}
	t := resolverFor(c)
	return c.JSON(http.StatusOK, dto.ActionResponse{
		Success: true,
		Message: t.Resolve("settings.password.success", nil),
	})
}

func (h *SettingsHandler) UpdateAuthentication(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeServiceError(c, h.Logger, service.ErrNotAuthorized)
	}
	var req dto.AuthenticationUpdateRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeValidationError(c)
	}
	update := service.AuthenticationUpdate{IsTwoFactorEnabled: req.IsTwoFactorEnabled}
	if err := h.Service.UpdateAuthentication(c.Request().Context(), userID, update); err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	t := resolverFor(c)
	return c.JSON(http.StatusOK, dto.ActionResponse{
		Success: true,
		Message: t.Resolve("settings.auth.success", nil),
	})
}

// UpdateAvatar takes a multipart "avatar" file.
func (h *SettingsHandler) UpdateAvatar(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeServiceError(c, h.Logger, service.ErrNotAuthorized)
	}
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return writeValidationError(c)
	}
	if fileHeader.Size > maxAvatarBytes {
		return writeValidationError(c)
	}
	contentType := fileHeader.Header.Get("Content-Type")
	switch contentType {
	case "image/png", "image/jpeg", "image/webp":
	default:
		return writeValidationError(c)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	defer file.Close()

	if err := h.Service.UpdateAvatar(c.Request().Context(), userID, file, contentType); err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	t := resolverFor(c)
	return c.JSON(http.StatusOK, dto.ActionResponse{
		Success: true,
		Message: t.Resolve("settings.avatar.success", nil),
	})
}

func (h *SettingsHandler) DeleteAvatar(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeServiceError(c, h.Logger, service.ErrNotAuthorized)
	}
	if err := h.Service.DeleteAvatar(c.Request().Context(), userID); err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	t := resolverFor(c)
	return c.JSON(http.StatusOK, dto.ActionResponse{
		Success: true,
		Message: t.Resolve("settings.avatar.deleted", nil),
	})
}

func (h *SettingsHandler) DeleteAccount(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeServiceError(c, h.Logger, service.ErrNotAuthorized)
	}
	var req dto.DeleteAccountRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeValidationError(c)
	}
	if err := validateStruct(h.Validate, req); err != nil {
		return writeValidationError(c)
	}
	err := h.Service.DeleteAccount(c.Request().Context(), userID, req.Email, req.Password)
	if err != nil {
		t := resolverFor(c)
		switch err {
		case service.ErrEmailNotFound:
			return c.JSON(http.StatusBadRequest, errorBody{
				Error:   "email_not_found",
				Message: t.Resolve("settings.delete.email", nil),
			})
		case service.ErrInvalidCredentials:
			return c.JSON(http.StatusUnauthorized, errorBody{
				Error:   "invalid_credentials",
				Message: t.Resolve("settings.delete.password", nil),
			})
		}
		return writeServiceError(c, h.Logger, err)
	}
	t := resolverFor(c)
	return c.JSON(http.StatusOK, dto.ActionResponse{
		Success: true,
		Message: t.Resolve("settings.delete.success", nil),
	})
}
