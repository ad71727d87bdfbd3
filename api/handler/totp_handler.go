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

type TotpHandler struct {
	Service  *service.TotpService
	Validate *validator.Validate
	Logger   *logrus.Logger
}

func NewTotpHandler(svc *service.TotpService, validate *validator.Validate, logger *logrus.Logger) *TotpHandler {
	return &TotpHandler{Service: svc, Validate: validate, Logger: logger}
}

// Generate starts authenticator enrollment: a new secret, URI and QR image.
// TOTP sign-in stays off until the user confirms with a first valid code.
func (h *TotpHandler) Generate(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeServiceError(c, h.Logger, service.ErrNotAuthorized)
	}
	var req dto.TotpGenerateRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeValidationError(c)
	}
	if err := validateStruct(h.Validate, req); err != nil {
		return writeValidationError(c)
	}
	enrollment, err := h.Service.Generate(c.Request().Context(), userID, req.Service)
	if err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	t := resolverFor(c)
	return c.JSON(http.StatusOK, dto.TotpGenerateResponse{
		Success: true,
		Message: t.Resolve("totp.generate.success", nil),
		Secret:  enrollment.Secret,
		URI:     enrollment.URI,
		QRImage: enrollment.QRImage,
	})
}

// Verify is the stateless check: code against secret, boolean out.
func (h *TotpHandler) Verify(c echo.Context) error {
	var req dto.TotpVerifyRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeValidationError(c)
	}
	valid, err := h.Service.Verify(req.Code, req.Secret)
	if err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	t := resolverFor(c)
	return c.JSON(http.StatusOK, dto.TotpVerifyResponse{
		Totp:    valid,
		Message: t.Resolve("totp.verify.success", nil),
	})
}

func (h *TotpHandler) Confirm(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeServiceError(c, h.Logger, service.ErrNotAuthorized)
	}
	var req dto.TotpConfirmRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeValidationError(c)
	}
	if err := validateStruct(h.Validate, req); err != nil {
		return writeValidationError(c)
	}
	if err := h.Service.Confirm(c.Request().Context(), userID, req.Code); err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	t := resolverFor(c)
	return c.JSON(http.StatusOK, dto.ActionResponse{
		Success: true,
		Message: t.Resolve("totp.confirm.success", nil),
	})
}

func (h *TotpHandler) Disable(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeServiceError(c, h.Logger, service.ErrNotAuthorized)
	}
	if err := h.Service.Disable(c.Request().Context(), userID); err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}
