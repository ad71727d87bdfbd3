package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"authcore/internal/i18n"
	"authcore/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// errorBody is what every failed action returns: a stable code the client
// translates, plus a message already resolved for the request locale.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type codeMapping struct {
	status int
	code   string
	msgKey string
}

var serviceErrorCodes = []struct {
	err     error
	mapping codeMapping
}{
	{service.ErrValidation, codeMapping{http.StatusBadRequest, "validation_error", "errors.validation"}},
	{service.ErrEmailNotFound, codeMapping{http.StatusNotFound, "email_not_found", "errors.email.notFound"}},
	{service.ErrEmailFound, codeMapping{http.StatusConflict, "email_found", "errors.email.found"}},
	{service.ErrInvalidCredentials, codeMapping{http.StatusUnauthorized, "invalid_credentials", "errors.invalidCredentials"}},
	{service.ErrTotpDisabled, codeMapping{http.StatusFailedDependency, "totp_disabled", "errors.totp.disabled"}},
	{service.ErrInvalidCode, codeMapping{http.StatusUnauthorized, "invalid_code", "errors.invalidCode"}},
	{service.ErrCodeExpired, codeMapping{http.StatusUnauthorized, "code_expired", "errors.codeExpired"}},
	{service.ErrTokenMissing, codeMapping{http.StatusBadRequest, "token_missing", "errors.token.missing"}},
	{service.ErrTokenInvalid, codeMapping{http.StatusUnauthorized, "token_invalid", "errors.token.invalid"}},
	{service.ErrTokenExpired, codeMapping{http.StatusUnauthorized, "token_expired", "errors.token.expired"}},
	{service.ErrNotAuthorized, codeMapping{http.StatusUnauthorized, "not_authorized", "errors.notAuthorized"}},
}

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func resolverFor(c echo.Context) i18n.Resolver {
	return i18n.NewResolver(i18n.LocaleFromRequest(c.Request()))
}

func writeValidationError(c echo.Context) error {
	t := resolverFor(c)
	return c.JSON(http.StatusBadRequest, errorBody{
		Error:   "validation_error",
		Message: t.Resolve("errors.validation", nil),
	})
}

// writeServiceError maps sentinels to status + code; anything unknown is
// logged with context and collapsed to the generic code, never exposing
// internals to the caller.
func writeServiceError(c echo.Context, logger *logrus.Logger, err error) error {
	t := resolverFor(c)
	for _, entry := range serviceErrorCodes {
		if errors.Is(err, entry.err) {
			return c.JSON(entry.mapping.status, errorBody{
				Error:   entry.mapping.code,
				Message: t.Resolve(entry.mapping.msgKey, nil),
			})
		}
	}
	if logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"method": c.Request().Method,
			"uri":    c.Request().RequestURI,
		}).Error("action failed")
	}
	return c.JSON(http.StatusInternalServerError, errorBody{
		Error:   "generic",
		Message: t.Resolve("errors.generic", nil),
	})
}

func validateStruct(v *validator.Validate, payload any) error {
	if v == nil {
		return nil
	}
	return v.Struct(payload)
}

func stringPtr(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
