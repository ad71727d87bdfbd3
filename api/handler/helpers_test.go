package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"authcore/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonContext(t *testing.T, body string, headers map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestWriteServiceError_StatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{service.ErrValidation, http.StatusBadRequest, "validation_error"},
		{service.ErrEmailNotFound, http.StatusNotFound, "email_not_found"},
		{service.ErrEmailFound, http.StatusConflict, "email_found"},
		{service.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{service.ErrTotpDisabled, http.StatusFailedDependency, "totp_disabled"},
		{service.ErrInvalidCode, http.StatusUnauthorized, "invalid_code"},
		{service.ErrCodeExpired, http.StatusUnauthorized, "code_expired"},
		{service.ErrTokenMissing, http.StatusBadRequest, "token_missing"},
		{service.ErrTokenInvalid, http.StatusUnauthorized, "token_invalid"},
		{service.ErrTokenExpired, http.StatusUnauthorized, "token_expired"},
		{service.ErrNotAuthorized, http.StatusUnauthorized, "not_authorized"},
	}
	for _, tc := range cases {
		c, rec := jsonContext(t, "{}", nil)
		require.NoError(t, writeServiceError(c, nil, tc.err))
		assert.Equal(t, tc.status, rec.Code, "error %v", tc.err)
		assert.Contains(t, rec.Body.String(), `"error":"`+tc.code+`"`)
	}
}

// Unknown errors collapse to a generic body; internals never leak.
func TestWriteServiceError_UnknownError(t *testing.T) {
	c, rec := jsonContext(t, "{}", nil)

	require.NoError(t, writeServiceError(c, nil, errors.New("pq: connection refused")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"generic"`)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestWriteServiceError_LocalizedMessage(t *testing.T) {
	c, rec := jsonContext(t, "{}", map[string]string{"Accept-Language": "fr-FR,fr;q=0.9"})
	require.NoError(t, writeServiceError(c, nil, service.ErrInvalidCredentials))
	frBody := rec.Body.String()

	c, rec = jsonContext(t, "{}", nil)
	require.NoError(t, writeServiceError(c, nil, service.ErrInvalidCredentials))
	enBody := rec.Body.String()

	assert.NotEqual(t, enBody, frBody)
}

func TestSignup_RejectsUnknownFields(t *testing.T) {
	h := NewAuthHandler(nil, validator.New(), nil)
	c, rec := jsonContext(t, `{"email":"a@b.c","password":"secret","admin":true}`, nil)

	require.NoError(t, h.Signup(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"validation_error"`)
}

func TestSignup_RejectsMalformedEmail(t *testing.T) {
	h := NewAuthHandler(nil, validator.New(), nil)
	c, rec := jsonContext(t, `{"email":"not-an-email","password":"secret"}`, nil)

	require.NoError(t, h.Signup(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
