package service

import "errors"

// Domain checks surface these sentinels up to the handler boundary, where
// they are mapped to an HTTP status and a stable string code the client
// translates. Anything else becomes the generic code and is only logged
// server-side.
var (
	ErrValidation         = errors.New("invalid fields")
	ErrEmailNotFound      = errors.New("email not found")
	ErrEmailFound         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTotpDisabled       = errors.New("totp not configured")
	ErrInvalidCode        = errors.New("invalid code")
	ErrCodeExpired        = errors.New("code expired")
	ErrTokenMissing       = errors.New("token missing")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrNotAuthorized      = errors.New("not authorized")
)
