package entity

import (
	"time"

	"github.com/google/uuid"
)

type TokenKind string

const (
	TokenEmailVerify   TokenKind = "email_verify"
	TokenPasswordReset TokenKind = "password_reset"
	TokenTwoFactor     TokenKind = "two_factor"
)

// AuthToken is a single-use token keyed by email. One row per (email, kind):
// regenerating replaces the previous token. Expired rows stay around until
// they are replaced or consumed; expiry is checked by the caller.
type AuthToken struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	Email string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_auth_tokens_email_kind"`
	Kind  TokenKind `gorm:"type:token_kind;not null;uniqueIndex:idx_auth_tokens_email_kind"`
	Token string    `gorm:"type:text;not null;uniqueIndex"`

	ExpiresAt time.Time
	CreatedAt time.Time
}

func (t *AuthToken) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
