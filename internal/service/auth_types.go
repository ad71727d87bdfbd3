package service

import (
	"context"
	"io"
	"time"

	"authcore/internal/entity"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthConfig struct {
	AccessTokenTTL       time.Duration
	RefreshTokenTTL      time.Duration
	VerificationTokenTTL time.Duration
	ResetTokenTTL        time.Duration
	TwoFactorCodeTTL     time.Duration
	TotpIssuer           string
}

type EmailSender interface {
	SendVerificationEmail(ctx context.Context, email string, token string) error
	SendPasswordResetEmail(ctx context.Context, email string, token string) error
	SendTwoFactorCodeEmail(ctx context.Context, email string, code string) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) bool
}

type AccessTokenIssuer interface {
	IssueAccessToken(user entity.User, sessionID uuid.UUID) (string, time.Duration, error)
}

// TotpProvider is the underlying TOTP primitive: secret generation with a
// provisioning URI, QR rendering, and code validation.
type TotpProvider interface {
	Generate(accountEmail string, issuer string) (secret string, uri string, err error)
	QRImage(uri string) (dataURL string, err error)
	ValidateCode(secret string, code string) bool
}

// AvatarStore is the external object store holding avatar images.
type AvatarStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (url string, err error)
	Delete(ctx context.Context, key string) error
	// ObjectKey maps a stored URL back to the object key, or "" when the URL
	// does not belong to this store.
	ObjectKey(url string) string
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

type BcryptPasswordHasher struct {
	Cost int
}

func (h BcryptPasswordHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (h BcryptPasswordHasher) Verify(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
