package service

import (
	"context"
	"strings"

	"authcore/internal/repository"

	"github.com/google/uuid"
)

// TotpEnrollment is what the client needs to finish enrolling an
// authenticator app.
type TotpEnrollment struct {
	Secret  string
	URI     string
	QRImage string
}

// TotpService manages authenticator-app two-factor for a user account. The
// secret is stored at generation time, but IsTotpEnabled only flips once the
// user proves possession with a first valid code (Confirm); until then the
// account cannot be locked behind an app that was never set up.
type TotpService struct {
	users         repository.UserRepository
	confirmations repository.TwoFactorConfirmationRepository
	provider      TotpProvider
	config        AuthConfig
}

func NewTotpService(
	users repository.UserRepository,
	confirmations repository.TwoFactorConfirmationRepository,
	provider TotpProvider,
	config AuthConfig,
) *TotpService {
	return &TotpService{
		users:         users,
		confirmations: confirmations,
		provider:      provider,
		config:        config,
	}
}

// Generate creates a fresh shared secret for the user and returns the
// provisioning URI and QR image. serviceLabel overrides the configured
// issuer shown in the authenticator app.
func (s *TotpService) Generate(ctx context.Context, userID uuid.UUID, serviceLabel string) (*TotpEnrollment, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotAuthorized
	}

	issuer := strings.TrimSpace(serviceLabel)
	if issuer == "" {
		issuer = s.config.TotpIssuer
	}

	secret, uri, err := s.provider.Generate(user.Email, issuer)
	if err != nil {
		return nil, err
	}
	qr, err := s.provider.QRImage(uri)
	if err != nil {
		return nil, err
	}

	user.TotpSecret = &secret
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return &TotpEnrollment{Secret: secret, URI: uri, QRImage: qr}, nil
}

// Verify checks a code against a secret. Empty inputs fail fast without
// touching the TOTP primitive; a wrong code is a false result, not an error.
func (s *TotpService) Verify(code string, secret string) (bool, error) {
	if strings.TrimSpace(code) == "" || strings.TrimSpace(secret) == "" {
		return false, ErrNotAuthorized
	}
	return s.provider.ValidateCode(secret, code), nil
}

// Confirm is the proof-of-possession step: the first valid code after
// Generate enables TOTP sign-in for the account.
func (s *TotpService) Confirm(ctx context.Context, userID uuid.UUID, code string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotAuthorized
	}
	if user.TotpSecret == nil || *user.TotpSecret == "" {
		return ErrTotpDisabled
	}

	valid, err := s.Verify(code, *user.TotpSecret)
	if err != nil {
		return err
	}
	if !valid {
		return ErrInvalidCode
	}

	user.IsTotpEnabled = true
	return s.users.Update(ctx, user)
}

// Disable turns authenticator-app sign-in off and discards the secret and
// any pending confirmation.
func (s *TotpService) Disable(ctx context.Context, userID uuid.UUID) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotAuthorized
	}

	user.IsTotpEnabled = false
	user.TotpSecret = nil
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	return s.confirmations.DeleteByUserID(ctx, userID)
}
