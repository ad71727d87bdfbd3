package service

import (
	"context"
	"time"

	"authcore/internal/entity"
	"authcore/internal/repository"
	"authcore/internal/utils"
)

const twoFactorCodeDigits = 6

// TokenService owns the single-use tokens sent by email: verification links,
// password reset links and two-factor codes. Generating a token replaces any
// previous one of the same kind for that email, so only the latest value can
// succeed at verification. Lookups return expired rows; the caller decides.
type TokenService struct {
	tokens repository.AuthTokenRepository
	clock  Clock
	config AuthConfig
}

func NewTokenService(tokens repository.AuthTokenRepository, clock Clock, config AuthConfig) *TokenService {
	return &TokenService{tokens: tokens, clock: clock, config: config}
}

func (s *TokenService) GenerateVerificationToken(ctx context.Context, email string) (*entity.AuthToken, error) {
	return s.generateOpaque(ctx, email, entity.TokenEmailVerify, s.verificationTTL())
}

func (s *TokenService) GeneratePasswordResetToken(ctx context.Context, email string) (*entity.AuthToken, error) {
	return s.generateOpaque(ctx, email, entity.TokenPasswordReset, s.resetTTL())
}

func (s *TokenService) GenerateTwoFactorToken(ctx context.Context, email string) (*entity.AuthToken, error) {
	code, err := utils.GenerateNumericCode(twoFactorCodeDigits)
	if err != nil {
		return nil, err
	}
	token := &entity.AuthToken{
		Email:     utils.NormalizeEmail(email),
		Kind:      entity.TokenTwoFactor,
		Token:     code,
		ExpiresAt: s.now().Add(s.twoFactorTTL()),
	}
	if err := s.tokens.Replace(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *TokenService) GetVerificationTokenByToken(ctx context.Context, value string) (*entity.AuthToken, error) {
	return s.tokens.FindByToken(ctx, value, entity.TokenEmailVerify)
}

func (s *TokenService) GetPasswordResetTokenByToken(ctx context.Context, value string) (*entity.AuthToken, error) {
	return s.tokens.FindByToken(ctx, value, entity.TokenPasswordReset)
}

func (s *TokenService) GetTwoFactorTokenByToken(ctx context.Context, value string) (*entity.AuthToken, error) {
	return s.tokens.FindByToken(ctx, value, entity.TokenTwoFactor)
}

func (s *TokenService) Consume(ctx context.Context, token *entity.AuthToken) error {
	return s.tokens.Delete(ctx, token.ID)
}

func (s *TokenService) generateOpaque(ctx context.Context, email string, kind entity.TokenKind, ttl time.Duration) (*entity.AuthToken, error) {
	value, err := utils.GenerateRandomToken(32)
	if err != nil {
		return nil, err
	}
	token := &entity.AuthToken{
		Email:     utils.NormalizeEmail(email),
		Kind:      kind,
		Token:     value,
		ExpiresAt: s.now().Add(ttl),
	}
	if err := s.tokens.Replace(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *TokenService) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock.Now()
}

func (s *TokenService) verificationTTL() time.Duration {
	if s.config.VerificationTokenTTL > 0 {
		return s.config.VerificationTokenTTL
	}
	return time.Hour
}

func (s *TokenService) resetTTL() time.Duration {
	if s.config.ResetTokenTTL > 0 {
		return s.config.ResetTokenTTL
	}
	return time.Hour
}

func (s *TokenService) twoFactorTTL() time.Duration {
	if s.config.TwoFactorCodeTTL > 0 {
		return s.config.TwoFactorCodeTTL
	}
	return 5 * time.Minute
}
