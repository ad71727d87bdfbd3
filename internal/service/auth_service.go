package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"authcore/internal/entity"
	"authcore/internal/repository"
	"authcore/internal/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

// AuthService drives the login state machine — credential check, email
// verification gate, two-factor challenge, session establishment — plus
// signup, email verification and password recovery.
type AuthService struct {
	users         repository.UserRepository
	sessions      repository.SessionRepository
	confirmations repository.TwoFactorConfirmationRepository
	auditLogs     repository.AuditLogRepository

	tokens       *TokenService
	totp         *TotpService
	emailSender  EmailSender
	passwordHash PasswordHasher
	accessTokens AccessTokenIssuer
	clock        Clock
	config       AuthConfig
}

func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	confirmations repository.TwoFactorConfirmationRepository,
	auditLogs repository.AuditLogRepository,
	tokens *TokenService,
	totp *TotpService,
	emailSender EmailSender,
	passwordHash PasswordHasher,
	accessTokens AccessTokenIssuer,
	clock Clock,
	config AuthConfig,
) *AuthService {
	return &AuthService{
		users:         users,
		sessions:      sessions,
		confirmations: confirmations,
		auditLogs:     auditLogs,
		tokens:        tokens,
		totp:          totp,
		emailSender:   emailSender,
		passwordHash:  passwordHash,
		accessTokens:  accessTokens,
		clock:         clock,
		config:        config,
	}
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) error {
	if strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Password) == "" {
		return ErrValidation
	}

	email := utils.NormalizeEmail(input.Email)
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrEmailFound
	}

	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return err
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: &hash,
		Name:         strings.TrimSpace(input.Name),
		Role:         entity.UserRoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}

	return s.sendEmailVerification(ctx, email)
}

// Login walks the states in order. Each early return is terminal for the
// call: no session exists until every required gate has passed.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Password) == "" {
		return nil, ErrValidation
	}

	email := utils.NormalizeEmail(input.Email)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == nil {
		// OAuth-only accounts have no password to check either.
		_ = s.passwordHash.Verify(dummyPasswordHash, input.Password)
		_ = s.audit(ctx, nil, input.IPAddress, entity.LoginFailed, map[string]any{"email": email})
		return nil, ErrEmailNotFound
	}

	if user.EmailVerifiedAt == nil {
		if err := s.sendEmailVerification(ctx, user.Email); err != nil {
			return nil, err
		}
		return &LoginResult{VerifyEmail: true}, nil
	}

	if !s.passwordHash.Verify(*user.PasswordHash, input.Password) {
		_ = s.audit(ctx, &user.ID, input.IPAddress, entity.LoginFailed, map[string]any{"email": email})
		return nil, ErrInvalidCredentials
	}

	// TOTP takes precedence when both two-factor flags are set.
	if user.IsTotpEnabled {
		if user.TotpSecret == nil || *user.TotpSecret == "" {
			return nil, ErrTotpDisabled
		}
		if input.Code == "" {
			return &LoginResult{Totp: true}, nil
		}
		valid, err := s.totp.Verify(input.Code, *user.TotpSecret)
		if err != nil {
			return nil, err
		}
		if !valid {
			_ = s.audit(ctx, &user.ID, input.IPAddress, entity.TwoFactorFailed, map[string]any{"method": "totp"})
			return nil, ErrInvalidCode
		}
		if err := s.confirmations.Replace(ctx, user.ID, nil); err != nil {
			return nil, err
		}
	} else if user.IsTwoFactorEnabled {
		if input.Code == "" {
			token, err := s.tokens.GenerateTwoFactorToken(ctx, user.Email)
			if err != nil {
				return nil, err
			}
			if err := s.emailSender.SendTwoFactorCodeEmail(ctx, user.Email, token.Token); err != nil {
				return nil, err
			}
			return &LoginResult{TwoFactor: true}, nil
		}
		token, err := s.tokens.GetTwoFactorTokenByToken(ctx, input.Code)
		if err != nil {
			return nil, err
		}
		if token == nil || token.Token != input.Code || token.Email != user.Email {
			_ = s.audit(ctx, &user.ID, input.IPAddress, entity.TwoFactorFailed, map[string]any{"method": "email"})
			return nil, ErrInvalidCode
		}
		if token.Expired(s.now()) {
			return nil, ErrCodeExpired
		}
		// Token deletion and confirmation upsert are a single batch write.
		if err := s.confirmations.Replace(ctx, user.ID, &token.ID); err != nil {
			return nil, err
		}
	}

	result, err := s.establishSession(ctx, user, input.IPAddress, input.UserAgent)
	if err != nil {
		return nil, err
	}

	_ = s.audit(ctx, &user.ID, input.IPAddress, entity.LoginSuccess, nil)
	result.Success = true
	return result, nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, tokenValue string) error {
	if strings.TrimSpace(tokenValue) == "" {
		return ErrTokenMissing
	}

	token, err := s.tokens.GetVerificationTokenByToken(ctx, tokenValue)
	if err != nil {
		return err
	}
	if token == nil {
		return ErrTokenInvalid
	}
	if token.Expired(s.now()) {
		return ErrTokenExpired
	}

	user, err := s.users.FindByEmail(ctx, token.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrEmailNotFound
	}

	if err := s.users.VerifyEmail(ctx, user.ID); err != nil {
		return err
	}
	return s.tokens.Consume(ctx, token)
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrValidation
	}

	user, err := s.users.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil {
		return ErrEmailNotFound
	}

	token, err := s.tokens.GeneratePasswordResetToken(ctx, user.Email)
	if err != nil {
		return err
	}
	return s.emailSender.SendPasswordResetEmail(ctx, user.Email, token.Token)
}

func (s *AuthService) ResetPassword(ctx context.Context, tokenValue string, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return ErrValidation
	}
	if strings.TrimSpace(tokenValue) == "" {
		return ErrTokenMissing
	}

	token, err := s.tokens.GetPasswordResetTokenByToken(ctx, tokenValue)
	if err != nil {
		return err
	}
	if token == nil {
		return ErrTokenInvalid
	}
	if token.Expired(s.now()) {
		return ErrTokenExpired
	}

	user, err := s.users.FindByEmail(ctx, token.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrEmailNotFound
	}

	hash, err := s.passwordHash.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = &hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	if err := s.tokens.Consume(ctx, token); err != nil {
		return err
	}

	_ = s.sessions.RevokeAllByUser(ctx, user.ID)
	_ = s.audit(ctx, &user.ID, nil, entity.PasswordReset, nil)
	return nil
}

func (s *AuthService) ResendVerifyEmailLink(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil {
		return ErrEmailNotFound
	}
	if user.EmailVerifiedAt != nil {
		return nil
	}
	return s.sendEmailVerification(ctx, user.Email)
}

func (s *AuthService) ResendForgotPasswordLink(ctx context.Context, email string) error {
	return s.ForgotPassword(ctx, email)
}

func (s *AuthService) ResendTwoFactorCode(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil || user.PasswordHash == nil {
		return ErrEmailNotFound
	}
	if !user.IsTwoFactorEnabled {
		return nil
	}

	token, err := s.tokens.GenerateTwoFactorToken(ctx, user.Email)
	if err != nil {
		return err
	}
	return s.emailSender.SendTwoFactorCodeEmail(ctx, user.Email, token.Token)
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, ErrValidation
	}

	session, err := s.sessions.FindByTokenHash(ctx, utils.HashToken(refreshToken))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrTokenInvalid
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotAuthorized
	}

	newRefreshToken, newRefreshHash, newRefreshExpiry, err := s.buildRefreshToken()
	if err != nil {
		return nil, err
	}
	if err := s.sessions.RotateToken(ctx, session.ID, newRefreshHash, newRefreshExpiry); err != nil {
		return nil, err
	}

	accessToken, expiresIn, err := s.accessTokens.IssueAccessToken(*user, session.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Success:          true,
		AccessToken:      accessToken,
		ExpiresIn:        int64(expiresIn.Seconds()),
		RefreshToken:     newRefreshToken,
		RefreshExpiresIn: int64(newRefreshExpiry.Sub(s.now()).Seconds()),
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID uuid.UUID, userID *uuid.UUID, ipAddress *string) error {
	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		return err
	}
	_ = s.audit(ctx, userID, ipAddress, entity.Logout, nil)
	return nil
}

func (s *AuthService) LogoutAll(ctx context.Context, userID uuid.UUID, ipAddress *string) error {
	if err := s.sessions.RevokeAllByUser(ctx, userID); err != nil {
		return err
	}
	_ = s.audit(ctx, &userID, ipAddress, entity.SessionRevoked, map[string]any{"scope": "all"})
	return nil
}

func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) establishSession(
	ctx context.Context,
	user *entity.User,
	ipAddress *string,
	userAgent *string,
) (*LoginResult, error) {
	refreshToken, refreshHash, refreshExpiry, err := s.buildRefreshToken()
	if err != nil {
		return nil, err
	}

	session := &entity.Session{
		UserID:    user.ID,
		TokenHash: refreshHash,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		ExpiresAt: refreshExpiry,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	accessToken, expiresIn, err := s.accessTokens.IssueAccessToken(*user, session.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:      accessToken,
		ExpiresIn:        int64(expiresIn.Seconds()),
		RefreshToken:     refreshToken,
		RefreshExpiresIn: int64(refreshExpiry.Sub(s.now()).Seconds()),
	}, nil
}

func (s *AuthService) sendEmailVerification(ctx context.Context, email string) error {
	token, err := s.tokens.GenerateVerificationToken(ctx, email)
	if err != nil {
		return err
	}
	return s.emailSender.SendVerificationEmail(ctx, email, token.Token)
}

func (s *AuthService) buildRefreshToken() (string, string, time.Time, error) {
	rawToken, err := utils.GenerateRandomToken(48)
	if err != nil {
		return "", "", time.Time{}, err
	}
	expiresAt := s.now().Add(s.refreshTokenTTL())
	return rawToken, utils.HashToken(rawToken), expiresAt, nil
}

func (s *AuthService) audit(
	ctx context.Context,
	userID *uuid.UUID,
	ipAddress *string,
	action entity.AuditAction,
	metadata map[string]any,
) error {
	if s.auditLogs == nil {
		return nil
	}
	var payload datatypes.JSON
	if metadata != nil {
		bytes, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		payload = datatypes.JSON(bytes)
	}

	return s.auditLogs.Log(ctx, &entity.AuditLog{
		UserID:    userID,
		IPAddress: ipAddress,
		Action:    action,
		Metadata:  payload,
	})
}

func (s *AuthService) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock.Now()
}

func (s *AuthService) refreshTokenTTL() time.Duration {
	if s.config.RefreshTokenTTL > 0 {
		return s.config.RefreshTokenTTL
	}
	return 30 * 24 * time.Hour
}
