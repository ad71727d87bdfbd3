package service

import (
	"context"
	"io"
	"time"

	"authcore/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// --- repository mocks ---

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if u, _ := args.Get(0).(*entity.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*entity.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserRepo) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *mockUserRepo) VerifyEmail(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *mockUserRepo) Delete(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type mockSessionRepo struct{ mock.Mock }

func (m *mockSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	return m.Called(ctx, session).Error(0)
}
func (m *mockSessionRepo) FindByTokenHash(ctx context.Context, hash string) (*entity.Session, error) {
	args := m.Called(ctx, hash)
	if s, _ := args.Get(0).(*entity.Session); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockSessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	args := m.Called(ctx, id)
	if s, _ := args.Get(0).(*entity.Session); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockSessionRepo) RotateToken(ctx context.Context, sessionID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	return m.Called(ctx, sessionID, tokenHash, expiresAt).Error(0)
}
func (m *mockSessionRepo) Revoke(ctx context.Context, sessionID uuid.UUID) error {
	return m.Called(ctx, sessionID).Error(0)
}
func (m *mockSessionRepo) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *mockSessionRepo) CleanupExpired(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockTokenRepo struct{ mock.Mock }

func (m *mockTokenRepo) Replace(ctx context.Context, token *entity.AuthToken) error {
	return m.Called(ctx, token).Error(0)
}
func (m *mockTokenRepo) FindByToken(ctx context.Context, value string, kind entity.TokenKind) (*entity.AuthToken, error) {
	args := m.Called(ctx, value, kind)
	if t, _ := args.Get(0).(*entity.AuthToken); t != nil {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockTokenRepo) FindByEmail(ctx context.Context, email string, kind entity.TokenKind) (*entity.AuthToken, error) {
	args := m.Called(ctx, email, kind)
	if t, _ := args.Get(0).(*entity.AuthToken); t != nil {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockTokenRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockConfirmationRepo struct{ mock.Mock }

func (m *mockConfirmationRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.TwoFactorConfirmation, error) {
	args := m.Called(ctx, userID)
	if c, _ := args.Get(0).(*entity.TwoFactorConfirmation); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockConfirmationRepo) Replace(ctx context.Context, userID uuid.UUID, consumedToken *uuid.UUID) error {
	return m.Called(ctx, userID, consumedToken).Error(0)
}
func (m *mockConfirmationRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

// --- collaborator mocks ---

type mockEmailSender struct{ mock.Mock }

func (m *mockEmailSender) SendVerificationEmail(ctx context.Context, email string, token string) error {
	return m.Called(ctx, email, token).Error(0)
}
func (m *mockEmailSender) SendPasswordResetEmail(ctx context.Context, email string, token string) error {
	return m.Called(ctx, email, token).Error(0)
}
func (m *mockEmailSender) SendTwoFactorCodeEmail(ctx context.Context, email string, code string) error {
	return m.Called(ctx, email, code).Error(0)
}

type mockTotpProvider struct{ mock.Mock }

func (m *mockTotpProvider) Generate(accountEmail string, issuer string) (string, string, error) {
	args := m.Called(accountEmail, issuer)
	return args.String(0), args.String(1), args.Error(2)
}
func (m *mockTotpProvider) QRImage(uri string) (string, error) {
	args := m.Called(uri)
	return args.String(0), args.Error(1)
}
func (m *mockTotpProvider) ValidateCode(secret string, code string) bool {
	return m.Called(secret, code).Bool(0)
}

type mockAvatarStore struct{ mock.Mock }

func (m *mockAvatarStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, key, r, contentType)
	return args.String(0), args.Error(1)
}
func (m *mockAvatarStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
func (m *mockAvatarStore) ObjectKey(url string) string {
	return m.Called(url).String(0)
}

// --- deterministic stand-ins ---

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// stubHasher avoids bcrypt in tests: a "hash" is just a marked copy of the
// password.
type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (stubHasher) Verify(hash string, password string) bool {
	return hash == "hashed:"+password
}

type stubAccessIssuer struct{}

func (stubAccessIssuer) IssueAccessToken(user entity.User, sessionID uuid.UUID) (string, time.Duration, error) {
	return "access-token", 15 * time.Minute, nil
}

func hashPtr(password string) *string {
	hash := "hashed:" + password
	return &hash
}

func strPtr(s string) *string { return &s }
