package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"authcore/internal/entity"
	"authcore/internal/repository"
	"authcore/internal/utils"

	"github.com/google/uuid"
)

// Field-by-field update structs: nil means "leave as is". Each operation
// merges exactly the fields it owns, nothing more.
type ProfileUpdate struct {
	Name     *string
	Bio      *string
	Location *string
}

type AccountUpdate struct {
	Name  *string
	Email *string
}

type AuthenticationUpdate struct {
	IsTwoFactorEnabled *bool
}

// SettingsService covers the account-settings surface. Every operation
// resolves the actor from the session, then re-fetches the persisted user by
// id before mutating — the session payload is never trusted for
// authorization.
type SettingsService struct {
	users     repository.UserRepository
	auditLogs repository.AuditLogRepository

	avatars      AvatarStore
	passwordHash PasswordHasher
}

func NewSettingsService(
	users repository.UserRepository,
	auditLogs repository.AuditLogRepository,
	avatars AvatarStore,
	passwordHash PasswordHasher,
) *SettingsService {
	return &SettingsService{
		users:        users,
		auditLogs:    auditLogs,
		avatars:      avatars,
		passwordHash: passwordHash,
	}
}

func (s *SettingsService) UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) error {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return err
	}

	if update.Name != nil {
		user.Name = strings.TrimSpace(*update.Name)
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.Location != nil {
		user.Location = *update.Location
	}
	return s.users.Update(ctx, user)
}

func (s *SettingsService) UpdateAccount(ctx context.Context, userID uuid.UUID, update AccountUpdate) error {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return err
	}

	if update.Email != nil {
		email := utils.NormalizeEmail(*update.Email)
		if email != user.Email {
			existing, err := s.users.FindByEmail(ctx, email)
			if err != nil {
				return err
			}
			if existing != nil {
				return ErrEmailFound
			}
			user.Email = email
		}
	}
	if update.Name != nil {
		user.Name = strings.TrimSpace(*update.Name)
	}
	return s.users.Update(ctx, user)
}

// UpdatePassword only mutates the password hash, and only when the current
// password is supplied and matches.
func (s *SettingsService) UpdatePassword(ctx context.Context, userID uuid.UUID, current string, newPassword string) error {
	if strings.TrimSpace(current) == "" || strings.TrimSpace(newPassword) == "" {
		return ErrValidation
	}

	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.PasswordHash == nil {
		return ErrInvalidCredentials
	}
	if !s.passwordHash.Verify(*user.PasswordHash, current) {
		return ErrInvalidCredentials
	}

	hash, err := s.passwordHash.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = &hash
	return s.users.Update(ctx, user)
}

func (s *SettingsService) UpdateAuthentication(ctx context.Context, userID uuid.UUID, update AuthenticationUpdate) error {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return err
	}

	if update.IsTwoFactorEnabled != nil {
		user.IsTwoFactorEnabled = *update.IsTwoFactorEnabled
	}
	return s.users.Update(ctx, user)
}

// UpdateAvatar uploads the new image, removes the previous object, and
// stores the new URL on the user.
func (s *SettingsService) UpdateAvatar(ctx context.Context, userID uuid.UUID, image io.Reader, contentType string) error {
	if s.avatars == nil {
		return errors.New("avatar store not configured")
	}
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return err
	}

	suffix, err := utils.GenerateRandomToken(8)
	if err != nil {
		return err
	}
	key := avatarKey(user.ID, suffix, contentType)
	url, err := s.avatars.Upload(ctx, key, image, contentType)
	if err != nil {
		return err
	}

	s.deleteAvatarObject(ctx, user)

	user.Image = &url
	return s.users.Update(ctx, user)
}

func (s *SettingsService) DeleteAvatar(ctx context.Context, userID uuid.UUID) error {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return err
	}

	s.deleteAvatarObject(ctx, user)

	user.Image = nil
	return s.users.Update(ctx, user)
}

// DeleteAccount requires the submitted email to match the stored one, and
// the password to match when one is supplied. The avatar object is removed
// before the row so nothing is orphaned in the store.
func (s *SettingsService) DeleteAccount(ctx context.Context, userID uuid.UUID, email string, password string) error {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return err
	}

	if utils.NormalizeEmail(email) != user.Email {
		return ErrEmailNotFound
	}
	if password != "" && user.PasswordHash != nil {
		if !s.passwordHash.Verify(*user.PasswordHash, password) {
			return ErrInvalidCredentials
		}
	}

	s.deleteAvatarObject(ctx, user)

	if err := s.users.Delete(ctx, user.ID); err != nil {
		return err
	}
	if s.auditLogs != nil {
		_ = s.auditLogs.Log(ctx, &entity.AuditLog{Action: entity.AccountDeleted})
	}
	return nil
}

func (s *SettingsService) requireUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthorized
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotAuthorized
	}
	return user, nil
}

// deleteAvatarObject is best effort: a failed store delete never blocks the
// user-facing mutation.
func (s *SettingsService) deleteAvatarObject(ctx context.Context, user *entity.User) {
	if s.avatars == nil || user.Image == nil {
		return
	}
	if key := s.avatars.ObjectKey(*user.Image); key != "" {
		_ = s.avatars.Delete(ctx, key)
	}
}

func avatarKey(userID uuid.UUID, suffix string, contentType string) string {
	ext := ".bin"
	switch contentType {
	case "image/png":
		ext = ".png"
	case "image/jpeg":
		ext = ".jpg"
	case "image/webp":
		ext = ".webp"
	}
	return "avatars/" + userID.String() + "/" + suffix + ext
}
