package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditAction string

const (
	LoginSuccess    AuditAction = "login_success"
	LoginFailed     AuditAction = "login_failed"
	TwoFactorFailed AuditAction = "two_factor_failed"
	Logout          AuditAction = "logout"
	PasswordReset   AuditAction = "password_reset"
	SessionRevoked  AuditAction = "session_revoked"
	TotpEnabled     AuditAction = "totp_enabled"
	AccountDeleted  AuditAction = "account_deleted"
)

type AuditLog struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	UserID *uuid.UUID `gorm:"type:uuid;index"`
	User   *User      `gorm:"constraint:OnDelete:SET NULL"`

	IPAddress *string     `gorm:"type:varchar(45)"`
	Action    AuditAction `gorm:"type:audit_action;not null"`

	Metadata datatypes.JSON

	CreatedAt time.Time
}
