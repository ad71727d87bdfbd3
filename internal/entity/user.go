package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash *string   `gorm:"type:text"`
	Role         UserRole  `gorm:"type:user_role;default:'user';not null"`

	Name     string  `gorm:"type:varchar(100)"`
	Image    *string `gorm:"type:text"`
	Bio      string  `gorm:"type:varchar(500)"`
	Location string  `gorm:"type:varchar(100)"`

	EmailVerifiedAt *time.Time

	IsTwoFactorEnabled bool    `gorm:"not null;default:false"`
	IsTotpEnabled      bool    `gorm:"not null;default:false"`
	TotpSecret         *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Sessions []Session
}

// HasTotp reports whether the user can actually be challenged with a TOTP
// code: the enabled flag alone is not enough, a secret must be stored.
func (u *User) HasTotp() bool {
	return u.IsTotpEnabled && u.TotpSecret != nil && *u.TotpSecret != ""
}
