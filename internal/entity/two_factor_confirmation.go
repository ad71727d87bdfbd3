package entity

import (
	"time"

	"github.com/google/uuid"
)

// TwoFactorConfirmation records that the user passed a 2FA or TOTP challenge
// for the current login. At most one row per user; each successful challenge
// replaces it. Not a long-lived credential.
type TwoFactorConfirmation struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	User   User      `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
}
