package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-side artifact behind a logged-in browser: the hashed
// refresh token plus enough request metadata to list and revoke it.
type Session struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	User   User      `gorm:"constraint:OnDelete:CASCADE"`

	TokenHash string `gorm:"type:text;not null;index"`

	IPAddress *string `gorm:"type:varchar(45)"`
	UserAgent *string `gorm:"type:text"`

	ExpiresAt time.Time
	RevokedAt *time.Time

	CreatedAt time.Time
}
