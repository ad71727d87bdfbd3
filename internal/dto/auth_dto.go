package dto

import (
	"time"

	"authcore/internal/entity"
)

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=2,max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Code     string `json:"code" validate:"omitempty"`
}

// LoginResponse is the discriminated result of a login attempt. The client
// branches on which flag is set.
type LoginResponse struct {
	Success     bool   `json:"success,omitempty"`
	VerifyEmail bool   `json:"verify_email,omitempty"`
	TwoFactor   bool   `json:"two_factor,omitempty"`
	Totp        bool   `json:"totp,omitempty"`
	Message     string `json:"message,omitempty"`

	AccessToken      string `json:"access_token,omitempty"`
	ExpiresIn        int64  `json:"expires_in,omitempty"`
	RefreshToken     string `json:"refresh_token,omitempty"`
	RefreshExpiresIn int64  `json:"refresh_expires_in,omitempty"`
}

type VerifyEmailRequest struct {
	Token string `json:"token"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password" validate:"required,min=8"`
}

type ResendRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ActionResponse struct {
	Success bool   `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
}

type TotpGenerateRequest struct {
	Service string `json:"service" validate:"omitempty,max=100"`
}

type TotpGenerateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Secret  string `json:"secret"`
	URI     string `json:"uri"`
	QRImage string `json:"qr_image"`
}

type TotpVerifyRequest struct {
	Code   string `json:"code"`
	Secret string `json:"secret"`
}

type TotpVerifyResponse struct {
	Totp    bool   `json:"totp"`
	Message string `json:"message,omitempty"`
}

type TotpConfirmRequest struct {
	Code string `json:"code" validate:"required,len=6"`
}

type UserResponse struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	Role               string     `json:"role"`
	Name               string     `json:"name,omitempty"`
	Image              *string    `json:"image,omitempty"`
	Bio                string     `json:"bio,omitempty"`
	Location           string     `json:"location,omitempty"`
	EmailVerifiedAt    *time.Time `json:"email_verified_at,omitempty"`
	IsTwoFactorEnabled bool       `json:"is_two_factor_enabled"`
	IsTotpEnabled      bool       `json:"is_totp_enabled"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func UserResponseFromEntity(user *entity.User) UserResponse {
	return UserResponse{
		ID:                 user.ID.String(),
		Email:              user.Email,
		Role:               string(user.Role),
		Name:               user.Name,
		Image:              user.Image,
		Bio:                user.Bio,
		Location:           user.Location,
		EmailVerifiedAt:    user.EmailVerifiedAt,
		IsTwoFactorEnabled: user.IsTwoFactorEnabled,
		IsTotpEnabled:      user.IsTotpEnabled,
		CreatedAt:          user.CreatedAt,
		UpdatedAt:          user.UpdatedAt,
	}
}
