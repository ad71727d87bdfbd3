package dto

type ProfileUpdateRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=50"`
	Bio      *string `json:"bio" validate:"omitempty,max=500"`
	Location *string `json:"location" validate:"omitempty,max=100"`
}

type AccountUpdateRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=50"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type PasswordUpdateRequest struct {
	Password      string `json:"password" validate:"required"`
	ResetPassword string `json:"reset_password" validate:"required,min=8"`
}

type AuthenticationUpdateRequest struct {
	IsTwoFactorEnabled *bool `json:"is_two_factor_enabled"`
}

type DeleteAccountRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty"`
}
