package service

type SignupInput struct {
	Email    string
	Password string
	Name     string
}

type LoginInput struct {
	Email     string
	Password  string
	Code      string
	IPAddress *string
	UserAgent *string
}

// LoginResult is the discriminated outcome of a login attempt. Exactly one
// of Success, VerifyEmail, TwoFactor or Totp is set; the token fields are
// only populated alongside Success.
type LoginResult struct {
	Success     bool
	VerifyEmail bool
	TwoFactor   bool
	Totp        bool

	AccessToken      string
	ExpiresIn        int64
	RefreshToken     string
	RefreshExpiresIn int64
}
