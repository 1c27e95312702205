package auth

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=130"`
	Email    string `json:"email" validate:"required,email,min=5,max=150"`
	Password string `json:"password" validate:"required,min=5,max=1024"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,min=5,max=150"`
	Password string `json:"password" validate:"required,min=5,max=1024"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email,min=5,max=150"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=5,max=1024"`
}

// CredentialsResponse pairs the public user fields with a session token.
type CredentialsResponse struct {
	PublicUser
	Token string `json:"token"`
}
