package users

type UpdateUserRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=130"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email,min=5,max=150"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=5,max=1024"`
}
